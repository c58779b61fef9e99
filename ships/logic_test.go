package ships_test

import (
	"testing"

	"github.com/avdeenko/battleships-server/ships"
	"github.com/stretchr/testify/assert"
)

func TestLogicalSolvePinsCellFromLineCounting(t *testing.T) {
	c := ships.Clues{
		H:     3,
		W:     3,
		Ships: []int{1},
		Rows:  []int{0, 1, 0},
		Cols:  []int{0, 1, 0},
		Init:  ships.NewBoard(3, 3),
	}

	board, occ, vac, status := ships.LogicalSolve(c, ships.Basic)

	assert.Equal(t, ships.SolvedSimple, status)
	assert.Equal(t, 1, occ)
	assert.Equal(t, 8, vac)
	assert.True(t, board.At(1, 1).Occupied())
}

func TestLogicalSolveStuckWithoutEnoughConstraints(t *testing.T) {
	c := ships.Clues{
		H:     1,
		W:     3,
		Ships: []int{1},
		Rows:  []int{1},
		Cols:  []int{ships.Hidden, ships.Hidden, ships.Hidden},
		Init:  ships.NewBoard(1, 3),
	}

	_, _, _, status := ships.LogicalSolve(c, ships.Unreasonable)

	assert.Equal(t, ships.Stuck, status)
}

func TestSolveStatusString(t *testing.T) {
	assert.Equal(t, "stuck", ships.Stuck.String())
	assert.Equal(t, "solved-by-simple", ships.SolvedSimple.String())
	assert.Equal(t, "solved-using-advanced", ships.SolvedAdvanced.String())
}
