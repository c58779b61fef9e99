package ships_test

import (
	"testing"

	"github.com/avdeenko/battleships-server/ships"
	"github.com/stretchr/testify/assert"
)

// a 4x4 board with one ship of length 2 (vertical, col 0) and two length-1
// ships (0,3) and (3,3), fully solved and kept clear of diagonal touches.
func solvedClues() ships.Clues {
	c := ships.Clues{
		H:     4,
		W:     4,
		Ships: []int{2, 1, 1},
		Rows:  []int{2, 1, 0, 1},
		Cols:  []int{2, 0, 0, 2},
		Init:  ships.NewBoard(4, 4),
	}
	return c
}

func solvedBoard() ships.Board {
	b := ships.NewBoard(4, 4)
	b.Set(0, 0, ships.N)
	b.Set(1, 0, ships.S)
	b.Set(0, 3, ships.One)
	b.Set(3, 3, ships.One)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			if b.At(y, x) == ships.Undef {
				b.Set(y, x, ships.Vacant)
			}
		}
	}
	return b
}

func TestValidateSolvedBoard(t *testing.T) {
	c := solvedClues()
	b := solvedBoard()

	result := ships.Validate(c, b)

	assert.True(t, result.Solved)
	assert.False(t, result.ShipsErr)
	for _, done := range result.ShipDone {
		assert.True(t, done)
	}
	for _, f := range result.CellFlags {
		assert.Equal(t, ships.FlagNone, f)
	}
}

func TestValidateDiagonalTouchFlagged(t *testing.T) {
	c := solvedClues()
	b := solvedBoard()
	// (2,2) is diagonally adjacent to the One at (3,3); placing an extra
	// occupied cell there should flag one or both as touching.
	b.Set(2, 2, ships.One)

	result := ships.Validate(c, b)

	assert.True(t, result.CellFlags[2*4+2] != ships.FlagNone || result.CellFlags[3*4+3] != ships.FlagNone)
}

func TestValidateRowTotalMismatch(t *testing.T) {
	c := solvedClues()
	b := solvedBoard()
	b.Set(1, 1, ships.One) // row 1 now has an extra occupied cell beyond its total

	result := ships.Validate(c, b)

	assert.True(t, result.RowErr[1])
	assert.False(t, result.Solved)
}

func TestValidateEndFlagsOccupiedPerpendicularNeighbour(t *testing.T) {
	c := makeHiddenClues(4, 4, []int{3})
	b := ships.NewBoard(4, 4)
	b.Set(0, 1, ships.N)
	b.Set(1, 1, ships.Inner)
	b.Set(2, 1, ships.S)
	b.Set(0, 0, ships.Occ) // orthogonally beside the N end: invalid touching ship

	result := ships.Validate(c, b)

	assert.NotEqual(t, ships.FlagNone, result.CellFlags[0*4+1])
}

func TestValidateOccRejectsPerpendicularPair(t *testing.T) {
	c := makeHiddenClues(3, 3, []int{1, 1, 1})
	b := ships.NewBoard(3, 3)
	b.Set(0, 1, ships.Occ)
	b.Set(1, 0, ships.Occ)
	b.Set(1, 1, ships.Occ) // north and west both occupied: an L-junction, never valid

	result := ships.Validate(c, b)

	assert.NotEqual(t, ships.FlagNone, result.CellFlags[1*3+1])
}

func TestValidateInnerRequiresBothSameAxisNeighboursOccupied(t *testing.T) {
	c := makeHiddenClues(3, 3, []int{2})
	b := ships.NewBoard(3, 3)
	b.Set(0, 1, ships.Occ)
	b.Set(1, 1, ships.Inner) // only the north side is occupied: really an end, not an interior

	result := ships.Validate(c, b)

	assert.NotEqual(t, ships.FlagNone, result.CellFlags[1*3+1])
}

func makeHiddenClues(h, w int, shipLengths []int) ships.Clues {
	rows := make([]int, h)
	cols := make([]int, w)
	for i := range rows {
		rows[i] = ships.Hidden
	}
	for i := range cols {
		cols[i] = ships.Hidden
	}
	return ships.Clues{H: h, W: w, Ships: shipLengths, Rows: rows, Cols: cols, Init: ships.NewBoard(h, w)}
}
