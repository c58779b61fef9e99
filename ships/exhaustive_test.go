package ships_test

import (
	"testing"

	"github.com/avdeenko/battleships-server/ships"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExhaustiveSolveUniqueSolution(t *testing.T) {
	c := ships.Clues{
		H:     3,
		W:     3,
		Ships: []int{1},
		Rows:  []int{0, 1, 0},
		Cols:  []int{0, 1, 0},
		Init:  ships.NewBoard(3, 3),
	}

	sol, _, err := ships.ExhaustiveSolve(c, 0)
	require.NoError(t, err)
	require.Len(t, sol, 1)
	assert.Equal(t, ships.ShipPlacement{Orientation: ships.Horizontal, Y: 1, X: 1}, sol[0])
}

func TestExhaustiveSolveNoSolution(t *testing.T) {
	c := ships.Clues{
		H:     3,
		W:     3,
		Ships: []int{1},
		Rows:  []int{0, 0, 0},
		Cols:  []int{0, 0, 0},
		Init:  ships.NewBoard(3, 3),
	}

	_, _, err := ships.ExhaustiveSolve(c, 0)
	assert.ErrorIs(t, err, ships.ErrNoSolution)
}

func TestExhaustiveSolveNonUnique(t *testing.T) {
	c := ships.Clues{
		H:     1,
		W:     3,
		Ships: []int{1},
		Rows:  []int{1},
		Cols:  []int{ships.Hidden, ships.Hidden, ships.Hidden},
		Init:  ships.NewBoard(1, 3),
	}

	sol, sol2, _, err := ships.ExhaustiveSolveWitness(c, 0)
	require.ErrorIs(t, err, ships.ErrNonUnique)
	assert.NotEqual(t, sol, sol2)
}

func TestRenderSolutionTypesEndsAndInterior(t *testing.T) {
	placements := []ships.ShipPlacement{
		{Orientation: ships.Horizontal, Y: 0, X: 0},
		{Orientation: ships.Horizontal, Y: 2, X: 2},
	}
	b := ships.RenderSolution(3, 3, []int{3, 1}, placements)

	assert.Equal(t, ships.W, b.At(0, 0))
	assert.Equal(t, ships.Inner, b.At(0, 1))
	assert.Equal(t, ships.E, b.At(0, 2))
	assert.Equal(t, ships.One, b.At(2, 2))
}
