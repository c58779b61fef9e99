package ships_test

import (
	"testing"

	"github.com/avdeenko/battleships-server/ships"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaceShipsProducesNonTouchingPlacements(t *testing.T) {
	rng := newSeededRand(t, 1)

	placements, _, ok := ships.PlaceShips(6, 6, []int{3, 2, 1}, rng, 10000)
	require.True(t, ok)
	require.Len(t, placements, 3)

	b := ships.RenderSolution(6, 6, []int{3, 2, 1}, placements)
	result := ships.Validate(ships.Clues{
		H: 6, W: 6,
		Ships: []int{3, 2, 1},
		Rows:  []int{ships.Hidden, ships.Hidden, ships.Hidden, ships.Hidden, ships.Hidden, ships.Hidden},
		Cols:  []int{ships.Hidden, ships.Hidden, ships.Hidden, ships.Hidden, ships.Hidden, ships.Hidden},
		Init:  ships.NewBoard(6, 6),
	}, b)

	for _, f := range result.CellFlags {
		assert.Equal(t, ships.FlagNone, f)
	}
}

func TestPlaceShipsRespectsCallLimit(t *testing.T) {
	rng := newSeededRand(t, 2)

	// four length-2 ships cannot possibly fit non-touching on a 3x3 grid;
	// the placer backtracks forever without a limit, so a small one must
	// make it give up.
	_, calls, ok := ships.PlaceShips(3, 3, []int{2, 2, 2, 2}, rng, 50)
	assert.False(t, ok)
	assert.LessOrEqual(t, calls, 50)
}
