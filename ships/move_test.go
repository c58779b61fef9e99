package ships_test

import (
	"testing"

	"github.com/avdeenko/battleships-server/ships"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMoveDrag(t *testing.T) {
	mv, err := ships.ParseMove("d0y1x1y2x2")
	require.NoError(t, err)
	require.Len(t, mv.Drags, 1)
	assert.Equal(t, ships.Drag{Clear: false, Y1: 1, X1: 1, Y2: 2, X2: 2}, mv.Drags[0])
}

func TestParseMoveClearDrag(t *testing.T) {
	mv, err := ships.ParseMove("d1y0x0y0x0")
	require.NoError(t, err)
	require.Len(t, mv.Drags, 1)
	assert.True(t, mv.Drags[0].Clear)
}

func TestParseMoveSingleCell(t *testing.T) {
	mv, err := ships.ParseMove("y2x3z0")
	require.NoError(t, err)
	require.Len(t, mv.Cells, 1)
	assert.Equal(t, ships.CellWrite{Y: 2, X: 3, State: ships.Occ}, mv.Cells[0])
}

func TestParseMoveToggleRowsAndCols(t *testing.T) {
	mv, err := ships.ParseMove("r0r2c1")
	require.NoError(t, err)
	assert.Equal(t, []int{0, 2}, mv.ToggledRows)
	assert.Equal(t, []int{1}, mv.ToggledCols)
}

func TestParseMoveSolve(t *testing.T) {
	mv, err := ships.ParseMove("Sy0x0z1y0x1z6")
	require.NoError(t, err)
	assert.True(t, mv.Solve)
	require.Len(t, mv.Solution, 2)
	assert.Equal(t, ships.CellWrite{Y: 0, X: 0, State: ships.N}, mv.Solution[0])
	assert.Equal(t, ships.CellWrite{Y: 0, X: 1, State: ships.Inner}, mv.Solution[1])
}

func TestEncodeSolverMoveParsesBackToSameCells(t *testing.T) {
	typed := ships.NewBoard(2, 2)
	typed.Set(0, 0, ships.N)
	typed.Set(1, 0, ships.S)

	encoded := ships.EncodeSolverMove(typed)

	mv, err := ships.ParseMove(encoded)
	require.NoError(t, err)
	assert.True(t, mv.Solve)
	assert.ElementsMatch(t, []ships.CellWrite{
		{Y: 0, X: 0, State: ships.N},
		{Y: 1, X: 0, State: ships.S},
	}, mv.Solution)
}
