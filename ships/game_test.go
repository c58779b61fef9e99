package ships_test

import (
	"testing"

	"github.com/avdeenko/battleships-server/ships"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newClues(h, w int) ships.Clues {
	return ships.Clues{
		H:     h,
		W:     w,
		Ships: []int{1},
		Rows:  make([]int, h),
		Cols:  make([]int, w),
		Init:  ships.NewBoard(h, w),
	}
}

func TestPuzzleStateApplyDragMarksVacant(t *testing.T) {
	c := newClues(3, 3)
	state := ships.NewPuzzleState(c)

	mv := ships.Move{Drags: []ships.Drag{{Y1: 0, X1: 0, Y2: 1, X2: 1}}}
	require.NoError(t, state.Apply(mv))

	assert.Equal(t, ships.Vacant, state.Board.At(0, 0))
	assert.Equal(t, ships.Vacant, state.Board.At(1, 1))
	assert.Equal(t, ships.Undef, state.Board.At(2, 2))
}

func TestPuzzleStateApplyClearDragUndoesVacant(t *testing.T) {
	c := newClues(2, 2)
	state := ships.NewPuzzleState(c)
	require.NoError(t, state.Apply(ships.Move{Drags: []ships.Drag{{Y1: 0, X1: 0, Y2: 0, X2: 0}}}))
	require.Equal(t, ships.Vacant, state.Board.At(0, 0))

	require.NoError(t, state.Apply(ships.Move{Drags: []ships.Drag{{Clear: true, Y1: 0, X1: 0, Y2: 0, X2: 0}}}))
	assert.Equal(t, ships.Undef, state.Board.At(0, 0))
}

func TestPuzzleStateApplyRejectsWriteOverDisclosedNonOcc(t *testing.T) {
	c := newClues(2, 2)
	c.Init.Set(0, 0, ships.Vacant)
	state := ships.NewPuzzleState(c)

	err := state.Apply(ships.Move{Cells: []ships.CellWrite{{Y: 0, X: 0, State: ships.One}}})
	assert.Error(t, err)
}

func TestPuzzleStateApplyRefinesDisclosedOcc(t *testing.T) {
	c := newClues(2, 2)
	c.Init.Set(0, 0, ships.Occ)
	state := ships.NewPuzzleState(c)

	require.NoError(t, state.Apply(ships.Move{Cells: []ships.CellWrite{{Y: 0, X: 0, State: ships.One}}}))
	assert.Equal(t, ships.One, state.Board.At(0, 0))
}

func TestPuzzleStateApplyTogglesRowAndColumnMarks(t *testing.T) {
	c := newClues(2, 2)
	state := ships.NewPuzzleState(c)

	require.NoError(t, state.Apply(ships.Move{ToggledRows: []int{1}, ToggledCols: []int{0}}))
	assert.Equal(t, []bool{false, true}, state.RowMarked)
	assert.Equal(t, []bool{true, false}, state.ColMarked)

	require.NoError(t, state.Apply(ships.Move{ToggledRows: []int{1}}))
	assert.Equal(t, []bool{false, false}, state.RowMarked)
}

func TestPuzzleStateApplyOutOfRangeRowErrors(t *testing.T) {
	c := newClues(2, 2)
	state := ships.NewPuzzleState(c)

	err := state.Apply(ships.Move{ToggledRows: []int{5}})
	assert.Error(t, err)
}

func TestRenderTypedViewInfersEnds(t *testing.T) {
	b := ships.NewBoard(1, 3)
	b.Set(0, 0, ships.Occ)
	b.Set(0, 1, ships.Occ)
	b.Set(0, 2, ships.Occ)

	typed := ships.RenderTypedView(b)

	assert.Equal(t, ships.W, typed.At(0, 0))
	assert.Equal(t, ships.Inner, typed.At(0, 1))
	assert.Equal(t, ships.E, typed.At(0, 2))
}

func TestRenderTypedViewSingletonIsOne(t *testing.T) {
	b := ships.NewBoard(3, 3)
	b.Set(1, 1, ships.Occ)

	typed := ships.RenderTypedView(b)

	assert.Equal(t, ships.One, typed.At(1, 1))
}
