package ships_test

import (
	"testing"

	"github.com/avdeenko/battleships-server/ships"
	"github.com/stretchr/testify/assert"
)

func TestApplyPropagatorOneRuleClearsNeighbours(t *testing.T) {
	b := ships.NewBoard(3, 3)
	b.Set(1, 1, ships.One)

	ships.ApplyPropagator(&b)

	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			if dy == 0 && dx == 0 {
				continue
			}
			assert.Equal(t, ships.Vacant, b.At(1+dy, 1+dx))
		}
	}
}

func TestApplyPropagatorEndRuleExtendsShip(t *testing.T) {
	b := ships.NewBoard(3, 3)
	b.Set(0, 1, ships.N)

	ships.ApplyPropagator(&b)

	assert.Equal(t, ships.Occ, b.At(1, 1))
	assert.Equal(t, ships.Vacant, b.At(0, 0))
	assert.Equal(t, ships.Vacant, b.At(0, 2))
}

func TestApplyPropagatorInnerRuleInfersOrientation(t *testing.T) {
	b := ships.NewBoard(3, 3)
	b.Set(1, 1, ships.Inner)
	b.Set(1, 0, ships.W)

	ships.ApplyPropagator(&b)

	assert.Equal(t, ships.Vacant, b.At(0, 1))
	assert.Equal(t, ships.Vacant, b.At(2, 1))
	assert.True(t, b.At(1, 2).Occupied())
}

func TestApplyPropagatorOccDiagonalsClearedForPlainOcc(t *testing.T) {
	b := ships.NewBoard(3, 3)
	b.Set(1, 1, ships.Occ)

	ships.ApplyPropagator(&b)

	assert.Equal(t, ships.Vacant, b.At(0, 0))
	assert.Equal(t, ships.Vacant, b.At(0, 2))
	assert.Equal(t, ships.Vacant, b.At(2, 0))
	assert.Equal(t, ships.Vacant, b.At(2, 2))
}

func TestApplyPropagatorReturnsFalseWhenNothingToDo(t *testing.T) {
	b := ships.NewBoard(3, 3)
	changed := ships.ApplyPropagator(&b)
	assert.False(t, changed)
}
