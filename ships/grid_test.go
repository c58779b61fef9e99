package ships_test

import (
	"testing"

	"github.com/avdeenko/battleships-server/ships"
	"github.com/stretchr/testify/assert"
)

func TestBoardAtOffBoardIsVacant(t *testing.T) {
	b := ships.NewBoard(3, 3)
	assert.Equal(t, ships.Vacant, b.At(-1, 0))
	assert.Equal(t, ships.Vacant, b.At(0, -1))
	assert.Equal(t, ships.Vacant, b.At(3, 0))
	assert.Equal(t, ships.Vacant, b.At(0, 3))
}

func TestBoardPromoteNeverDemotes(t *testing.T) {
	b := ships.NewBoard(3, 3)

	assert.True(t, b.Promote(1, 1, ships.Occ))
	assert.Equal(t, ships.Occ, b.At(1, 1))

	assert.True(t, b.Promote(1, 1, ships.One))
	assert.Equal(t, ships.One, b.At(1, 1))

	assert.False(t, b.Promote(1, 1, ships.Occ))
	assert.Equal(t, ships.One, b.At(1, 1))
}

func TestBoardCloneIsIndependent(t *testing.T) {
	b := ships.NewBoard(2, 2)
	b.Set(0, 0, ships.Vacant)

	clone := b.Clone()
	clone.Set(0, 0, ships.Occ)

	assert.Equal(t, ships.Vacant, b.At(0, 0))
	assert.Equal(t, ships.Occ, clone.At(0, 0))
}

func TestCompletedShipDistribution(t *testing.T) {
	b := ships.NewBoard(1, 4)
	b.Set(0, 0, ships.W)
	b.Set(0, 1, ships.Inner)
	b.Set(0, 2, ships.E)
	b.Set(0, 3, ships.One)

	dist, err := ships.CompletedShipDistribution(b, 4)
	assert.False(t, err)
	assert.Equal(t, []int{1, 0, 1, 0}, dist)
}

func TestCompletedShipDistributionUnterminatedRun(t *testing.T) {
	b := ships.NewBoard(1, 2)
	b.Set(0, 0, ships.N)
	b.Set(0, 1, ships.Inner)

	_, err := ships.CompletedShipDistribution(b, 4)
	assert.True(t, err)
}
