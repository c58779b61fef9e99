package ships

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sequenceRand struct {
	next []int
	i    int
}

func (s *sequenceRand) IntN(n int) int {
	v := s.next[s.i%len(s.next)]
	s.i++
	if v >= n {
		v = n - 1
	}
	return v
}

func (s *sequenceRand) Shuffle(n int, swap func(i, j int)) {}

func TestCellPoolPickRandomRemovesElement(t *testing.T) {
	p := newCellPool([][2]int{{0, 0}, {0, 1}, {1, 0}})
	require.Equal(t, 3, p.Len())

	rng := &sequenceRand{next: []int{1}}
	cell, ok := p.PickRandom(rng)
	require.True(t, ok)
	assert.Equal(t, 2, p.Len())

	_, ok2 := p.PickRandom(&sequenceRand{next: []int{0}})
	assert.True(t, ok2)
	assert.NotEqual(t, cell, [2]int{})
}

func TestCellPoolExhausted(t *testing.T) {
	p := newCellPool([][2]int{{0, 0}})
	_, ok := p.PickRandom(&sequenceRand{next: []int{0}})
	require.True(t, ok)

	_, ok = p.PickRandom(&sequenceRand{next: []int{0}})
	assert.False(t, ok)
}

func TestCellPoolPicksAllElementsEventually(t *testing.T) {
	p := newCellPool([][2]int{{0, 0}, {0, 1}, {1, 0}, {1, 1}})
	seen := make(map[[2]int]bool)
	rng := &sequenceRand{next: []int{3, 0, 1, 0}}
	for p.Len() > 0 {
		cell, ok := p.PickRandom(rng)
		require.True(t, ok)
		seen[cell] = true
	}
	assert.Len(t, seen, 4)
}
