package ships_test

import (
	"math/rand/v2"
	"testing"

	"github.com/avdeenko/battleships-server/ships"
)

// newSeededRand returns a deterministic [ships.Rand] for tests that need
// randomized behaviour to be reproducible across runs.
func newSeededRand(t *testing.T, seed uint64) ships.Rand {
	t.Helper()
	return ships.NewRand(rand.New(rand.NewPCG(seed, seed^0xdeadbeef)))
}
