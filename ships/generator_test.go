package ships_test

import (
	"testing"

	"github.com/avdeenko/battleships-server/ships"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateProducesConsistentPuzzle(t *testing.T) {
	for _, diff := range []ships.Difficulty{ships.Basic, ships.Intermediate, ships.Advanced} {
		diff := diff
		t.Run(diff.String(), func(t *testing.T) {
			params := ships.GameParams{Height: ships.MinSize, Width: ships.MinSize, Difficulty: diff}
			rng := newSeededRand(t, 42)

			result, err := ships.Generate(params, rng)
			require.NoError(t, err)

			assert.Equal(t, ships.MinSize, result.Clues.H)
			assert.Equal(t, ships.MinSize, result.Clues.W)
			assert.NotEmpty(t, result.Clues.Ships)
			assert.NotEmpty(t, result.Trace)

			typed := ships.RenderSolution(result.Clues.H, result.Clues.W, result.Clues.Ships, result.Solution)
			validation := ships.Validate(result.Clues, typed)
			assert.True(t, validation.Solved)

			sol, _, err := ships.ExhaustiveSolve(result.Clues, 0)
			require.NoError(t, err)
			assert.NotEmpty(t, sol)
		})
	}
}

func TestGenerateRejectsInvalidParams(t *testing.T) {
	rng := newSeededRand(t, 1)
	_, err := ships.Generate(ships.GameParams{Height: 3, Width: 3, Difficulty: ships.Basic}, rng)
	assert.Error(t, err)
}
