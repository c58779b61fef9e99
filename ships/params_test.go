package ships_test

import (
	"testing"

	"github.com/avdeenko/battleships-server/ships"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGameParamsValidate(t *testing.T) {
	tests := []struct {
		name    string
		params  ships.GameParams
		wantErr bool
	}{
		{"valid", ships.GameParams{Height: 10, Width: 10, Difficulty: ships.Basic}, false},
		{"too small", ships.GameParams{Height: 3, Width: 10, Difficulty: ships.Basic}, true},
		{"too large", ships.GameParams{Height: 10, Width: 30, Difficulty: ships.Basic}, true},
		{"bad difficulty", ships.GameParams{Height: 10, Width: 10, Difficulty: 99}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestDescriptionRoundTrip(t *testing.T) {
	c := ships.Clues{
		H:     3,
		W:     3,
		Ships: []int{2, 1},
		Rows:  []int{1, 2, 0},
		Cols:  []int{ships.Hidden, 2, 1},
		Init:  ships.NewBoard(3, 3),
	}
	c.Init.Set(0, 1, ships.Vacant)
	c.Init.Set(1, 1, ships.One)

	desc := ships.EncodeDescription(c)

	got, err := ships.ParseDescription(3, 3, desc)
	require.NoError(t, err)

	assert.Equal(t, c.Ships, got.Ships)
	assert.Equal(t, c.Rows, got.Rows)
	assert.Equal(t, c.Cols, got.Cols)
	assert.Equal(t, ships.Vacant, got.Init.At(0, 1))
	assert.Equal(t, ships.One, got.Init.At(1, 1))
}

func TestParseDescriptionRejectsWrongRowCount(t *testing.T) {
	_, err := ships.ParseDescription(2, 2, "s2r0c0c0")
	assert.Error(t, err)
}

func TestParseDescriptionRejectsShipLongerThanSmallerDimension(t *testing.T) {
	// 9 fits within the width (10) but exceeds the smaller dimension
	// (height 7), so it must still be rejected.
	_, err := ships.ParseDescription(7, 10, "s9")
	assert.Error(t, err)
}

func TestParseDescriptionRejectsOutOfRangeDisclosure(t *testing.T) {
	_, err := ships.ParseDescription(2, 2, "s1r0r0c0c0y5x0z0")
	assert.Error(t, err)
}
