package slots

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCalculate(t *testing.T) {
	tests := []struct {
		name      string
		platform  string
		occupants int
		wantTotal int
		wantEmpty int
	}{
		{"youtube empty", "YouTube", 0, 6, 5},
		{"youtube full", "YouTube", 5, 6, 0},
		{"youtube overfull clamps", "YouTube", 9, 6, 0},
		{"spotify partial", "Spotify", 2, 6, 3},
		{"spotify lowercase", "spotify", 0, 6, 5},
		{"youtube mixed case", "yOuTuBe", 3, 6, 2},
		{"other platform", "Other", 2, 3, 1},
		{"other platform full", "Other", 5, 3, 0},
		{"other platform empty", "Netflix", 0, 3, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Calculate(tt.platform, tt.occupants)
			assert.Equal(t, tt.wantTotal, got.TotalSlots)
			assert.Equal(t, tt.wantEmpty, got.EmptySlots)
		})
	}
}

func TestCalculateNeverNegative(t *testing.T) {
	for n := 0; n <= 20; n++ {
		assert.GreaterOrEqual(t, Calculate("YouTube", n).EmptySlots, 0)
		assert.GreaterOrEqual(t, Calculate("Other", n).EmptySlots, 0)
	}
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "6 slots (managed)", Describe("youtube", true))
	assert.Equal(t, "5 slots (unmanaged)", Describe("Spotify", false))
	assert.Equal(t, "3 slots (managed)", Describe("Other", true))
	assert.Equal(t, "3 slots (unmanaged)", Describe("Other", false))
}
