package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextStockNumber_Sequence(t *testing.T) {
	tests := []struct {
		name string
		last string
		want string
	}{
		{"no prior number", "", "A000001"},
		{"first increment", "A000001", "A000002"},
		{"mid range", "A004217", "A004218"},
		{"zero padding preserved", "C000099", "C000100"},
		{"last before rollover", "A999998", "A999999"},
		{"letter rollover", "A999999", "B000001"},
		{"rollover keeps counting", "M999999", "N000001"},
		{"penultimate letter rollover", "Y999999", "Z000001"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NextStockNumber(tt.last)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNextStockNumber_PreservesLetter(t *testing.T) {
	// Every suffix below 999999 keeps its letter.
	for _, last := range []string{"A000001", "B123456", "Z000001"} {
		got, err := NextStockNumber(last)
		require.NoError(t, err)
		assert.Equal(t, last[0], got[0])
		assert.Len(t, got, 7)
	}
}

func TestNextStockNumber_ExhaustedPastZ(t *testing.T) {
	// Behavior past Z999999 is undefined for the scheme; the generator
	// refuses rather than inventing a wraparound.
	_, err := NextStockNumber("Z999999")
	assert.ErrorIs(t, err, ErrStockNumbersExhausted)
}

func TestNextStockNumber_Malformed(t *testing.T) {
	for _, last := range []string{"A1", "1234567", "a000001", "A00000X", "AA000001"} {
		_, err := NextStockNumber(last)
		assert.Error(t, err, "input %q", last)
	}
}

func TestNextStockNumber_StrictlyIncreasing(t *testing.T) {
	// The successor always sorts after its predecessor under the
	// letter + 6-digit scheme.
	last := ""
	for i := 0; i < 50; i++ {
		next, err := NextStockNumber(last)
		require.NoError(t, err)
		assert.Greater(t, next, last)
		last = next
	}
}
