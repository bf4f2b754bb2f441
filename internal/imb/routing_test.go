package imb

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeRoutingWidths(t *testing.T) {
	tests := []struct {
		name  string
		value int64
		want  string
	}{
		{"no-routing", 0, ""},
		{"5-digit-min", 1, "00000"},
		{"5-digit-leading-zero", 502, "00501"},
		{"5-digit-max", 100000, "99999"},
		{"9-digit-min", 100001, "000000000"},
		{"9-digit-max", 1000100000, "999999999"},
		{"11-digit-min", 1000100001, "00000000000"},
		{"11-digit-mid", 1000100001 + 1234567891, "01234567891"},
		{"11-digit-max", 101000100000, "99999999999"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := decodeRouting(big.NewInt(tt.value))
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Len(t, got, len(tt.want))
		})
	}
}

func TestDecodeRoutingOutOfRange(t *testing.T) {
	_, err := decodeRouting(big.NewInt(101000100001))
	assert.ErrorIs(t, err, ErrTrackingRange)

	huge := new(big.Int).Lsh(big.NewInt(1), 70)
	_, err = decodeRouting(huge)
	assert.ErrorIs(t, err, ErrTrackingRange)
}

func TestRoutingRangesAreOrdered(t *testing.T) {
	// The published ranges must be strictly increasing and contiguous in
	// capacity: each offset is one past the previous range's maximum.
	require.Len(t, routingRanges, 3)
	assert.EqualValues(t, 1, routingRanges[0].offset)
	for i := 1; i < len(routingRanges); i++ {
		assert.Equal(t, routingRanges[i-1].max+1, routingRanges[i].offset)
		assert.Greater(t, routingRanges[i].max, routingRanges[i-1].max)
	}
}
