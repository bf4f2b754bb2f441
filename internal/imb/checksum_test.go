package imb

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameCheckPinnedValues(t *testing.T) {
	// Data values and frame check sequences verified against the reference
	// implementation; the first is the USPS specification example.
	tests := []struct {
		value string
		want  uint16
	}{
		{"111733394601234567094987654321", 0x751},
		{"1234567890123456789", 0x0D3},
		{"0", 0x6E0},
	}
	for _, tt := range tests {
		v, ok := new(big.Int).SetString(tt.value, 10)
		require.True(t, ok)
		assert.Equal(t, tt.want, frameCheck(v), "value %s", tt.value)
	}
}

func TestFrameCheckIsElevenBits(t *testing.T) {
	v := new(big.Int).Lsh(big.NewInt(1), 109)
	for i := 0; i < 50; i++ {
		fcs := frameCheck(new(big.Int).Add(v, big.NewInt(int64(i)*7919)))
		assert.Less(t, fcs, uint16(1<<fcsWordBits))
	}
}

func TestFrameCheckSensitivity(t *testing.T) {
	base, ok := new(big.Int).SetString("111733394601234567094987654321", 10)
	require.True(t, ok)
	want := frameCheck(base)

	// Flipping any single bit of the data value must change the CRC.
	for bit := 0; bit < 110; bit++ {
		mutated := new(big.Int).Xor(base, new(big.Int).Lsh(big.NewInt(1), uint(bit)))
		assert.NotEqual(t, want, frameCheck(mutated), "bit %d", bit)
	}
}
