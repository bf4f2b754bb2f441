package imb

import "math/big"

// Frame check sequence parameters: an 11-bit CRC over the ten 11-bit words
// of the data value, generator polynomial 0xF35, initial remainder 0x1F0.
const (
	fcsWords    = 10
	fcsWordBits = 11
	fcsWordMask = 0x7FF
	fcsInit     = 0x1F0
	fcsPoly     = 0xF35
)

// frameCheck recomputes the 11-bit frame check sequence of the data value,
// processing its 110-bit representation most significant word first.
func frameCheck(value *big.Int) uint16 {
	word := new(big.Int)
	mask := big.NewInt(fcsWordMask)

	fcs := uint32(fcsInit)
	for n := fcsWords - 1; n >= 0; n-- {
		word.Rsh(value, uint(n*fcsWordBits))
		word.And(word, mask)
		fcs ^= uint32(word.Uint64())
		for i := 0; i < fcsWordBits; i++ {
			fcs <<= 1
			if fcs&(fcsWordMask+1) != 0 {
				fcs ^= fcsPoly
			}
		}
	}
	return uint16(fcs & fcsWordMask)
}
