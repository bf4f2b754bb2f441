package imb

import "math/big"

// Codeword combination constants from the specification. The leading
// codeword is limited to 658 data values (its upper range carries the
// eleventh FCS bit), the trailing codeword to 636 (its low bit encodes
// barcode orientation), and the eight middle codewords use the full
// 1365-value alphabet.
const (
	maxLeadingCodeword  = 1317
	leadingFCSOffset    = 659
	maxTrailingCodeword = 1270
	middleRadix         = 1365
	trailingRadix       = 636
)

// packCharacters folds the orientation tracks into the ten 13-bit
// characters via the permutation tables.
func packCharacters(tr barTracks) [numCharacters]uint16 {
	var chars [numCharacters]uint16
	for n := 0; n < CodeLength; n++ {
		if tr.desc[n] {
			chars[descenderCharacter[n]] |= descenderBit[n]
		}
		if tr.asc[n] {
			chars[ascenderCharacter[n]] |= ascenderBit[n]
		}
	}
	return chars
}

// reconstructCodeword reverse-maps the ten characters to codeword indices
// and combines them into the full data value, collecting the embedded
// 11-bit frame check sequence along the way. Any pattern the forward
// construction cannot produce is rejected rather than guessed at: unmapped
// characters, out-of-range leading/trailing codewords, and the odd trailing
// codeword that marks an upside-down read.
func reconstructCodeword(chars [numCharacters]uint16) (*big.Int, uint16, error) {
	var cw [numCharacters]int64
	var fcs uint16
	for n, ch := range chars {
		index := decodeTable[ch]
		if index < 0 {
			return nil, 0, &CodewordError{Character: n}
		}
		cw[n] = int64(index)
		fcs |= uint16(fcsFlipTable[ch]) << n
	}

	if cw[0] > maxLeadingCodeword || cw[numCharacters-1] > maxTrailingCodeword {
		return nil, 0, ErrMalformedCodeword
	}
	if cw[numCharacters-1]&1 != 0 {
		return nil, 0, ErrMalformedCodeword
	}
	cw[numCharacters-1] >>= 1
	if cw[0] > leadingFCSOffset-1 {
		cw[0] -= leadingFCSOffset
		fcs |= 1 << (numCharacters)
	}

	value := big.NewInt(cw[0])
	radix := big.NewInt(middleRadix)
	term := new(big.Int)
	for n := 1; n < numCharacters-1; n++ {
		value.Mul(value, radix)
		value.Add(value, term.SetInt64(cw[n]))
	}
	value.Mul(value, term.SetInt64(trailingRadix))
	value.Add(value, term.SetInt64(cw[numCharacters-1]))
	return value, fcs, nil
}
