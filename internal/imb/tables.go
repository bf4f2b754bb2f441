package imb

// Specification-published reference data. The four permutation tables map
// each bar position to the 13-bit character and bit it contributes to; the
// codeword tables invert the constant-weight character encoding. None of
// these values may be re-derived or edited independently of the USPS
// specification they are pinned to.

const (
	// numCharacters is the number of 13-bit characters in a barcode.
	numCharacters = 10

	// characterBits is the width of one character.
	characterBits = 13

	// characterSpace is the number of possible character values.
	characterSpace = 1 << characterBits

	// complementMask flips all 13 bits of a character.
	complementMask = characterSpace - 1

	// numCodewords is the size of the codeword alphabet.
	numCodewords = 1365
)

// descenderCharacter[n] is the character index the descender bit of bar n
// belongs to; descenderBit[n] is its bit within that character.
var descenderCharacter = [CodeLength]int{
	7, 1, 9, 5, 8, 0, 2, 4, 6, 3, 5, 8, 9, 7, 3, 0, 6, 1, 7, 4, 6, 8, 9, 2, 5, 1, 7, 5, 4, 3,
	8, 7, 6, 0, 2, 5, 4, 9, 3, 0, 1, 6, 8, 2, 0, 4, 5, 9, 6, 7, 5, 2, 6, 3, 8, 5, 1, 9, 8, 7, 4, 0, 2, 6, 3,
}

var descenderBit = [CodeLength]uint16{
	4, 1024, 4096, 32, 512, 2, 32, 16, 8, 512, 2048, 32, 1024, 2, 64, 8, 16, 2,
	1024, 1, 4, 2048, 256, 64, 2, 4096, 8, 256, 64, 16, 16, 2048, 1, 64, 2, 512, 2048, 32, 8, 128, 8,
	1024, 128, 2048, 256, 4, 1024, 8, 32, 256, 1, 8, 4096, 2048, 256, 16, 32, 2, 8, 1, 128, 4096, 512,
	256, 1024,
}

// ascenderCharacter and ascenderBit are the equivalent tables for the
// ascender track.
var ascenderCharacter = [CodeLength]int{
	4, 0, 2, 6, 3, 5, 1, 9, 8, 7, 1, 2, 0, 6, 4, 8, 2, 9, 5, 3, 0, 1, 3, 7, 4, 6, 8, 9, 2, 0, 5,
	1, 9, 4, 3, 8, 6, 7, 1, 2, 4, 3, 9, 5, 7, 8, 3, 0, 2, 1, 4, 0, 9, 1, 7, 0, 2, 4, 6, 3, 7, 1, 9, 5, 8,
}

var ascenderBit = [CodeLength]uint16{
	8, 1, 256, 2048, 2, 4096, 256, 2048, 1024, 64, 16, 4096, 4, 128, 512, 64, 128,
	512, 4, 256, 16, 1, 4096, 128, 1024, 512, 1, 128, 1024, 32, 128, 512, 64, 256, 4, 4096, 2, 16, 4, 1,
	2, 32, 16, 64, 4096, 2, 1, 512, 16, 128, 32, 1024, 4, 64, 512, 2048, 4, 4096, 64, 128, 32, 2048, 1,
	8, 4,
}

var (
	// encodeTable maps a codeword index to its 13-bit character.
	encodeTable [numCodewords]uint16

	// decodeTable maps a 13-bit character (or its complement) back to the
	// codeword index, -1 where no codeword exists.
	decodeTable [characterSpace]int16

	// fcsFlipTable is 1 for complemented characters; the complement bit of
	// each character carries one bit of the frame check sequence.
	fcsFlipTable [characterSpace]uint8
)

func init() {
	for i := range decodeTable {
		decodeTable[i] = -1
	}
	// Weight-5 codewords fill indices 0..1286, weight-2 the remainder.
	buildCodewords(5, 0, 1286)
	buildCodewords(2, 1287, 1364)
}

// buildCodewords populates the codeword tables for all 13-bit values of the
// given population count. Mirror-image pairs are stored from low upwards,
// palindromic codes from hi downwards.
func buildCodewords(weight, low, hi int) {
	for fwd := 0; fwd < characterSpace; fwd++ {
		pop, rev, tmp := 0, 0, fwd
		for i := 0; i < characterBits; i++ {
			pop += tmp & 1
			rev = rev<<1 | tmp&1
			tmp >>= 1
		}
		if pop != weight {
			continue
		}
		switch {
		case fwd == rev:
			insertCodeword(hi, fwd)
			hi--
		case fwd < rev:
			insertCodeword(low, fwd)
			insertCodeword(low+1, rev)
			low += 2
		}
	}
}

func insertCodeword(index, code int) {
	encodeTable[index] = uint16(code)
	decodeTable[code] = int16(index)
	decodeTable[code^complementMask] = int16(index)
	fcsFlipTable[code] = 0
	fcsFlipTable[code^complementMask] = 1
}
