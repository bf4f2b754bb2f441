package imb

import (
	"errors"
	"fmt"
)

// ErrMalformedCodeword indicates a bar pattern with no entry in the reverse
// lookup tables. The barcode construction never produces such patterns, so
// this points at a mis-read upstream rather than corrupt but decodable data.
var ErrMalformedCodeword = errors.New("bar pattern does not map to a valid codeword")

// ErrTrackingRange indicates a reconstructed value outside the encodable
// domain (the routing value exceeds the defined 11-digit maximum).
var ErrTrackingRange = errors.New("reconstructed value outside the encodable range")

// LengthError reports an input whose length is not the required 65 symbols.
type LengthError struct {
	Length int
}

func (e *LengthError) Error() string {
	return fmt.Sprintf("invalid barcode length %d, expected %d", e.Length, CodeLength)
}

// CharacterError reports a character outside the A/D/T/F alphabet along with
// its 0-based position in the input.
type CharacterError struct {
	Pos  int
	Char rune
}

func (e *CharacterError) Error() string {
	return fmt.Sprintf("invalid barcode character %q at position %d", e.Char, e.Pos)
}

// CodewordError reports which of the ten 13-bit characters failed reverse
// lookup. It matches ErrMalformedCodeword under errors.Is.
type CodewordError struct {
	Character int
}

func (e *CodewordError) Error() string {
	return fmt.Sprintf("character %d has no codeword table entry", e.Character)
}

func (e *CodewordError) Is(target error) bool {
	return target == ErrMalformedCodeword
}
