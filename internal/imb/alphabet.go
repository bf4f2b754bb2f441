package imb

import "strings"

// CodeLength is the number of bars in an Intelligent Mail Barcode.
const CodeLength = 65

// BarState is the printed shape of a single bar.
type BarState uint8

const (
	Tracker BarState = iota
	Ascender
	Descender
	Full
)

// String returns the conventional single-letter rendering of the bar state.
func (b BarState) String() string {
	switch b {
	case Full:
		return "F"
	case Ascender:
		return "A"
	case Descender:
		return "D"
	default:
		return "T"
	}
}

// parseBars validates the raw input and maps it to the ordered bar states.
// Length and alphabet violations are reported as LengthError and
// CharacterError respectively; nothing else can fail.
func (d *Decoder) parseBars(code string) ([]BarState, error) {
	if d.opts.TrimWhitespace {
		code = strings.TrimSpace(code)
	}

	runes := []rune(code)
	if len(runes) != CodeLength {
		return nil, &LengthError{Length: len(runes)}
	}

	bars := make([]BarState, CodeLength)
	for i, r := range runes {
		c := r
		if !d.opts.CaseSensitive && c >= 'a' && c <= 'z' {
			c -= 'a' - 'A'
		}
		switch c {
		case 'F':
			bars[i] = Full
		case 'A':
			bars[i] = Ascender
		case 'D':
			bars[i] = Descender
		case 'T':
			bars[i] = Tracker
		default:
			return nil, &CharacterError{Pos: i, Char: r}
		}
	}
	return bars, nil
}
