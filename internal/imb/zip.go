package imb

import "strings"

// ZipComparison is the outcome of comparing a decoded ZIP against an
// expected value.
type ZipComparison int

const (
	// ZipNotCompared means no expected value was supplied.
	ZipNotCompared ZipComparison = iota
	// ZipExactMatch means both normalize to the same digit string.
	ZipExactMatch
	// ZipPrefixMatch means the wider value extends the narrower one
	// (e.g. a 9-digit decoded ZIP against a 5-digit expected ZIP).
	ZipPrefixMatch
	// ZipMismatch means the values disagree.
	ZipMismatch
	// ZipNotComparable means one side carries no digits to compare.
	ZipNotComparable
)

func (c ZipComparison) String() string {
	switch c {
	case ZipExactMatch:
		return "exact_match"
	case ZipPrefixMatch:
		return "prefix_match"
	case ZipMismatch:
		return "mismatch"
	case ZipNotComparable:
		return "not_comparable"
	default:
		return "not_compared"
	}
}

// MarshalJSON renders the comparison as its string form.
func (c ZipComparison) MarshalJSON() ([]byte, error) {
	return []byte(`"` + c.String() + `"`), nil
}

// MarshalYAML renders the comparison as its string form.
func (c ZipComparison) MarshalYAML() (interface{}, error) {
	return c.String(), nil
}

// UnmarshalJSON parses the string form produced by MarshalJSON.
func (c *ZipComparison) UnmarshalJSON(data []byte) error {
	switch strings.Trim(string(data), `"`) {
	case "exact_match":
		*c = ZipExactMatch
	case "prefix_match":
		*c = ZipPrefixMatch
	case "mismatch":
		*c = ZipMismatch
	case "not_comparable":
		*c = ZipNotComparable
	default:
		*c = ZipNotCompared
	}
	return nil
}

// minComparableDigits is the narrowest meaningful ZIP width; shorter
// expected values cannot anchor a prefix comparison.
const minComparableDigits = 5

// CompareZip compares a decoded ZIP string against a caller-supplied
// expected value. Both sides are normalized to bare digits first, so
// "77382-1482" and "773821482" are equivalent inputs.
func CompareZip(decoded, expected string) ZipComparison {
	d := digitsOnly(decoded)
	e := digitsOnly(expected)
	if d == "" || e == "" {
		return ZipNotComparable
	}
	switch {
	case d == e:
		return ZipExactMatch
	case len(d) > len(e) && len(e) >= minComparableDigits && strings.HasPrefix(d, e):
		return ZipPrefixMatch
	case len(e) > len(d) && len(d) >= minComparableDigits && strings.HasPrefix(e, d):
		return ZipPrefixMatch
	default:
		return ZipMismatch
	}
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
