package imb

import (
	"fmt"
	"math/big"
)

// Published routing value ranges. Value 0 encodes "no routing code"; the
// three nonzero ranges carry 5-, 9- and 11-digit ZIP codes, each with its
// own additive offset.
var routingRanges = []struct {
	digits int
	offset int64
	max    int64
}{
	{digits: 5, offset: 1, max: 100000},
	{digits: 9, offset: 100001, max: 1000100000},
	{digits: 11, offset: 1000100001, max: 101000100000},
}

// decodeRouting renders the routing value as a 0-, 5-, 9- or 11-digit ZIP
// string, left zero-padded to the range's width. Values above the 11-digit
// maximum cannot come from a well-formed codeword and are rejected.
func decodeRouting(value *big.Int) (string, error) {
	if value.Sign() == 0 {
		return "", nil
	}
	if !value.IsInt64() {
		return "", ErrTrackingRange
	}
	v := value.Int64()
	for _, r := range routingRanges {
		if v <= r.max {
			return fmt.Sprintf("%0*d", r.digits, v-r.offset), nil
		}
	}
	return "", ErrTrackingRange
}
