package imb

import "math/big"

// trackingDigits is the decimal width of the tracking number: 2-digit
// barcode identifier, 3-digit service type, and 15 digits shared between
// the mailer identifier and the serial number.
const trackingDigits = 20

var (
	bigTen  = big.NewInt(10)
	bigFive = big.NewInt(5)
)

// trackingFields holds the decimal fields split out of the data value. The
// routing value remains numeric until decodeRouting renders it.
type trackingFields struct {
	barcodeID    string
	serviceType  string
	mailerID     string
	serialNumber string
	routing      *big.Int
}

// extractFields peels the tracking digits off the data value by exact
// decimal division, least significant digit first. The second digit of the
// barcode identifier is base 5 by construction; everything else is base 10.
// Splitting numerically rather than via a textual form preserves leading
// zeros in every field.
func extractFields(value *big.Int) trackingFields {
	n := new(big.Int).Set(value)
	rem := new(big.Int)

	var digits [trackingDigits]byte
	for i := trackingDigits - 1; i >= 2; i-- {
		n.DivMod(n, bigTen, rem)
		digits[i] = byte('0' + rem.Int64())
	}
	n.DivMod(n, bigFive, rem)
	digits[1] = byte('0' + rem.Int64())
	n.DivMod(n, bigTen, rem)
	digits[0] = byte('0' + rem.Int64())

	f := trackingFields{
		barcodeID:   string(digits[0:2]),
		serviceType: string(digits[2:5]),
		routing:     n,
	}
	// A mailer identifier starting with 9 is a 9-digit identifier with a
	// 6-digit serial number; all others are 6-digit with a 9-digit serial.
	if digits[5] == '9' {
		f.mailerID = string(digits[5:14])
		f.serialNumber = string(digits[14:20])
	} else {
		f.mailerID = string(digits[5:11])
		f.serialNumber = string(digits[11:20])
	}
	return f
}
