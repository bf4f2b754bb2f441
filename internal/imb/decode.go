package imb

// Options controls input canonicalization.
type Options struct {
	// CaseSensitive rejects lowercase bar letters instead of folding them.
	CaseSensitive bool

	// TrimWhitespace strips surrounding whitespace before validation.
	// Off by default: a padded scan is reported, not silently accepted.
	TrimWhitespace bool
}

// DefaultOptions returns the default canonicalization policy:
// case-insensitive accept, no whitespace trimming.
func DefaultOptions() Options {
	return Options{}
}

// Result is a fully decoded barcode. When the embedded frame check sequence
// does not match, Valid is false but the fields are still populated so a
// corrupted read can be inspected; callers must not trust invalid results
// for ZIP comparison.
type Result struct {
	Valid         bool          `json:"valid" yaml:"valid"`
	BarcodeID     string        `json:"barcode_id" yaml:"barcode_id"`
	ServiceType   string        `json:"service_type" yaml:"service_type"`
	MailerID      string        `json:"mailer_id" yaml:"mailer_id"`
	SerialNumber  string        `json:"serial_number" yaml:"serial_number"`
	RoutingZip    string        `json:"routing_zip" yaml:"routing_zip"`
	Zip           string        `json:"zip,omitempty" yaml:"zip,omitempty"`
	Plus4         string        `json:"plus4,omitempty" yaml:"plus4,omitempty"`
	DeliveryPoint string        `json:"delivery_point,omitempty" yaml:"delivery_point,omitempty"`
	ZipComparison ZipComparison `json:"zip_comparison,omitempty" yaml:"zip_comparison,omitempty"`
}

// Decoder decodes Intelligent Mail Barcodes. The zero value uses
// DefaultOptions; Decoder is stateless and safe for concurrent use.
type Decoder struct {
	opts Options
}

// NewDecoder returns a Decoder with the given options.
func NewDecoder(opts Options) *Decoder {
	return &Decoder{opts: opts}
}

var defaultDecoder = NewDecoder(DefaultOptions())

// Decode decodes with the default options.
func Decode(code string) (*Result, error) {
	return defaultDecoder.Decode(code)
}

// DecodeExpecting decodes with the default options and compares the decoded
// ZIP against the expected value.
func DecodeExpecting(code, expectedZip string) (*Result, error) {
	return defaultDecoder.DecodeExpecting(code, expectedZip)
}

// Decode runs the full pipeline over one 65-character barcode string.
// Length, alphabet and codeword errors fail fast; a frame check mismatch
// does not, it only clears Valid.
func (d *Decoder) Decode(code string) (*Result, error) {
	bars, err := d.parseBars(code)
	if err != nil {
		return nil, err
	}

	chars := packCharacters(splitBars(bars))
	value, fcs, err := reconstructCodeword(chars)
	if err != nil {
		return nil, err
	}
	valid := frameCheck(value) == fcs

	fields := extractFields(value)
	zip, err := decodeRouting(fields.routing)
	if err != nil {
		return nil, err
	}

	res := &Result{
		Valid:        valid,
		BarcodeID:    fields.barcodeID,
		ServiceType:  fields.serviceType,
		MailerID:     fields.mailerID,
		SerialNumber: fields.serialNumber,
		RoutingZip:   zip,
	}
	if len(zip) >= 5 {
		res.Zip = zip[:5]
	}
	if len(zip) >= 9 {
		res.Plus4 = zip[5:9]
	}
	if len(zip) == 11 {
		res.DeliveryPoint = zip[9:11]
	}
	return res, nil
}

// DecodeExpecting decodes and records the ZIP comparison outcome.
func (d *Decoder) DecodeExpecting(code, expectedZip string) (*Result, error) {
	res, err := d.Decode(code)
	if err != nil {
		return nil, err
	}
	res.ZipComparison = CompareZip(res.RoutingZip, expectedZip)
	return res, nil
}
