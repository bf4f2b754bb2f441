package batch

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// readRecords reads all CSV records from r, decoding the input according to
// the configured encoding. In "auto" mode input that is not valid UTF-8 is
// reinterpreted as Windows-1252, which covers the usual exports from mail
// presort software.
func readRecords(r io.Reader, encoding string) ([][]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	switch encoding {
	case "", "auto":
		if !utf8.Valid(data) {
			data, err = charmap.Windows1252.NewDecoder().Bytes(data)
			if err != nil {
				return nil, fmt.Errorf("failed to decode Windows-1252 input: %w", err)
			}
		}
	case "utf-8":
		if !utf8.Valid(data) {
			return nil, fmt.Errorf("input is not valid UTF-8")
		}
	case "windows-1252":
		data, err = charmap.Windows1252.NewDecoder().Bytes(data)
		if err != nil {
			return nil, fmt.Errorf("failed to decode Windows-1252 input: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported encoding: %s", encoding)
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse CSV: %w", err)
	}
	return records, nil
}

// readFile reads all CSV records from the file at path.
func readFile(path, encoding string) ([][]string, error) {
	f, err := os.Open(path) //nolint:gosec // G304: path comes from CLI arguments
	if err != nil {
		return nil, fmt.Errorf("cannot open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	return readRecords(f, encoding)
}
