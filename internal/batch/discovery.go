package batch

import (
	"fmt"
	"strings"
)

// Column header keywords recognized during discovery, checked in order.
var (
	imbKeywords = []string{"imb", "intelligent", "barcode"}
	zipKeywords = []string{"zip", "postal"}
)

// discoverColumns locates the barcode and expected-ZIP columns in a CSV
// header. Explicitly configured column names must match exactly (ignoring
// case); otherwise the header is scanned for well-known keywords. The
// barcode column is required, the ZIP column is optional (-1 when absent).
func discoverColumns(header []string, cfg *Config) (imbIdx, zipIdx int, err error) {
	imbIdx, err = findColumn(header, cfg.IMBColumn, imbKeywords, true)
	if err != nil {
		return 0, 0, err
	}

	zipIdx, err = findColumn(header, cfg.ZipColumn, zipKeywords, false)
	if err != nil {
		return 0, 0, err
	}

	if zipIdx == imbIdx {
		zipIdx = -1
	}
	return imbIdx, zipIdx, nil
}

// findColumn returns the index of the matching column, or -1 when the
// column is optional and nothing matches.
func findColumn(header []string, name string, keywords []string, required bool) (int, error) {
	if name != "" {
		for i, col := range header {
			if strings.EqualFold(strings.TrimSpace(col), name) {
				return i, nil
			}
		}
		return 0, fmt.Errorf("column %q not found in header %v", name, header)
	}

	for _, keyword := range keywords {
		for i, col := range header {
			if strings.Contains(strings.ToLower(col), keyword) {
				return i, nil
			}
		}
	}

	if required {
		return 0, fmt.Errorf("no barcode column found in header %v (looked for %s)",
			header, strings.Join(keywords, ", "))
	}
	return -1, nil
}
