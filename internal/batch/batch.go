// Package batch validates CSV files of Intelligent Mail barcodes in
// parallel and aggregates the outcomes.
package batch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ProcessFile validates every row of the CSV file at path.
func ProcessFile(ctx context.Context, path string, cfg Config) (*Result, error) {
	records, err := readFile(path, cfg.Encoding)
	if err != nil {
		return nil, err
	}
	return processRecords(ctx, records, cfg)
}

// ProcessReader validates every CSV row read from r.
func ProcessReader(ctx context.Context, r io.Reader, cfg Config) (*Result, error) {
	records, err := readRecords(r, cfg.Encoding)
	if err != nil {
		return nil, err
	}
	return processRecords(ctx, records, cfg)
}

// processRecords turns raw CSV records into rows and runs the worker pool.
func processRecords(ctx context.Context, records [][]string, cfg Config) (*Result, error) {
	if len(records) == 0 {
		return nil, errors.New("input contains no records")
	}

	imbIdx, zipIdx, err := discoverColumns(records[0], &cfg)
	if err != nil {
		return nil, err
	}

	rows := make([]Row, 0, len(records)-1)
	for i, record := range records[1:] {
		if imbIdx >= len(record) {
			return nil, fmt.Errorf("line %d has %d columns, barcode column is %d", i+2, len(record), imbIdx+1)
		}
		row := Row{
			Line: i + 2,
			Code: record[imbIdx],
		}
		if zipIdx >= 0 && zipIdx < len(record) {
			row.ExpectedZip = strings.TrimSpace(record[zipIdx])
		}
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, errors.New("input contains a header but no data rows")
	}

	return Process(ctx, rows, cfg)
}
