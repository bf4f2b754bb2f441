package batch

import (
	"context"
	"runtime"
	"sync"
	"time"

	"github.com/postpros/mailcheck/internal/imb"
)

// Row is a single CSV row queued for validation.
type Row struct {
	// Line is the 1-based line number in the source file, including the
	// header line.
	Line        int    `json:"line" yaml:"line"`
	Code        string `json:"barcode" yaml:"barcode"`
	ExpectedZip string `json:"expected_zip,omitempty" yaml:"expected_zip,omitempty"`
}

// RowResult is the validation outcome for a single row.
type RowResult struct {
	Row    Row         `json:"row" yaml:"row"`
	Result *imb.Result `json:"result,omitempty" yaml:"result,omitempty"`
	Error  string      `json:"error,omitempty" yaml:"error,omitempty"`
}

// Status classifies the outcome for reporting.
func (r *RowResult) Status() string {
	switch {
	case r.Error != "":
		return "malformed"
	case !r.Result.Valid:
		return "checksum_mismatch"
	default:
		return "decoded"
	}
}

// Summary aggregates the outcomes of a batch run.
type Summary struct {
	Total            int `json:"total" yaml:"total"`
	Decoded          int `json:"decoded" yaml:"decoded"`
	Malformed        int `json:"malformed" yaml:"malformed"`
	ChecksumFailures int `json:"checksum_failures" yaml:"checksum_failures"`
	ZipMatches       int `json:"zip_matches" yaml:"zip_matches"`
	ZipMismatches    int `json:"zip_mismatches" yaml:"zip_mismatches"`
	ZipNotComparable int `json:"zip_not_comparable" yaml:"zip_not_comparable"`
}

// Result holds the outcome of a batch validation run.
type Result struct {
	Rows        []RowResult   `json:"rows" yaml:"rows"`
	Summary     Summary       `json:"summary" yaml:"summary"`
	Duration    time.Duration `json:"duration_ns" yaml:"duration_ns"`
	WorkerCount int           `json:"worker_count" yaml:"worker_count"`
}

// rowJob carries one row to a worker.
type rowJob struct {
	index int
	row   Row
}

// rowOutcome carries one result back with its slot index.
type rowOutcome struct {
	index  int
	result RowResult
}

// Process validates rows in parallel using a worker pool and returns
// results in input order.
func Process(ctx context.Context, rows []Row, cfg Config) (*Result, error) {
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(rows) {
		workers = len(rows)
	}
	if workers < 1 {
		workers = 1
	}

	decoder := imb.NewDecoder(cfg.Decode)
	start := time.Now()

	jobs := make(chan rowJob, len(rows))
	outcomes := make(chan rowOutcome, len(rows))

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go worker(ctx, decoder, jobs, outcomes, &wg)
	}

	go func() {
		defer close(jobs)
		for i, row := range rows {
			select {
			case jobs <- rowJob{index: i, row: row}:
			case <-ctx.Done():
				return
			}
		}
	}()

	go func() {
		wg.Wait()
		close(outcomes)
	}()

	ordered := make([]RowResult, len(rows))
	for outcome := range outcomes {
		ordered[outcome.index] = outcome.result
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	return &Result{
		Rows:        ordered,
		Summary:     summarize(ordered),
		Duration:    time.Since(start),
		WorkerCount: workers,
	}, nil
}

// worker validates rows from the jobs channel.
func worker(ctx context.Context, decoder *imb.Decoder, jobs <-chan rowJob, outcomes chan<- rowOutcome, wg *sync.WaitGroup) {
	defer wg.Done()

	for {
		select {
		case job, ok := <-jobs:
			if !ok {
				return
			}

			result := validateRow(decoder, job.row)

			select {
			case outcomes <- rowOutcome{index: job.index, result: result}:
			case <-ctx.Done():
				return
			}

		case <-ctx.Done():
			return
		}
	}
}

// validateRow decodes a single row, comparing against the expected ZIP
// when one is present.
func validateRow(decoder *imb.Decoder, row Row) RowResult {
	var (
		res *imb.Result
		err error
	)
	if row.ExpectedZip != "" {
		res, err = decoder.DecodeExpecting(row.Code, row.ExpectedZip)
	} else {
		res, err = decoder.Decode(row.Code)
	}
	if err != nil {
		return RowResult{Row: row, Error: err.Error()}
	}
	return RowResult{Row: row, Result: res}
}

// summarize tallies the outcome counts for a batch.
func summarize(rows []RowResult) Summary {
	s := Summary{Total: len(rows)}
	for i := range rows {
		r := &rows[i]
		if r.Error != "" {
			s.Malformed++
			continue
		}
		s.Decoded++
		if !r.Result.Valid {
			s.ChecksumFailures++
		}
		switch r.Result.ZipComparison {
		case imb.ZipExactMatch, imb.ZipPrefixMatch:
			s.ZipMatches++
		case imb.ZipMismatch:
			s.ZipMismatches++
		case imb.ZipNotComparable:
			s.ZipNotComparable++
		case imb.ZipNotCompared:
		}
	}
	return s
}
