package batch

import (
	"fmt"
	"os"
	"runtime"

	"github.com/postpros/mailcheck/internal/imb"
)

// Config holds all configuration for CSV batch validation.
type Config struct {
	// Column selection. Empty values enable header-based discovery.
	IMBColumn string
	ZipColumn string

	// Input encoding: "auto", "utf-8", or "windows-1252".
	Encoding string

	// Barcode canonicalization passed through to the decoder.
	Decode imb.Options

	// Parallel processing settings
	Workers int

	// Output settings
	Format     string
	OutputFile string
	Quiet      bool
}

// DefaultConfig returns sensible defaults for batch validation.
func DefaultConfig() Config {
	return Config{
		Encoding: "auto",
		Workers:  runtime.NumCPU(),
		Format:   "text",
	}
}

// SaveResults writes the formatted results to a file or stdout.
func (r *Result) SaveResults(format, outputFile string, quiet bool) error {
	output, err := r.Format(format)
	if err != nil {
		return fmt.Errorf("failed to format results: %w", err)
	}

	if outputFile != "" {
		if err := os.WriteFile(outputFile, []byte(output), 0o600); err != nil {
			return fmt.Errorf("failed to write output file: %w", err)
		}
		if !quiet {
			_, _ = fmt.Fprintf(os.Stdout, "Results written to %s\n", outputFile)
		}
	} else {
		_, _ = fmt.Fprint(os.Stdout, output)
	}

	return nil
}
