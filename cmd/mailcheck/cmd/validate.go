package cmd

import (
	"fmt"

	"github.com/postpros/mailcheck/internal/batch"
	"github.com/spf13/cobra"
)

// validateCmd represents the validate command.
var validateCmd = &cobra.Command{
	Use:   "validate <file.csv>",
	Short: "Validate a CSV file of Intelligent Mail barcodes",
	Long: `Validate every barcode in a CSV file using parallel workers.

The barcode column is discovered from the header (looking for "imb",
"intelligent", or "barcode") unless named explicitly. When a ZIP column
is present, each decoded routing ZIP is compared against it.

Examples:
  mailcheck validate mailing.csv
  mailcheck validate mailing.csv --format json --output report.json
  mailcheck validate mailing.csv --imb-column tracking --workers 8`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		batchCfg := batch.DefaultConfig()
		batchCfg.Decode = cfg.ToDecodeOptions()
		batchCfg.IMBColumn = cfg.Batch.IMBColumn
		batchCfg.ZipColumn = cfg.Batch.ZipColumn

		if cfg.Batch.Workers > 0 {
			batchCfg.Workers = cfg.Batch.Workers
		}
		if cmd.Flags().Changed("workers") {
			batchCfg.Workers, _ = cmd.Flags().GetInt("workers")
		}

		if cfg.Batch.Encoding != "" {
			batchCfg.Encoding = cfg.Batch.Encoding
		}
		if cmd.Flags().Changed("encoding") {
			batchCfg.Encoding, _ = cmd.Flags().GetString("encoding")
		}

		if cmd.Flags().Changed("imb-column") {
			batchCfg.IMBColumn, _ = cmd.Flags().GetString("imb-column")
		}
		if cmd.Flags().Changed("zip-column") {
			batchCfg.ZipColumn, _ = cmd.Flags().GetString("zip-column")
		}

		format := cfg.Output.Format
		if cmd.Flags().Changed("format") {
			format, _ = cmd.Flags().GetString("format")
		}

		outputFile := cfg.Output.File
		if cmd.Flags().Changed("output") {
			outputFile, _ = cmd.Flags().GetString("output")
		}

		quiet, _ := cmd.Flags().GetBool("quiet")

		result, err := batch.ProcessFile(cmd.Context(), args[0], batchCfg)
		if err != nil {
			return fmt.Errorf("validation failed: %w", err)
		}

		if err := result.SaveResults(format, outputFile, quiet); err != nil {
			return err
		}

		if result.Summary.Malformed > 0 || result.Summary.ChecksumFailures > 0 {
			return fmt.Errorf("%d of %d rows failed validation",
				result.Summary.Malformed+result.Summary.ChecksumFailures, result.Summary.Total)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
	validateCmd.Flags().Int("workers", 0, "number of parallel workers (0 = number of CPUs)")
	validateCmd.Flags().String("imb-column", "", "name of the barcode column (default: discover from header)")
	validateCmd.Flags().String("zip-column", "", "name of the expected-ZIP column (default: discover from header)")
	validateCmd.Flags().String("encoding", "auto", "input encoding (auto, utf-8, windows-1252)")
	validateCmd.Flags().StringP("format", "f", "text", "output format (text, json, csv, yaml)")
	validateCmd.Flags().StringP("output", "o", "", "write output to file instead of stdout")
	validateCmd.Flags().BoolP("quiet", "q", false, "suppress informational output")
}
