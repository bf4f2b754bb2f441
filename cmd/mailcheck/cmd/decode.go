package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/postpros/mailcheck/internal/imb"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

// decodeCmd represents the decode command.
var decodeCmd = &cobra.Command{
	Use:   "decode <barcode>",
	Short: "Decode a single Intelligent Mail barcode",
	Long: `Decode a single 65-character Intelligent Mail barcode given as its
bar representation (A = ascender, D = descender, T = tracker, F = full).

The decoded tracking fields and routing ZIP are printed along with the
frame check verdict. An expected ZIP can be supplied for comparison.

Examples:
  mailcheck decode AADTFFDFTDADTAADAATFDTDDAAADDTDTTDAFADADDDTFFFDDTTTADFAAADFTDAADA
  mailcheck decode --zip 77382 TAAFFATFFDTFTFAATDTTAAFDAFDFDAFFDTTADAADTATTADTTTAADAFDDDDTTDDDTA
  mailcheck decode --format json <barcode>`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := GetConfig()

		expectedZip, _ := cmd.Flags().GetString("zip")

		format := cfg.Output.Format
		if cmd.Flags().Changed("format") {
			format, _ = cmd.Flags().GetString("format")
		}

		outputFile := cfg.Output.File
		if cmd.Flags().Changed("output") {
			outputFile, _ = cmd.Flags().GetString("output")
		}

		decoder := imb.NewDecoder(cfg.ToDecodeOptions())

		var (
			res *imb.Result
			err error
		)
		if expectedZip != "" {
			res, err = decoder.DecodeExpecting(args[0], expectedZip)
		} else {
			res, err = decoder.Decode(args[0])
		}
		if err != nil {
			return fmt.Errorf("decode failed: %w", err)
		}

		output, err := formatResult(res, format)
		if err != nil {
			return err
		}

		if outputFile != "" {
			if err := os.WriteFile(outputFile, []byte(output), 0o600); err != nil {
				return fmt.Errorf("failed to write output file: %w", err)
			}
			return nil
		}
		_, _ = fmt.Fprint(cmd.OutOrStdout(), output)

		if !res.Valid {
			return fmt.Errorf("frame check sequence mismatch")
		}
		return nil
	},
}

// formatResult renders a single decode result.
func formatResult(res *imb.Result, format string) (string, error) {
	switch format {
	case "json":
		bts, err := json.MarshalIndent(res, "", "  ")
		return string(bts) + "\n", err
	case "yaml":
		bts, err := yaml.Marshal(res)
		return string(bts), err
	default: // text
		var b strings.Builder
		fmt.Fprintf(&b, "Barcode ID:    %s\n", res.BarcodeID)
		fmt.Fprintf(&b, "Service Type:  %s\n", res.ServiceType)
		fmt.Fprintf(&b, "Mailer ID:     %s\n", res.MailerID)
		fmt.Fprintf(&b, "Serial Number: %s\n", res.SerialNumber)
		if res.RoutingZip != "" {
			fmt.Fprintf(&b, "Routing ZIP:   %s\n", res.RoutingZip)
		} else {
			fmt.Fprintf(&b, "Routing ZIP:   (none)\n")
		}
		if res.ZipComparison != imb.ZipNotCompared {
			fmt.Fprintf(&b, "ZIP Check:     %s\n", res.ZipComparison)
		}
		if res.Valid {
			fmt.Fprintf(&b, "Checksum:      ok\n")
		} else {
			fmt.Fprintf(&b, "Checksum:      MISMATCH\n")
		}
		return b.String(), nil
	}
}

func init() {
	rootCmd.AddCommand(decodeCmd)
	decodeCmd.Flags().String("zip", "", "expected delivery ZIP to compare against")
	decodeCmd.Flags().StringP("format", "f", "text", "output format (text, json, yaml)")
	decodeCmd.Flags().StringP("output", "o", "", "write output to file instead of stdout")
}
