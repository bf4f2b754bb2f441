package batch

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Format renders the batch results in the specified format.
func (r *Result) Format(format string) (string, error) {
	switch format {
	case "json":
		return r.formatJSON()
	case "csv":
		return r.formatCSV()
	case "yaml":
		return r.formatYAML()
	default: // text
		return r.formatText(), nil
	}
}

// formatJSON renders results as indented JSON.
func (r *Result) formatJSON() (string, error) {
	bts, err := json.MarshalIndent(r, "", "  ")
	return string(bts), err
}

// formatYAML renders results as YAML.
func (r *Result) formatYAML() (string, error) {
	bts, err := yaml.Marshal(r)
	return string(bts), err
}

// formatCSV renders one row per input line plus the decoded fields.
func (r *Result) formatCSV() (string, error) {
	var output strings.Builder
	writer := csv.NewWriter(&output)

	header := []string{
		"line", "barcode", "status", "barcode_id", "service_type",
		"mailer_id", "serial_number", "routing_zip", "zip_comparison", "error",
	}
	if err := writer.Write(header); err != nil {
		return "", err
	}

	for i := range r.Rows {
		row := &r.Rows[i]
		record := []string{strconv.Itoa(row.Row.Line), row.Row.Code, row.Status()}
		if row.Result != nil {
			zipCmp := ""
			if row.Result.ZipComparison != 0 {
				zipCmp = row.Result.ZipComparison.String()
			}
			record = append(record,
				row.Result.BarcodeID,
				row.Result.ServiceType,
				row.Result.MailerID,
				row.Result.SerialNumber,
				row.Result.RoutingZip,
				zipCmp,
				"",
			)
		} else {
			record = append(record, "", "", "", "", "", "", row.Error)
		}
		if err := writer.Write(record); err != nil {
			return "", err
		}
	}

	writer.Flush()
	return output.String(), writer.Error()
}

// formatText renders a human-readable report with a trailing summary.
func (r *Result) formatText() string {
	var output strings.Builder

	for i := range r.Rows {
		row := &r.Rows[i]
		fmt.Fprintf(&output, "line %d: %s", row.Row.Line, row.Status())
		if row.Result != nil {
			fmt.Fprintf(&output, " mailer=%s serial=%s", row.Result.MailerID, row.Result.SerialNumber)
			if row.Result.RoutingZip != "" {
				fmt.Fprintf(&output, " zip=%s", row.Result.RoutingZip)
			}
			if row.Result.ZipComparison != 0 {
				fmt.Fprintf(&output, " zip_comparison=%s", row.Result.ZipComparison)
			}
		} else {
			fmt.Fprintf(&output, " (%s)", row.Error)
		}
		output.WriteString("\n")
	}

	s := r.Summary
	output.WriteString("\nSummary:\n")
	fmt.Fprintf(&output, "  Total rows: %d\n", s.Total)
	fmt.Fprintf(&output, "  Decoded: %d\n", s.Decoded)
	fmt.Fprintf(&output, "  Malformed: %d\n", s.Malformed)
	fmt.Fprintf(&output, "  Checksum failures: %d\n", s.ChecksumFailures)
	if s.ZipMatches+s.ZipMismatches+s.ZipNotComparable > 0 {
		fmt.Fprintf(&output, "  ZIP matches: %d\n", s.ZipMatches)
		fmt.Fprintf(&output, "  ZIP mismatches: %d\n", s.ZipMismatches)
		fmt.Fprintf(&output, "  ZIP not comparable: %d\n", s.ZipNotComparable)
	}
	fmt.Fprintf(&output, "  Workers: %d\n", r.WorkerCount)
	fmt.Fprintf(&output, "  Duration: %v\n", r.Duration.Round(time.Millisecond))

	return output.String()
}
