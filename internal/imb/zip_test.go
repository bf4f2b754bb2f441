package imb

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestCompareZip(t *testing.T) {
	tests := []struct {
		name     string
		decoded  string
		expected string
		want     ZipComparison
	}{
		{"exact-5", "12345", "12345", ZipExactMatch},
		{"exact-9", "123456789", "123456789", ZipExactMatch},
		{"prefix-9-over-5", "123450000", "12345", ZipPrefixMatch},
		{"prefix-11-over-9", "77382148200", "773821482", ZipPrefixMatch},
		{"prefix-expected-wider", "12345", "123456789", ZipPrefixMatch},
		{"mismatch", "12345", "12346", ZipMismatch},
		{"mismatch-wide", "123456789", "123459999", ZipMismatch},
		{"mismatch-short-prefix", "123456789", "1234", ZipMismatch},
		{"not-comparable-empty-decoded", "", "12345", ZipNotComparable},
		{"not-comparable-empty-expected", "12345", "", ZipNotComparable},
		{"normalized-dashes", "773821482", "77382-1482", ZipExactMatch},
		{"normalized-spaces", "12345", " 12345 ", ZipExactMatch},
		{"non-digits-only", "12345", "zip!", ZipNotComparable},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CompareZip(tt.decoded, tt.expected))
		})
	}
}

func TestZipComparisonString(t *testing.T) {
	assert.Equal(t, "not_compared", ZipNotCompared.String())
	assert.Equal(t, "exact_match", ZipExactMatch.String())
	assert.Equal(t, "prefix_match", ZipPrefixMatch.String())
	assert.Equal(t, "mismatch", ZipMismatch.String())
	assert.Equal(t, "not_comparable", ZipNotComparable.String())
}

func TestZipComparisonJSON(t *testing.T) {
	data, err := json.Marshal(ZipPrefixMatch)
	require.NoError(t, err)
	assert.JSONEq(t, `"prefix_match"`, string(data))

	var parsed ZipComparison
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.Equal(t, ZipPrefixMatch, parsed)

	// The zero value is omitted from results entirely.
	res := Result{ZipComparison: ZipNotCompared}
	data, err = json.Marshal(res)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "zip_comparison")
}

func TestZipComparisonYAML(t *testing.T) {
	data, err := yaml.Marshal(ZipPrefixMatch)
	require.NoError(t, err)
	assert.Equal(t, "prefix_match\n", string(data))
}

func TestResultYAMLFieldNames(t *testing.T) {
	res := Result{
		Valid:         true,
		BarcodeID:     "01",
		ServiceType:   "234",
		MailerID:      "567094",
		SerialNumber:  "987654321",
		RoutingZip:    "01234567891",
		ZipComparison: ZipPrefixMatch,
	}
	data, err := yaml.Marshal(res)
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, "barcode_id:")
	assert.Contains(t, out, "service_type:")
	assert.Contains(t, out, "mailer_id:")
	assert.Contains(t, out, "serial_number:")
	assert.Contains(t, out, "routing_zip:")
	assert.Contains(t, out, "zip_comparison: prefix_match")
	assert.NotContains(t, out, "barcodeid")
}
