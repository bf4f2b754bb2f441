package cmd

import (
	"encoding/json"
	"testing"

	"github.com/postpros/mailcheck/internal/imb"
	"github.com/postpros/mailcheck/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeCommandText(t *testing.T) {
	ref := testutil.ReferenceBarcodes[0]

	output, err := executeCommandAndCaptureOutput(t, rootCmd, []string{"decode", ref.Code})
	require.NoError(t, err)

	assert.Contains(t, output, "Mailer ID:     "+ref.MailerID)
	assert.Contains(t, output, "Serial Number: "+ref.SerialNumber)
	assert.Contains(t, output, "Routing ZIP:   "+ref.RoutingZip)
	assert.Contains(t, output, "Checksum:      ok")
}

func TestDecodeCommandJSON(t *testing.T) {
	ref := testutil.ReferenceBarcodes[1]

	output, err := executeCommandAndCaptureOutput(t, rootCmd,
		[]string{"decode", "--format", "json", ref.Code})
	require.NoError(t, err)

	var res imb.Result
	require.NoError(t, json.Unmarshal([]byte(output), &res))
	assert.True(t, res.Valid)
	assert.Equal(t, ref.MailerID, res.MailerID)
	assert.Empty(t, res.RoutingZip)
}

func TestDecodeCommandWithExpectedZip(t *testing.T) {
	ref := testutil.ReferenceBarcodes[6]

	output, err := executeCommandAndCaptureOutput(t, rootCmd,
		[]string{"decode", "--format", "text", "--zip", "77382", ref.Code})
	require.NoError(t, err)
	assert.Contains(t, output, "ZIP Check:     prefix_match")
}

func TestDecodeCommandMalformed(t *testing.T) {
	_, err := executeCommandAndCaptureOutput(t, rootCmd,
		[]string{"decode", "not-a-barcode"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode failed")
}

func TestDecodeCommandArgCount(t *testing.T) {
	_, err := executeCommandAndCaptureOutput(t, rootCmd, []string{"decode"})
	require.Error(t, err)
}

func TestFormatResultText(t *testing.T) {
	res := &imb.Result{
		Valid:        true,
		BarcodeID:    "01",
		ServiceType:  "234",
		MailerID:     "567094",
		SerialNumber: "987654321",
	}
	out, err := formatResult(res, "text")
	require.NoError(t, err)
	assert.Contains(t, out, "Routing ZIP:   (none)")

	res.Valid = false
	out, err = formatResult(res, "text")
	require.NoError(t, err)
	assert.Contains(t, out, "MISMATCH")
}

func TestFormatResultYAML(t *testing.T) {
	res := &imb.Result{Valid: true, BarcodeID: "01", ZipComparison: imb.ZipExactMatch}
	out, err := formatResult(res, "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "barcode_id: \"01\"")
	assert.Contains(t, out, "zip_comparison: exact_match")
	assert.NotContains(t, out, "barcodeid")
}
