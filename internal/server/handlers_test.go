package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/postpros/mailcheck/internal/imb"
	"github.com/postpros/mailcheck/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHealthHandler(t *testing.T) {
	s := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()

	s.healthHandler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "healthy", resp.Status)
	assert.NotEmpty(t, resp.Time)
}

func TestHealthHandlerMethodNotAllowed(t *testing.T) {
	s := newTestServer()
	req := httptest.NewRequest(http.MethodPost, "/health", nil)
	rec := httptest.NewRecorder()

	s.healthHandler(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestDecodeHandler(t *testing.T) {
	s := newTestServer()
	ref := testutil.ReferenceBarcodes[0]
	body := fmt.Sprintf(`{"barcode": %q}`, ref.Code)

	req := httptest.NewRequest(http.MethodPost, "/decode", strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.decodeHandler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp DecodeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Result)
	assert.True(t, resp.Result.Valid)
	assert.Equal(t, ref.MailerID, resp.Result.MailerID)
	assert.Equal(t, ref.RoutingZip, resp.Result.RoutingZip)
}

func TestDecodeHandlerWithExpectedZip(t *testing.T) {
	s := newTestServer()
	ref := testutil.ReferenceBarcodes[6] // routing 77382148200
	body := fmt.Sprintf(`{"barcode": %q, "expected_zip": "77382"}`, ref.Code)

	req := httptest.NewRequest(http.MethodPost, "/decode", strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.decodeHandler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp DecodeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, imb.ZipPrefixMatch, resp.Result.ZipComparison)
}

func TestDecodeHandlerBadRequests(t *testing.T) {
	s := newTestServer()
	tests := []struct {
		name string
		body string
		want int
	}{
		{"invalid-json", `{"barcode": `, http.StatusBadRequest},
		{"missing-barcode", `{}`, http.StatusBadRequest},
		{"wrong-length", `{"barcode": "ADTF"}`, http.StatusBadRequest},
		{"bad-character", fmt.Sprintf(`{"barcode": %q}`, strings.Repeat("X", 65)), http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/decode", strings.NewReader(tt.body))
			rec := httptest.NewRecorder()
			s.decodeHandler(rec, req)

			assert.Equal(t, tt.want, rec.Code)
			var resp DecodeResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			assert.NotEmpty(t, resp.Error)
		})
	}
}

func TestDecodeHandlerUnmappableBars(t *testing.T) {
	// Well-formed alphabet, 65 characters, but no valid codeword mapping.
	s := newTestServer()
	body := fmt.Sprintf(`{"barcode": %q}`, strings.Repeat("T", 65))

	req := httptest.NewRequest(http.MethodPost, "/decode", strings.NewReader(body))
	rec := httptest.NewRecorder()
	s.decodeHandler(rec, req)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestDecodeHandlerMethodNotAllowed(t *testing.T) {
	s := newTestServer()
	req := httptest.NewRequest(http.MethodGet, "/decode", nil)
	rec := httptest.NewRecorder()
	s.decodeHandler(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestValidateHandler(t *testing.T) {
	s := newTestServer()
	ref := testutil.ReferenceBarcodes[0]
	csvContent := fmt.Sprintf("imb,zip\n%s,01234\ngarbage,99999\n", ref.Code)

	req := newCSVUploadRequest(t, "/validate", csvContent, nil)
	rec := httptest.NewRecorder()
	s.validateHandler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp ValidateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.NotNil(t, resp.Summary)
	assert.Equal(t, 2, resp.Summary.Total)
	assert.Equal(t, 1, resp.Summary.Decoded)
	assert.Equal(t, 1, resp.Summary.Malformed)
	assert.Equal(t, 1, resp.Summary.ZipMatches)
	assert.Empty(t, resp.Rows)
}

func TestValidateHandlerWithRows(t *testing.T) {
	s := newTestServer()
	ref := testutil.ReferenceBarcodes[0]
	csvContent := fmt.Sprintf("imb\n%s\n", ref.Code)

	req := newCSVUploadRequest(t, "/validate", csvContent, map[string]string{"rows": "1"})
	rec := httptest.NewRecorder()
	s.validateHandler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp ValidateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Rows, 1)
	assert.Equal(t, ref.SerialNumber, resp.Rows[0].Result.SerialNumber)
}

func TestValidateHandlerColumnOverride(t *testing.T) {
	s := newTestServer()
	ref := testutil.ReferenceBarcodes[0]
	csvContent := fmt.Sprintf("tracking\n%s\n", ref.Code)

	req := newCSVUploadRequest(t, "/validate", csvContent, map[string]string{"imb_column": "tracking"})
	rec := httptest.NewRecorder()
	s.validateHandler(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp ValidateResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Summary.Decoded)
}

func TestValidateHandlerNoFile(t *testing.T) {
	s := newTestServer()
	req := httptest.NewRequest(http.MethodPost, "/validate", strings.NewReader("not multipart"))
	req.Header.Set("Content-Type", "multipart/form-data; boundary=xxx")
	rec := httptest.NewRecorder()
	s.validateHandler(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestValidateHandlerMissingBarcodeColumn(t *testing.T) {
	s := newTestServer()
	req := newCSVUploadRequest(t, "/validate", "name,address\nalice,street\n", nil)
	rec := httptest.NewRecorder()
	s.validateHandler(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	var resp DecodeResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Error, "no barcode column")
}
