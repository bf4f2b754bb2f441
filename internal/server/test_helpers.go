package server

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

// newTestServer returns a server with test-friendly limits.
func newTestServer() *Server {
	return NewServer(Config{
		CORSOrigin:  "*",
		MaxUploadMB: 1,
		TimeoutSec:  5,
	})
}

// newCSVUploadRequest builds a multipart request carrying a CSV payload.
func newCSVUploadRequest(t *testing.T, target, csvContent string, fields map[string]string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", "upload.csv")
	require.NoError(t, err)
	_, err = part.Write([]byte(csvContent))
	require.NoError(t, err)

	for key, value := range fields {
		require.NoError(t, writer.WriteField(key, value))
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}
