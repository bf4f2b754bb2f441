package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/postpros/mailcheck/internal/batch"
	"github.com/postpros/mailcheck/internal/imb"
	"github.com/postpros/mailcheck/internal/version"
)

// healthHandler returns server health status.
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	response := HealthResponse{
		Status:  "healthy",
		Version: version.Version,
		Time:    time.Now().UTC().Format(time.RFC3339),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		slog.Error("Failed to encode health response", "error", err)
	}
}

// decodeHandler decodes a single barcode from a JSON request body.
func (s *Server) decodeHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req DecodeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeErrorResponse(w, "Invalid JSON body", http.StatusBadRequest)
		return
	}
	if req.Barcode == "" {
		s.writeErrorResponse(w, "No barcode provided", http.StatusBadRequest)
		return
	}

	start := time.Now()
	var (
		res *imb.Result
		err error
	)
	if req.ExpectedZip != "" {
		res, err = s.decoder.DecodeExpecting(req.Barcode, req.ExpectedZip)
	} else {
		res, err = s.decoder.Decode(req.Barcode)
	}
	decodeDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		decodeRequestsTotal.WithLabelValues("malformed").Inc()
		status := http.StatusUnprocessableEntity
		var lenErr *imb.LengthError
		var charErr *imb.CharacterError
		if errors.As(err, &lenErr) || errors.As(err, &charErr) {
			status = http.StatusBadRequest
		}
		s.writeErrorResponse(w, err.Error(), status)
		return
	}

	if res.Valid {
		decodeRequestsTotal.WithLabelValues("decoded").Inc()
	} else {
		decodeRequestsTotal.WithLabelValues("checksum_mismatch").Inc()
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(DecodeResponse{Success: true, Result: res}); err != nil {
		slog.Error("Failed to encode decode response", "error", err)
	}
}

// validateHandler validates an uploaded CSV file of barcodes.
func (s *Server) validateHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadMB*1024*1024)

	if err := r.ParseMultipartForm(s.maxUploadMB * 1024 * 1024); err != nil {
		if strings.Contains(strings.ToLower(err.Error()), "body too large") {
			s.writeErrorResponse(w, "File too large", http.StatusRequestEntityTooLarge)
		} else {
			s.writeErrorResponse(w, "Failed to parse form data", http.StatusBadRequest)
		}
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		s.writeErrorResponse(w, "No CSV file provided", http.StatusBadRequest)
		return
	}
	defer func() { _ = file.Close() }()

	if header.Size > s.maxUploadMB*1024*1024 {
		s.writeErrorResponse(w, "File too large", http.StatusRequestEntityTooLarge)
		return
	}
	uploadSizeBytes.Observe(float64(header.Size))

	cfg := s.batchConfig
	if col := r.FormValue("imb_column"); col != "" {
		cfg.IMBColumn = col
	}
	if col := r.FormValue("zip_column"); col != "" {
		cfg.ZipColumn = col
	}

	start := time.Now()
	result, err := batch.ProcessReader(r.Context(), file, cfg)
	if err != nil {
		s.writeErrorResponse(w, fmt.Sprintf("Validation failed: %v", err), http.StatusBadRequest)
		return
	}
	batchDuration.Observe(time.Since(start).Seconds())
	batchRowsTotal.Add(float64(result.Summary.Total))

	// Summary-only output unless full rows are requested.
	response := ValidateResponse{Success: true, Summary: &result.Summary}
	if r.FormValue("rows") == "1" {
		response.Rows = result.Rows
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(response); err != nil {
		slog.Error("Failed to encode validate response", "error", err)
	}
}

// writeErrorResponse writes a JSON error response.
func (s *Server) writeErrorResponse(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	response := DecodeResponse{
		Success: false,
		Error:   message,
	}

	if err := json.NewEncoder(w).Encode(response); err != nil {
		slog.Error("Failed to encode error response", "error", err)
	}
}
