package server

import (
	"net/http"

	"github.com/postpros/mailcheck/internal/batch"
	"github.com/postpros/mailcheck/internal/imb"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Server holds the HTTP server state and dependencies.
type Server struct {
	decoder     *imb.Decoder
	batchConfig batch.Config
	corsOrigin  string
	maxUploadMB int64
	timeoutSec  int
	rateLimiter *RateLimiter
}

// Config holds server configuration.
type Config struct {
	Host        string
	Port        int
	CORSOrigin  string
	MaxUploadMB int64
	TimeoutSec  int

	// Decode is the canonicalization policy applied to all requests.
	Decode imb.Options

	// Batch controls CSV uploads on /validate.
	Batch batch.Config

	// Rate limiting (disabled when RequestsPerMinute is 0).
	RateLimitPerMinute int
	RateLimitBurst     int
}

// HealthResponse is returned by /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
	Time    string `json:"time"`
}

// DecodeRequest is the JSON body accepted by /decode.
type DecodeRequest struct {
	Barcode     string `json:"barcode"`
	ExpectedZip string `json:"expected_zip,omitempty"`
}

// DecodeResponse is the JSON reply from /decode.
type DecodeResponse struct {
	Success bool        `json:"success"`
	Result  *imb.Result `json:"result,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// ValidateResponse is the JSON reply from /validate.
type ValidateResponse struct {
	Success bool              `json:"success"`
	Summary *batch.Summary    `json:"summary,omitempty"`
	Rows    []batch.RowResult `json:"rows,omitempty"`
	Error   string            `json:"error,omitempty"`
}

// NewServer creates a new validation server instance.
func NewServer(config Config) *Server {
	s := &Server{
		decoder:     imb.NewDecoder(config.Decode),
		batchConfig: config.Batch,
		corsOrigin:  config.CORSOrigin,
		maxUploadMB: config.MaxUploadMB,
		timeoutSec:  config.TimeoutSec,
	}
	s.batchConfig.Decode = config.Decode
	if config.RateLimitPerMinute > 0 {
		s.rateLimiter = NewRateLimiter(config.RateLimitPerMinute, config.RateLimitBurst)
	}
	return s
}

// SetupRoutes configures the HTTP routes.
func (s *Server) SetupRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/health", s.corsMiddleware(s.healthHandler))
	mux.HandleFunc("/decode", s.corsMiddleware(s.rateLimitMiddleware(s.decodeHandler)))
	mux.HandleFunc("/validate", s.corsMiddleware(s.rateLimitMiddleware(s.validateHandler)))
	mux.HandleFunc("/ws/decode", s.decodeWebSocketHandler)
	mux.Handle("/metrics", promhttp.Handler())
}
