package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP request metrics
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mailcheck_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "mailcheck_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// Decode metrics
	decodeRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mailcheck_decode_requests_total",
			Help: "Total number of decode requests",
		},
		[]string{"outcome"}, // outcome: decoded, checksum_mismatch, malformed
	)

	decodeDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "mailcheck_decode_duration_seconds",
			Help:    "Single barcode decode duration in seconds",
			Buckets: []float64{.000001, .00001, .0001, .001, .01, .1},
		},
	)

	// Batch validation metrics
	batchRowsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mailcheck_batch_rows_total",
			Help: "Total number of CSV rows validated",
		},
	)

	batchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "mailcheck_batch_duration_seconds",
			Help:    "CSV batch validation duration in seconds",
			Buckets: []float64{.01, .05, .1, .5, 1, 5, 10, 30},
		},
	)

	// Rate limiting metrics
	rateLimitHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "mailcheck_rate_limit_hits_total",
			Help: "Total number of rate limit hits",
		},
	)

	// File upload metrics
	uploadSizeBytes = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "mailcheck_upload_size_bytes",
			Help:    "Size of uploaded files in bytes",
			Buckets: []float64{1024, 10 * 1024, 100 * 1024, 1024 * 1024, 10 * 1024 * 1024, 50 * 1024 * 1024},
		},
	)

	// WebSocket metrics
	websocketConnections = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "mailcheck_websocket_active_connections",
			Help: "Number of active WebSocket connections",
		},
	)

	websocketMessagesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "mailcheck_websocket_messages_total",
			Help: "Total number of WebSocket messages",
		},
		[]string{"direction"}, // direction: sent, received
	)
)
