package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/postpros/mailcheck/internal/imb"
)

// WebSocket upgrader with reasonable defaults.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow connections from any origin in development
		// In production, you should check against allowed origins
		return true
	},
}

// WebSocketDecodeRequest is a decode request sent over the WebSocket.
type WebSocketDecodeRequest struct {
	Barcode     string `json:"barcode"`
	ExpectedZip string `json:"expected_zip,omitempty"`
	RequestID   string `json:"request_id,omitempty"`
}

// WebSocketDecodeResponse is the reply for one decode request.
type WebSocketDecodeResponse struct {
	Type      string      `json:"type"`
	Status    string      `json:"status"` // "completed" or "error"
	Result    *imb.Result `json:"result,omitempty"`
	Error     string      `json:"error,omitempty"`
	ErrorType string      `json:"error_type,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
}

// webSocketConnWriter is the connection surface needed to send replies.
type webSocketConnWriter interface {
	WriteMessage(messageType int, data []byte) error
}

// decodeWebSocketHandler handles WebSocket connections for streaming
// barcode decoding.
func (s *Server) decodeWebSocketHandler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("Failed to upgrade connection to WebSocket", "error", err)
		return
	}
	defer func() {
		_ = conn.Close()
	}()

	websocketConnections.Inc()
	defer websocketConnections.Dec()

	slog.Info("WebSocket connection established", "remote_addr", r.RemoteAddr)

	s.handleWebSocketConnection(conn)
}

// handleWebSocketConnection processes messages from a WebSocket connection.
func (s *Server) handleWebSocketConnection(conn *websocket.Conn) {
	// Set read deadline to prevent hanging connections
	_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
	conn.SetPongHandler(func(string) error {
		_ = conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		return nil
	})

	// Send ping messages to keep connection alive
	done := make(chan struct{})
	defer close(done)
	go func() {
		ticker := time.NewTicker(30 * time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := conn.WriteControl(websocket.PingMessage, []byte{}, time.Now().Add(10*time.Second)); err != nil {
					return
				}
			case <-done:
				return
			}
		}
	}()

	for {
		messageType, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				slog.Error("WebSocket error", "error", err)
			}
			break
		}

		websocketMessagesTotal.WithLabelValues("received").Inc()

		if messageType == websocket.TextMessage {
			s.handleWebSocketMessage(conn, data)
		}
	}
}

// handleWebSocketMessage decodes one barcode request and replies.
func (s *Server) handleWebSocketMessage(conn *websocket.Conn, data []byte) {
	var req WebSocketDecodeRequest
	if err := json.Unmarshal(data, &req); err != nil {
		s.sendWebSocketError(conn, "invalid_request", "Failed to parse request: "+err.Error(), "")
		return
	}
	if req.Barcode == "" {
		s.sendWebSocketError(conn, "invalid_request", "No barcode provided", req.RequestID)
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
		s.sendWebSocketError(conn, "decode_error", err.Error(), req.RequestID)
		return
	}

	if res.Valid {
		decodeRequestsTotal.WithLabelValues("decoded").Inc()
	} else {
		decodeRequestsTotal.WithLabelValues("checksum_mismatch").Inc()
	}

	s.sendWebSocketResponse(conn, WebSocketDecodeResponse{
		Type:      "decode_response",
		Status:    "completed",
		Result:    res,
		RequestID: req.RequestID,
	})
}

// sendWebSocketResponse sends a response message over WebSocket.
func (s *Server) sendWebSocketResponse(conn webSocketConnWriter, response WebSocketDecodeResponse) {
	data, err := json.Marshal(response)
	if err != nil {
		slog.Error("Failed to marshal WebSocket response", "error", err)
		return
	}

	if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
		slog.Error("Failed to send WebSocket message", "error", err)
		return
	}

	websocketMessagesTotal.WithLabelValues("sent").Inc()
}

// sendWebSocketError sends an error message over WebSocket.
func (s *Server) sendWebSocketError(conn webSocketConnWriter, errorType, message, requestID string) {
	s.sendWebSocketResponse(conn, WebSocketDecodeResponse{
		Type:      "error",
		Status:    "error",
		Error:     message,
		ErrorType: errorType,
		RequestID: requestID,
	})
}
