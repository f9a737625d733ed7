package sse

import (
	"log/slog"
	"net/http"
	"time"

	"music-lab/contract"
	"music-lab/domain/event"
)

// Handler serves the long-lived stream endpoint. The browser EventSource
// API cannot attach custom headers, so the token travels as a query
// parameter and is validated here before any connection is registered.
type Handler struct {
	registry  *Registry
	tokens    contract.ITokenValidator
	heartbeat time.Duration
	log       *slog.Logger
}

func NewHandler(registry *Registry, tokens contract.ITokenValidator,
	heartbeat time.Duration, log *slog.Logger) *Handler {
	return &Handler{
		registry:  registry,
		tokens:    tokens,
		heartbeat: heartbeat,
		log:       log,
	}
}

type flushWriter struct {
	w http.ResponseWriter
	f http.Flusher
}

func (fw flushWriter) Write(p []byte) (int, error) { return fw.w.Write(p) }
func (fw flushWriter) Flush()                      { fw.f.Flush() }

// Events handles GET /api/sse/events?token=...
// It registers the caller's connection, sends the initial `connected` frame
// and then blocks on the heartbeat loop until the client goes away.
func (h *Handler) Events(w http.ResponseWriter, r *http.Request) {
	userID, err := h.tokens.ValidateToken(r.URL.Query().Get("token"))
	if err != nil {
		http.Error(w, "Unauthorized", http.StatusUnauthorized)
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	// X-Accel-Buffering tells intermediary proxies (nginx) not to buffer,
	// so frames reach the client with minimal delay.
	header := w.Header()
	header.Set("Content-Type", "text/event-stream")
	header.Set("Cache-Control", "no-cache")
	header.Set("Connection", "keep-alive")
	header.Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	h.log.Info("Stream connection request", "user", userID)

	conn := h.registry.Register(userID, flushWriter{w: w, f: flusher}, r.Context())
	defer h.registry.Release(conn)

	conn.Send(event.Connected, event.ConnectedPayload{Message: "SSE connection established"})
	conn.RunHeartbeat(h.heartbeat)
}
