package workers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"
)

const shutdownGrace = 5 * time.Second

// ServerWorker runs the HTTP server carrying the REST API and the SSE
// stream endpoint, and shuts it down when the supervision context ends.
type ServerWorker struct {
	log    *slog.Logger
	server *http.Server
}

func NewServerWorker(log *slog.Logger, addr string, handler http.Handler) *ServerWorker {
	return &ServerWorker{
		log: log,
		server: &http.Server{
			Addr:    addr,
			Handler: handler,
		},
	}
}

func (w *ServerWorker) Run(ctx context.Context) error {
	errChan := make(chan error, 1)
	go func() {
		w.log.Info("HTTP server listening", "addr", w.server.Addr)
		if err := w.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- err
		}
	}()

	select {
	case err := <-errChan:
		return err
	case <-ctx.Done():
	}

	// Shutdown unblocks the long-lived SSE handlers by closing their
	// request contexts once the grace period runs out.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	if err := w.server.Shutdown(shutdownCtx); err != nil {
		w.log.Warn("Forcing HTTP server close", "error", err)
		return w.server.Close()
	}
	return nil
}
