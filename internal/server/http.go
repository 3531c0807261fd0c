package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/MKhiriev/go-device-trust/internal/logger"
)

const readHeaderTimeout = 10 * time.Second

type httpServer struct {
	server          *http.Server
	shutdownTimeout time.Duration

	listening chan struct{}
	addr      string

	logger *logger.Logger
}

func newHTTPServer(handler http.Handler, address string, shutdownTimeout time.Duration, log *logger.Logger) *httpServer {
	return &httpServer{
		server: &http.Server{
			Addr:              address,
			Handler:           handler,
			ReadHeaderTimeout: readHeaderTimeout,
		},
		shutdownTimeout: shutdownTimeout,
		listening:       make(chan struct{}),
		logger:          log,
	}
}

func (h *httpServer) Run(ctx context.Context) error {
	listener, err := net.Listen("tcp", h.server.Addr)
	if err != nil {
		close(h.listening)
		return fmt.Errorf("listen on %s: %w", h.server.Addr, err)
	}
	h.addr = listener.Addr().String()
	close(h.listening)

	h.logger.Info().Str("func", "httpServer.Run").Str("address", h.addr).Msg("Launching HTTP server")

	errCh := make(chan error, 1)
	go func() {
		errCh <- h.server.Serve(listener)
	}()

	select {
	case err = <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), h.shutdownTimeout)
	defer cancel()

	if err = h.server.Shutdown(shutdownCtx); err != nil {
		h.logger.Err(err).Str("func", "httpServer.Run").Msg("HTTP server Shutdown")
		return fmt.Errorf("shutdown: %w", err)
	}
	h.logger.Info().Str("func", "httpServer.Run").Msg("HTTP server Shutdown gracefully")
	return nil
}

// Addr blocks until the listener is bound. It is empty when binding failed.
func (h *httpServer) Addr() string {
	<-h.listening
	return h.addr
}
