package http

import (
	"net/http"
	"time"

	"github.com/MKhiriev/go-device-trust/internal/logger"
)

// withLogging writes one access log line per request. Device keys and
// tokens stay out of it; only their presence is recorded.
func (h *Handler) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)
		start := time.Now()

		lw := &responseWriter{ResponseWriter: w}
		next.ServeHTTP(lw, r)

		status := lw.status
		if status == 0 {
			status = http.StatusOK
		}

		log.Info().
			Str("uri", r.RequestURI).
			Str("method", r.Method).
			Int("status", status).
			Dur("duration", time.Since(start)).
			Int("size", lw.size).
			Bool("device_key", r.Header.Get(deviceKeyHeader) != "").
			Bool("bearer", r.Header.Get(authorizationHeader) != "").
			Send()
	})
}
