package middleware

import (
	"log/slog"
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/rlbaker/todoservice/internal/platform/logger"
)

// NewCanonicalLogger returns middleware that emits exactly one structured
// summary log line per request: correlation id, method, URI, client
// address, final status, elapsed milliseconds, and every field
// accumulated on the request scope. The line is emitted from a deferred
// function, so it fires once regardless of how many errors occurred while
// servicing the request, even when a panic was recovered further down the
// chain.
func NewCanonicalLogger(log *slog.Logger) func(http.Handler) http.Handler {
	if log == nil {
		log = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			defer func() {
				status := ww.Status()
				if status == 0 {
					// Handler wrote nothing; net/http sends 200.
					status = http.StatusOK
				}

				attrs := []slog.Attr{
					slog.String("request_id", logger.RequestID(r.Context())),
					slog.String("method", r.Method),
					slog.String("uri", r.RequestURI),
					slog.String("remote_addr", r.RemoteAddr),
					slog.Int("status", status),
					slog.Float64("elapsed_ms", float64(time.Since(start).Nanoseconds())/1e6),
				}
				for k, v := range logger.Fields(r.Context()) {
					attrs = append(attrs, slog.Any(k, v))
				}

				log.LogAttrs(r.Context(), slog.LevelInfo, "request completed", attrs...)
			}()

			next.ServeHTTP(ww, r)
		})
	}
}
