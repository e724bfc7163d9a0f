package middleware

import (
	"net/http"

	"github.com/rlbaker/todoservice/internal/ident"
	"github.com/rlbaker/todoservice/internal/platform/logger"
)

// RequestScope establishes the per-request correlation scope. Every
// inbound request gets a fresh correlation id and an empty field map;
// both live only for the duration of the request. This middleware should
// be applied before any handler or middleware that reads the scope.
func RequestScope(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := ident.NewRequestID()
		ctx := logger.WithRequestScope(r.Context(), requestID)

		// Echo the id so clients can correlate their traffic with logs.
		w.Header().Set("X-Request-ID", requestID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
