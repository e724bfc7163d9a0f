package shared

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/rlbaker/todoservice/internal/platform/logger"
)

// ErrorResponse defines the standard error response structure.
type ErrorResponse struct {
	Error     string `json:"error"`
	Code      int    `json:"-"` // Not serialized to JSON, used for logging
	RequestID string `json:"request_id,omitempty"`
}

// RespondWithJSON writes a JSON response with the given status code and data.
func RespondWithJSON(w http.ResponseWriter, r *http.Request, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode JSON response", "error", err)
	}
}

// RespondWithError writes a JSON error response with the given status code
// and message. The response carries the request's correlation id so
// clients can quote it when reporting problems.
func RespondWithError(w http.ResponseWriter, r *http.Request, status int, message string) {
	requestID := logger.RequestID(r.Context())

	errorResponse := ErrorResponse{
		Error:     message,
		Code:      status,
		RequestID: requestID,
	}

	RespondWithJSON(w, r, status, errorResponse)
}
