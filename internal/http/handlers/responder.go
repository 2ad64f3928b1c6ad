package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/fpl-squad-service/internal/app/fixtures"
	"github.com/preston-bernstein/fpl-squad-service/internal/http/middleware"
	"github.com/preston-bernstein/fpl-squad-service/internal/logging"
	"github.com/preston-bernstein/fpl-squad-service/internal/providers"
	"github.com/preston-bernstein/fpl-squad-service/internal/roster"
)

type errorBody struct {
	Error     string   `json:"error"`
	Details   []string `json:"details,omitempty"`
	RequestID string   `json:"request_id,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logging.Error(logger, "failed to encode response", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, message string, logger *slog.Logger, details ...string) {
	reqID := middleware.RequestIDFromContext(r.Context())
	if reqID == "" {
		reqID = r.Header.Get(middleware.HeaderRequestID)
	}
	writeJSON(w, status, errorBody{Error: message, Details: details, RequestID: reqID}, logger)
}

// writeServiceError maps service errors onto status codes.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error, logger *slog.Logger) {
	switch {
	case errors.Is(err, roster.ErrNotLoaded):
		writeError(w, r, http.StatusServiceUnavailable, "roster not loaded", logger)
		return
	case errors.Is(err, fixtures.ErrNotLoaded):
		writeError(w, r, http.StatusServiceUnavailable, "fixtures not loaded", logger)
		return
	case errors.Is(err, providers.ErrUnsupported):
		writeError(w, r, http.StatusNotImplemented, "not supported by the configured provider", logger)
		return
	}
	logging.Error(loggerFromContext(r, logger), "request failed", err)
	writeError(w, r, http.StatusInternalServerError, "internal error", logger)
}

func requireMethod(w http.ResponseWriter, r *http.Request, method string, logger *slog.Logger) bool {
	if r.Method == method {
		return true
	}
	w.Header().Set("Allow", method)
	writeError(w, r, http.StatusMethodNotAllowed, "method not allowed", logger)
	return false
}

func loggerFromContext(r *http.Request, fallback *slog.Logger) *slog.Logger {
	if r == nil {
		return fallback
	}
	return logging.FromContext(r.Context(), fallback)
}
