package handlers

import (
	"context"
	"crypto/subtle"
	"log/slog"
	"net/http"

	"github.com/preston-bernstein/fpl-squad-service/internal/http/requestutil"
	"github.com/preston-bernstein/fpl-squad-service/internal/logging"
	"github.com/preston-bernstein/fpl-squad-service/internal/poller"
)

// Refresher reloads the roster on demand.
type Refresher interface {
	Refresh(ctx context.Context) error
	Status() poller.Status
}

// AdminHandler exposes admin-only endpoints.
type AdminHandler struct {
	refresher Refresher
	token     string
	logger    *slog.Logger
}

// NewAdminHandler constructs an AdminHandler. An empty token rejects every request.
func NewAdminHandler(refresher Refresher, token string, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{
		refresher: refresher,
		token:     token,
		logger:    logger,
	}
}

// RefreshRoster fetches the bootstrap now instead of waiting for the next tick.
func (h *AdminHandler) RefreshRoster(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodPost, h.logger) {
		return
	}
	if !h.authorize(r) {
		logging.Warn(h.logger, "admin unauthorized",
			slog.String(logging.FieldPath, r.URL.Path),
			slog.String("client_ip", requestutil.ClientIP(r)),
		)
		writeError(w, r, http.StatusUnauthorized, "unauthorized", h.logger)
		return
	}
	if h.refresher == nil {
		writeError(w, r, http.StatusServiceUnavailable, "refresh not configured", h.logger)
		return
	}

	logger := loggerFromContext(r, h.logger)
	if err := h.refresher.Refresh(r.Context()); err != nil {
		logging.Warn(logger, "admin refresh failed", slog.Any(logging.FieldError, err))
		writeError(w, r, http.StatusBadGateway, "failed to refresh roster", logger)
		return
	}

	status := h.refresher.Status()
	writeJSON(w, http.StatusOK, map[string]any{
		"status":         "ok",
		"roster_version": status.RosterVersion,
		"last_change":    status.LastChange,
	}, logger)
	logging.Info(logger, "admin refresh complete", slog.String(logging.FieldRoster, status.RosterVersion))
}

func (h *AdminHandler) authorize(r *http.Request) bool {
	if h.token == "" {
		return false
	}
	got := r.Header.Get("Authorization")
	return subtle.ConstantTimeCompare([]byte(got), []byte("Bearer "+h.token)) == 1
}
