package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/preston-bernstein/fpl-squad-service/internal/app/fixtures"
	"github.com/preston-bernstein/fpl-squad-service/internal/app/players"
	"github.com/preston-bernstein/fpl-squad-service/internal/app/squads"
	"github.com/preston-bernstein/fpl-squad-service/internal/app/teams"
	"github.com/preston-bernstein/fpl-squad-service/internal/poller"
	"github.com/preston-bernstein/fpl-squad-service/internal/store"
)

// Options collects the Handler dependencies. Fixtures, Status, Info and
// FixturesInfo are optional.
type Options struct {
	Players      *players.Service
	Teams        *teams.Service
	Squads       *squads.Service
	Fixtures     *fixtures.Service
	Status       func() poller.Status
	Info         func() store.Info
	FixturesInfo func() store.FixtureInfo
	Logger       *slog.Logger
}

// Handler wires HTTP routes to the app services.
type Handler struct {
	players        *players.Service
	teams          *teams.Service
	squads         *squads.Service
	fixtures       *fixtures.Service
	statusFn       func() poller.Status
	infoFn         func() store.Info
	fixturesInfoFn func() store.FixtureInfo
	logger         *slog.Logger
	validate       *validator.Validate
}

// NewHandler constructs a Handler with defaults.
func NewHandler(opts Options) *Handler {
	return &Handler{
		players:        opts.Players,
		teams:          opts.Teams,
		squads:         opts.Squads,
		fixtures:       opts.Fixtures,
		statusFn:       opts.Status,
		infoFn:         opts.Info,
		fixturesInfoFn: opts.FixturesInfo,
		logger:         opts.Logger,
		validate:       newValidator(),
	}
}

// ServeHTTP dispatches on path so the handler can be mounted without a mux.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	switch {
	case r.URL.Path == "/health":
		h.Health(w, r)
	case r.URL.Path == "/ready":
		h.Ready(w, r)
	case r.URL.Path == "/roster":
		h.Roster(w, r)
	case r.URL.Path == "/teams":
		h.Teams(w, r)
	case strings.HasPrefix(r.URL.Path, "/teams/"):
		h.TeamByID(w, r)
	case r.URL.Path == "/players":
		h.Players(w, r)
	case strings.HasPrefix(r.URL.Path, "/players/"):
		h.PlayerByID(w, r)
	case r.URL.Path == "/fixtures":
		h.Fixtures(w, r)
	case strings.HasPrefix(r.URL.Path, "/fixtures/"):
		h.FixtureByID(w, r)
	case r.URL.Path == "/squads/validate":
		h.ValidateSquad(w, r)
	default:
		writeError(w, r, http.StatusNotFound, "not found", h.logger)
	}
}

// Health reports the service health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet, h.logger) {
		return
	}
	if err := r.Context().Err(); err != nil {
		writeError(w, r, http.StatusServiceUnavailable, "shutting down", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, h.logger)
}

// Ready reports readiness for traffic. A roster must be loaded and the
// poller, when present, must not be failing repeatedly.
func (h *Handler) Ready(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet, h.logger) {
		return
	}
	if h.players != nil {
		if _, err := h.players.Index(); err != nil {
			writeError(w, r, http.StatusServiceUnavailable, "roster not loaded", h.logger)
			return
		}
	}
	if h.statusFn == nil {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	status := h.statusFn()
	if status.IsReady() {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ready"}, h.logger)
		return
	}
	msg := status.LastError
	if msg == "" {
		msg = "not ready"
	}
	writeError(w, r, http.StatusServiceUnavailable, msg, h.logger)
}

type rosterResponse struct {
	Roster   store.Info         `json:"roster"`
	Poller   *poller.Status     `json:"poller,omitempty"`
	Fixtures *store.FixtureInfo `json:"fixtures,omitempty"`
}

// Roster describes the loaded roster and the refresh loop.
func (h *Handler) Roster(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet, h.logger) {
		return
	}
	if h.infoFn == nil {
		writeError(w, r, http.StatusServiceUnavailable, "roster not loaded", h.logger)
		return
	}
	resp := rosterResponse{Roster: h.infoFn()}
	if h.statusFn != nil {
		status := h.statusFn()
		resp.Poller = &status
	}
	if h.fixturesInfoFn != nil {
		info := h.fixturesInfoFn()
		resp.Fixtures = &info
	}
	writeJSON(w, http.StatusOK, resp, h.logger)
}
