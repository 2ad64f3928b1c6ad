package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/preston-bernstein/fpl-squad-service/internal/app/fixtures"
	domainfixtures "github.com/preston-bernstein/fpl-squad-service/internal/domain/fixtures"
	"github.com/preston-bernstein/fpl-squad-service/internal/logging"
	"github.com/preston-bernstein/fpl-squad-service/internal/providers"
	"github.com/preston-bernstein/fpl-squad-service/internal/roster"
)

const historySuffix = "/history"

type fixturesResponse struct {
	Count    int             `json:"count"`
	Fixtures []fixtures.View `json:"fixtures"`
}

type historyResponse struct {
	PlayerID int                         `json:"player_id"`
	Count    int                         `json:"count"`
	History  []domainfixtures.HistoryRow `json:"history"`
}

// Fixtures lists the calendar, optionally filtered by ?event= and ?team=
// (an id, name, short name or code).
func (h *Handler) Fixtures(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet, h.logger) {
		return
	}
	if h.fixtures == nil {
		writeServiceError(w, r, fixtures.ErrNotLoaded, h.logger)
		return
	}
	params := r.URL.Query()
	var filter fixtures.Filter
	if raw := strings.TrimSpace(params.Get("event")); raw != "" {
		event, err := strconv.Atoi(raw)
		if err != nil || event <= 0 {
			writeError(w, r, http.StatusBadRequest, "invalid event", h.logger)
			return
		}
		filter.Event = event
	}
	if raw := strings.TrimSpace(params.Get("team")); raw != "" {
		id, found, err := h.teamID(raw)
		if err != nil {
			writeServiceError(w, r, err, h.logger)
			return
		}
		if !found {
			writeJSON(w, http.StatusOK, fixturesResponse{Fixtures: []fixtures.View{}}, h.logger)
			return
		}
		filter.TeamID = id
	}
	list, err := h.fixtures.Fixtures(filter)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	writeJSON(w, http.StatusOK, fixturesResponse{Count: len(list), Fixtures: list}, h.logger)
}

// FixtureByID returns a single fixture.
func (h *Handler) FixtureByID(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet, h.logger) {
		return
	}
	id, ok := pathID(r.URL.Path, "/fixtures/")
	if !ok {
		writeError(w, r, http.StatusBadRequest, "invalid fixture id", h.logger)
		return
	}
	if h.fixtures == nil {
		writeServiceError(w, r, fixtures.ErrNotLoaded, h.logger)
		return
	}
	fx, found, err := h.fixtures.Fixture(id)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	if !found {
		writeError(w, r, http.StatusNotFound, "fixture not found", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, fx, h.logger)
}

// PlayerHistory returns the player's per-match history placed on the
// fixture calendar.
func (h *Handler) PlayerHistory(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet, h.logger) {
		return
	}
	id, ok := pathID(strings.TrimSuffix(r.URL.Path, historySuffix), "/players/")
	if !ok {
		writeError(w, r, http.StatusBadRequest, "invalid player id", h.logger)
		return
	}
	if h.fixtures == nil {
		writeServiceError(w, r, providers.ErrUnsupported, h.logger)
		return
	}
	rows, found, err := h.fixtures.PlayerHistory(r.Context(), id)
	switch {
	case err == nil:
	case errors.Is(err, roster.ErrNotLoaded), errors.Is(err, providers.ErrUnsupported):
		writeServiceError(w, r, err, h.logger)
		return
	default:
		logging.Warn(loggerFromContext(r, h.logger), "player history fetch failed",
			logging.FieldPlayerID, id,
			logging.FieldError, err,
		)
		writeError(w, r, http.StatusBadGateway, "upstream history unavailable", h.logger)
		return
	}
	if !found {
		writeError(w, r, http.StatusNotFound, "player not found", h.logger)
		return
	}
	if rows == nil {
		rows = []domainfixtures.HistoryRow{}
	}
	writeJSON(w, http.StatusOK, historyResponse{PlayerID: id, Count: len(rows), History: rows}, h.logger)
}

// teamID resolves a numeric id first and falls back to a name lookup.
func (h *Handler) teamID(raw string) (int, bool, error) {
	if h.teams == nil {
		return 0, false, roster.ErrNotLoaded
	}
	if id, err := strconv.Atoi(raw); err == nil && id > 0 {
		if _, found, err := h.teams.TeamByID(id); err != nil || found {
			return id, found, err
		}
	}
	t, found, err := h.teams.Lookup(raw)
	return t.ID, found, err
}
