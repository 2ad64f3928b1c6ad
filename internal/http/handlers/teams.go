package handlers

import (
	"net/http"

	"github.com/preston-bernstein/fpl-squad-service/internal/domain/teams"
)

type teamsResponse struct {
	Count int          `json:"count"`
	Teams []teams.Team `json:"teams"`
}

// Teams lists every team ordered by id.
func (h *Handler) Teams(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet, h.logger) {
		return
	}
	list, err := h.teams.Teams()
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	if list == nil {
		list = []teams.Team{}
	}
	writeJSON(w, http.StatusOK, teamsResponse{Count: len(list), Teams: list}, h.logger)
}

// TeamByID returns a single team.
func (h *Handler) TeamByID(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet, h.logger) {
		return
	}
	id, ok := pathID(r.URL.Path, "/teams/")
	if !ok {
		writeError(w, r, http.StatusBadRequest, "invalid team id", h.logger)
		return
	}
	team, found, err := h.teams.TeamByID(id)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	if !found {
		writeError(w, r, http.StatusNotFound, "team not found", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, team, h.logger)
}
