package handlers

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/preston-bernstein/fpl-squad-service/internal/app/players"
	domain "github.com/preston-bernstein/fpl-squad-service/internal/domain/players"
	"github.com/preston-bernstein/fpl-squad-service/internal/resolver"
)

type playersResponse struct {
	Count   int             `json:"count"`
	Players []domain.Player `json:"players"`
}

type resolveResponse struct {
	Query       string           `json:"query"`
	TeamHint    string           `json:"team_hint,omitempty"`
	Outcome     resolver.Outcome `json:"outcome"`
	Strategy    string           `json:"strategy,omitempty"`
	Players     []domain.Player  `json:"players"`
	Candidates  []string         `json:"candidates,omitempty"`
	HintApplied bool             `json:"hint_applied"`
	HintIgnored bool             `json:"hint_ignored"`
}

func newResolveResponse(res resolver.Result) resolveResponse {
	resp := resolveResponse{
		Query:       res.Query,
		TeamHint:    res.TeamHint,
		Outcome:     res.Outcome(),
		Strategy:    res.Strategy,
		Players:     res.Players,
		HintApplied: res.HintApplied,
		HintIgnored: res.HintIgnored,
	}
	if resp.Players == nil {
		resp.Players = []domain.Player{}
	}
	if resp.Outcome == resolver.Ambiguous {
		resp.Candidates = res.Labels()
	}
	return resp
}

// Players resolves ?q= (with an optional ?team= hint) or, without q, lists
// players filtered by ?team= and ?position=.
func (h *Handler) Players(w http.ResponseWriter, r *http.Request) {
	if !requireMethod(w, r, http.MethodGet, h.logger) {
		return
	}
	params := r.URL.Query()
	team := strings.TrimSpace(params.Get("team"))

	if q, ok := params["q"]; ok {
		name := strings.TrimSpace(strings.Join(q, " "))
		if name == "" {
			writeError(w, r, http.StatusBadRequest, "query must not be empty", h.logger)
			return
		}
		res, err := h.players.Resolve(name, team)
		if err != nil {
			writeServiceError(w, r, err, h.logger)
			return
		}
		writeJSON(w, http.StatusOK, newResolveResponse(res), h.logger)
		return
	}

	filter := players.Filter{Team: team}
	if raw := strings.TrimSpace(params.Get("position")); raw != "" {
		filter.Position = domain.ParsePosition(raw)
		if !filter.Position.Known() {
			writeError(w, r, http.StatusBadRequest, "invalid position (expected GK, DEF, MID or FWD)", h.logger)
			return
		}
	}
	list, err := h.players.Players(filter)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	if list == nil {
		list = []domain.Player{}
	}
	writeJSON(w, http.StatusOK, playersResponse{Count: len(list), Players: list}, h.logger)
}

// PlayerByID returns a specific player if present. Paths ending in
// /history are served by PlayerHistory.
func (h *Handler) PlayerByID(w http.ResponseWriter, r *http.Request) {
	if strings.HasSuffix(r.URL.Path, historySuffix) {
		h.PlayerHistory(w, r)
		return
	}
	if !requireMethod(w, r, http.MethodGet, h.logger) {
		return
	}
	id, ok := pathID(r.URL.Path, "/players/")
	if !ok {
		writeError(w, r, http.StatusBadRequest, "invalid player id", h.logger)
		return
	}
	p, found, err := h.players.PlayerByID(id)
	if err != nil {
		writeServiceError(w, r, err, h.logger)
		return
	}
	if !found {
		writeError(w, r, http.StatusNotFound, "player not found", h.logger)
		return
	}
	writeJSON(w, http.StatusOK, p, h.logger)
}

// pathID extracts a positive integer id from /prefix/{id}.
func pathID(path, prefix string) (int, bool) {
	raw, err := url.PathUnescape(strings.TrimPrefix(path, prefix))
	if err != nil || raw == "" || strings.ContainsAny(raw, " \t/") {
		return 0, false
	}
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
