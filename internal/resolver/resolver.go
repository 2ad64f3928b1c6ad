// Package resolver matches free-text player queries against a roster index
// using an ordered strategy chain and optional team hints.
package resolver

import (
	"sort"

	"github.com/preston-bernstein/fpl-squad-service/internal/domain/players"
	"github.com/preston-bernstein/fpl-squad-service/internal/normalize"
	"github.com/preston-bernstein/fpl-squad-service/internal/query"
	"github.com/preston-bernstein/fpl-squad-service/internal/roster"
)

// Outcome classifies a resolution.
type Outcome string

const (
	Found     Outcome = "found"
	Ambiguous Outcome = "ambiguous"
	NotFound  Outcome = "not_found"
)

// Result is the outcome of resolving one query.
type Result struct {
	Query    string           `json:"query"`
	TeamHint string           `json:"team_hint,omitempty"`
	Players  []players.Player `json:"players"`
	Strategy string           `json:"strategy,omitempty"`
	// HintApplied is set when the hint narrowed the match set.
	HintApplied bool `json:"hint_applied"`
	// HintIgnored is set when a hint was given for an ambiguous set but
	// matched none of its players.
	HintIgnored bool `json:"hint_ignored"`
}

// Outcome reports whether the result is a unique, ambiguous or empty match.
func (r Result) Outcome() Outcome {
	switch len(r.Players) {
	case 0:
		return NotFound
	case 1:
		return Found
	default:
		return Ambiguous
	}
}

// Player returns the resolved player when the match is unique.
func (r Result) Player() (players.Player, bool) {
	if len(r.Players) != 1 {
		return players.Player{}, false
	}
	return r.Players[0], true
}

// Labels renders each candidate for ambiguity listings.
func (r Result) Labels() []string {
	out := make([]string, 0, len(r.Players))
	for _, p := range r.Players {
		out = append(out, p.Label())
	}
	return out
}

// Resolver runs a strategy chain over one index. It holds no mutable state
// and is safe for concurrent use.
type Resolver struct {
	index      *roster.Index
	strategies []Strategy
}

// New returns a Resolver using the default strategy chain.
func New(ix *roster.Index) *Resolver {
	return NewWithStrategies(ix, DefaultStrategies())
}

// NewWithStrategies returns a Resolver using a custom chain.
func NewWithStrategies(ix *roster.Index, strategies []Strategy) *Resolver {
	return &Resolver{index: ix, strategies: strategies}
}

// Index returns the roster the resolver reads from.
func (r *Resolver) Index() *roster.Index {
	return r.index
}

// Resolve matches name against the roster. The first strategy that yields
// players wins; a non-empty hint then narrows an ambiguous set.
func (r *Resolver) Resolve(name, hint string) Result {
	res := Result{Query: name, TeamHint: hint}
	q := normalize.String(name)
	if q == "" {
		return res
	}

	for _, s := range r.strategies {
		matches := uniqueSorted(s.Match(r.index, q))
		if len(matches) == 0 {
			continue
		}
		res.Strategy = s.Name
		res.Players = matches
		break
	}

	if len(res.Players) > 1 && hint != "" {
		if filtered := FilterByTeam(res.Players, hint); len(filtered) > 0 {
			res.HintApplied = len(filtered) < len(res.Players)
			res.Players = filtered
		} else {
			res.HintIgnored = true
		}
	}
	return res
}

// ResolveQuery resolves a parsed input line.
func (r *Resolver) ResolveQuery(q query.Query) Result {
	return r.Resolve(q.Name, q.TeamHint)
}

// FilterByTeam keeps players whose team name, short name or code equals the
// normalized hint.
func FilterByTeam(list []players.Player, hint string) []players.Player {
	h := normalize.String(hint)
	if h == "" {
		return nil
	}
	var out []players.Player
	for _, p := range list {
		if h == normalize.String(p.TeamName) ||
			h == normalize.String(p.TeamShortName) ||
			h == normalize.String(p.TeamCode) {
			out = append(out, p)
		}
	}
	return out
}

func uniqueSorted(list []players.Player) []players.Player {
	if len(list) == 0 {
		return nil
	}
	seen := make(map[int]struct{}, len(list))
	out := make([]players.Player, 0, len(list))
	for _, p := range list {
		if _, ok := seen[p.ID]; ok {
			continue
		}
		seen[p.ID] = struct{}{}
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
