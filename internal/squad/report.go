package squad

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/preston-bernstein/fpl-squad-service/internal/domain/players"
)

// Violation kinds.
const (
	KindSize     = "size"
	KindPosition = "position"
	KindClub     = "club"
	KindBudget   = "budget"
)

// Violation is one failed rule.
type Violation struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// Report summarizes a squad and lists the rules it breaks.
type Report struct {
	TotalPlayers   int                      `json:"total_players"`
	TotalCost      decimal.Decimal          `json:"total_cost"`
	Budget         decimal.Decimal          `json:"budget"`
	PositionCounts map[players.Position]int `json:"position_counts"`
	ClubCounts     map[int]int              `json:"club_counts"`
	Violations     []Violation              `json:"violations"`
}

// Valid reports whether no rule was broken.
func (r Report) Valid() bool {
	return len(r.Violations) == 0
}

// Messages returns the violation messages in order.
func (r Report) Messages() []string {
	out := make([]string, 0, len(r.Violations))
	for _, v := range r.Violations {
		out = append(out, v.Message)
	}
	return out
}

// Validate aggregates squad and checks it against r. Violations are ordered
// size, positions, clubs by ascending team id, budget.
func (r Rules) Validate(squad []players.Player, budget decimal.Decimal) Report {
	rep := Report{
		TotalPlayers:   len(squad),
		TotalCost:      decimal.Zero,
		Budget:         budget,
		PositionCounts: map[players.Position]int{players.Unknown: 0},
		ClubCounts:     map[int]int{},
		Violations:     []Violation{},
	}
	for _, pos := range players.Positions {
		rep.PositionCounts[pos] = 0
	}

	for _, p := range squad {
		rep.TotalCost = rep.TotalCost.Add(p.CostOrZero())
		pos := p.Position
		if !pos.Known() {
			pos = players.Unknown
		}
		rep.PositionCounts[pos]++
		if p.HasTeam() {
			rep.ClubCounts[p.TeamID]++
		}
	}

	if rep.TotalPlayers != r.Size {
		rep.add(KindSize, fmt.Sprintf("Squad size must be %d (found %d)", r.Size, rep.TotalPlayers))
	}
	for _, pos := range players.Positions {
		want, ok := r.Quotas[pos]
		if !ok {
			continue
		}
		if got := rep.PositionCounts[pos]; got != want {
			rep.add(KindPosition, fmt.Sprintf("Position %s must be %d (found %d)", pos, want, got))
		}
	}

	clubs := make([]int, 0, len(rep.ClubCounts))
	for id := range rep.ClubCounts {
		clubs = append(clubs, id)
	}
	sort.Ints(clubs)
	for _, id := range clubs {
		if n := rep.ClubCounts[id]; n > r.MaxPerClub {
			rep.add(KindClub, fmt.Sprintf("More than %d players from the same club (team_id=%d: %d)", r.MaxPerClub, id, n))
		}
	}

	if rep.TotalCost.GreaterThan(budget) {
		rep.add(KindBudget, fmt.Sprintf("Total squad cost %s > budget %s", rep.TotalCost.StringFixed(1), budget.StringFixed(1)))
	}
	return rep
}

func (r *Report) add(kind, msg string) {
	r.Violations = append(r.Violations, Violation{Kind: kind, Message: msg})
}
