// Package squad checks a resolved squad against fantasy league structure
// rules. Violations are reported as data; Validate never fails.
package squad

import (
	"github.com/shopspring/decimal"

	"github.com/preston-bernstein/fpl-squad-service/internal/domain/players"
)

// DefaultBudget is the standard squad budget in millions.
var DefaultBudget = decimal.NewFromInt(100)

// Rules describes the structural constraints of a squad.
type Rules struct {
	Size       int
	Quotas     map[players.Position]int
	MaxPerClub int
}

// DefaultRules returns the standard 15-player, 2/5/5/3, three-per-club rules.
func DefaultRules() Rules {
	return Rules{
		Size: 15,
		Quotas: map[players.Position]int{
			players.GK:  2,
			players.DEF: 5,
			players.MID: 5,
			players.FWD: 3,
		},
		MaxPerClub: 3,
	}
}

// Validate checks squad against the default rules.
func Validate(squad []players.Player, budget decimal.Decimal) Report {
	return DefaultRules().Validate(squad, budget)
}
