package players

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Position is the squad slot a player occupies.
type Position string

const (
	GK      Position = "GK"
	DEF     Position = "DEF"
	MID     Position = "MID"
	FWD     Position = "FWD"
	Unknown Position = "UNKNOWN"
)

// Positions lists the recognized squad positions in display order.
var Positions = []Position{GK, DEF, MID, FWD}

// ParsePosition maps an FPL element-type code (short or long form) to a Position.
func ParsePosition(code string) Position {
	switch strings.ToUpper(strings.TrimSpace(code)) {
	case "GK", "GKP", "GOALKEEPER":
		return GK
	case "DEF", "DEFENDER":
		return DEF
	case "MID", "MIDFIELDER":
		return MID
	case "FWD", "FORWARD":
		return FWD
	default:
		return Unknown
	}
}

// Known reports whether p is one of the four squad positions.
func (p Position) Known() bool {
	switch p {
	case GK, DEF, MID, FWD:
		return true
	}
	return false
}

// Player is an immutable roster entry with its team fields denormalized.
type Player struct {
	ID            int                 `json:"id"`
	WebName       string              `json:"web_name"`
	FirstName     string              `json:"first_name"`
	SecondName    string              `json:"second_name"`
	Position      Position            `json:"position"`
	PositionCode  string              `json:"position_code"`
	Cost          decimal.NullDecimal `json:"cost"`
	TeamID        int                 `json:"team_id"`
	TeamName      string              `json:"team_name"`
	TeamShortName string              `json:"team_short_name"`
	TeamCode      string              `json:"team_code"`
	TotalPoints   int                 `json:"total_points"`
	Status        string              `json:"status,omitempty"`
	Stats         Stats               `json:"scoring_stats"`
	Keys          NameKeys            `json:"-"`
}

// NameKeys holds the normalized name variants computed once at index build.
type NameKeys struct {
	Web    string
	Full   string
	Second string
	First  string
}

// FullName joins first and second names.
func (p Player) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.SecondName)
}

// Label renders the player the way ambiguity listings show it.
func (p Player) Label() string {
	return p.FullName() + " (" + p.WebName + ")"
}

// Priced reports whether the roster carried a numeric cost for the player.
func (p Player) Priced() bool {
	return p.Cost.Valid
}

// CostOrZero returns the cost in millions, or zero for unpriced players.
func (p Player) CostOrZero() decimal.Decimal {
	if !p.Cost.Valid {
		return decimal.Zero
	}
	return p.Cost.Decimal
}

// HasTeam reports whether the player references a club.
func (p Player) HasTeam() bool {
	return p.TeamID != 0
}
