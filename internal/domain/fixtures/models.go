// Package fixtures holds the season fixture list and per-player match
// history as FPL publishes them.
package fixtures

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"
)

// Fixture is one scheduled or played match. Event is nil for fixtures that
// have not been assigned a gameweek yet.
type Fixture struct {
	ID          int        `json:"id"`
	Event       *int       `json:"event"`
	KickoffTime *time.Time `json:"kickoff_time"`
	TeamH       int        `json:"team_h"`
	TeamA       int        `json:"team_a"`
	TeamHScore  *int       `json:"team_h_score"`
	TeamAScore  *int       `json:"team_a_score"`
	Finished    bool       `json:"finished"`
}

type rawFixture struct {
	ID          *int    `json:"id"`
	Event       *int    `json:"event"`
	KickoffTime *string `json:"kickoff_time"`
	TeamH       int     `json:"team_h"`
	TeamA       int     `json:"team_a"`
	TeamHScore  *int    `json:"team_h_score"`
	TeamAScore  *int    `json:"team_a_score"`
	Finished    bool    `json:"finished"`
}

// Involves reports whether teamID plays in the fixture.
func (f Fixture) Involves(teamID int) bool {
	return f.TeamH == teamID || f.TeamA == teamID
}

// Decode reads an FPL /fixtures/ array. Entries that fail to decode or carry
// no id are dropped and counted; an unparsable kickoff leaves KickoffTime nil.
func Decode(r io.Reader) ([]Fixture, int, error) {
	var raw []json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, 0, fmt.Errorf("decode fixtures: %w", err)
	}
	out := make([]Fixture, 0, len(raw))
	skipped := 0
	for _, entry := range raw {
		var rf rawFixture
		if err := json.Unmarshal(entry, &rf); err != nil || rf.ID == nil {
			skipped++
			continue
		}
		out = append(out, Fixture{
			ID:          *rf.ID,
			Event:       rf.Event,
			KickoffTime: ParseKickoff(rf.KickoffTime),
			TeamH:       rf.TeamH,
			TeamA:       rf.TeamA,
			TeamHScore:  rf.TeamHScore,
			TeamAScore:  rf.TeamAScore,
			Finished:    rf.Finished,
		})
	}
	SortByID(out)
	return out, skipped, nil
}

// ParseKickoff parses an RFC 3339 kickoff into UTC. Empty or malformed
// values yield nil.
func ParseKickoff(raw *string) *time.Time {
	if raw == nil || *raw == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, *raw)
	if err != nil {
		return nil
	}
	t = t.UTC()
	return &t
}

// SortByID orders fixtures by id in place.
func SortByID(list []Fixture) {
	sort.Slice(list, func(i, j int) bool { return list[i].ID < list[j].ID })
}

// MapEntry is the per-fixture summary keyed by fixture id.
type MapEntry struct {
	Event       *int       `json:"event"`
	KickoffTime *time.Time `json:"kickoff_time"`
	TeamH       int        `json:"team_h"`
	TeamA       int        `json:"team_a"`
}

// BuildMap indexes fixtures by id. Later duplicates overwrite earlier ones.
func BuildMap(list []Fixture) map[int]MapEntry {
	m := make(map[int]MapEntry, len(list))
	for _, f := range list {
		m[f.ID] = MapEntry{
			Event:       f.Event,
			KickoffTime: f.KickoffTime,
			TeamH:       f.TeamH,
			TeamA:       f.TeamA,
		}
	}
	return m
}

// IntPtr is a convenience for building fixtures with optional fields.
func IntPtr(v int) *int {
	return &v
}
