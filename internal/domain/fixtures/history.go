package fixtures

import (
	"encoding/json"
	"fmt"
	"io"
	"time"
)

// HistoryEntry is one match a player took part in, from element-summary.
// Value is the player's price at the time in tenths of a million.
type HistoryEntry struct {
	Element       int  `json:"element"`
	Fixture       int  `json:"fixture"`
	OpponentTeam  int  `json:"opponent_team"`
	Round         int  `json:"round"`
	WasHome       bool `json:"was_home"`
	TotalPoints   int  `json:"total_points"`
	Minutes       int  `json:"minutes"`
	GoalsScored   int  `json:"goals_scored"`
	Assists       int  `json:"assists"`
	CleanSheets   int  `json:"clean_sheets"`
	GoalsConceded int  `json:"goals_conceded"`
	Saves         int  `json:"saves"`
	Bonus         int  `json:"bonus"`
	BPS           int  `json:"bps"`
	YellowCards   int  `json:"yellow_cards"`
	RedCards      int  `json:"red_cards"`
	Value         int  `json:"value"`
}

// HistoryRow is a HistoryEntry tagged with its player and placed on the
// fixture calendar.
type HistoryRow struct {
	HistoryEntry
	PlayerID           int        `json:"player_id"`
	PlayerName         string     `json:"player_name"`
	FixtureEvent       *int       `json:"fixture_event"`
	FixtureKickoffTime *time.Time `json:"fixture_kickoff_time"`
}

// DecodeSummary reads the history array of an element-summary document,
// dropping entries that fail to decode.
func DecodeSummary(r io.Reader) ([]HistoryEntry, error) {
	var doc struct {
		History []json.RawMessage `json:"history"`
	}
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode element summary: %w", err)
	}
	out := make([]HistoryEntry, 0, len(doc.History))
	for _, entry := range doc.History {
		var h HistoryEntry
		if err := json.Unmarshal(entry, &h); err != nil {
			continue
		}
		out = append(out, h)
	}
	return out, nil
}

// JoinHistory places each entry on the fixture calendar. When the fixture is
// unknown the event falls back to the entry's round and the kickoff stays nil.
func JoinHistory(playerID int, playerName string, entries []HistoryEntry, calendar map[int]MapEntry) []HistoryRow {
	rows := make([]HistoryRow, 0, len(entries))
	for _, h := range entries {
		row := HistoryRow{HistoryEntry: h, PlayerID: playerID, PlayerName: playerName}
		if fx, ok := calendar[h.Fixture]; ok && h.Fixture != 0 {
			row.FixtureEvent = fx.Event
			row.FixtureKickoffTime = fx.KickoffTime
		} else if h.Round != 0 {
			round := h.Round
			row.FixtureEvent = &round
		}
		rows = append(rows, row)
	}
	return rows
}
