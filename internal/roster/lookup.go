package roster

import (
	"github.com/preston-bernstein/fpl-squad-service/internal/domain/players"
	"github.com/preston-bernstein/fpl-squad-service/internal/domain/teams"
)

// Version identifies the roster content the index was built from.
func (ix *Index) Version() string {
	if ix == nil {
		return ""
	}
	return ix.version
}

// Len returns the number of indexed players.
func (ix *Index) Len() int {
	if ix == nil {
		return 0
	}
	return len(ix.players)
}

// Players returns a copy of all players in roster order.
func (ix *Index) Players() []players.Player {
	if ix == nil {
		return nil
	}
	out := make([]players.Player, len(ix.players))
	copy(out, ix.players)
	return out
}

// Player returns a player by id.
func (ix *Index) Player(id int) (players.Player, bool) {
	if ix == nil {
		return players.Player{}, false
	}
	pos, ok := ix.byID[id]
	if !ok {
		return players.Player{}, false
	}
	return ix.players[pos], true
}

// Teams returns all teams ordered by id.
func (ix *Index) Teams() []teams.Team {
	if ix == nil {
		return nil
	}
	out := make([]teams.Team, 0, len(ix.teamIDs))
	for _, id := range ix.teamIDs {
		out = append(out, ix.teams[id])
	}
	return out
}

// Team returns a team by id.
func (ix *Index) Team(id int) (teams.Team, bool) {
	if ix == nil {
		return teams.Team{}, false
	}
	t, ok := ix.teams[id]
	return t, ok
}

// Position returns the short code for an element type, or "" when unknown.
func (ix *Index) Position(typeID int) string {
	if ix == nil {
		return ""
	}
	return ix.positions[typeID]
}

// Exact returns players whose web, full or surname key equals key.
func (ix *Index) Exact(key string) []players.Player {
	if ix == nil {
		return nil
	}
	return ix.collect(ix.exact[key])
}

// Candidates returns players that have key among any of their name variants,
// first name included.
func (ix *Index) Candidates(key string) []players.Player {
	if ix == nil {
		return nil
	}
	return ix.collect(ix.candidates[key])
}

// Vocabulary returns the sorted set of candidate keys. Callers must not
// modify the returned slice.
func (ix *Index) Vocabulary() []string {
	if ix == nil {
		return nil
	}
	return ix.vocabulary
}

// Unpriced returns the ids of players without a numeric cost.
func (ix *Index) Unpriced() []int {
	if ix == nil {
		return nil
	}
	out := make([]int, len(ix.unpriced))
	copy(out, ix.unpriced)
	return out
}

// Each calls fn for every player in roster order until fn returns false.
func (ix *Index) Each(fn func(players.Player) bool) {
	if ix == nil {
		return
	}
	for i := range ix.players {
		if !fn(ix.players[i]) {
			return
		}
	}
}

func (ix *Index) collect(list []int) []players.Player {
	if len(list) == 0 {
		return nil
	}
	out := make([]players.Player, 0, len(list))
	for _, pos := range list {
		out = append(out, ix.players[pos])
	}
	return out
}

// Skipped returns how many bootstrap entries were dropped, either because
// they did not decode or because they carried no id.
func (ix *Index) Skipped() int {
	if ix == nil {
		return 0
	}
	return ix.skipped
}
