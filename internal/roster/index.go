// Package roster builds the immutable lookup structures the resolver and
// validator read from. An Index is built once per roster snapshot and is
// safe for concurrent readers.
package roster

import (
	"encoding/json"
	"errors"
	"sort"
	"strconv"

	"github.com/cespare/xxhash/v2"

	"github.com/preston-bernstein/fpl-squad-service/internal/domain/bootstrap"
	"github.com/preston-bernstein/fpl-squad-service/internal/domain/players"
	"github.com/preston-bernstein/fpl-squad-service/internal/domain/teams"
	"github.com/preston-bernstein/fpl-squad-service/internal/normalize"
)

// ErrNotLoaded is returned by services asked to read before the first roster
// has been indexed.
var ErrNotLoaded = errors.New("roster not loaded")

// Index is a read-only view over one roster snapshot.
type Index struct {
	version    string
	teams      map[int]teams.Team
	teamIDs    []int
	positions  map[int]string
	players    []players.Player
	byID       map[int]int
	exact      map[string][]int
	candidates map[string][]int
	vocabulary []string
	unpriced   []int
	skipped    int
}

// Build derives an Index from a raw bootstrap document. Entries without an id
// are skipped; missing collections simply produce a smaller index.
func Build(b bootstrap.Bootstrap) *Index {
	ix := &Index{
		version:    VersionOf(b),
		skipped:    b.Skipped.Total(),
		teams:      make(map[int]teams.Team, len(b.Teams)),
		positions:  make(map[int]string, len(b.ElementTypes)),
		byID:       make(map[int]int, len(b.Elements)),
		exact:      make(map[string][]int),
		candidates: make(map[string][]int),
	}

	for _, t := range b.Teams {
		if t.ID == nil {
			ix.skipped++
			continue
		}
		if _, dup := ix.teams[*t.ID]; dup {
			continue
		}
		ix.teams[*t.ID] = teams.Team{
			ID:        *t.ID,
			Name:      t.Name,
			ShortName: t.ShortName,
			Code:      string(t.Code),
		}
		ix.teamIDs = append(ix.teamIDs, *t.ID)
	}
	sort.Ints(ix.teamIDs)

	for _, et := range b.ElementTypes {
		if et.ID == nil {
			ix.skipped++
			continue
		}
		ix.positions[*et.ID] = et.SingularNameShort
	}

	for _, el := range b.Elements {
		if el.ID == nil {
			ix.skipped++
			continue
		}
		if _, dup := ix.byID[*el.ID]; dup {
			continue
		}
		p := ix.playerFrom(el)
		pos := len(ix.players)
		ix.players = append(ix.players, p)
		ix.byID[p.ID] = pos
		if !p.Priced() {
			ix.unpriced = append(ix.unpriced, p.ID)
		}

		for _, key := range []string{p.Keys.Web, p.Keys.Full, p.Keys.Second} {
			ix.exact[key] = appendUnique(ix.exact[key], pos, key)
		}
		for _, key := range []string{p.Keys.Web, p.Keys.Full, p.Keys.Second, p.Keys.First} {
			ix.candidates[key] = appendUnique(ix.candidates[key], pos, key)
		}
	}
	delete(ix.exact, "")
	delete(ix.candidates, "")

	for key, list := range ix.exact {
		ix.exact[key] = ix.sortByID(list)
	}
	for key, list := range ix.candidates {
		ix.candidates[key] = ix.sortByID(list)
		ix.vocabulary = append(ix.vocabulary, key)
	}
	sort.Strings(ix.vocabulary)
	return ix
}

func (ix *Index) playerFrom(el bootstrap.Element) players.Player {
	code := ix.positions[el.ElementType]
	p := players.Player{
		ID:           *el.ID,
		WebName:      el.WebName,
		FirstName:    el.FirstName,
		SecondName:   el.SecondName,
		Position:     players.ParsePosition(code),
		PositionCode: code,
		Cost:         el.NowCost.Millions(),
		TotalPoints:  el.TotalPoints,
		Status:       el.Status,
		Stats:        el.Stats,
	}
	if el.Team != nil {
		p.TeamID = *el.Team
		if t, ok := ix.teams[*el.Team]; ok {
			p.TeamName = t.Name
			p.TeamShortName = t.ShortName
			p.TeamCode = t.Code
		}
	}
	p.Keys = players.NameKeys{
		Web:    normalize.String(p.WebName),
		Full:   normalize.String(p.FullName()),
		Second: normalize.String(p.SecondName),
		First:  normalize.String(p.FirstName),
	}
	return p
}

func appendUnique(list []int, pos int, key string) []int {
	if key == "" {
		return list
	}
	if n := len(list); n > 0 && list[n-1] == pos {
		return list
	}
	return append(list, pos)
}

func (ix *Index) sortByID(list []int) []int {
	sort.Slice(list, func(i, j int) bool {
		return ix.players[list[i]].ID < ix.players[list[j]].ID
	})
	return list
}

// VersionOf hashes the canonical encoding of b. Build stamps the same value
// on the Index, so callers can compare before paying for a rebuild.
func VersionOf(b bootstrap.Bootstrap) string {
	data, err := json.Marshal(b)
	if err != nil {
		return ""
	}
	return strconv.FormatUint(xxhash.Sum64(data), 16)
}
