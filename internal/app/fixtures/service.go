package fixtures

import (
	"context"
	"errors"
	"fmt"

	domainfixtures "github.com/preston-bernstein/fpl-squad-service/internal/domain/fixtures"
	"github.com/preston-bernstein/fpl-squad-service/internal/providers"
	"github.com/preston-bernstein/fpl-squad-service/internal/roster"
)

// ErrNotLoaded is returned until the first fixture calendar arrives.
var ErrNotLoaded = errors.New("fixtures not loaded")

// Store exposes the current fixture calendar.
type Store interface {
	Fixtures() []domainfixtures.Fixture
	Fixture(id int) (domainfixtures.Fixture, bool)
	Loaded() bool
}

// RosterStore exposes the current roster index for team and player names.
type RosterStore interface {
	Index() *roster.Index
}

// HistorySource fetches a player's per-match history.
type HistorySource interface {
	FetchPlayerHistory(ctx context.Context, playerID int) ([]domainfixtures.HistoryEntry, error)
}

// View is a fixture with team names joined from the roster.
type View struct {
	domainfixtures.Fixture
	HomeTeam string `json:"home_team,omitempty"`
	AwayTeam string `json:"away_team,omitempty"`
}

// Filter narrows a fixture listing. Zero values match everything.
type Filter struct {
	Event  int
	TeamID int
}

// Service coordinates fixture and match history lookups.
type Service struct {
	store   Store
	roster  RosterStore
	history HistorySource
}

// NewService constructs a Service. history may be nil, in which case
// PlayerHistory reports providers.ErrUnsupported.
func NewService(store Store, rosterStore RosterStore, history HistorySource) *Service {
	return &Service{store: store, roster: rosterStore, history: history}
}

// Fixtures returns matching fixtures ordered by id.
func (s *Service) Fixtures(f Filter) ([]View, error) {
	if s.store == nil || !s.store.Loaded() {
		return nil, ErrNotLoaded
	}
	ix := s.index()
	out := []View{}
	for _, fx := range s.store.Fixtures() {
		if f.Event != 0 && (fx.Event == nil || *fx.Event != f.Event) {
			continue
		}
		if f.TeamID != 0 && !fx.Involves(f.TeamID) {
			continue
		}
		out = append(out, viewOf(ix, fx))
	}
	return out, nil
}

// Fixture returns a single fixture if present.
func (s *Service) Fixture(id int) (View, bool, error) {
	if s.store == nil || !s.store.Loaded() {
		return View{}, false, ErrNotLoaded
	}
	fx, ok := s.store.Fixture(id)
	if !ok {
		return View{}, false, nil
	}
	return viewOf(s.index(), fx), true, nil
}

// Map returns the calendar keyed by fixture id.
func (s *Service) Map() (map[int]domainfixtures.MapEntry, error) {
	if s.store == nil || !s.store.Loaded() {
		return nil, ErrNotLoaded
	}
	return domainfixtures.BuildMap(s.store.Fixtures()), nil
}

// PlayerHistory fetches the player's match history and places every entry
// on the fixture calendar. An unloaded calendar still returns rows, with
// events taken from the entry rounds.
func (s *Service) PlayerHistory(ctx context.Context, playerID int) ([]domainfixtures.HistoryRow, bool, error) {
	ix := s.index()
	if ix == nil {
		return nil, false, roster.ErrNotLoaded
	}
	p, ok := ix.Player(playerID)
	if !ok {
		return nil, false, nil
	}
	if s.history == nil {
		return nil, true, providers.ErrUnsupported
	}
	entries, err := s.history.FetchPlayerHistory(ctx, playerID)
	if err != nil {
		return nil, true, fmt.Errorf("player %d history: %w", playerID, err)
	}
	var calendar map[int]domainfixtures.MapEntry
	if s.store != nil && s.store.Loaded() {
		calendar = domainfixtures.BuildMap(s.store.Fixtures())
	}
	name := p.FullName()
	if name == "" {
		name = p.WebName
	}
	return domainfixtures.JoinHistory(playerID, name, entries, calendar), true, nil
}

func (s *Service) index() *roster.Index {
	if s.roster == nil {
		return nil
	}
	return s.roster.Index()
}

func viewOf(ix *roster.Index, fx domainfixtures.Fixture) View {
	v := View{Fixture: fx}
	if t, ok := ix.Team(fx.TeamH); ok {
		v.HomeTeam = t.Name
	}
	if t, ok := ix.Team(fx.TeamA); ok {
		v.AwayTeam = t.Name
	}
	return v
}
