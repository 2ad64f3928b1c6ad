package teams

import (
	"github.com/preston-bernstein/fpl-squad-service/internal/domain/teams"
	"github.com/preston-bernstein/fpl-squad-service/internal/normalize"
	"github.com/preston-bernstein/fpl-squad-service/internal/roster"
)

// Store exposes the current roster index.
type Store interface {
	Index() *roster.Index
}

// Service coordinates team lookups using a Store.
type Service struct {
	store Store
}

// NewService constructs a Service with the provided Store.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// Teams returns the current set of teams ordered by id.
func (s *Service) Teams() ([]teams.Team, error) {
	ix := s.store.Index()
	if ix == nil {
		return nil, roster.ErrNotLoaded
	}
	return ix.Teams(), nil
}

// TeamByID returns a single team if present.
func (s *Service) TeamByID(id int) (teams.Team, bool, error) {
	ix := s.store.Index()
	if ix == nil {
		return teams.Team{}, false, roster.ErrNotLoaded
	}
	t, ok := ix.Team(id)
	return t, ok, nil
}

// Lookup finds a team by name, short name or code, ignoring case and accents.
func (s *Service) Lookup(key string) (teams.Team, bool, error) {
	all, err := s.Teams()
	if err != nil {
		return teams.Team{}, false, err
	}
	k := normalize.String(key)
	if k == "" {
		return teams.Team{}, false, nil
	}
	for _, t := range all {
		if k == normalize.String(t.Name) || k == normalize.String(t.ShortName) || k == normalize.String(t.Code) {
			return t, true, nil
		}
	}
	return teams.Team{}, false, nil
}
