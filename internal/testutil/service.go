package testutil

import (
	"time"

	"github.com/preston-bernstein/fpl-squad-service/internal/app/fixtures"
	"github.com/preston-bernstein/fpl-squad-service/internal/app/players"
	"github.com/preston-bernstein/fpl-squad-service/internal/app/squads"
	"github.com/preston-bernstein/fpl-squad-service/internal/app/teams"
	"github.com/preston-bernstein/fpl-squad-service/internal/metrics"
	"github.com/preston-bernstein/fpl-squad-service/internal/providers/fixture"
	"github.com/preston-bernstein/fpl-squad-service/internal/store"
)

// Services bundles the app services over one roster store and one fixture
// calendar.
type Services struct {
	Store    *store.MemoryStore
	Calendar *store.FixtureStore
	Players  *players.Service
	Teams    *teams.Service
	Squads   *squads.Service
	Fixtures *fixtures.Service
	Metrics  *metrics.Recorder
}

// NewServices wires the app services over ms. A nil store yields services
// with no roster loaded.
func NewServices(ms *store.MemoryStore) Services {
	if ms == nil {
		ms = store.NewMemoryStore()
	}
	rec := metrics.NewRecorder()
	ps := players.NewService(ms, players.Options{CacheSize: 64, Metrics: rec})
	calendar := store.NewFixtureStore()
	return Services{
		Store:    ms,
		Calendar: calendar,
		Players:  ps,
		Teams:    teams.NewService(ms),
		Squads:   squads.NewService(ps, squads.Options{Metrics: rec}),
		Fixtures: fixtures.NewService(calendar, ms, nil),
		Metrics:  rec,
	}
}

// NewFixtureServices wires the app services over the fixture roster and
// calendar, with match history served by the fixture provider.
func NewFixtureServices() Services {
	svc := NewServices(FixtureStore())
	svc.Calendar.SetFixtures(fixture.Fixtures(), "fixture", time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC))
	svc.Fixtures = fixtures.NewService(svc.Calendar, svc.Store, fixture.New())
	return svc
}
