package fixtures

import (
	"context"
	"errors"
	"testing"
	"time"

	domainfixtures "github.com/preston-bernstein/fpl-squad-service/internal/domain/fixtures"
	"github.com/preston-bernstein/fpl-squad-service/internal/providers"
	"github.com/preston-bernstein/fpl-squad-service/internal/providers/fixture"
	"github.com/preston-bernstein/fpl-squad-service/internal/roster"
	"github.com/preston-bernstein/fpl-squad-service/internal/store"
)

type stubRoster struct {
	ix *roster.Index
}

func (s *stubRoster) Index() *roster.Index { return s.ix }

type stubHistory struct {
	entries []domainfixtures.HistoryEntry
	err     error
}

func (s *stubHistory) FetchPlayerHistory(ctx context.Context, playerID int) ([]domainfixtures.HistoryEntry, error) {
	return s.entries, s.err
}

func loadedService(history HistorySource) *Service {
	fs := store.NewFixtureStore()
	fs.SetFixtures(fixture.Fixtures(), "fixture", time.Now())
	return NewService(fs, &stubRoster{ix: roster.Build(fixture.Bootstrap())}, history)
}

func TestFixturesJoinsTeamNames(t *testing.T) {
	svc := loadedService(nil)

	all, err := svc.Fixtures(Filter{})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(all) != 6 {
		t.Fatalf("expected 6 fixtures, got %d", len(all))
	}
	if all[0].HomeTeam != "Arsenal" || all[0].AwayTeam != "Wolves" {
		t.Fatalf("expected Arsenal v Wolves, got %+v", all[0])
	}
}

func TestFixturesFilter(t *testing.T) {
	svc := loadedService(nil)

	gw2, _ := svc.Fixtures(Filter{Event: 2})
	if len(gw2) != 2 {
		t.Fatalf("expected 2 gameweek 2 fixtures, got %d", len(gw2))
	}
	city, _ := svc.Fixtures(Filter{TeamID: 13})
	if len(city) != 2 || city[0].ID != 4 || city[1].ID != 6 {
		t.Fatalf("expected Man City fixtures 4 and 6, got %+v", city)
	}
	none, _ := svc.Fixtures(Filter{Event: 2, TeamID: 16})
	if none == nil || len(none) != 0 {
		t.Fatalf("expected empty non-nil listing, got %+v", none)
	}
}

func TestFixtureByID(t *testing.T) {
	svc := loadedService(nil)

	v, ok, err := svc.Fixture(5)
	if err != nil || !ok || v.HomeTeam != "Aston Villa" {
		t.Fatalf("expected Aston Villa home fixture, got %+v ok=%v err=%v", v, ok, err)
	}
	if _, ok, _ := svc.Fixture(99); ok {
		t.Fatal("expected missing fixture")
	}
}

func TestFixturesNotLoaded(t *testing.T) {
	svc := NewService(store.NewFixtureStore(), &stubRoster{}, nil)

	if _, err := svc.Fixtures(Filter{}); !errors.Is(err, ErrNotLoaded) {
		t.Fatalf("expected ErrNotLoaded, got %v", err)
	}
	if _, _, err := svc.Fixture(1); !errors.Is(err, ErrNotLoaded) {
		t.Fatalf("expected ErrNotLoaded, got %v", err)
	}
	if _, err := svc.Map(); !errors.Is(err, ErrNotLoaded) {
		t.Fatalf("expected ErrNotLoaded, got %v", err)
	}
}

func TestMap(t *testing.T) {
	m, err := loadedService(nil).Map()
	if err != nil || len(m) != 6 {
		t.Fatalf("expected 6 map entries, got %d err=%v", len(m), err)
	}
	if m[6].Event != nil || m[6].KickoffTime != nil {
		t.Fatalf("expected unscheduled fixture 6, got %+v", m[6])
	}
}

func TestPlayerHistoryJoinsCalendar(t *testing.T) {
	svc := loadedService(&stubHistory{entries: fixture.History(40)})

	rows, ok, err := svc.PlayerHistory(context.Background(), 40)
	if err != nil || !ok {
		t.Fatalf("expected history, got ok=%v err=%v", ok, err)
	}
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	row := rows[0]
	if row.PlayerName != "Mohamed Salah" || row.PlayerID != 40 {
		t.Fatalf("unexpected player tag %+v", row)
	}
	if row.FixtureEvent == nil || *row.FixtureEvent != 1 || row.FixtureKickoffTime == nil {
		t.Fatalf("expected calendar join for fixture 2, got %+v", row)
	}
}

func TestPlayerHistoryFallsBackToRound(t *testing.T) {
	svc := NewService(store.NewFixtureStore(), &stubRoster{ix: roster.Build(fixture.Bootstrap())},
		&stubHistory{entries: []domainfixtures.HistoryEntry{{Element: 11, Fixture: 300, Round: 7}}})

	rows, _, err := svc.PlayerHistory(context.Background(), 11)
	if err != nil || len(rows) != 1 {
		t.Fatalf("expected one row, got %d err=%v", len(rows), err)
	}
	if rows[0].FixtureEvent == nil || *rows[0].FixtureEvent != 7 || rows[0].FixtureKickoffTime != nil {
		t.Fatalf("expected round fallback, got %+v", rows[0])
	}
}

func TestPlayerHistoryErrors(t *testing.T) {
	if _, _, err := NewService(nil, &stubRoster{}, nil).PlayerHistory(context.Background(), 40); !errors.Is(err, roster.ErrNotLoaded) {
		t.Fatalf("expected roster.ErrNotLoaded, got %v", err)
	}
	svc := loadedService(nil)
	if _, ok, err := svc.PlayerHistory(context.Background(), 9999); ok || err != nil {
		t.Fatalf("expected missing player, got ok=%v err=%v", ok, err)
	}
	if _, ok, err := svc.PlayerHistory(context.Background(), 40); !ok || !errors.Is(err, providers.ErrUnsupported) {
		t.Fatalf("expected ErrUnsupported, got ok=%v err=%v", ok, err)
	}
	upstream := errors.New("upstream 503")
	svc = loadedService(&stubHistory{err: upstream})
	if _, _, err := svc.PlayerHistory(context.Background(), 40); !errors.Is(err, upstream) {
		t.Fatalf("expected wrapped upstream error, got %v", err)
	}
}
