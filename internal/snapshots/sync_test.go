package snapshots

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/preston-bernstein/fpl-squad-service/internal/domain/fixtures"
	"github.com/preston-bernstein/fpl-squad-service/internal/metrics"
	"github.com/preston-bernstein/fpl-squad-service/internal/providers"
	"github.com/preston-bernstein/fpl-squad-service/internal/providers/fixture"
	"github.com/preston-bernstein/fpl-squad-service/internal/store"
)

type stubSource struct {
	mu    sync.Mutex
	list  []fixtures.Fixture
	err   error
	calls int
}

func (s *stubSource) FetchFixtures(ctx context.Context) ([]fixtures.Fixture, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return s.list, s.err
}

func (s *stubSource) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func newSyncLogger() (*slog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	return slog.New(slog.NewTextHandler(&buf, nil)), &buf
}

func TestSyncStoresAndWritesSnapshot(t *testing.T) {
	now := time.Date(2026, 9, 5, 10, 0, 0, 0, time.UTC)
	w := fixedWriter(t, 7, now)
	fs := store.NewFixtureStore()
	rec := metrics.NewRecorder()
	s := NewSyncer(&stubSource{list: fixture.Fixtures()}, fs, w, SyncConfig{Source: "fixture"}, nil, rec)
	s.now = func() time.Time { return now }

	if err := s.Sync(context.Background()); err != nil {
		t.Fatalf("expected sync to succeed, got %v", err)
	}
	if info := fs.Info(); info.Fixtures != 6 || info.Source != "fixture" || !info.UpdatedAt.Equal(now) {
		t.Fatalf("unexpected store info %+v", info)
	}
	date, list, err := NewFSStore(w.BasePath()).LoadLatestFixtures()
	if err != nil || date != "2026-09-05" || len(list) != 6 {
		t.Fatalf("expected snapshot for 2026-09-05, got %s/%d err=%v", date, len(list), err)
	}
	if total, failed := rec.FixtureSyncs(); total != 1 || failed != 0 {
		t.Fatalf("expected 1 successful sync, got %d/%d", total, failed)
	}
}

func TestSyncFetchErrorKeepsStore(t *testing.T) {
	logger, buf := newSyncLogger()
	fs := store.NewFixtureStore()
	fs.SetFixtures(fixture.Fixtures(), "fixture", time.Now())
	rec := metrics.NewRecorder()
	s := NewSyncer(&stubSource{err: errors.New("upstream down")}, fs, nil, SyncConfig{}, logger, rec)

	if err := s.Sync(context.Background()); err == nil {
		t.Fatal("expected fetch error")
	}
	if len(fs.Fixtures()) != 6 {
		t.Fatalf("expected previous calendar kept, got %d", len(fs.Fixtures()))
	}
	if _, failed := rec.FixtureSyncs(); failed != 1 {
		t.Fatalf("expected 1 failed sync, got %d", failed)
	}
	if !strings.Contains(buf.String(), "fixture sync fetch failed") {
		t.Fatalf("expected failure log, got %q", buf.String())
	}
}

func TestSyncEmptyListIsSkipped(t *testing.T) {
	logger, buf := newSyncLogger()
	fs := store.NewFixtureStore()
	s := NewSyncer(&stubSource{list: []fixtures.Fixture{}}, fs, nil, SyncConfig{}, logger, nil)

	if err := s.Sync(context.Background()); err != nil {
		t.Fatalf("expected nil error for empty list, got %v", err)
	}
	if fs.Loaded() {
		t.Fatal("expected empty calendar to stay out of the store")
	}
	if !strings.Contains(buf.String(), "received no fixtures") {
		t.Fatalf("expected empty log, got %q", buf.String())
	}
}

func TestRunStopsOnUnsupportedProvider(t *testing.T) {
	src := &stubSource{err: providers.ErrUnsupported}
	rec := metrics.NewRecorder()
	s := NewSyncer(src, store.NewFixtureStore(), nil, SyncConfig{Interval: time.Millisecond}, nil, rec)

	done := make(chan struct{})
	go func() {
		s.Run(context.Background())
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("expected Run to return for an unsupported provider")
	}
	if src.Calls() != 1 {
		t.Fatalf("expected a single fetch attempt, got %d", src.Calls())
	}
	if total, _ := rec.FixtureSyncs(); total != 0 {
		t.Fatalf("expected unsupported fetch not to count as a sync, got %d", total)
	}
}

func TestRunRepeatsUntilCancelled(t *testing.T) {
	src := &stubSource{list: fixture.Fixtures()}
	s := NewSyncer(src, store.NewFixtureStore(), nil, SyncConfig{Interval: 5 * time.Millisecond}, nil, nil)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(done)
	}()
	deadline := time.After(time.Second)
	for src.Calls() < 2 {
		select {
		case <-deadline:
			t.Fatalf("expected repeated syncs, got %d", src.Calls())
		case <-time.After(time.Millisecond):
		}
	}
	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("expected Run to return after cancel")
	}
}

func TestNilSyncerRunIsNoop(t *testing.T) {
	var s *Syncer
	s.Run(context.Background())
	if NewSyncer(nil, nil, nil, SyncConfig{}, nil, nil).cfg.Interval != defaultSyncInterval {
		t.Fatal("expected default interval")
	}
}
