package teststubs

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/preston-bernstein/fpl-squad-service/internal/domain/bootstrap"
	"github.com/preston-bernstein/fpl-squad-service/internal/domain/fixtures"
)

// StubProvider is a test double for providers.DataProvider.
type StubProvider struct {
	mu          sync.Mutex
	Bootstrap   bootstrap.Bootstrap
	Err         error
	Fixtures    []fixtures.Fixture
	FixturesErr error
	History     map[int][]fixtures.HistoryEntry
	HistoryErr  error
	Calls       atomic.Int32
	Notify      chan struct{}
}

// Set swaps the returned document and error.
func (s *StubProvider) Set(b bootstrap.Bootstrap, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Bootstrap = b
	s.Err = err
}

// FetchBootstrap returns the configured document and error while tracking calls.
func (s *StubProvider) FetchBootstrap(ctx context.Context) (bootstrap.Bootstrap, error) {
	_ = ctx
	s.Calls.Add(1)
	if s.Notify != nil {
		select {
		case <-s.Notify:
		default:
			close(s.Notify)
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Bootstrap, s.Err
}

// FetchFixtures returns the configured calendar.
func (s *StubProvider) FetchFixtures(ctx context.Context) ([]fixtures.Fixture, error) {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Fixtures, s.FixturesErr
}

// FetchPlayerHistory returns the configured history for playerID.
func (s *StubProvider) FetchPlayerHistory(ctx context.Context, playerID int) ([]fixtures.HistoryEntry, error) {
	_ = ctx
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.HistoryErr != nil {
		return nil, s.HistoryErr
	}
	return s.History[playerID], nil
}

// WrittenSnapshot is one recorded snapshot write.
type WrittenSnapshot struct {
	Bootstrap bootstrap.Bootstrap
	Version   string
}

// StubSnapshotWriter is a test double for poller.SnapshotWriter.
type StubSnapshotWriter struct {
	mu      sync.Mutex
	written map[string]WrittenSnapshot
	Err     error
}

// WriteBootstrapSnapshot records the snapshot for verification in tests.
func (w *StubSnapshotWriter) WriteBootstrapSnapshot(date string, b bootstrap.Bootstrap, version string) error {
	if w.Err != nil {
		return w.Err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.written == nil {
		w.written = make(map[string]WrittenSnapshot)
	}
	w.written[date] = WrittenSnapshot{Bootstrap: b, Version: version}
	return nil
}

// Written returns the snapshot recorded for date.
func (w *StubSnapshotWriter) Written(date string) (WrittenSnapshot, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	s, ok := w.written[date]
	return s, ok
}

// StubSnapshotStore is a test double for snapshots.Store.
type StubSnapshotStore struct {
	Snapshots    map[string]bootstrap.Bootstrap // keyed by date
	Fixtures     []fixtures.Fixture
	FixturesDate string
	LoadErr      error
}

// LoadBootstrap returns the snapshot for date if present.
func (s *StubSnapshotStore) LoadBootstrap(date string) (bootstrap.Bootstrap, error) {
	if s.LoadErr != nil {
		return bootstrap.Bootstrap{}, s.LoadErr
	}
	b, ok := s.Snapshots[date]
	if !ok {
		return bootstrap.Bootstrap{}, errors.New("snapshot not found")
	}
	return b, nil
}

// LoadLatest returns the snapshot with the greatest date.
func (s *StubSnapshotStore) LoadLatest() (string, bootstrap.Bootstrap, error) {
	if s.LoadErr != nil {
		return "", bootstrap.Bootstrap{}, s.LoadErr
	}
	latest := ""
	for d := range s.Snapshots {
		if d > latest {
			latest = d
		}
	}
	if latest == "" {
		return "", bootstrap.Bootstrap{}, errors.New("snapshot not found")
	}
	return latest, s.Snapshots[latest], nil
}

// LoadLatestFixtures returns the configured calendar.
func (s *StubSnapshotStore) LoadLatestFixtures() (string, []fixtures.Fixture, error) {
	if s.LoadErr != nil {
		return "", nil, s.LoadErr
	}
	if s.FixturesDate == "" {
		return "", nil, errors.New("snapshot not found")
	}
	return s.FixturesDate, s.Fixtures, nil
}
