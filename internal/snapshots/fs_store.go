package snapshots

import (
	"errors"
	"fmt"
	"os"

	"github.com/preston-bernstein/fpl-squad-service/internal/domain/bootstrap"
	"github.com/preston-bernstein/fpl-squad-service/internal/domain/fixtures"
)

// ErrNoSnapshots is returned when the store holds no snapshot of the requested kind.
var ErrNoSnapshots = errors.New("no snapshots")

// Store defines how snapshots are loaded.
type Store interface {
	LoadBootstrap(date string) (bootstrap.Bootstrap, error)
	LoadLatest() (string, bootstrap.Bootstrap, error)
	LoadLatestFixtures() (string, []fixtures.Fixture, error)
}

// FSStore loads snapshots from the filesystem.
type FSStore struct {
	basePath string
}

// NewFSStore constructs an FS-backed snapshot store rooted at basePath.
func NewFSStore(basePath string) *FSStore {
	return &FSStore{basePath: basePath}
}

// Dates lists available snapshot dates in ascending order.
func (s *FSStore) Dates() ([]string, error) {
	if s == nil {
		return nil, errors.New("snapshot store not configured")
	}
	return listDates(s.basePath, bootstrapDir)
}

// LoadBootstrap reads the snapshot at {basePath}/bootstrap/{date}.json.
func (s *FSStore) LoadBootstrap(date string) (bootstrap.Bootstrap, error) {
	if s == nil {
		return bootstrap.Bootstrap{}, errors.New("snapshot store not configured")
	}
	if date == "" {
		return bootstrap.Bootstrap{}, errors.New("snapshot date required")
	}
	f, err := os.Open(BootstrapSnapshotPath(s.basePath, date))
	if err != nil {
		return bootstrap.Bootstrap{}, err
	}
	defer f.Close()
	return bootstrap.Decode(f)
}

// LoadLatest returns the most recent snapshot and its date.
func (s *FSStore) LoadLatest() (string, bootstrap.Bootstrap, error) {
	dates, err := s.Dates()
	if err != nil {
		return "", bootstrap.Bootstrap{}, err
	}
	if len(dates) == 0 {
		return "", bootstrap.Bootstrap{}, ErrNoSnapshots
	}
	latest := dates[len(dates)-1]
	b, err := s.LoadBootstrap(latest)
	if err != nil {
		return "", bootstrap.Bootstrap{}, fmt.Errorf("load snapshot %s: %w", latest, err)
	}
	return latest, b, nil
}

// LoadLatestFixtures returns the most recent fixture calendar and its date.
func (s *FSStore) LoadLatestFixtures() (string, []fixtures.Fixture, error) {
	if s == nil {
		return "", nil, errors.New("snapshot store not configured")
	}
	dates, err := listDates(s.basePath, fixturesDir)
	if err != nil {
		return "", nil, err
	}
	if len(dates) == 0 {
		return "", nil, ErrNoSnapshots
	}
	latest := dates[len(dates)-1]
	f, err := os.Open(FixturesSnapshotPath(s.basePath, latest))
	if err != nil {
		return "", nil, err
	}
	defer f.Close()
	list, _, err := fixtures.Decode(f)
	if err != nil {
		return "", nil, fmt.Errorf("load fixtures snapshot %s: %w", latest, err)
	}
	return latest, list, nil
}
