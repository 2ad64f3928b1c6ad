package store

import (
	"encoding/json"
	"strconv"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"

	"github.com/preston-bernstein/fpl-squad-service/internal/domain/fixtures"
)

// FixtureStore keeps a thread-safe copy of the current fixture calendar.
type FixtureStore struct {
	mu        sync.RWMutex
	list      []fixtures.Fixture
	byID      map[int]int
	version   string
	source    string
	updatedAt time.Time
}

// NewFixtureStore constructs an empty FixtureStore.
func NewFixtureStore() *FixtureStore {
	return &FixtureStore{byID: map[int]int{}}
}

// SetFixtures replaces the calendar unless it carries the same content. It
// reports whether the stored list changed.
func (s *FixtureStore) SetFixtures(list []fixtures.Fixture, source string, at time.Time) bool {
	sorted := make([]fixtures.Fixture, len(list))
	copy(sorted, list)
	fixtures.SortByID(sorted)
	version := fixturesVersion(sorted)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.updatedAt = at
	if s.version != "" && s.version == version {
		return false
	}
	s.list = sorted
	s.byID = make(map[int]int, len(sorted))
	for i, f := range sorted {
		s.byID[f.ID] = i
	}
	s.version = version
	s.source = source
	return true
}

// Fixtures returns the calendar ordered by fixture id.
func (s *FixtureStore) Fixtures() []fixtures.Fixture {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]fixtures.Fixture, len(s.list))
	copy(out, s.list)
	return out
}

// Fixture looks up one fixture by id.
func (s *FixtureStore) Fixture(id int) (fixtures.Fixture, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.byID[id]
	if !ok {
		return fixtures.Fixture{}, false
	}
	return s.list[i], true
}

// Loaded reports whether a calendar has been stored.
func (s *FixtureStore) Loaded() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version != ""
}

// FixtureInfo describes the loaded calendar.
type FixtureInfo struct {
	Version   string    `json:"version"`
	Source    string    `json:"source"`
	Fixtures  int       `json:"fixtures"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Info returns metadata about the current calendar.
func (s *FixtureStore) Info() FixtureInfo {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return FixtureInfo{
		Version:   s.version,
		Source:    s.source,
		Fixtures:  len(s.list),
		UpdatedAt: s.updatedAt,
	}
}

func fixturesVersion(list []fixtures.Fixture) string {
	data, err := json.Marshal(list)
	if err != nil {
		return ""
	}
	return strconv.FormatUint(xxhash.Sum64(data), 16)
}
