package store

import (
	"sync"
	"time"

	"github.com/preston-bernstein/fpl-squad-service/internal/roster"
)

// MemoryStore keeps a thread-safe pointer to the current roster index.
// Indexes are immutable, so readers may keep using one after a swap.
type MemoryStore struct {
	mu        sync.RWMutex
	index     *roster.Index
	source    string
	updatedAt time.Time
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Index returns the current roster, or nil before the first load.
func (s *MemoryStore) Index() *roster.Index {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index
}

// Version returns the version of the current roster.
func (s *MemoryStore) Version() string {
	return s.Index().Version()
}

// SetIndex replaces the current roster. It reports false and keeps the
// existing index when ix carries the same version.
func (s *MemoryStore) SetIndex(ix *roster.Index, source string, at time.Time) bool {
	if ix == nil {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.index != nil && s.index.Version() == ix.Version() {
		s.updatedAt = at
		return false
	}
	s.index = ix
	s.source = source
	s.updatedAt = at
	return true
}

// Touch records a refresh that found the current roster unchanged.
func (s *MemoryStore) Touch(at time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.index != nil {
		s.updatedAt = at
	}
}

// Info describes the loaded roster.
type Info struct {
	Version   string    `json:"version"`
	Source    string    `json:"source"`
	Players   int       `json:"players"`
	Teams     int       `json:"teams"`
	Skipped   int       `json:"skipped"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Info returns metadata about the current roster.
func (s *MemoryStore) Info() Info {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Info{
		Version:   s.index.Version(),
		Source:    s.source,
		Players:   s.index.Len(),
		Teams:     len(s.index.Teams()),
		Skipped:   s.index.Skipped(),
		UpdatedAt: s.updatedAt,
	}
}
