package testutil

import (
	"time"

	"github.com/preston-bernstein/fpl-squad-service/internal/providers/fixture"
	"github.com/preston-bernstein/fpl-squad-service/internal/roster"
	"github.com/preston-bernstein/fpl-squad-service/internal/store"
)

// FixtureIndex builds the deterministic fixture roster index.
func FixtureIndex() *roster.Index {
	return roster.Build(fixture.Bootstrap())
}

// FixtureStore returns a memory store preloaded with the fixture roster.
func FixtureStore() *store.MemoryStore {
	ms := store.NewMemoryStore()
	ms.SetIndex(FixtureIndex(), "fixture", time.Date(2024, 8, 1, 0, 0, 0, 0, time.UTC))
	return ms
}
