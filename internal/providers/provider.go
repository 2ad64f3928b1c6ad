package providers

import (
	"context"
	"errors"

	"github.com/preston-bernstein/fpl-squad-service/internal/domain/bootstrap"
	"github.com/preston-bernstein/fpl-squad-service/internal/domain/fixtures"
)

// ErrUnsupported is returned by providers that cannot serve a data set.
var ErrUnsupported = errors.New("provider does not support this data")

// BootstrapProvider fetches a raw roster document from some source.
type BootstrapProvider interface {
	FetchBootstrap(ctx context.Context) (bootstrap.Bootstrap, error)
}

// MatchProvider fetches the fixture calendar and per-player match history.
type MatchProvider interface {
	FetchFixtures(ctx context.Context) ([]fixtures.Fixture, error)
	FetchPlayerHistory(ctx context.Context, playerID int) ([]fixtures.HistoryEntry, error)
}

// DataProvider serves both the roster and the match data.
type DataProvider interface {
	BootstrapProvider
	MatchProvider
}

// Names for the built-in providers.
const (
	NameFixture = "fixture"
	NameFpl     = "fpl"
	NameFile    = "file"
)
