package snapshots

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/preston-bernstein/fpl-squad-service/internal/domain/fixtures"
	"github.com/preston-bernstein/fpl-squad-service/internal/logging"
	"github.com/preston-bernstein/fpl-squad-service/internal/metrics"
	"github.com/preston-bernstein/fpl-squad-service/internal/providers"
	"github.com/preston-bernstein/fpl-squad-service/internal/timeutil"
)

const defaultSyncInterval = time.Hour

// FixturesSource fetches the fixture calendar.
type FixturesSource interface {
	FetchFixtures(ctx context.Context) ([]fixtures.Fixture, error)
}

// FixtureStore receives every synced calendar.
type FixtureStore interface {
	SetFixtures(list []fixtures.Fixture, source string, at time.Time) bool
}

// FixturesWriter persists dated calendar snapshots.
type FixturesWriter interface {
	WriteFixturesSnapshot(date string, list []fixtures.Fixture) error
}

// SyncConfig controls fixture sync behavior.
type SyncConfig struct {
	Interval time.Duration
	Source   string
}

// Syncer keeps the fixture calendar current: it fetches on a schedule,
// pushes the list into the store and writes a dated snapshot.
type Syncer struct {
	source    FixturesSource
	store     FixtureStore
	writer    FixturesWriter
	cfg       SyncConfig
	logger    *slog.Logger
	metrics   *metrics.Recorder
	now       func() time.Time
	newTicker func(time.Duration) *time.Ticker
}

// NewSyncer constructs a fixture syncer. writer may be nil.
func NewSyncer(source FixturesSource, store FixtureStore, writer FixturesWriter, cfg SyncConfig, logger *slog.Logger, recorder *metrics.Recorder) *Syncer {
	if cfg.Interval <= 0 {
		cfg.Interval = defaultSyncInterval
	}
	return &Syncer{
		source:    source,
		store:     store,
		writer:    writer,
		cfg:       cfg,
		logger:    logger,
		metrics:   recorder,
		now:       time.Now,
		newTicker: time.NewTicker,
	}
}

// Run syncs once and then on every interval until ctx is done. It returns
// early when the source cannot serve fixtures. Callers should run this in a
// goroutine.
func (s *Syncer) Run(ctx context.Context) {
	if s == nil || s.source == nil {
		return
	}
	logging.Info(s.logger, "fixture sync starting", "interval", s.cfg.Interval.String())
	if err := s.Sync(ctx); errors.Is(err, providers.ErrUnsupported) {
		logging.Info(s.logger, "fixture sync disabled, provider has no fixtures")
		return
	}

	ticker := s.newTicker(s.cfg.Interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			logging.Info(s.logger, "fixture sync stopped")
			return
		case <-ticker.C:
			_ = s.Sync(ctx)
		}
	}
}

// Sync performs one fetch, store and snapshot cycle. An empty calendar is
// logged and left out of the store.
func (s *Syncer) Sync(ctx context.Context) error {
	start := s.now()
	list, err := s.source.FetchFixtures(ctx)
	if errors.Is(err, providers.ErrUnsupported) {
		return err
	}
	s.metrics.RecordFixtureSync(err)
	if err != nil {
		logging.Warn(s.logger, "fixture sync fetch failed", logging.FieldError, err)
		return err
	}
	if len(list) == 0 {
		logging.Warn(s.logger, "fixture sync received no fixtures")
		return nil
	}

	changed := true
	if s.store != nil {
		changed = s.store.SetFixtures(list, s.cfg.Source, start)
	}
	if s.writer != nil {
		date := timeutil.UTCDate(start)
		if err := s.writer.WriteFixturesSnapshot(date, list); err != nil {
			logging.Warn(s.logger, "fixtures snapshot write failed", logging.FieldDate, date, logging.FieldError, err)
		}
	}
	logging.Info(s.logger, "fixtures synced",
		logging.FieldCount, len(list),
		"changed", changed,
		logging.FieldDurationMS, s.now().Sub(start).Milliseconds(),
	)
	return nil
}
