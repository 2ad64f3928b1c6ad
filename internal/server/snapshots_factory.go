package server

import (
	"errors"
	"log/slog"
	"time"

	"github.com/preston-bernstein/fpl-squad-service/internal/config"
	"github.com/preston-bernstein/fpl-squad-service/internal/logging"
	"github.com/preston-bernstein/fpl-squad-service/internal/roster"
	"github.com/preston-bernstein/fpl-squad-service/internal/snapshots"
	"github.com/preston-bernstein/fpl-squad-service/internal/store"
)

const sourceSnapshot = "snapshot"

type snapshotComponents struct {
	store  snapshots.Store
	writer *snapshots.Writer
}

// buildSnapshots returns no components when snapshots are disabled.
func buildSnapshots(cfg config.Config) snapshotComponents {
	if !cfg.Snapshots.Enabled || cfg.Snapshots.Dir == "" {
		return snapshotComponents{}
	}
	return snapshotComponents{
		store:  snapshots.NewFSStore(cfg.Snapshots.Dir),
		writer: snapshots.NewWriter(cfg.Snapshots.Dir, cfg.Snapshots.RetentionDays),
	}
}

// seedFromSnapshot loads the newest snapshot into ms so the service can answer
// before the first upstream fetch completes.
func seedFromSnapshot(snaps snapshots.Store, ms *store.MemoryStore, logger *slog.Logger, now time.Time) bool {
	if snaps == nil || ms == nil {
		return false
	}
	date, b, err := snaps.LoadLatest()
	if err != nil {
		if !errors.Is(err, snapshots.ErrNoSnapshots) {
			logging.Warn(logger, "snapshot seed failed", logging.FieldError, err)
		}
		return false
	}
	ix := roster.Build(b)
	if ix.Len() == 0 {
		logging.Warn(logger, "snapshot seed skipped, empty roster", logging.FieldDate, date)
		return false
	}
	ms.SetIndex(ix, sourceSnapshot, now)
	logging.Info(logger, "roster seeded from snapshot",
		logging.FieldDate, date,
		logging.FieldCount, ix.Len(),
		logging.FieldRoster, ix.Version(),
	)
	return true
}

// seedFixtures loads the newest fixtures snapshot into fs.
func seedFixtures(snaps snapshots.Store, fs *store.FixtureStore, logger *slog.Logger, now time.Time) bool {
	if snaps == nil || fs == nil {
		return false
	}
	date, list, err := snaps.LoadLatestFixtures()
	if err != nil {
		if !errors.Is(err, snapshots.ErrNoSnapshots) {
			logging.Warn(logger, "fixtures snapshot seed failed", logging.FieldError, err)
		}
		return false
	}
	if len(list) == 0 {
		logging.Warn(logger, "fixtures snapshot seed skipped, empty calendar", logging.FieldDate, date)
		return false
	}
	fs.SetFixtures(list, sourceSnapshot, now)
	logging.Info(logger, "fixtures seeded from snapshot",
		logging.FieldDate, date,
		logging.FieldCount, len(list),
	)
	return true
}

// fixturesWriter keeps a nil *Writer from becoming a non-nil interface.
func (c snapshotComponents) fixturesWriter() snapshots.FixturesWriter {
	if c.writer == nil {
		return nil
	}
	return c.writer
}
