package testutil

import (
	"errors"
	"testing"

	"github.com/preston-bernstein/fpl-squad-service/internal/providers/fixture"
	"github.com/preston-bernstein/fpl-squad-service/internal/snapshots"
)

// NewTempWriter returns a snapshot writer rooted in a temp dir.
func NewTempWriter(t *testing.T, retention int) *snapshots.Writer {
	t.Helper()
	return snapshots.NewWriter(t.TempDir(), retention)
}

// WriteSnapshot writes the fixture bootstrap as the snapshot for date.
func WriteSnapshot(t *testing.T, w *snapshots.Writer, date string) {
	t.Helper()
	if err := writeSnapshotPayload(w, date); err != nil {
		t.Fatalf("failed to write snapshot %s: %v", date, err)
	}
}

func writeSnapshotPayload(w *snapshots.Writer, date string) error {
	if w == nil {
		return errors.New("nil snapshot writer")
	}
	b := fixture.Bootstrap()
	return w.WriteBootstrapSnapshot(date, b, FixtureIndex().Version())
}

// SnapshotPath returns the expected file path for a snapshot date.
func SnapshotPath(w *snapshots.Writer, date string) string {
	return snapshots.BootstrapSnapshotPath(w.BasePath(), date)
}

// WriteFixturesSnapshot writes the fixture calendar as the snapshot for date.
func WriteFixturesSnapshot(t *testing.T, w *snapshots.Writer, date string) {
	t.Helper()
	if w == nil {
		t.Fatal("nil snapshot writer")
	}
	if err := w.WriteFixturesSnapshot(date, fixture.Fixtures()); err != nil {
		t.Fatalf("failed to write fixtures snapshot %s: %v", date, err)
	}
}
