package snapshots

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/preston-bernstein/fpl-squad-service/internal/domain/bootstrap"
	"github.com/preston-bernstein/fpl-squad-service/internal/providers/fixture"
)

func fixedWriter(t *testing.T, retention int, now time.Time) *Writer {
	t.Helper()
	w := NewWriter(t.TempDir(), retention)
	w.now = func() time.Time { return now }
	return w
}

func TestWriterWritesSnapshotAndManifest(t *testing.T) {
	now := time.Date(2026, 9, 1, 8, 0, 0, 0, time.UTC)
	w := fixedWriter(t, 10, now)

	if err := w.WriteBootstrapSnapshot("2026-09-01", fixture.Bootstrap(), "abc"); err != nil {
		t.Fatalf("expected write to succeed, got %v", err)
	}

	data, err := os.ReadFile(filepath.Join(w.BasePath(), "bootstrap", "2026-09-01.json"))
	if err != nil || len(data) == 0 {
		t.Fatalf("expected snapshot file, got err %v", err)
	}

	m, err := ReadManifest(w.BasePath())
	if err != nil {
		t.Fatalf("expected manifest, got err %v", err)
	}
	assertDatesEqual(t, m.Bootstrap.Dates, []string{"2026-09-01"})
	if m.Bootstrap.LatestVersion != "abc" || m.Retention.BootstrapDays != 10 {
		t.Fatalf("unexpected manifest %+v", m)
	}
	if !m.Bootstrap.LastRefreshed.Equal(now) {
		t.Fatalf("expected last refreshed %s, got %s", now, m.Bootstrap.LastRefreshed)
	}
}

func TestWriterPrunesOldSnapshots(t *testing.T) {
	now := time.Date(2026, 9, 10, 8, 0, 0, 0, time.UTC)
	w := fixedWriter(t, 3, now)

	for _, d := range []string{"2026-09-01", "2026-09-09", "2026-09-10"} {
		if err := w.WriteBootstrapSnapshot(d, bootstrap.Bootstrap{}, ""); err != nil {
			t.Fatalf("write %s: %v", d, err)
		}
	}

	if _, err := os.Stat(BootstrapSnapshotPath(w.BasePath(), "2026-09-01")); !os.IsNotExist(err) {
		t.Fatalf("expected old snapshot to be pruned, got %v", err)
	}
	m, err := ReadManifest(w.BasePath())
	if err != nil {
		t.Fatalf("read manifest: %v", err)
	}
	assertDatesEqual(t, m.Bootstrap.Dates, []string{"2026-09-09", "2026-09-10"})
}

func TestWriterSkipsIdenticalContent(t *testing.T) {
	w := fixedWriter(t, 5, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC))
	b := fixture.Bootstrap()
	if err := w.WriteBootstrapSnapshot("2026-09-01", b, "v1"); err != nil {
		t.Fatalf("first write: %v", err)
	}
	path := BootstrapSnapshotPath(w.BasePath(), "2026-09-01")
	past := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	if err := os.Chtimes(path, past, past); err != nil {
		t.Fatalf("chtimes: %v", err)
	}
	if err := w.WriteBootstrapSnapshot("2026-09-01", b, "v1"); err != nil {
		t.Fatalf("second write: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if !info.ModTime().Equal(past) {
		t.Fatalf("expected identical snapshot to be left alone, mtime %s", info.ModTime())
	}
}

func TestWriterRejectsBadInput(t *testing.T) {
	var nilWriter *Writer
	if err := nilWriter.WriteBootstrapSnapshot("2026-09-01", bootstrap.Bootstrap{}, ""); err == nil {
		t.Fatal("expected error for nil writer")
	}
	w := NewWriter(t.TempDir(), 0)
	if w.retentionDays != defaultRetentionDays {
		t.Fatalf("expected default retention, got %d", w.retentionDays)
	}
	if err := w.WriteBootstrapSnapshot("yesterday", bootstrap.Bootstrap{}, ""); err == nil {
		t.Fatal("expected error for invalid date")
	}
}

func assertDatesEqual(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("dates length mismatch: got %v, want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("dates mismatch at %d: got %v, want %v", i, got, want)
		}
	}
}

func TestWriterWritesFixturesSnapshot(t *testing.T) {
	now := time.Date(2026, 9, 10, 8, 0, 0, 0, time.UTC)
	w := fixedWriter(t, 3, now)

	if err := w.WriteBootstrapSnapshot("2026-09-10", fixture.Bootstrap(), "v1"); err != nil {
		t.Fatalf("bootstrap write: %v", err)
	}
	for _, d := range []string{"2026-09-01", "2026-09-10"} {
		if err := w.WriteFixturesSnapshot(d, fixture.Fixtures()); err != nil {
			t.Fatalf("fixtures write %s: %v", d, err)
		}
	}

	if _, err := os.Stat(FixturesSnapshotPath(w.BasePath(), "2026-09-01")); !os.IsNotExist(err) {
		t.Fatalf("expected old fixtures snapshot to be pruned, got %v", err)
	}
	m, err := ReadManifest(w.BasePath())
	if err != nil {
		t.Fatalf("read manifest: %v", err)
	}
	assertDatesEqual(t, m.Fixtures.Dates, []string{"2026-09-10"})
	assertDatesEqual(t, m.Bootstrap.Dates, []string{"2026-09-10"})
	if m.Fixtures.Count != 6 || m.Retention.FixturesDays != 3 || m.Bootstrap.LatestVersion != "v1" {
		t.Fatalf("unexpected manifest %+v", m)
	}
}

func TestWriterFixturesRejectsBadDate(t *testing.T) {
	w := fixedWriter(t, 3, time.Now())
	if err := w.WriteFixturesSnapshot("yesterday", nil); err == nil {
		t.Fatal("expected invalid date error")
	}
	var nilWriter *Writer
	if err := nilWriter.WriteFixturesSnapshot("2026-09-01", nil); err == nil {
		t.Fatal("expected nil writer error")
	}
}
