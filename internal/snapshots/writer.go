package snapshots

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/preston-bernstein/fpl-squad-service/internal/domain/bootstrap"
	"github.com/preston-bernstein/fpl-squad-service/internal/domain/fixtures"
	"github.com/preston-bernstein/fpl-squad-service/internal/timeutil"
)

const defaultRetentionDays = 14

// Writer persists dated roster and fixture snapshots and a manifest, pruning
// snapshots older than the retention window.
type Writer struct {
	basePath      string
	retentionDays int
	now           func() time.Time
}

// NewWriter constructs a writer rooted at basePath with a rolling window retention.
func NewWriter(basePath string, retentionDays int) *Writer {
	if retentionDays <= 0 {
		retentionDays = defaultRetentionDays
	}
	return &Writer{
		basePath:      basePath,
		retentionDays: retentionDays,
		now:           time.Now,
	}
}

// BasePath exposes the writer root path.
func (w *Writer) BasePath() string {
	if w == nil {
		return ""
	}
	return w.basePath
}

// WriteBootstrapSnapshot writes b as the snapshot for date (YYYY-MM-DD),
// records version in the manifest and prunes expired snapshots. Rewriting
// identical content leaves the file untouched.
func (w *Writer) WriteBootstrapSnapshot(date string, b bootstrap.Bootstrap, version string) error {
	if err := w.writeDated(bootstrapDir, date, b); err != nil {
		return err
	}
	return w.updateManifest(func(m *Manifest, now time.Time) error {
		dates, err := w.datesWith(bootstrapDir, date, now)
		if err != nil {
			return err
		}
		m.Bootstrap.Dates = dates
		m.Bootstrap.LastRefreshed = now
		if version != "" {
			m.Bootstrap.LatestVersion = version
		}
		return nil
	})
}

// WriteFixturesSnapshot writes the fixture calendar for date under the same
// retention window as roster snapshots.
func (w *Writer) WriteFixturesSnapshot(date string, list []fixtures.Fixture) error {
	if list == nil {
		list = []fixtures.Fixture{}
	}
	if err := w.writeDated(fixturesDir, date, list); err != nil {
		return err
	}
	return w.updateManifest(func(m *Manifest, now time.Time) error {
		dates, err := w.datesWith(fixturesDir, date, now)
		if err != nil {
			return err
		}
		m.Fixtures.Dates = dates
		m.Fixtures.LastRefreshed = now
		m.Fixtures.Count = len(list)
		return nil
	})
}

func (w *Writer) writeDated(kind, date string, v any) error {
	if w == nil {
		return errors.New("snapshot writer not configured")
	}
	if _, err := timeutil.ParseDate(date); err != nil {
		return fmt.Errorf("snapshot date %q: %w", date, err)
	}

	target := datedPath(w.basePath, kind, date)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	existing, readErr := os.ReadFile(target)
	if readErr != nil || !bytes.Equal(existing, data) {
		return writeAtomic(target, data)
	}
	return nil
}

func (w *Writer) updateManifest(apply func(*Manifest, time.Time) error) error {
	now := w.now().UTC()
	m, err := ReadManifest(w.basePath)
	if err != nil {
		m = defaultManifest(w.retentionDays, now)
	}
	if err := apply(&m, now); err != nil {
		return err
	}
	m.Retention.BootstrapDays = w.retentionDays
	m.Retention.FixturesDays = w.retentionDays
	m.GeneratedAt = now
	return writeManifest(w.basePath, m)
}

// datesWith lists kind's snapshot dates including date, pruned to the retention window.
func (w *Writer) datesWith(kind, date string, now time.Time) ([]string, error) {
	dates, err := listDates(w.basePath, kind)
	if err != nil {
		return nil, err
	}
	if !containsDate(dates, date) {
		dates = append(dates, date)
	}
	return w.prune(kind, dates, now), nil
}

func (w *Writer) prune(kind string, dates []string, now time.Time) []string {
	cutoff := timeutil.StartOfDayUTC(now).AddDate(0, 0, -w.retentionDays)
	keep := make([]string, 0, len(dates))
	for _, d := range dates {
		parsed, err := timeutil.ParseDate(d)
		if err == nil && parsed.Before(cutoff) {
			_ = os.Remove(datedPath(w.basePath, kind, d))
			continue
		}
		keep = append(keep, d)
	}
	sort.Strings(keep)
	return keep
}

func containsDate(dates []string, date string) bool {
	for _, d := range dates {
		if d == date {
			return true
		}
	}
	return false
}

func listDates(basePath, kind string) ([]string, error) {
	entries, err := os.ReadDir(filepath.Join(basePath, kind))
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, err
	}
	dates := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || filepath.Ext(name) != ".json" {
			continue
		}
		dates = append(dates, strings.TrimSuffix(name, ".json"))
	}
	sort.Strings(dates)
	return dates, nil
}
