// Package file reads bootstrap-static, fixtures and element-summary documents
// from local disk.
package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/preston-bernstein/fpl-squad-service/internal/domain/bootstrap"
	"github.com/preston-bernstein/fpl-squad-service/internal/domain/fixtures"
)

const fixturesFile = "fixtures.json"

// Provider loads the roster from Path on every fetch. Match data is read
// from FixturesPath and from element_{id}_summary.json files in SummaryDir;
// missing match files yield empty data.
type Provider struct {
	Path         string
	FixturesPath string
	SummaryDir   string
}

// New returns a Provider reading path, with match data expected next to it.
func New(path string) *Provider {
	dir := filepath.Dir(path)
	return &Provider{
		Path:         path,
		FixturesPath: filepath.Join(dir, fixturesFile),
		SummaryDir:   dir,
	}
}

// FetchBootstrap opens and decodes the file.
func (p *Provider) FetchBootstrap(ctx context.Context) (bootstrap.Bootstrap, error) {
	if err := ctx.Err(); err != nil {
		return bootstrap.Bootstrap{}, err
	}
	f, err := os.Open(p.Path)
	if err != nil {
		return bootstrap.Bootstrap{}, fmt.Errorf("open bootstrap file: %w", err)
	}
	defer f.Close()

	b, err := bootstrap.Decode(f)
	if err != nil {
		return bootstrap.Bootstrap{}, fmt.Errorf("%s: %w", p.Path, err)
	}
	return b, nil
}

// FetchFixtures decodes the local fixtures file.
func (p *Provider) FetchFixtures(ctx context.Context) ([]fixtures.Fixture, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(p.FixturesPath)
	if errors.Is(err, os.ErrNotExist) {
		return []fixtures.Fixture{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open fixtures file: %w", err)
	}
	defer f.Close()

	list, _, err := fixtures.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", p.FixturesPath, err)
	}
	return list, nil
}

// FetchPlayerHistory decodes element_{id}_summary.json from SummaryDir.
func (p *Provider) FetchPlayerHistory(ctx context.Context, playerID int) ([]fixtures.HistoryEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path := SummaryPath(p.SummaryDir, playerID)
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return []fixtures.HistoryEntry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open element summary: %w", err)
	}
	defer f.Close()

	entries, err := fixtures.DecodeSummary(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return entries, nil
}

// SummaryPath names the element-summary file for playerID under dir.
func SummaryPath(dir string, playerID int) string {
	return filepath.Join(dir, fmt.Sprintf("element_%d_summary.json", playerID))
}
