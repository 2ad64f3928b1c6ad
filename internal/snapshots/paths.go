package snapshots

import (
	"fmt"
	"path/filepath"
)

const (
	bootstrapDir = "bootstrap"
	fixturesDir  = "fixtures"
	manifestFile = "manifest.json"
)

// BootstrapSnapshotPath builds the path to a roster snapshot for a given date.
func BootstrapSnapshotPath(basePath, date string) string {
	return datedPath(basePath, bootstrapDir, date)
}

// FixturesSnapshotPath builds the path to a fixture calendar snapshot for a given date.
func FixturesSnapshotPath(basePath, date string) string {
	return datedPath(basePath, fixturesDir, date)
}

// ManifestPath returns the manifest location under basePath.
func ManifestPath(basePath string) string {
	return filepath.Join(basePath, manifestFile)
}

func datedPath(basePath, kind, date string) string {
	return filepath.Join(basePath, kind, fmt.Sprintf("%s.json", date))
}
