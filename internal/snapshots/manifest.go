package snapshots

import (
	"encoding/json"
	"os"
	"time"
)

// Manifest tracks snapshot metadata.
type Manifest struct {
	Version     int           `json:"version"`
	GeneratedAt time.Time     `json:"generatedAt"`
	Retention   Retention     `json:"retention"`
	Bootstrap   BootstrapMeta `json:"bootstrap"`
	Fixtures    FixturesMeta  `json:"fixtures"`
}

type Retention struct {
	BootstrapDays int `json:"bootstrapDays"`
	FixturesDays  int `json:"fixturesDays"`
}

type FixturesMeta struct {
	Dates         []string  `json:"dates"`
	LastRefreshed time.Time `json:"lastRefreshed"`
	Count         int       `json:"count"`
}

type BootstrapMeta struct {
	Dates         []string  `json:"dates"`
	LastRefreshed time.Time `json:"lastRefreshed"`
	// LatestVersion is the roster version written most recently.
	LatestVersion string `json:"latestVersion,omitempty"`
}

func defaultManifest(retentionDays int, now time.Time) Manifest {
	return Manifest{
		Version:     1,
		GeneratedAt: now,
		Retention: Retention{
			BootstrapDays: retentionDays,
			FixturesDays:  retentionDays,
		},
		Bootstrap: BootstrapMeta{
			Dates: []string{},
		},
		Fixtures: FixturesMeta{
			Dates: []string{},
		},
	}
}

// ReadManifest loads the manifest under basePath.
func ReadManifest(basePath string) (Manifest, error) {
	var m Manifest
	f, err := os.Open(ManifestPath(basePath))
	if err != nil {
		return m, err
	}
	defer f.Close()
	if err := json.NewDecoder(f).Decode(&m); err != nil {
		return Manifest{}, err
	}
	return m, nil
}

func writeManifest(basePath string, m Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	return writeAtomic(ManifestPath(basePath), data)
}

func writeAtomic(path string, data []byte) error {
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}
