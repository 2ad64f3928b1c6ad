package config

// SnapshotConfig controls on-disk roster snapshots.
type SnapshotConfig struct {
	Enabled       bool
	Dir           string
	RetentionDays int
}

func loadSnapshots() SnapshotConfig {
	return SnapshotConfig{
		Enabled:       boolEnvOrDefault(envSnapshotOn, defaultSnapshotOn),
		Dir:           envOrDefault(envSnapshotDir, defaultSnapshotDir),
		RetentionDays: intEnvOrDefault(envSnapshotDays, defaultSnapshotDays),
	}
}
