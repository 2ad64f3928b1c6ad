package config

// FplConfig controls how the roster and fixtures are fetched or read.
// FixturesPath is optional; the file provider defaults it next to
// BootstrapPath.
type FplConfig struct {
	BaseURL       string
	UserAgent     string
	Timeout       Duration
	BootstrapPath string
	FixturesPath  string
}

func loadFpl() FplConfig {
	return FplConfig{
		BaseURL:       envOrDefault(envFplBaseURL, defaultFplBaseURL),
		UserAgent:     envOrDefault(envFplUserAgent, defaultFplUserAgent),
		Timeout:       durationEnvOrDefault(envFplTimeout, defaultFplTimeout),
		BootstrapPath: envOrDefault(envBootstrapPath, defaultBootstrapPath),
		FixturesPath:  envOrDefault(envFixturesPath, ""),
	}
}
