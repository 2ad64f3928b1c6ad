package config

import (
	"github.com/joho/godotenv"
)

// Config holds runtime configuration for the server.
type Config struct {
	Port                    string
	RefreshInterval         Duration
	FixturesRefreshInterval Duration
	Provider                string
	LogLevel                string
	LogFormat               string
	Fpl                     FplConfig
	Squads                  SquadConfig
	MCP                     MCPConfig
	Metrics                 MetricsConfig
	Snapshots               SnapshotConfig
	// AdminToken guards admin endpoints; empty disables them.
	AdminToken string
}

// Load reads configuration from environment variables with sensible defaults.
// A .env file in the working directory is applied first when present; real
// environment variables take precedence over it.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:                    envOrDefault(envPort, defaultPort),
		RefreshInterval:         durationEnvOrDefault(envRefreshInterval, defaultRefreshInterval),
		FixturesRefreshInterval: durationEnvOrDefault(envFixturesRefresh, defaultFixturesRefresh),
		Provider:                envOrDefault(envProvider, defaultProvider),
		LogLevel:                envOrDefault(envLogLevel, defaultLogLevel),
		LogFormat:               envOrDefault(envLogFormat, defaultLogFormat),
		Fpl:                     loadFpl(),
		Squads:                  loadSquads(),
		MCP:                     loadMCP(),
		Metrics:                 loadMetrics(),
		Snapshots:               loadSnapshots(),
		AdminToken:              envOrDefault(envAdminToken, ""),
	}
}
