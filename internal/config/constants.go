package config

import "time"

const (
	envPort            = "PORT"
	envRefreshInterval = "REFRESH_INTERVAL"
	envProvider        = "PROVIDER"
	envLogLevel        = "LOG_LEVEL"
	envLogFormat       = "LOG_FORMAT"
	envFplBaseURL      = "FPL_BASE_URL"
	envFplUserAgent    = "FPL_USER_AGENT"
	envFplTimeout      = "FPL_TIMEOUT"
	envBootstrapPath   = "BOOTSTRAP_PATH"
	envFixturesPath    = "FIXTURES_PATH"
	envFixturesRefresh = "FIXTURES_REFRESH_INTERVAL"
	envSquadBudget     = "SQUAD_BUDGET"
	envCacheSize       = "RESOLVE_CACHE_SIZE"
	envResolveWorkers  = "RESOLVE_WORKERS"
	envMCPEnabled      = "MCP_ENABLED"
	envMCPPath         = "MCP_PATH"
	envMetricsPort     = "METRICS_PORT"
	envMetricsOn       = "METRICS_ENABLED"
	envOtelEndpoint    = "OTEL_EXPORTER_OTLP_ENDPOINT"
	envOtelService     = "OTEL_SERVICE_NAME"
	envOtelInsecure    = "OTEL_EXPORTER_OTLP_INSECURE"
	envSnapshotOn      = "SNAPSHOT_ENABLED"
	envSnapshotDir     = "SNAPSHOT_DIR"
	envSnapshotDays    = "SNAPSHOT_RETENTION_DAYS"
	envAdminToken      = "ADMIN_TOKEN"

	defaultPort = "4000"
	// Bootstrap data changes a few times a day at most.
	defaultRefreshInterval = 30 * Duration(time.Minute)
	// Kickoff times move rarely; scores settle within the hour.
	defaultFixturesRefresh = Duration(time.Hour)
	defaultProvider        = "fixture"
	defaultLogLevel        = "info"
	defaultLogFormat       = "text"
	defaultFplBaseURL      = "https://fantasy.premierleague.com/api"
	defaultFplUserAgent    = "myfpl-fetcher/1.0"
	defaultFplTimeout      = 20 * Duration(time.Second)
	defaultBootstrapPath   = "data/bootstrap-static.json"
	defaultSquadBudget     = "100.0"
	defaultCacheSize       = 1024
	defaultResolveWorkers  = 4
	defaultMCPEnabled      = true
	defaultMCPPath         = "/mcp"
	defaultMetricsPort     = "9090"
	defaultServiceName     = "fpl-squad-service"
	defaultSnapshotOn      = false
	defaultSnapshotDir     = "data/snapshots"
	defaultSnapshotDays    = 14
)
