package config

import "github.com/shopspring/decimal"

// SquadConfig tunes resolution and validation.
type SquadConfig struct {
	Budget    decimal.Decimal
	CacheSize int
	Workers   int
}

// MCPConfig controls the tool endpoint.
type MCPConfig struct {
	Enabled bool
	Path    string
}

func loadSquads() SquadConfig {
	return SquadConfig{
		Budget:    decimalEnvOrDefault(envSquadBudget, defaultSquadBudget),
		CacheSize: intEnvOrDefault(envCacheSize, defaultCacheSize),
		Workers:   intEnvOrDefault(envResolveWorkers, defaultResolveWorkers),
	}
}

func loadMCP() MCPConfig {
	return MCPConfig{
		Enabled: boolEnvOrDefault(envMCPEnabled, defaultMCPEnabled),
		Path:    envOrDefault(envMCPPath, defaultMCPPath),
	}
}
