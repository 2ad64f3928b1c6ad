package server

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/preston-bernstein/fpl-squad-service/internal/config"
	"github.com/preston-bernstein/fpl-squad-service/internal/providers"
	"github.com/preston-bernstein/fpl-squad-service/internal/providers/file"
	"github.com/preston-bernstein/fpl-squad-service/internal/providers/fixture"
	"github.com/preston-bernstein/fpl-squad-service/internal/providers/fpl"
)

func selectProvider(cfg config.Config, logger *slog.Logger) providers.BootstrapProvider {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case providers.NameFixture, "":
		return fixture.New()
	case providers.NameFpl:
		return fpl.NewClient(fpl.Config{
			BaseURL:   cfg.Fpl.BaseURL,
			UserAgent: cfg.Fpl.UserAgent,
			Timeout:   cfg.Fpl.Timeout,
		})
	case providers.NameFile:
		p := file.New(cfg.Fpl.BootstrapPath)
		if cfg.Fpl.FixturesPath != "" {
			p.FixturesPath = cfg.Fpl.FixturesPath
		}
		return p
	default:
		if logger != nil {
			logger.Warn("unknown provider, falling back to fixture", slog.String("provider", cfg.Provider))
		}
		return fixture.New()
	}
}

// normalizeProviderName is the label used for provider metrics and logs: the
// configured name when set, else the provider's type name.
func normalizeProviderName(raw string, provider providers.BootstrapProvider) string {
	if name := strings.ToLower(strings.TrimSpace(raw)); name != "" {
		return name
	}
	if provider == nil {
		return "provider"
	}
	return strings.ToLower(fmt.Sprintf("%T", provider))
}
