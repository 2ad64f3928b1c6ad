package server

import (
	"log/slog"

	"github.com/preston-bernstein/fpl-squad-service/internal/config"
	"github.com/preston-bernstein/fpl-squad-service/internal/metrics"
	"github.com/preston-bernstein/fpl-squad-service/internal/providers"
)

// providerFactory assembles the provider with the shared logging and metrics wrapper.
type providerFactory struct {
	logger  *slog.Logger
	metrics *metrics.Recorder
}

func newProviderFactory(logger *slog.Logger, metrics *metrics.Recorder) providerFactory {
	return providerFactory{logger: logger, metrics: metrics}
}

func (f providerFactory) build(cfg config.Config) providers.DataProvider {
	return f.wrap(cfg, selectProvider(cfg, f.logger))
}

// wrap always yields a DataProvider; match calls on a bootstrap-only base
// report providers.ErrUnsupported.
func (f providerFactory) wrap(cfg config.Config, base providers.BootstrapProvider) providers.DataProvider {
	return providers.NewInstrumentedProvider(base, normalizeProviderName(cfg.Provider, base), f.logger, f.metrics)
}
