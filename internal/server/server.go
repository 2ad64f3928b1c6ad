package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/preston-bernstein/fpl-squad-service/internal/app/fixtures"
	"github.com/preston-bernstein/fpl-squad-service/internal/app/players"
	"github.com/preston-bernstein/fpl-squad-service/internal/app/squads"
	"github.com/preston-bernstein/fpl-squad-service/internal/app/teams"
	"github.com/preston-bernstein/fpl-squad-service/internal/config"
	httpserver "github.com/preston-bernstein/fpl-squad-service/internal/http"
	"github.com/preston-bernstein/fpl-squad-service/internal/http/handlers"
	"github.com/preston-bernstein/fpl-squad-service/internal/logging"
	"github.com/preston-bernstein/fpl-squad-service/internal/mcpserver"
	"github.com/preston-bernstein/fpl-squad-service/internal/metrics"
	"github.com/preston-bernstein/fpl-squad-service/internal/poller"
	"github.com/preston-bernstein/fpl-squad-service/internal/providers"
	"github.com/preston-bernstein/fpl-squad-service/internal/snapshots"
	"github.com/preston-bernstein/fpl-squad-service/internal/store"
)

var metricsSetup = metrics.Setup

// Server owns every long-running component of the service.
type Server struct {
	cfg            config.Config
	logger         *slog.Logger
	metrics        *metrics.Recorder
	store          *store.MemoryStore
	calendar       *store.FixtureStore
	playersService *players.Service
	teamsService   *teams.Service
	squadsService  *squads.Service
	httpServer     httpServer
	metricsServer  httpServer
	poller         Poller
	syncer         *snapshots.Syncer
	metricsStop    func(context.Context) error
}

type services struct {
	store    *store.MemoryStore
	calendar *store.FixtureStore
	players  *players.Service
	teams    *teams.Service
	squads   *squads.Service
	fixtures *fixtures.Service
}

// New constructs a server with default provider and poller wiring.
func New(cfg config.Config, logger *slog.Logger) *Server {
	return newServerWithMetrics(cfg, logger, nil, nil)
}

func newServerWithProvider(cfg config.Config, logger *slog.Logger, provider providers.BootstrapProvider) *Server {
	return newServerWithMetrics(cfg, logger, provider, nil)
}

func newServerWithMetrics(cfg config.Config, logger *slog.Logger, provider providers.BootstrapProvider, recorder *metrics.Recorder) *Server {
	if logger == nil {
		logger = logging.NewLogger(logging.Config{})
	}
	recorder, metricsSrv, metricsShutdown := buildMetrics(cfg, logger, recorder)

	factory := newProviderFactory(logger, recorder)
	var data providers.DataProvider
	if provider == nil {
		data = factory.build(cfg)
	} else {
		data = factory.wrap(cfg, provider)
	}
	source := normalizeProviderName(cfg.Provider, data)

	svc := buildServices(cfg, logger, recorder, data)
	snaps := buildSnapshots(cfg)
	now := time.Now()
	seedFromSnapshot(snaps.store, svc.store, logger, now)
	seedFixtures(snaps.store, svc.calendar, logger, now)

	opts := poller.Options{
		Provider: data,
		Store:    svc.store,
		Source:   source,
		Logger:   logger,
		Metrics:  recorder,
		Interval: cfg.RefreshInterval,
	}
	// A nil *Writer must not become a non-nil interface.
	if snaps.writer != nil {
		opts.Writer = snaps.writer
	}
	plr := poller.New(opts)
	syncer := snapshots.NewSyncer(data, svc.calendar, snaps.fixturesWriter(), snapshots.SyncConfig{
		Interval: cfg.FixturesRefreshInterval,
		Source:   source,
	}, logger, recorder)
	httpSrv := buildHTTPServer(cfg, svc, logger, recorder, plr)

	return &Server{
		cfg:            cfg,
		logger:         logger,
		metrics:        recorder,
		store:          svc.store,
		calendar:       svc.calendar,
		playersService: svc.players,
		teamsService:   svc.teams,
		squadsService:  svc.squads,
		httpServer:     httpSrv,
		metricsServer:  metricsSrv,
		poller:         plr,
		syncer:         syncer,
		metricsStop:    metricsShutdown,
	}
}

// newServerWithDeps is used for testing to inject custom components.
func newServerWithDeps(cfg config.Config, logger *slog.Logger, httpSrv httpServer, plr Poller) *Server {
	return &Server{
		cfg:        cfg,
		logger:     logger,
		httpServer: httpSrv,
		poller:     plr,
	}
}

func buildServices(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder, history fixtures.HistorySource) services {
	ms := store.NewMemoryStore()
	calendar := store.NewFixtureStore()
	ps := players.NewService(ms, players.Options{
		CacheSize: cfg.Squads.CacheSize,
		Logger:    logger,
		Metrics:   recorder,
	})
	return services{
		store:    ms,
		calendar: calendar,
		players:  ps,
		teams:    teams.NewService(ms),
		squads: squads.NewService(ps, squads.Options{
			Budget:  cfg.Squads.Budget,
			Workers: cfg.Squads.Workers,
			Logger:  logger,
			Metrics: recorder,
		}),
		fixtures: fixtures.NewService(calendar, ms, history),
	}
}

func buildHTTPServer(cfg config.Config, svc services, logger *slog.Logger, recorder *metrics.Recorder, plr *poller.Poller) httpServer {
	handler := handlers.NewHandler(handlers.Options{
		Players:      svc.players,
		Teams:        svc.teams,
		Squads:       svc.squads,
		Fixtures:     svc.fixtures,
		Status:       plr.Status,
		Info:         svc.store.Info,
		FixturesInfo: svc.calendar.Info,
		Logger:       logger,
	})

	routes := httpserver.RouterOptions{Logger: logger, Metrics: recorder}
	if cfg.AdminToken != "" {
		routes.Admin = handlers.NewAdminHandler(plr, cfg.AdminToken, logger)
	}
	if cfg.MCP.Enabled {
		tools := mcpserver.New(mcpserver.Options{
			Name:     cfg.Metrics.ServiceName,
			Players:  svc.players,
			Teams:    svc.teams,
			Squads:   svc.squads,
			Fixtures: svc.fixtures,
			Logger:   logger,
		})
		routes.MCP = tools.Handler()
		routes.MCPPath = cfg.MCP.Path
	}

	return newNetHTTPServer(":"+cfg.Port, httpserver.NewRouter(handler, routes))
}

// Run starts the poller, fixture sync and HTTP server, then waits for context cancellation to shut down gracefully.
func (s *Server) Run(ctx context.Context, stop context.CancelFunc) {
	s.startMetrics()
	s.startServer(stop)
	s.poller.Start(ctx)
	if s.syncer != nil {
		go s.syncer.Run(ctx)
	}

	<-ctx.Done()
	logging.Info(s.logger, "shutdown signal received")

	s.gracefulShutdown()
}

func (s *Server) startServer(stop context.CancelFunc) {
	logging.Info(s.logger, "http server starting", slog.String("addr", s.httpServer.Addr()))
	launchServer("http", s.httpServer, s.logger, func(err error) {
		if stop != nil {
			stop()
		}
	})
}

func (s *Server) startMetrics() {
	if s.metricsServer == nil {
		return
	}
	logging.Info(s.logger, "metrics server starting", slog.String("addr", s.metricsServer.Addr()))
	launchServer("metrics", s.metricsServer, s.logger, nil)
}

func (s *Server) gracefulShutdown() {
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if s.metricsStop != nil {
		if err := s.metricsStop(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics shutdown failed", logging.FieldError, err)
		}
	}

	if s.metricsServer != nil {
		if err := s.metricsServer.Shutdown(shutdownCtx); err != nil {
			logging.Warn(s.logger, "metrics server shutdown failed", logging.FieldError, err)
		}
	}

	if err := s.poller.Stop(shutdownCtx); err != nil {
		logging.Error(s.logger, "failed to stop poller", err)
	}

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		logging.Error(s.logger, "graceful shutdown failed", err)
	}

	logging.Info(s.logger, "shutdown complete")
}

func buildMetrics(cfg config.Config, logger *slog.Logger, recorder *metrics.Recorder) (*metrics.Recorder, httpServer, func(context.Context) error) {
	if recorder != nil {
		return recorder, nil, nil
	}

	recCfg := metrics.TelemetryConfig{
		Enabled:      cfg.Metrics.Enabled,
		Port:         cfg.Metrics.Port,
		ServiceName:  cfg.Metrics.ServiceName,
		OtlpEndpoint: cfg.Metrics.OtlpEndpoint,
		OtlpInsecure: cfg.Metrics.OtlpInsecure,
	}

	rec, handler, shutdown, err := metricsSetup(context.Background(), recCfg)
	if err != nil {
		logging.Warn(logger, "metrics setup failed, continuing without telemetry", logging.FieldError, err)
		return metrics.NewRecorder(), nil, nil
	}

	var metricsSrv httpServer
	if handler != nil && recCfg.Enabled {
		metricsSrv = newNetHTTPServer(":"+recCfg.Port, handler)
	}

	return rec, metricsSrv, shutdown
}

func launchServer(name string, srv httpServer, logger *slog.Logger, onError func(error)) {
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logging.Warn(logger, name+" server failed", logging.FieldError, err)
			if onError != nil {
				onError(err)
			}
		}
	}()
}

// Handler exposes the HTTP handler (useful for tests).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler()
}

// Store exposes the roster store.
func (s *Server) Store() *store.MemoryStore {
	return s.store
}

// Fixtures exposes the fixture calendar store.
func (s *Server) Fixtures() *store.FixtureStore {
	return s.calendar
}
