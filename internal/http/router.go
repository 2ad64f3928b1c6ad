package http

import (
	"log/slog"
	nethttp "net/http"
	"strings"

	"github.com/preston-bernstein/fpl-squad-service/internal/http/handlers"
	"github.com/preston-bernstein/fpl-squad-service/internal/http/middleware"
	"github.com/preston-bernstein/fpl-squad-service/internal/metrics"
)

// RouterOptions holds the optional routes and middleware dependencies.
type RouterOptions struct {
	Admin   *handlers.AdminHandler
	MCP     nethttp.Handler
	MCPPath string
	Logger  *slog.Logger
	Metrics *metrics.Recorder
}

// NewRouter registers HTTP routes on a ServeMux and wraps them with request logging.
func NewRouter(handler *handlers.Handler, opts RouterOptions) nethttp.Handler {
	mux := nethttp.NewServeMux()
	mux.HandleFunc("/health", handler.Health)
	mux.HandleFunc("/ready", handler.Ready)
	mux.HandleFunc("/roster", handler.Roster)
	mux.HandleFunc("/teams", handler.Teams)
	mux.HandleFunc("/teams/", handler.TeamByID)
	mux.HandleFunc("/players", handler.Players)
	mux.HandleFunc("/players/", handler.PlayerByID)
	mux.HandleFunc("/fixtures", handler.Fixtures)
	mux.HandleFunc("/fixtures/", handler.FixtureByID)
	mux.HandleFunc("/squads/validate", handler.ValidateSquad)
	if opts.Admin != nil {
		mux.HandleFunc("/admin/refresh", opts.Admin.RefreshRoster)
	}
	if opts.MCP != nil {
		path := opts.MCPPath
		if path == "" {
			path = "/mcp"
		}
		if !strings.HasPrefix(path, "/") {
			path = "/" + path
		}
		mux.Handle(path, opts.MCP)
	}
	return middleware.LoggingMiddleware(opts.Logger, opts.Metrics, mux)
}
