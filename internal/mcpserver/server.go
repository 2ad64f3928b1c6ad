// Package mcpserver exposes player resolution, squad validation and the
// fixture calendar as MCP tools over the streamable HTTP transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/shopspring/decimal"

	"github.com/preston-bernstein/fpl-squad-service/internal/app/fixtures"
	"github.com/preston-bernstein/fpl-squad-service/internal/app/players"
	"github.com/preston-bernstein/fpl-squad-service/internal/app/squads"
	"github.com/preston-bernstein/fpl-squad-service/internal/app/teams"
	domain "github.com/preston-bernstein/fpl-squad-service/internal/domain/players"
	"github.com/preston-bernstein/fpl-squad-service/internal/logging"
	"github.com/preston-bernstein/fpl-squad-service/internal/resolver"
)

const (
	ToolResolvePlayer = "resolve_player"
	ToolGetPlayer     = "get_player"
	ToolListTeams     = "list_teams"
	ToolValidateSquad = "validate_squad"
	ToolListFixtures  = "list_fixtures"
	ToolPlayerHistory = "get_player_history"
)

// ResolvePlayerArgs are the resolve_player inputs.
type ResolvePlayerArgs struct {
	Name string `json:"name" jsonschema:"Player name as typed, e.g. 'B. White' or 'Haaland'"`
	Team string `json:"team,omitempty" jsonschema:"Optional team name, short name or code to break ties"`
}

// GetPlayerArgs are the get_player inputs.
type GetPlayerArgs struct {
	ID int `json:"id" jsonschema:"Player element id"`
}

// ListTeamsArgs is empty; list_teams takes no input.
type ListTeamsArgs struct{}

// ValidateSquadArgs are the validate_squad inputs.
type ValidateSquadArgs struct {
	Lines        []string `json:"lines" jsonschema:"One player per entry, optionally 'Name; Team'"`
	Budget       string   `json:"budget,omitempty" jsonschema:"Budget in millions (default 100.0)"`
	EnforceRules *bool    `json:"enforce_rules,omitempty" jsonschema:"Check squad rules once every line resolves (default true)"`
}

// ListFixturesArgs are the list_fixtures inputs.
type ListFixturesArgs struct {
	Event int    `json:"event,omitempty" jsonschema:"Optional gameweek number"`
	Team  string `json:"team,omitempty" jsonschema:"Optional team id, name, short name or code"`
}

// PlayerHistoryArgs are the get_player_history inputs.
type PlayerHistoryArgs struct {
	ID int `json:"id" jsonschema:"Player element id"`
}

// ToolInfo names a registered tool.
type ToolInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Options collects the tool dependencies.
type Options struct {
	Name     string
	Version  string
	Players  *players.Service
	Teams    *teams.Service
	Squads   *squads.Service
	Fixtures *fixtures.Service
	Logger   *slog.Logger
}

// Server owns the MCP server and its tool registry.
type Server struct {
	players  *players.Service
	teams    *teams.Service
	squads   *squads.Service
	fixtures *fixtures.Service
	logger   *slog.Logger
	server   *mcp.Server
	tools    []ToolInfo
}

// New registers every tool on a fresh MCP server.
func New(opts Options) *Server {
	name := opts.Name
	if name == "" {
		name = "fpl-squad-service"
	}
	version := opts.Version
	if version == "" {
		version = "dev"
	}
	s := &Server{
		players:  opts.Players,
		teams:    opts.Teams,
		squads:   opts.Squads,
		fixtures: opts.Fixtures,
		logger:   opts.Logger,
		server:   mcp.NewServer(&mcp.Implementation{Name: name, Version: version}, nil),
	}

	addTool(s, &mcp.Tool{
		Name:        ToolResolvePlayer,
		Description: "Resolve a free-text player name to roster players (exact, initial, substring then fuzzy match)",
	}, s.resolvePlayer)
	addTool(s, &mcp.Tool{
		Name:        ToolGetPlayer,
		Description: "Look up one player by element id",
	}, s.getPlayer)
	addTool(s, &mcp.Tool{
		Name:        ToolListTeams,
		Description: "List every team in the roster",
	}, s.listTeams)
	addTool(s, &mcp.Tool{
		Name:        ToolValidateSquad,
		Description: "Resolve 15 squad lines and check size, position quotas, the per-club cap and budget",
	}, s.validateSquad)
	if s.fixtures != nil {
		addTool(s, &mcp.Tool{
			Name:        ToolListFixtures,
			Description: "List fixtures with kickoff times and team names, optionally for one gameweek or team",
		}, s.listFixtures)
		addTool(s, &mcp.Tool{
			Name:        ToolPlayerHistory,
			Description: "Fetch one player's per-match points and stats placed on the fixture calendar",
		}, s.playerHistory)
	}
	return s
}

func addTool[T any](s *Server, tool *mcp.Tool, handler func(context.Context, *mcp.CallToolRequest, T) (*mcp.CallToolResult, any, error)) {
	s.tools = append(s.tools, ToolInfo{Name: tool.Name, Description: tool.Description})
	mcp.AddTool(s.server, tool, func(ctx context.Context, req *mcp.CallToolRequest, args T) (*mcp.CallToolResult, any, error) {
		logging.Info(logging.FromContext(ctx, s.logger), "mcp tool called", logging.FieldTool, tool.Name)
		return handler(ctx, req, args)
	})
}

// Tools lists the registered tools in registration order.
func (s *Server) Tools() []ToolInfo {
	out := make([]ToolInfo, len(s.tools))
	copy(out, s.tools)
	return out
}

// MCP returns the underlying server for alternative transports.
func (s *Server) MCP() *mcp.Server {
	return s.server
}

// Handler serves the tools over streamable HTTP with plain JSON responses.
func (s *Server) Handler() http.Handler {
	return mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return s.server
	}, &mcp.StreamableHTTPOptions{JSONResponse: true})
}

type resolveOutput struct {
	Query       string           `json:"query"`
	TeamHint    string           `json:"team_hint,omitempty"`
	Outcome     resolver.Outcome `json:"outcome"`
	Strategy    string           `json:"strategy,omitempty"`
	Players     []domain.Player  `json:"players"`
	Candidates  []string         `json:"candidates,omitempty"`
	HintIgnored bool             `json:"hint_ignored,omitempty"`
}

func (s *Server) resolvePlayer(ctx context.Context, req *mcp.CallToolRequest, args ResolvePlayerArgs) (*mcp.CallToolResult, any, error) {
	name := strings.TrimSpace(args.Name)
	if name == "" {
		return toolError(errors.New("name is required")), nil, nil
	}
	res, err := s.players.Resolve(name, args.Team)
	if err != nil {
		return toolError(err), nil, nil
	}
	out := resolveOutput{
		Query:       res.Query,
		TeamHint:    res.TeamHint,
		Outcome:     res.Outcome(),
		Strategy:    res.Strategy,
		Players:     res.Players,
		HintIgnored: res.HintIgnored,
	}
	if res.Players == nil {
		out.Players = []domain.Player{}
	}
	if out.Outcome == resolver.Ambiguous {
		out.Candidates = res.Labels()
	}
	return toolJSON(out)
}

func (s *Server) getPlayer(ctx context.Context, req *mcp.CallToolRequest, args GetPlayerArgs) (*mcp.CallToolResult, any, error) {
	if args.ID <= 0 {
		return toolError(errors.New("id is required")), nil, nil
	}
	p, ok, err := s.players.PlayerByID(args.ID)
	if err != nil {
		return toolError(err), nil, nil
	}
	if !ok {
		return toolError(fmt.Errorf("player %d not found", args.ID)), nil, nil
	}
	return toolJSON(p)
}

func (s *Server) listTeams(ctx context.Context, req *mcp.CallToolRequest, args ListTeamsArgs) (*mcp.CallToolResult, any, error) {
	list, err := s.teams.Teams()
	if err != nil {
		return toolError(err), nil, nil
	}
	return toolJSON(map[string]any{"count": len(list), "teams": list})
}

func (s *Server) validateSquad(ctx context.Context, req *mcp.CallToolRequest, args ValidateSquadArgs) (*mcp.CallToolResult, any, error) {
	in := squads.Request{Lines: args.Lines, EnforceRules: true}
	if args.EnforceRules != nil {
		in.EnforceRules = *args.EnforceRules
	}
	if raw := strings.TrimSpace(args.Budget); raw != "" {
		budget, err := decimal.NewFromString(raw)
		if err != nil || !budget.IsPositive() {
			return toolError(fmt.Errorf("invalid budget %q", raw)), nil, nil
		}
		in.Budget = &budget
	}
	res, err := s.squads.Validate(ctx, in)
	if err != nil {
		return toolError(err), nil, nil
	}
	return toolJSON(res)
}

func (s *Server) listFixtures(ctx context.Context, req *mcp.CallToolRequest, args ListFixturesArgs) (*mcp.CallToolResult, any, error) {
	if args.Event < 0 {
		return toolError(fmt.Errorf("invalid event %d", args.Event)), nil, nil
	}
	filter := fixtures.Filter{Event: args.Event}
	if raw := strings.TrimSpace(args.Team); raw != "" {
		id, err := s.teamID(raw)
		if err != nil {
			return toolError(err), nil, nil
		}
		filter.TeamID = id
	}
	list, err := s.fixtures.Fixtures(filter)
	if err != nil {
		return toolError(err), nil, nil
	}
	return toolJSON(map[string]any{"count": len(list), "fixtures": list})
}

func (s *Server) playerHistory(ctx context.Context, req *mcp.CallToolRequest, args PlayerHistoryArgs) (*mcp.CallToolResult, any, error) {
	if args.ID <= 0 {
		return toolError(errors.New("id is required")), nil, nil
	}
	rows, ok, err := s.fixtures.PlayerHistory(ctx, args.ID)
	if err != nil {
		return toolError(err), nil, nil
	}
	if !ok {
		return toolError(fmt.Errorf("player %d not found", args.ID)), nil, nil
	}
	return toolJSON(map[string]any{"player_id": args.ID, "count": len(rows), "history": rows})
}

func (s *Server) teamID(raw string) (int, error) {
	if id, err := strconv.Atoi(raw); err == nil && id > 0 {
		if _, ok, err := s.teams.TeamByID(id); err != nil || ok {
			return id, err
		}
	}
	t, ok, err := s.teams.Lookup(raw)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, fmt.Errorf("team %q not found", raw)
	}
	return t.ID, nil
}

func toolJSON(v any) (*mcp.CallToolResult, any, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return toolError(err), nil, nil
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: string(b)},
		},
	}, nil, nil
}

func toolError(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{
			&mcp.TextContent{Text: fmt.Sprintf("error: %v", err)},
		},
	}
}
