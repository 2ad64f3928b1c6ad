// Package squads resolves a batch of squad lines and validates the resulting
// squad against league rules.
package squads

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/preston-bernstein/fpl-squad-service/internal/app/players"
	domain "github.com/preston-bernstein/fpl-squad-service/internal/domain/players"
	"github.com/preston-bernstein/fpl-squad-service/internal/logging"
	"github.com/preston-bernstein/fpl-squad-service/internal/metrics"
	"github.com/preston-bernstein/fpl-squad-service/internal/query"
	"github.com/preston-bernstein/fpl-squad-service/internal/resolver"
	"github.com/preston-bernstein/fpl-squad-service/internal/squad"
)

// ErrNoLines is returned for a request without any non-blank line.
var ErrNoLines = errors.New("no squad lines")

const defaultWorkers = 4

// Status summarizes a validation run.
type Status string

const (
	// StatusValid means every line resolved and the squad passed the rules.
	StatusValid Status = "valid"
	// StatusResolved means every line resolved and rules were not enforced.
	StatusResolved Status = "resolved"
	// StatusUnresolved means at least one line was missing or ambiguous.
	StatusUnresolved Status = "unresolved"
	// StatusInvalid means the squad broke at least one rule.
	StatusInvalid Status = "invalid"
)

// Request is one squad validation.
type Request struct {
	Lines []string
	// Budget overrides the service budget when set.
	Budget       *decimal.Decimal
	EnforceRules bool
}

// Entry is the resolution of one input line.
type Entry struct {
	Line        string           `json:"line"`
	Query       string           `json:"query"`
	TeamHint    string           `json:"team_hint,omitempty"`
	Outcome     resolver.Outcome `json:"outcome"`
	Strategy    string           `json:"strategy,omitempty"`
	Player      *domain.Player   `json:"player,omitempty"`
	Candidates  []string         `json:"candidates,omitempty"`
	HintIgnored bool             `json:"hint_ignored,omitempty"`
}

// Ambiguity lists the candidates of a query that matched several players.
type Ambiguity struct {
	Query      string   `json:"query"`
	Candidates []string `json:"candidates"`
}

// Result is the outcome of a validation run.
type Result struct {
	Status        Status          `json:"status"`
	RosterVersion string          `json:"roster_version"`
	Entries       []Entry         `json:"entries"`
	Missing       []string        `json:"missing"`
	Ambiguous     []Ambiguity     `json:"ambiguous"`
	Squad         []domain.Player `json:"squad"`
	Report        *squad.Report   `json:"report,omitempty"`
}

// Resolved reports whether every line matched exactly one player.
func (r Result) Resolved() bool {
	return len(r.Missing) == 0 && len(r.Ambiguous) == 0
}

// Options tunes a Service.
type Options struct {
	Rules   squad.Rules
	Budget  decimal.Decimal
	Workers int
	Logger  *slog.Logger
	Metrics *metrics.Recorder
}

// Service validates squads using the player resolver.
type Service struct {
	players *players.Service
	rules   squad.Rules
	budget  decimal.Decimal
	workers int
	logger  *slog.Logger
	metrics *metrics.Recorder
}

// NewService builds a Service. Zero options fall back to the default rules,
// budget and worker count.
func NewService(ps *players.Service, opts Options) *Service {
	svc := &Service{
		players: ps,
		rules:   opts.Rules,
		budget:  opts.Budget,
		workers: opts.Workers,
		logger:  opts.Logger,
		metrics: opts.Metrics,
	}
	if svc.rules.Size == 0 {
		svc.rules = squad.DefaultRules()
	}
	if svc.budget.IsZero() {
		svc.budget = squad.DefaultBudget
	}
	if svc.workers <= 0 {
		svc.workers = defaultWorkers
	}
	return svc
}

// Budget returns the default budget applied when a request has none.
func (s *Service) Budget() decimal.Decimal {
	return s.budget
}

// Validate resolves every line concurrently and, when all of them resolve
// and rules are enforced, checks the squad. Entries mirror input order.
func (s *Service) Validate(ctx context.Context, req Request) (Result, error) {
	queries := make([]query.Query, 0, len(req.Lines))
	lines := make([]string, 0, len(req.Lines))
	for _, line := range req.Lines {
		q := query.Parse(line)
		if q.Name == "" && !q.HasHint() {
			continue
		}
		queries = append(queries, q)
		lines = append(lines, line)
	}
	if len(queries) == 0 {
		return Result{}, ErrNoLines
	}

	ix, err := s.players.Index()
	if err != nil {
		return Result{}, err
	}

	results := make([]resolver.Result, len(queries))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, q := range queries {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = s.players.ResolveIn(ix, q.Name, q.TeamHint)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Result{}, fmt.Errorf("resolve squad: %w", err)
	}

	out := Result{
		RosterVersion: ix.Version(),
		Entries:       make([]Entry, 0, len(results)),
		Missing:       []string{},
		Ambiguous:     []Ambiguity{},
		Squad:         []domain.Player{},
	}
	for i, res := range results {
		entry := Entry{
			Line:        lines[i],
			Query:       res.Query,
			TeamHint:    res.TeamHint,
			Outcome:     res.Outcome(),
			Strategy:    res.Strategy,
			HintIgnored: res.HintIgnored,
		}
		switch entry.Outcome {
		case resolver.Found:
			p := res.Players[0]
			entry.Player = &p
			out.Squad = append(out.Squad, p)
		case resolver.Ambiguous:
			entry.Candidates = res.Labels()
			out.Ambiguous = append(out.Ambiguous, Ambiguity{Query: res.Query, Candidates: entry.Candidates})
		default:
			out.Missing = append(out.Missing, res.Query)
		}
		out.Entries = append(out.Entries, entry)
	}

	switch {
	case !out.Resolved():
		out.Status = StatusUnresolved
	case !req.EnforceRules:
		out.Status = StatusResolved
	default:
		budget := s.budget
		if req.Budget != nil {
			budget = *req.Budget
		}
		report := s.rules.Validate(out.Squad, budget)
		out.Report = &report
		out.Status = StatusValid
		if !report.Valid() {
			out.Status = StatusInvalid
		}
		s.metrics.RecordValidation(report.Valid(), len(report.Violations))
	}

	logger := logging.FromContext(ctx, s.logger)
	logging.Info(logger, "squad validated",
		logging.FieldRoster, out.RosterVersion,
		logging.FieldCount, len(out.Entries),
		logging.FieldOutcome, string(out.Status),
		"missing", len(out.Missing),
		"ambiguous", len(out.Ambiguous),
	)
	return out, nil
}
