package providers

import (
	"context"
	"log/slog"
	"time"

	"github.com/preston-bernstein/fpl-squad-service/internal/domain/bootstrap"
	"github.com/preston-bernstein/fpl-squad-service/internal/domain/fixtures"
	"github.com/preston-bernstein/fpl-squad-service/internal/logging"
	"github.com/preston-bernstein/fpl-squad-service/internal/metrics"
)

// instrumentedProvider times every fetch and reports it to logs and metrics.
// Match data is delegated when inner implements MatchProvider.
type instrumentedProvider struct {
	inner    BootstrapProvider
	matches  MatchProvider
	name     string
	logger   *slog.Logger
	recorder *metrics.Recorder
	now      func() time.Time
}

// NewInstrumentedProvider wraps inner so each fetch is logged and counted under name.
func NewInstrumentedProvider(inner BootstrapProvider, name string, logger *slog.Logger, recorder *metrics.Recorder) DataProvider {
	matches, _ := inner.(MatchProvider)
	return &instrumentedProvider{
		inner:    inner,
		matches:  matches,
		name:     name,
		logger:   logger,
		recorder: recorder,
		now:      time.Now,
	}
}

func (p *instrumentedProvider) FetchBootstrap(ctx context.Context) (bootstrap.Bootstrap, error) {
	start := p.now()
	b, err := p.inner.FetchBootstrap(ctx)
	elapsed := p.now().Sub(start)

	p.recorder.RecordProviderAttempt(p.name, elapsed, err)
	if err != nil {
		p.logFailure(ctx, "bootstrap fetch failed", err, elapsed)
		return bootstrap.Bootstrap{}, err
	}

	p.log(ctx, slog.LevelDebug, "bootstrap fetched",
		logging.FieldCount, len(b.Elements),
		logging.FieldDurationMS, elapsed.Milliseconds(),
	)
	return b, nil
}

func (p *instrumentedProvider) FetchFixtures(ctx context.Context) ([]fixtures.Fixture, error) {
	if p.matches == nil {
		return nil, ErrUnsupported
	}
	start := p.now()
	list, err := p.matches.FetchFixtures(ctx)
	elapsed := p.now().Sub(start)

	p.recorder.RecordProviderAttempt(p.name+suffixFixtures, elapsed, err)
	if err != nil {
		p.logFailure(ctx, "fixtures fetch failed", err, elapsed)
		return nil, err
	}
	p.log(ctx, slog.LevelDebug, "fixtures fetched",
		logging.FieldCount, len(list),
		logging.FieldDurationMS, elapsed.Milliseconds(),
	)
	return list, nil
}

func (p *instrumentedProvider) FetchPlayerHistory(ctx context.Context, playerID int) ([]fixtures.HistoryEntry, error) {
	if p.matches == nil {
		return nil, ErrUnsupported
	}
	start := p.now()
	entries, err := p.matches.FetchPlayerHistory(ctx, playerID)
	elapsed := p.now().Sub(start)

	p.recorder.RecordProviderAttempt(p.name+suffixHistory, elapsed, err)
	if err != nil {
		p.logFailure(ctx, "player history fetch failed", err, elapsed, logging.FieldPlayerID, playerID)
		return nil, err
	}
	p.log(ctx, slog.LevelDebug, "player history fetched",
		logging.FieldPlayerID, playerID,
		logging.FieldCount, len(entries),
		logging.FieldDurationMS, elapsed.Milliseconds(),
	)
	return entries, nil
}

// Metric label suffixes for the match data fetches.
const (
	suffixFixtures = "_fixtures"
	suffixHistory  = "_history"
)

func (p *instrumentedProvider) logFailure(ctx context.Context, msg string, err error, elapsed time.Duration, extra ...any) {
	attrs := []any{logging.FieldError, err, logging.FieldDurationMS, elapsed.Milliseconds()}
	if statusErr, ok := AsStatusError(err); ok {
		attrs = append(attrs, logging.FieldStatusCode, statusErr.StatusCode)
	}
	p.log(ctx, slog.LevelWarn, msg, append(attrs, extra...)...)
}

// log prefers the request-scoped logger from ctx and always tags the provider.
func (p *instrumentedProvider) log(ctx context.Context, level slog.Level, msg string, args ...any) {
	logger := logging.FromContext(ctx, p.logger)
	if logger == nil {
		return
	}
	logger.Log(ctx, level, msg, append(args, slog.String(logging.FieldProvider, p.name))...)
}
