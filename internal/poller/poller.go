package poller

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/preston-bernstein/fpl-squad-service/internal/domain/bootstrap"
	"github.com/preston-bernstein/fpl-squad-service/internal/logging"
	"github.com/preston-bernstein/fpl-squad-service/internal/metrics"
	"github.com/preston-bernstein/fpl-squad-service/internal/providers"
	"github.com/preston-bernstein/fpl-squad-service/internal/roster"
	"github.com/preston-bernstein/fpl-squad-service/internal/timeutil"
)

const defaultInterval = 30 * time.Minute

// SnapshotWriter persists roster snapshots to disk.
type SnapshotWriter interface {
	WriteBootstrapSnapshot(date string, b bootstrap.Bootstrap, version string) error
}

// RosterStore receives freshly built indexes.
type RosterStore interface {
	Version() string
	SetIndex(ix *roster.Index, source string, at time.Time) bool
	Touch(at time.Time)
}

// Poller fetches the roster on an interval, swaps the index in the store
// when the content changed and writes a dated snapshot.
type Poller struct {
	provider providers.BootstrapProvider
	store    RosterStore
	writer   SnapshotWriter
	source   string
	logger   *slog.Logger
	metrics  *metrics.Recorder
	interval time.Duration
	now      func() time.Time

	ticker   *time.Ticker
	done     chan struct{}
	exited   chan struct{}
	stopOnce sync.Once
	startMu  sync.Mutex
	started  bool

	statusMu sync.RWMutex
	status   Status
}

// Status describes the recent health of the poller loop.
type Status struct {
	ConsecutiveFailures int       `json:"consecutive_failures"`
	LastError           string    `json:"last_error,omitempty"`
	LastAttempt         time.Time `json:"last_attempt"`
	LastSuccess         time.Time `json:"last_success"`
	LastChange          time.Time `json:"last_change"`
	RosterVersion       string    `json:"roster_version,omitempty"`
}

// IsReady reports whether the poller has had a recent success and is not failing repeatedly.
func (s Status) IsReady() bool {
	if s.LastSuccess.IsZero() {
		return false
	}
	return s.ConsecutiveFailures < 3
}

// Options configures a Poller.
type Options struct {
	Provider providers.BootstrapProvider
	Store    RosterStore
	Writer   SnapshotWriter
	Source   string
	Logger   *slog.Logger
	Metrics  *metrics.Recorder
	Interval time.Duration
}

// New constructs a Poller with sane defaults.
func New(opts Options) *Poller {
	if opts.Interval <= 0 {
		opts.Interval = defaultInterval
	}
	return &Poller{
		provider: opts.Provider,
		store:    opts.Store,
		writer:   opts.Writer,
		source:   opts.Source,
		logger:   opts.Logger,
		metrics:  opts.Metrics,
		interval: opts.Interval,
		now:      time.Now,
		done:     make(chan struct{}),
		exited:   make(chan struct{}),
	}
}

// Start begins polling until the context is cancelled or Stop is called.
func (p *Poller) Start(ctx context.Context) {
	p.startMu.Lock()
	if p.started {
		p.startMu.Unlock()
		return
	}
	p.started = true
	p.startMu.Unlock()

	p.ticker = time.NewTicker(p.interval)

	go func() {
		defer close(p.exited)
		p.logInfo("poller started", slog.Int64(logging.FieldDurationMS, p.interval.Milliseconds()))
		// Initial fetch to warm data on boot.
		_ = p.Refresh(ctx)

		for {
			select {
			case <-ctx.Done():
				p.stopTicker()
				p.logInfo("poller stopped")
				return
			case <-p.done:
				p.stopTicker()
				p.logInfo("poller stopped")
				return
			case <-p.ticker.C:
				_ = p.Refresh(ctx)
			}
		}
	}()
}

// Stop halts the polling loop and waits for it to exit or ctx to expire.
func (p *Poller) Stop(ctx context.Context) error {
	p.stopOnce.Do(func() {
		close(p.done)
		p.stopTicker()
	})

	p.startMu.Lock()
	started := p.started
	p.startMu.Unlock()
	if !started {
		return nil
	}
	select {
	case <-p.exited:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Refresh performs one fetch cycle synchronously.
func (p *Poller) Refresh(ctx context.Context) error {
	start := p.now()
	p.recordAttempt(start)

	b, err := p.provider.FetchBootstrap(ctx)
	p.metrics.RecordPollerCycle(p.now().Sub(start), err)
	if err != nil {
		logging.Error(p.logger, "roster refresh failed", err,
			slog.Int64(logging.FieldDurationMS, p.now().Sub(start).Milliseconds()),
		)
		p.recordFailure(err, start)
		return err
	}

	version := roster.VersionOf(b)
	changed, size := p.apply(b, version, start)
	if changed {
		p.metrics.RecordRosterRefresh(p.source, size)
	}
	if b.Skipped.Total() > 0 {
		logging.Warn(p.logger, "roster entries skipped",
			logging.FieldSkipped, b.Skipped.Total(),
			"teams", b.Skipped.Teams,
			"element_types", b.Skipped.ElementTypes,
			"elements", b.Skipped.Elements,
		)
	}

	if p.writer != nil {
		date := timeutil.UTCDate(start)
		if writeErr := p.writer.WriteBootstrapSnapshot(date, b, version); writeErr != nil {
			logging.Error(p.logger, "roster snapshot write failed", writeErr, logging.FieldDate, date)
		}
	}

	p.recordSuccess(start, version, changed)
	p.logInfo("roster refreshed",
		logging.FieldCount, len(b.Elements),
		logging.FieldRoster, version,
		"changed", changed,
		logging.FieldDurationMS, p.now().Sub(start).Milliseconds(),
	)
	return nil
}

// apply builds and stores a new index unless the store already holds version.
func (p *Poller) apply(b bootstrap.Bootstrap, version string, at time.Time) (bool, int) {
	if p.store == nil {
		return true, roster.Build(b).Len()
	}
	if current := p.store.Version(); current != "" && current == version {
		p.store.Touch(at)
		return false, 0
	}
	ix := roster.Build(b)
	return p.store.SetIndex(ix, p.source, at), ix.Len()
}

func (p *Poller) stopTicker() {
	if p.ticker != nil {
		p.ticker.Stop()
	}
}

func (p *Poller) logInfo(msg string, args ...any) {
	logging.Info(p.logger, msg, args...)
}

func (p *Poller) recordAttempt(at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.LastAttempt = at
}

func (p *Poller) recordSuccess(at time.Time, version string, changed bool) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures = 0
	p.status.LastError = ""
	p.status.LastSuccess = at
	p.status.RosterVersion = version
	if changed {
		p.status.LastChange = at
	}
}

func (p *Poller) recordFailure(err error, at time.Time) {
	p.statusMu.Lock()
	defer p.statusMu.Unlock()
	p.status.ConsecutiveFailures++
	if err != nil {
		p.status.LastError = err.Error()
	}
	p.status.LastAttempt = at
}

// Status returns a snapshot of the poller's recent health.
func (p *Poller) Status() Status {
	p.statusMu.RLock()
	defer p.statusMu.RUnlock()
	return p.status
}

// Provider exposes the underlying provider.
func (p *Poller) Provider() providers.BootstrapProvider {
	return p.provider
}
