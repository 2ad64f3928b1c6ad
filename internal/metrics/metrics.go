package metrics

import (
	"sync"
	"time"
)

type providerStats struct {
	calls           int
	errors          int
	lastCallLatency time.Duration
}

// Recorder captures lightweight, in-memory counters alongside optional
// OpenTelemetry instruments. A nil Recorder is a no-op.
type Recorder struct {
	mu          sync.Mutex
	stats       map[string]*providerStats
	resolutions map[string]int
	validations map[bool]int
	refreshes   int
	syncs       int
	syncErrors  int
	otel        *otelInstruments
}

func NewRecorder() *Recorder {
	return newRecorder(nil)
}

func newRecorder(otel *otelInstruments) *Recorder {
	return &Recorder{
		stats:       make(map[string]*providerStats),
		resolutions: make(map[string]int),
		validations: make(map[bool]int),
		otel:        otel,
	}
}

// RecordProviderAttempt increments counters for a provider call and stores the last observed latency.
func (r *Recorder) RecordProviderAttempt(provider string, duration time.Duration, err error) {
	if r == nil {
		return
	}

	r.mu.Lock()
	stats := r.ensureStatsLocked(provider)
	stats.calls++
	stats.lastCallLatency = duration
	if err != nil {
		stats.errors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordProviderAttempt(provider, duration, err)
	}
}

// RecordResolution counts one resolved query by outcome and winning strategy.
func (r *Recorder) RecordResolution(strategy, outcome string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.resolutions[outcome]++
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordResolution(strategy, outcome)
	}
}

// RecordValidation counts one squad validation.
func (r *Recorder) RecordValidation(valid bool, violations int) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.validations[valid]++
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordValidation(valid, violations)
	}
}

// RecordRosterRefresh counts a roster index swap from the given source.
func (r *Recorder) RecordRosterRefresh(source string, players int) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.refreshes++
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordRosterRefresh(source, players)
	}
}

// RecordFixtureSync counts one fixture list sync.
func (r *Recorder) RecordFixtureSync(err error) {
	if r == nil {
		return
	}
	r.mu.Lock()
	r.syncs++
	if err != nil {
		r.syncErrors++
	}
	r.mu.Unlock()

	if r.otel != nil {
		r.otel.recordFixtureSync(err)
	}
}

// FixtureSyncs returns the total and failed fixture syncs.
func (r *Recorder) FixtureSyncs() (total, failed int) {
	if r == nil {
		return 0, 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.syncs, r.syncErrors
}

// ProviderCalls returns the total attempts recorded for a provider.
func (r *Recorder) ProviderCalls(provider string) int {
	return r.Snapshot(provider).Calls
}

// ProviderErrors returns the total failed attempts recorded for a provider.
func (r *Recorder) ProviderErrors(provider string) int {
	return r.Snapshot(provider).Errors
}

// LastCallLatency returns the last recorded latency for a provider call.
func (r *Recorder) LastCallLatency(provider string) time.Duration {
	return r.Snapshot(provider).LastCallLatency
}

// Resolutions returns how many queries ended with outcome.
func (r *Recorder) Resolutions(outcome string) int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.resolutions[outcome]
}

// Validations returns how many squads were validated with the given verdict.
func (r *Recorder) Validations(valid bool) int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.validations[valid]
}

// RosterRefreshes returns how many times the roster index was replaced.
func (r *Recorder) RosterRefreshes() int {
	if r == nil {
		return 0
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.refreshes
}

// Snapshot returns a copy of the current stats for the provider.
type Snapshot struct {
	Calls           int
	Errors          int
	LastCallLatency time.Duration
}

func (r *Recorder) Snapshot(provider string) Snapshot {
	if r == nil {
		return Snapshot{}
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	stats, ok := r.stats[provider]
	if !ok || stats == nil {
		return Snapshot{}
	}
	return Snapshot{
		Calls:           stats.calls,
		Errors:          stats.errors,
		LastCallLatency: stats.lastCallLatency,
	}
}

// RecordHTTPRequest tracks basic HTTP metrics.
func (r *Recorder) RecordHTTPRequest(method, path string, status int, duration time.Duration) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordHTTPRequest(method, path, status, duration)
}

// RecordPollerCycle tracks poller cycles and errors.
func (r *Recorder) RecordPollerCycle(duration time.Duration, err error) {
	if r == nil || r.otel == nil {
		return
	}
	r.otel.recordPoller(duration, err)
}

func (r *Recorder) ensureStatsLocked(provider string) *providerStats {
	stats, ok := r.stats[provider]
	if !ok {
		stats = &providerStats{}
		r.stats[provider] = stats
	}
	return stats
}
