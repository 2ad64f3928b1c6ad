package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Instrument names as exported to Prometheus.
const (
	nameHTTPRequests     = "http_requests_total"
	nameHTTPLatency      = "http_request_duration_ms"
	nameProviderAttempts = "provider_attempts_total"
	nameProviderErrors   = "provider_errors_total"
	nameProviderLatency  = "provider_duration_ms"
	nameResolutions      = "resolutions_total"
	nameValidations      = "squad_validations_total"
	nameViolations       = "squad_violations_total"
	nameRosterRefreshes  = "roster_refreshes_total"
	nameRosterPlayers    = "roster_players"
	namePollerCycles     = "poller_cycles_total"
	namePollerErrors     = "poller_errors_total"
	namePollerLatency    = "poller_cycle_duration_ms"
	nameFixtureSyncs     = "fixture_syncs_total"
	nameFixtureErrors    = "fixture_sync_errors_total"
)

var counterDescriptions = map[string]string{
	nameHTTPRequests:     "HTTP requests served",
	nameProviderAttempts: "Bootstrap fetch attempts",
	nameProviderErrors:   "Failed bootstrap fetches",
	nameResolutions:      "Player name resolutions by strategy and outcome",
	nameValidations:      "Squad validations",
	nameViolations:       "Squad rule violations reported",
	nameRosterRefreshes:  "Roster index swaps",
	namePollerCycles:     "Poller refresh cycles",
	namePollerErrors:     "Failed poller refresh cycles",
	nameFixtureSyncs:     "Fixture list syncs",
	nameFixtureErrors:    "Failed fixture list syncs",
}

var histogramDescriptions = map[string]string{
	nameHTTPLatency:     "HTTP request latency in milliseconds",
	nameProviderLatency: "Bootstrap fetch latency in milliseconds",
	namePollerLatency:   "Poller cycle latency in milliseconds",
}

type otelInstruments struct {
	ctx           context.Context
	counters      map[string]metric.Int64Counter
	histograms    map[string]metric.Float64Histogram
	rosterPlayers metric.Int64Histogram
}

func newOtelInstruments(meter metric.Meter) (*otelInstruments, error) {
	inst := &otelInstruments{
		ctx:        context.Background(),
		counters:   make(map[string]metric.Int64Counter, len(counterDescriptions)),
		histograms: make(map[string]metric.Float64Histogram, len(histogramDescriptions)),
	}
	for name, desc := range counterDescriptions {
		c, err := meter.Int64Counter(name, metric.WithDescription(desc))
		if err != nil {
			return nil, err
		}
		inst.counters[name] = c
	}
	for name, desc := range histogramDescriptions {
		h, err := meter.Float64Histogram(name, metric.WithDescription(desc))
		if err != nil {
			return nil, err
		}
		inst.histograms[name] = h
	}
	players, err := meter.Int64Histogram(nameRosterPlayers, metric.WithDescription("Players in each new roster index"))
	if err != nil {
		return nil, err
	}
	inst.rosterPlayers = players
	return inst, nil
}

func (o *otelInstruments) recordHTTPRequest(method, path string, status int, duration time.Duration) {
	attrs := []attribute.KeyValue{
		attribute.String(AttrMethod, method),
		attribute.String(AttrPath, path),
		attribute.Int(AttrStatus, status),
	}
	o.add(nameHTTPRequests, 1, attrs...)
	o.observe(nameHTTPLatency, duration, attrs...)
}

func (o *otelInstruments) recordProviderAttempt(provider string, duration time.Duration, err error) {
	attr := attribute.String(AttrProvider, provider)
	o.add(nameProviderAttempts, 1, attr)
	o.observe(nameProviderLatency, duration, attr)
	if err != nil {
		o.add(nameProviderErrors, 1, attr)
	}
}

func (o *otelInstruments) recordResolution(strategy, outcome string) {
	o.add(nameResolutions, 1,
		attribute.String(AttrStrategy, strategy),
		attribute.String(AttrOutcome, outcome),
	)
}

func (o *otelInstruments) recordValidation(valid bool, violations int) {
	o.add(nameValidations, 1, attribute.Bool(AttrValid, valid))
	if violations > 0 {
		o.add(nameViolations, int64(violations))
	}
}

func (o *otelInstruments) recordRosterRefresh(source string, players int) {
	attr := attribute.String(AttrSource, source)
	o.add(nameRosterRefreshes, 1, attr)
	if o != nil && o.rosterPlayers != nil {
		o.rosterPlayers.Record(o.ctx, int64(players), metric.WithAttributes(attr))
	}
}

func (o *otelInstruments) recordPoller(duration time.Duration, err error) {
	o.add(namePollerCycles, 1)
	o.observe(namePollerLatency, duration)
	if err != nil {
		o.add(namePollerErrors, 1)
	}
}

func (o *otelInstruments) recordFixtureSync(err error) {
	o.add(nameFixtureSyncs, 1)
	if err != nil {
		o.add(nameFixtureErrors, 1)
	}
}

func (o *otelInstruments) add(name string, value int64, attrs ...attribute.KeyValue) {
	if o == nil {
		return
	}
	if c, ok := o.counters[name]; ok {
		c.Add(o.ctx, value, metric.WithAttributes(attrs...))
	}
}

func (o *otelInstruments) observe(name string, d time.Duration, attrs ...attribute.KeyValue) {
	if o == nil {
		return
	}
	if h, ok := o.histograms[name]; ok {
		h.Record(o.ctx, float64(d.Milliseconds()), metric.WithAttributes(attrs...))
	}
}
