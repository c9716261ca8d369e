// Package metrics records parse and backend call metrics with Prometheus and
// optionally serves them over HTTP.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "salesdash"

// Parse outcomes.
const (
	OutcomeData      = "data"
	OutcomeNoData    = "no_data"
	OutcomeMalformed = "malformed"
)

// Recorder holds the collectors. A nil *Recorder records nothing.
type Recorder struct {
	reg *prometheus.Registry

	parses        *prometheus.CounterVec
	parseRows     prometheus.Histogram
	droppedLeaves prometheus.Counter
	backendCalls  *prometheus.CounterVec
	backendTime   prometheus.Histogram
	cacheHits     prometheus.Counter
}

// New creates a Recorder with its own registry.
func New() *Recorder {
	r := &Recorder{
		reg: prometheus.NewRegistry(),
		parses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "parses_total",
			Help:      "Payload parses by convention and outcome.",
		}, []string{"convention", "outcome"}),
		parseRows: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "parse_rows",
			Help:      "Rows materialized per parsed payload.",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}),
		droppedLeaves: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "dropped_leaves_total",
			Help:      "Leaves discarded because their depth did not match the schema.",
		}),
		backendCalls: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "backend_requests_total",
			Help:      "Chat backend requests by result.",
		}, []string{"result"}),
		backendTime: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "backend_request_duration_seconds",
			Help:      "Chat backend request latency.",
			Buckets:   prometheus.DefBuckets,
		}),
		cacheHits: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "response_cache_hits_total",
			Help:      "Questions answered from the response cache.",
		}),
	}
	r.reg.MustRegister(r.parses, r.parseRows, r.droppedLeaves, r.backendCalls, r.backendTime, r.cacheHits)
	return r
}

// Registry returns the registry the collectors are registered on.
func (r *Recorder) Registry() *prometheus.Registry {
	if r == nil {
		return nil
	}
	return r.reg
}

// ObserveParse records one parse. A non-nil err counts as malformed.
func (r *Recorder) ObserveParse(convention string, rows, dropped int, err error) {
	if r == nil {
		return
	}
	outcome := OutcomeData
	switch {
	case err != nil:
		outcome = OutcomeMalformed
	case rows == 0:
		outcome = OutcomeNoData
	}
	r.parses.WithLabelValues(convention, outcome).Inc()
	if err == nil {
		r.parseRows.Observe(float64(rows))
		r.droppedLeaves.Add(float64(dropped))
	}
}

// ObserveBackend records one backend call.
func (r *Recorder) ObserveBackend(d time.Duration, err error) {
	if r == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	r.backendCalls.WithLabelValues(result).Inc()
	r.backendTime.Observe(d.Seconds())
}

// CacheHit records a response served from cache.
func (r *Recorder) CacheHit() {
	if r == nil {
		return
	}
	r.cacheHits.Inc()
}
