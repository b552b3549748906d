// Package metrics exposes Prometheus collectors for the fulfillment
// coordinator on a private registry.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "fulfillment"

// Transition outcomes reported by ObserveTransition.
const (
	OutcomeApplied              = "applied"
	OutcomeReplayed             = "replayed"
	OutcomeIllegal              = "illegal"
	OutcomeConsistencyViolation = "consistency_violation"
	OutcomeVersionConflict      = "version_conflict"
	OutcomeLockTimeout          = "lock_timeout"
	OutcomeNotFound             = "not_found"
	OutcomeError                = "error"
)

// Publish outcomes reported by ObservePublish.
const (
	PublishDelivered = "delivered"
	PublishFailed    = "failed"
	PublishParked    = "parked"
	PublishDropped   = "dropped"
)

// Metrics groups the collectors. The zero value is not usable; call New.
type Metrics struct {
	registry    *prometheus.Registry
	transitions *prometheus.CounterVec
	lockWait    prometheus.Histogram
	published   *prometheus.CounterVec
	parked      prometheus.Gauge
}

// New registers the collectors, plus the Go runtime and process collectors,
// on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "transitions_total",
			Help:      "Transition requests by machine and outcome.",
		}, []string{"machine", "outcome"}),
		lockWait: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "lock_wait_seconds",
			Help:      "Time spent waiting for the per-order lock.",
			Buckets:   []float64{.0005, .001, .005, .01, .05, .1, .5, 1, 2, 5},
		}),
		published: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_published_total",
			Help:      "Lifecycle events handed to the event sink by outcome.",
		}, []string{"outcome"}),
		parked: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "events_parked",
			Help:      "Events waiting in the redelivery buffer.",
		}),
	}
	m.registry.MustRegister(
		m.transitions,
		m.lockWait,
		m.published,
		m.parked,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

func (m *Metrics) ObserveTransition(machine, outcome string) {
	m.transitions.WithLabelValues(machine, outcome).Inc()
}

func (m *Metrics) ObserveLockWait(d time.Duration) {
	m.lockWait.Observe(d.Seconds())
}

func (m *Metrics) ObservePublish(outcome string) {
	m.published.WithLabelValues(outcome).Inc()
}

func (m *Metrics) SetParked(n int) {
	m.parked.Set(float64(n))
}

// Registry exposes the registry for tests and additional collectors.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
