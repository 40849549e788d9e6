// Package observability exposes Prometheus metrics for the assistant:
// turn volume by intent, fallback usage, and turn latency.
package observability

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics implements chat.Recorder over Prometheus collectors.
type Metrics struct {
	turns    *prometheus.CounterVec
	fallback prometheus.Counter
	latency  prometheus.Histogram
}

// NewMetrics builds and registers the collectors. Pass
// prometheus.DefaultRegisterer unless tests need isolation.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		turns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "florence",
			Name:      "turns_total",
			Help:      "Turns processed, labelled by resolved intent.",
		}, []string{"intent"}),
		fallback: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "florence",
			Name:      "fallback_turns_total",
			Help:      "Turns answered by the generative fallback.",
		}),
		latency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "florence",
			Name:      "turn_duration_seconds",
			Help:      "Wall time per turn.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
		}),
	}
	reg.MustRegister(m.turns, m.fallback, m.latency)
	return m
}

// ObserveTurn records one completed turn.
func (m *Metrics) ObserveTurn(intentName string, usedFallback bool, elapsed time.Duration) {
	m.turns.WithLabelValues(intentName).Inc()
	if usedFallback {
		m.fallback.Inc()
	}
	m.latency.Observe(elapsed.Seconds())
}
