package loader

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts load attempts. A nil *Metrics records nothing.
type Metrics struct {
	attempts *prometheus.CounterVec
	failures *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics creates the loader collectors and registers them with reg when
// reg is not nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		attempts: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "userflow_bootstrap",
				Name:      "load_attempts_total",
				Help:      "Number of script injections started, by browser target.",
			},
			[]string{"target"},
		),
		failures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "userflow_bootstrap",
				Name:      "load_failures_total",
				Help:      "Number of script injections that failed, by browser target.",
			},
			[]string{"target"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "userflow_bootstrap",
				Name:      "load_duration_seconds",
				Help:      "Time from injection start to load or error.",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"target"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.attempts, m.failures, m.duration)
	}
	return m
}

func (m *Metrics) started(s Script) {
	if m == nil {
		return
	}
	m.attempts.WithLabelValues(string(s.Tier)).Inc()
}

func (m *Metrics) finished(s Script, seconds float64, err error) {
	if m == nil {
		return
	}
	m.duration.WithLabelValues(string(s.Tier)).Observe(seconds)
	if err != nil {
		m.failures.WithLabelValues(string(s.Tier)).Inc()
	}
}
