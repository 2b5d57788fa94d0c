package origin

import (
	"github.com/prometheus/client_golang/prometheus"
)

// unknownTier labels bundle requests for a path segment that is not a tier.
const unknownTier = "unknown"

// Metrics are the counters of the origin service.
type Metrics struct {
	classified *prometheus.CounterVec
	served     *prometheus.CounterVec
}

// NewMetrics creates the origin collectors and registers them with reg when
// reg is not nil.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		classified: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "userflow_bootstrap",
				Name:      "classify_total",
				Help:      "Number of user agents classified, by browser target and deciding rule.",
			},
			[]string{"target", "rule"},
		),
		served: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "userflow_bootstrap",
				Name:      "bundle_requests_total",
				Help:      "Number of bundle file requests, by browser target and status code.",
			},
			[]string{"target", "code"},
		),
	}
	if reg != nil {
		reg.MustRegister(m.classified, m.served)
	}
	return m
}

func (m *Metrics) observeClassification(tier, rule string) {
	if m == nil {
		return
	}
	if rule == "" {
		rule = "none"
	}
	m.classified.WithLabelValues(tier, rule).Inc()
}

func (m *Metrics) observeBundle(tier string, code int) {
	if m == nil {
		return
	}
	m.served.WithLabelValues(tier, httpCode(code)).Inc()
}

func httpCode(code int) string {
	switch {
	case code >= 500:
		return "5xx"
	case code >= 400:
		return "4xx"
	case code >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}
