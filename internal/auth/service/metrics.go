package service

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Outcome labels for token operation metrics.
const (
	OutcomeSuccess  = "success"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

// Metrics holds the service counters. A nil *Metrics records nothing.
type Metrics struct {
	TokenOperations *prometheus.CounterVec
	TokenDuration   *prometheus.HistogramVec
	Authentications *prometheus.CounterVec
}

// NewMetrics creates the service metrics and registers them with reg.
// Panics if registration fails (following prometheus convention).
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		TokenOperations: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gatekeep_token_operations_total",
				Help: "Total number of token operations by outcome",
			},
			[]string{"operation", "outcome"},
		),
		TokenDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "gatekeep_token_operation_duration_seconds",
				Help:    "Token operation duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		Authentications: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "gatekeep_authentications_total",
				Help: "Total number of credential checks by status",
			},
			[]string{"status"},
		),
	}

	reg.MustRegister(m.TokenOperations, m.TokenDuration, m.Authentications)
	return m
}

// recordToken counts one token operation and observes its duration.
func (m *Metrics) recordToken(operation, outcome string, started time.Time) {
	if m == nil {
		return
	}
	m.TokenOperations.WithLabelValues(operation, outcome).Inc()
	m.TokenDuration.WithLabelValues(operation).Observe(time.Since(started).Seconds())
}

func (m *Metrics) recordAuthentication(status AuthStatus) {
	if m == nil {
		return
	}
	m.Authentications.WithLabelValues(status.String()).Inc()
}

// outcomeOf maps a use case return pair to a metrics label.
func outcomeOf[T any](res Result[T], err error) string {
	switch {
	case err != nil:
		return OutcomeError
	case !res.Success:
		return OutcomeRejected
	default:
		return OutcomeSuccess
	}
}
