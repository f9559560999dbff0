package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registration outcomes.
const (
	OutcomeAccepted       = "accepted"
	OutcomeMissingFields  = "missing_fields"
	OutcomeInvalidPhone   = "invalid_phone"
	OutcomeDuplicatePhone = "duplicate_phone"
	OutcomeError          = "error"
)

// Metrics provides observability for the registration module.
type Metrics struct {
	Registrations *prometheus.CounterVec
	AuditFailures prometheus.Counter
}

// New creates a new Metrics instance with all registration metrics registered.
func New() *Metrics {
	return &Metrics{
		Registrations: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "phonereg_registrations_total",
			Help: "Registration attempts by outcome",
		}, []string{"outcome"}),
		AuditFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "phonereg_registration_audit_failures_total",
			Help: "Best-effort registration audit events that could not be written",
		}),
	}
}

// IncrementRegistration records a registration attempt outcome.
func (m *Metrics) IncrementRegistration(outcome string) {
	if m != nil {
		m.Registrations.WithLabelValues(outcome).Inc()
	}
}

// IncrementAuditFailure records a dropped audit event.
func (m *Metrics) IncrementAuditFailure() {
	if m != nil {
		m.AuditFailures.Inc()
	}
}
