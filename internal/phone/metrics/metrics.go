package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the phone module.
type Metrics struct {
	// Verdicts by outcome: "valid", "invalid", "malformed"
	Verdicts *prometheus.CounterVec

	// Rule failures by rule name
	RuleFailures *prometheus.CounterVec

	// Duration of a full domain enumeration
	CountDuration prometheus.Histogram

	// Shared count cache lookups by result: "hit", "miss", "error"
	CountCacheLookups *prometheus.CounterVec
}

// New creates a new Metrics instance with all phone module metrics registered.
func New() *Metrics {
	return &Metrics{
		Verdicts: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "phonereg_phone_verdicts_total",
			Help: "Total phone number evaluations by outcome",
		}, []string{"outcome"}),

		RuleFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "phonereg_phone_rule_failures_total",
			Help: "Total rule failures for well-formed phone numbers by rule",
		}, []string{"rule"}),

		CountDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "phonereg_phone_count_duration_seconds",
			Help:    "Duration of enumerating the full candidate domain",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}),

		CountCacheLookups: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "phonereg_phone_count_cache_lookups_total",
			Help: "Shared valid-count cache lookups by result",
		}, []string{"result"}),
	}
}

// IncrementVerdict records a verdict outcome.
func (m *Metrics) IncrementVerdict(outcome string) {
	if m != nil {
		m.Verdicts.WithLabelValues(outcome).Inc()
	}
}

// IncrementRuleFailure records a failed rule.
func (m *Metrics) IncrementRuleFailure(rule string) {
	if m != nil {
		m.RuleFailures.WithLabelValues(rule).Inc()
	}
}

// ObserveCount records the duration of a domain enumeration.
func (m *Metrics) ObserveCount(d time.Duration) {
	if m != nil {
		m.CountDuration.Observe(d.Seconds())
	}
}

// IncrementCacheLookup records a count cache lookup.
func (m *Metrics) IncrementCacheLookup(result string) {
	if m != nil {
		m.CountCacheLookups.WithLabelValues(result).Inc()
	}
}
