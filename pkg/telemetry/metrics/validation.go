// Package metrics provides Prometheus instrumentation for the
// validation engine.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"storyforge-hq/warden/pkg/config"
)

// ValidationMetrics tracks metrics for the validation pipeline.
//
// Metrics:
//   - warden_validations_total: Total validations by operation and outcome
//   - warden_validation_duration_seconds: Validation duration by operation
//   - warden_rule_hits_total: Pattern rule matches by category
//   - warden_rate_limit_rejections_total: Requests rejected while cooling
//   - warden_cooldowns_started_total: Sessions entering cooldown
//   - warden_audit_events_total: Audit events emitted by kind
type ValidationMetrics struct {
	validationsTotal    *prometheus.CounterVec
	validationDuration  *prometheus.HistogramVec
	ruleHitsTotal       *prometheus.CounterVec
	rateLimitRejections prometheus.Counter
	cooldownsStarted    prometheus.Counter
	auditEventsTotal    *prometheus.CounterVec
}

// NewValidationMetrics creates and registers validation metrics with the
// provided registry.
func NewValidationMetrics(cfg config.MetricsConfig, registry *prometheus.Registry) *ValidationMetrics {
	vm := &ValidationMetrics{
		validationsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "validations_total",
				Help:      "Total number of validation requests",
			},
			[]string{"operation", "outcome"},
		),

		validationDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "validation_duration_seconds",
				Help:      "Duration of a validation request in seconds",
				// Validation is pure rule evaluation and should stay
				// well under a millisecond.
				Buckets: prometheus.ExponentialBuckets(0.000001, 2, 15), // 1µs to 16ms
			},
			[]string{"operation"},
		),

		ruleHitsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "rule_hits_total",
				Help:      "Total number of pattern rule matches",
			},
			[]string{"category"},
		),

		rateLimitRejections: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "rate_limit_rejections_total",
				Help:      "Total number of requests rejected during cooldown",
			},
		),

		cooldownsStarted: prometheus.NewCounter(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "cooldowns_started_total",
				Help:      "Total number of sessions entering cooldown",
			},
		),

		auditEventsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: cfg.Namespace,
				Subsystem: cfg.Subsystem,
				Name:      "audit_events_total",
				Help:      "Total number of audit events emitted",
			},
			[]string{"kind"},
		),
	}

	registry.MustRegister(
		vm.validationsTotal,
		vm.validationDuration,
		vm.ruleHitsTotal,
		vm.rateLimitRejections,
		vm.cooldownsStarted,
		vm.auditEventsTotal,
	)

	return vm
}

// RecordValidation records a completed validation request.
// operation is "name" or "selection"; outcome is "valid" or the error kind.
func (vm *ValidationMetrics) RecordValidation(operation, outcome string, duration time.Duration) {
	vm.validationsTotal.WithLabelValues(operation, outcome).Inc()
	vm.validationDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordRuleHit records a pattern rule match in the given category.
func (vm *ValidationMetrics) RecordRuleHit(category string) {
	vm.ruleHitsTotal.WithLabelValues(category).Inc()
}

// RecordRateLimitRejection records a request rejected during cooldown.
func (vm *ValidationMetrics) RecordRateLimitRejection() {
	vm.rateLimitRejections.Inc()
}

// RecordCooldownStart records a session entering cooldown.
func (vm *ValidationMetrics) RecordCooldownStart() {
	vm.cooldownsStarted.Inc()
}

// RecordAuditEvent records an emitted audit event.
func (vm *ValidationMetrics) RecordAuditEvent(kind string) {
	vm.auditEventsTotal.WithLabelValues(kind).Inc()
}
