package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"storyforge-hq/warden/pkg/config"
)

func newTestMetrics() *ValidationMetrics {
	cfg := config.MetricsConfig{
		Enabled:   true,
		Namespace: "warden",
	}
	return NewValidationMetrics(cfg, prometheus.NewRegistry())
}

func TestValidationMetrics_RecordValidation(t *testing.T) {
	vm := newTestMetrics()

	vm.RecordValidation("name", "valid", 50*time.Microsecond)
	vm.RecordValidation("name", "valid", 80*time.Microsecond)
	vm.RecordValidation("name", "prompt_injection", 120*time.Microsecond)
	vm.RecordValidation("selection", "valid", 10*time.Microsecond)

	if got := testutil.ToFloat64(vm.validationsTotal.WithLabelValues("name", "valid")); got != 2 {
		t.Errorf("validations_total{name,valid} = %v, want 2", got)
	}
	if got := testutil.ToFloat64(vm.validationsTotal.WithLabelValues("name", "prompt_injection")); got != 1 {
		t.Errorf("validations_total{name,prompt_injection} = %v, want 1", got)
	}
	if got := testutil.ToFloat64(vm.validationsTotal.WithLabelValues("selection", "valid")); got != 1 {
		t.Errorf("validations_total{selection,valid} = %v, want 1", got)
	}
}

func TestValidationMetrics_RuleHits(t *testing.T) {
	vm := newTestMetrics()

	vm.RecordRuleHit("injection")
	vm.RecordRuleHit("injection")
	vm.RecordRuleHit("homophone")

	if got := testutil.ToFloat64(vm.ruleHitsTotal.WithLabelValues("injection")); got != 2 {
		t.Errorf("rule_hits_total{injection} = %v, want 2", got)
	}
	if got := testutil.ToFloat64(vm.ruleHitsTotal.WithLabelValues("homophone")); got != 1 {
		t.Errorf("rule_hits_total{homophone} = %v, want 1", got)
	}
}

func TestValidationMetrics_RateLimitCounters(t *testing.T) {
	vm := newTestMetrics()

	vm.RecordRateLimitRejection()
	vm.RecordRateLimitRejection()
	vm.RecordCooldownStart()

	if got := testutil.ToFloat64(vm.rateLimitRejections); got != 2 {
		t.Errorf("rate_limit_rejections_total = %v, want 2", got)
	}
	if got := testutil.ToFloat64(vm.cooldownsStarted); got != 1 {
		t.Errorf("cooldowns_started_total = %v, want 1", got)
	}
}

func TestValidationMetrics_AuditEvents(t *testing.T) {
	vm := newTestMetrics()

	vm.RecordAuditEvent("prompt_injection")
	vm.RecordAuditEvent("prompt_injection")
	vm.RecordAuditEvent("inappropriate_combination")

	if got := testutil.ToFloat64(vm.auditEventsTotal.WithLabelValues("prompt_injection")); got != 2 {
		t.Errorf("audit_events_total{prompt_injection} = %v, want 2", got)
	}
}
