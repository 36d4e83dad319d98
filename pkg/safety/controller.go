package safety

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	"storyforge-hq/warden/pkg/audit"
	"storyforge-hq/warden/pkg/config"
	"storyforge-hq/warden/pkg/safety/bypass"
	"storyforge-hq/warden/pkg/safety/combination"
	"storyforge-hq/warden/pkg/safety/normalize"
	"storyforge-hq/warden/pkg/safety/patterns"
	"storyforge-hq/warden/pkg/safety/ratelimit"
	"storyforge-hq/warden/pkg/telemetry/metrics"
	"storyforge-hq/warden/pkg/usage"
)

// Collaborators holds the optional side-effect sinks the controller
// reports to. Any field may be nil; validation behaves identically
// without them.
type Collaborators struct {
	// Audit receives security events for rejected requests.
	Audit *audit.Emitter

	// Usage receives best-effort selection counts for accepted
	// magic-word selections.
	Usage *usage.Store

	// Metrics receives Prometheus instrumentation.
	Metrics *metrics.ValidationMetrics
}

// Controller orchestrates the validation pipeline. It is the only
// component that sees both the free-text and controlled-selection
// subsystems, and the only one that emits audit events.
//
// # Thread Safety
//
// A Controller is immutable after construction apart from the rate
// limiter's internal session state, which synchronizes itself. All
// methods are safe for concurrent use, including concurrent calls for
// the same session.
type Controller struct {
	safetyCfg config.SafetyConfig
	rateCfg   config.RateLimitConfig

	matcher  *patterns.Matcher
	selector *combination.Validator
	limiter  *ratelimit.Limiter

	collab Collaborators
	logger *slog.Logger
}

// NewController compiles the rule tables and builds the validation
// pipeline. A malformed configuration is a construction error; nothing
// after construction can fail.
func NewController(cfg *config.Config, collab Collaborators) (*Controller, error) {
	matcher, err := patterns.NewMatcher(cfg.Safety.Rules)
	if err != nil {
		return nil, fmt.Errorf("failed to compile pattern rules: %w", err)
	}

	selector, err := combination.NewValidator(cfg.Safety.Categories, cfg.Safety.ForbiddenCombinations)
	if err != nil {
		return nil, fmt.Errorf("failed to build combination validator: %w", err)
	}

	return &Controller{
		safetyCfg: cfg.Safety,
		rateCfg:   cfg.RateLimit,
		matcher:   matcher,
		selector:  selector,
		limiter:   ratelimit.NewLimiter(cfg.RateLimit),
		collab:    collab,
		logger:    slog.Default().With("component", "safety"),
	}, nil
}

// Close stops the rate limiter's background sweeper. The audit emitter
// and usage store are owned by the caller and are not closed here.
func (c *Controller) Close() {
	c.limiter.Close()
}

// ValidateName validates a free-text character name for a session.
//
// The pipeline runs cheap structural checks before pattern matching:
// cooldown, raw length, sanitized length and character class, bypass
// detection, then the rule tables. Every outcome is returned as data;
// no call ever panics or blocks on I/O.
func (c *Controller) ValidateName(raw, sessionID string) ValidationResult {
	start := time.Now()

	if st := c.limiter.Check(sessionID); st.Cooling {
		return c.rateLimited("name", start)
	}

	if utf8.RuneCountInString(raw) > c.safetyCfg.MaxRawLength {
		return c.reject("name", sessionID, KindCharacterRuleViolation, nil, nil, start)
	}

	sanitized := normalize.Clean(raw)
	normalized := normalize.Normalize(raw)

	if sanitized == "" ||
		utf8.RuneCountInString(sanitized) > c.safetyCfg.MaxNameLength ||
		!allowedName(sanitized) {
		// Still run the bypass detector: a charset rejection caused by
		// invisible or mixed-script characters carries a signal the audit
		// trail should keep.
		return c.reject("name", sessionID, KindCharacterRuleViolation, nil, bypass.Detect(raw, normalized), start)
	}

	if flags := bypass.Detect(raw, normalized); len(flags) > 0 {
		return c.reject("name", sessionID, KindCharacterRuleViolation, nil, flags, start)
	}

	if res := c.matcher.Match(normalized); res.Matched {
		kind := KindInappropriateContent
		if res.Kind == patterns.KindPromptInjection {
			kind = KindPromptInjection
		}
		if c.collab.Metrics != nil {
			for _, id := range res.RuleIDs {
				c.collab.Metrics.RecordRuleHit(ruleCategory(id))
			}
		}
		return c.reject("name", sessionID, kind, res.RuleIDs, nil, start)
	}

	c.limiter.Touch(sessionID)
	c.observe("name", "valid", start)
	return ValidationResult{
		IsValid:       true,
		SanitizedText: sanitized,
	}
}

// ValidateSelection validates a controlled magic-word selection for a
// session. words and claimedCategories are parallel slices.
//
// Only an inappropriate combination counts as a rate-limit violation
// and produces an audit event; duplicates and unapproved words are
// ordinary user mistakes, not bypass attempts.
func (c *Controller) ValidateSelection(words, claimedCategories []string, sessionID string) ValidationResult {
	start := time.Now()

	if st := c.limiter.Check(sessionID); st.Cooling {
		return c.rateLimited("selection", start)
	}

	res := c.selector.Validate(words, claimedCategories)
	switch res.Outcome {
	case combination.OutcomeOK:
		if c.collab.Usage != nil {
			c.collab.Usage.RecordSelection(context.Background(), claimedCategories, res.Words)
		}
		c.limiter.Touch(sessionID)
		c.observe("selection", "valid", start)
		return ValidationResult{
			IsValid:       true,
			SanitizedText: strings.Join(res.Words, " "),
		}

	case combination.OutcomeDuplicate:
		return c.softReject("selection", KindDuplicateSelection, start)

	case combination.OutcomeForbidden:
		var ruleIDs []string
		if res.RuleID != "" {
			ruleIDs = []string{res.RuleID}
		}
		return c.reject("selection", sessionID, KindInappropriateCombination, ruleIDs, nil, start)

	default:
		return c.softReject("selection", KindUnapprovedSelection, start)
	}
}

// reject records a violation, emits an audit event, and builds the
// invalid result for kind.
func (c *Controller) reject(op, sessionID string, kind ErrorKind, ruleIDs []string, flags []bypass.Flag, start time.Time) ValidationResult {
	st := c.limiter.RecordViolation(sessionID)
	if st.CooldownStarted && c.collab.Metrics != nil {
		c.collab.Metrics.RecordCooldownStart()
	}

	flagStrings := make([]string, 0, len(flags))
	for _, f := range flags {
		flagStrings = append(flagStrings, string(f))
	}

	c.emitEvent(sessionID, kind, append(append([]string{}, ruleIDs...), flagStrings...))
	c.observe(op, string(kind), start)

	c.logger.Info("validation rejected",
		"operation", op,
		"kind", kind,
		"rule_count", len(ruleIDs),
		"flag_count", len(flags),
	)

	result := ValidationResult{
		ErrorKind:    kind,
		ChildMessage: MessageFor(kind),
	}
	if len(flagStrings) > 0 {
		result.SecurityFlags = flagStrings
	}
	return result
}

// softReject builds an invalid result without recording a violation or
// emitting an event. Used for ordinary selection mistakes.
func (c *Controller) softReject(op string, kind ErrorKind, start time.Time) ValidationResult {
	c.observe(op, string(kind), start)
	return ValidationResult{
		ErrorKind:    kind,
		ChildMessage: MessageFor(kind),
	}
}

func (c *Controller) rateLimited(op string, start time.Time) ValidationResult {
	if c.collab.Metrics != nil {
		c.collab.Metrics.RecordRateLimitRejection()
	}
	c.observe(op, string(KindRateLimited), start)
	return ValidationResult{
		ErrorKind:    KindRateLimited,
		ChildMessage: MessageFor(KindRateLimited),
	}
}

func (c *Controller) emitEvent(sessionID string, kind ErrorKind, ruleIDs []string) {
	if c.collab.Audit == nil {
		return
	}
	c.collab.Audit.Emit(audit.NewEvent(sessionID, string(kind), ruleIDs))
	if c.collab.Metrics != nil {
		c.collab.Metrics.RecordAuditEvent(string(kind))
	}
}

func (c *Controller) observe(op, outcome string, start time.Time) {
	if c.collab.Metrics != nil {
		c.collab.Metrics.RecordValidation(op, outcome, time.Since(start))
	}
}

// allowedName reports whether every rune of a sanitized name is a
// letter, space, hyphen, or apostrophe.
func allowedName(s string) bool {
	for _, r := range s {
		switch {
		case unicode.IsLetter(r):
		case r == ' ' || r == '-' || r == '\'' || r == '’':
		default:
			return false
		}
	}
	return true
}

// ruleCategory extracts the category prefix of a rule identifier such
// as "injection.003".
func ruleCategory(id string) string {
	if i := strings.IndexByte(id, '.'); i > 0 {
		return id[:i]
	}
	return id
}
