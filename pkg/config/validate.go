package config

import (
	"fmt"
	"strings"
)

// FieldError represents a validation error for a specific configuration field.
type FieldError struct {
	// Field is the dotted path to the configuration field (e.g., "rate_limit.threshold").
	Field string

	// Message is a human-readable error message.
	Message string
}

// Error returns the error message for this field error.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError represents one or more validation errors in a configuration.
// A ValidationError at load time is fatal: the process must not start with a
// malformed rule catalog.
type ValidationError struct {
	// Errors contains all validation errors found in the configuration.
	Errors []FieldError
}

// Error returns a formatted string containing all validation errors.
func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("configuration validation failed with %d errors:\n", len(e.Errors)))
	for _, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}

// Validate validates the entire configuration and returns a ValidationError
// if any validation rules fail. It returns nil if the configuration is valid.
// All validation errors are collected and returned together.
func Validate(cfg *Config) error {
	var errs []FieldError

	errs = append(errs, validateSafety(&cfg.Safety)...)
	errs = append(errs, validateRateLimit(&cfg.RateLimit)...)
	errs = append(errs, validateAudit(&cfg.Audit)...)
	errs = append(errs, validateTelemetry(&cfg.Telemetry)...)

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}

	return nil
}

func validateSafety(cfg *SafetyConfig) []FieldError {
	var errs []FieldError

	if cfg.MaxRawLength < 1 {
		errs = append(errs, FieldError{"safety.max_raw_length", "must be at least 1"})
	}
	if cfg.MaxNameLength < 1 {
		errs = append(errs, FieldError{"safety.max_name_length", "must be at least 1"})
	}
	if cfg.MaxRawLength < cfg.MaxNameLength {
		errs = append(errs, FieldError{"safety.max_raw_length",
			fmt.Sprintf("must be >= max_name_length (%d)", cfg.MaxNameLength)})
	}

	errs = append(errs, validateCategories(cfg.Categories)...)
	errs = append(errs, validateForbiddenCombinations(cfg.ForbiddenCombinations)...)

	return errs
}

// validateCategories checks the configured magic-word catalog. An empty
// catalog is valid: the built-in catalog is used instead.
func validateCategories(categories []CategoryConfig) []FieldError {
	var errs []FieldError

	seen := make(map[string]bool, len(categories))
	for i, cat := range categories {
		field := fmt.Sprintf("safety.categories[%d]", i)

		name := strings.ToLower(strings.TrimSpace(cat.Name))
		if name == "" {
			errs = append(errs, FieldError{field, "category name is required"})
			continue
		}
		if seen[name] {
			errs = append(errs, FieldError{field, fmt.Sprintf("duplicate category %q", name)})
			continue
		}
		seen[name] = true

		if len(cat.Words) < MinCategoryWords {
			errs = append(errs, FieldError{field,
				fmt.Sprintf("category %q has %d approved words, need at least %d",
					name, len(cat.Words), MinCategoryWords)})
		}

		words := make(map[string]bool, len(cat.Words))
		for j, word := range cat.Words {
			w := strings.ToLower(strings.TrimSpace(word))
			if w == "" {
				errs = append(errs, FieldError{fmt.Sprintf("%s.words[%d]", field, j), "word is empty"})
				continue
			}
			if words[w] {
				errs = append(errs, FieldError{fmt.Sprintf("%s.words[%d]", field, j),
					fmt.Sprintf("duplicate word %q", w)})
			}
			words[w] = true
		}
	}

	return errs
}

// validateForbiddenCombinations checks that every configured combination has
// exactly SelectionSize distinct words.
func validateForbiddenCombinations(combos [][]string) []FieldError {
	var errs []FieldError

	for i, combo := range combos {
		field := fmt.Sprintf("safety.forbidden_combinations[%d]", i)

		if len(combo) != SelectionSize {
			errs = append(errs, FieldError{field,
				fmt.Sprintf("combination has %d words, need exactly %d", len(combo), SelectionSize)})
			continue
		}

		seen := make(map[string]bool, len(combo))
		for _, word := range combo {
			w := strings.ToLower(strings.TrimSpace(word))
			if w == "" {
				errs = append(errs, FieldError{field, "combination contains an empty word"})
				continue
			}
			if seen[w] {
				errs = append(errs, FieldError{field,
					fmt.Sprintf("combination repeats word %q", w)})
			}
			seen[w] = true
		}
	}

	return errs
}

func validateRateLimit(cfg *RateLimitConfig) []FieldError {
	var errs []FieldError

	if cfg.Threshold < 1 {
		errs = append(errs, FieldError{"rate_limit.threshold", "must be at least 1"})
	}
	if cfg.Window <= 0 {
		errs = append(errs, FieldError{"rate_limit.window", "must be positive"})
	}
	if cfg.Cooldown <= 0 {
		errs = append(errs, FieldError{"rate_limit.cooldown", "must be positive"})
	}
	if cfg.SessionTTL <= 0 {
		errs = append(errs, FieldError{"rate_limit.session_ttl", "must be positive"})
	} else if cfg.SessionTTL < cfg.Window+cfg.Cooldown {
		errs = append(errs, FieldError{"rate_limit.session_ttl",
			"must be at least window + cooldown so active penalties are never evicted"})
	}
	if cfg.SweepInterval <= 0 {
		errs = append(errs, FieldError{"rate_limit.sweep_interval", "must be positive"})
	}

	return errs
}

func validateAudit(cfg *AuditConfig) []FieldError {
	var errs []FieldError

	switch cfg.Backend {
	case "sqlite", "memory":
	default:
		errs = append(errs, FieldError{"audit.backend",
			fmt.Sprintf("unknown backend %q, must be \"sqlite\" or \"memory\"", cfg.Backend)})
	}

	if cfg.Backend == "sqlite" && cfg.SQLite.Path == "" {
		errs = append(errs, FieldError{"audit.sqlite.path", "field is required for the sqlite backend"})
	}
	if cfg.Emitter.Buffer < 1 {
		errs = append(errs, FieldError{"audit.emitter.buffer", "must be at least 1"})
	}
	if cfg.Emitter.WriteTimeout <= 0 {
		errs = append(errs, FieldError{"audit.emitter.write_timeout", "must be positive"})
	}
	if cfg.Retention.MaxAge < 0 {
		errs = append(errs, FieldError{"audit.retention.max_age", "must not be negative"})
	}
	if cfg.Retention.MaxEvents < 0 {
		errs = append(errs, FieldError{"audit.retention.max_events", "must not be negative"})
	}

	return errs
}

func validateTelemetry(cfg *TelemetryConfig) []FieldError {
	var errs []FieldError

	switch cfg.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, FieldError{"telemetry.logging.level",
			fmt.Sprintf("unknown level %q", cfg.Logging.Level)})
	}

	switch cfg.Logging.Format {
	case "json", "text":
	default:
		errs = append(errs, FieldError{"telemetry.logging.format",
			fmt.Sprintf("unknown format %q", cfg.Logging.Format)})
	}

	return errs
}
