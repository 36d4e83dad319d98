package config

import "time"

// Config is the root configuration structure for Warden.
// It contains all configuration sections for the safety validation engine,
// rate limiting, audit storage, usage tracking, and telemetry.
type Config struct {
	// Safety contains configuration for the text-safety validation engine
	// including input bounds, detection rule tables, approved word
	// categories, and forbidden combinations.
	Safety SafetyConfig `yaml:"safety"`

	// RateLimit contains configuration for per-session violation rate
	// limiting including threshold, window, cooldown, and session eviction.
	RateLimit RateLimitConfig `yaml:"rate_limit"`

	// Audit contains configuration for security event recording and storage
	// including backend selection, emitter buffering, and retention.
	Audit AuditConfig `yaml:"audit"`

	// Usage contains configuration for best-effort magic-word usage counting.
	Usage UsageConfig `yaml:"usage"`

	// Telemetry contains configuration for observability including logging
	// and metrics.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// SafetyConfig contains configuration for the validation engine.
type SafetyConfig struct {
	// MaxRawLength is the hard maximum length, in code points, of raw input
	// accepted for name validation. Longer input is rejected before any
	// normalization work is done.
	// Default: 200
	MaxRawLength int `yaml:"max_raw_length"`

	// MaxNameLength is the maximum length, in code points, of a sanitized
	// character name.
	// Default: 50
	MaxNameLength int `yaml:"max_name_length"`

	// Rules contains the detection rule tables. Entries listed here are
	// merged with the built-in tables unless ReplaceDefaults is set.
	Rules RulesConfig `yaml:"rules"`

	// Categories is the approved magic-word catalog, one entry per
	// selectable category. When empty, the built-in catalog is used.
	Categories []CategoryConfig `yaml:"categories"`

	// ForbiddenCombinations lists word triples that are individually
	// approved but unsafe together. Order within a triple does not matter.
	// When empty, the built-in table is used.
	ForbiddenCombinations [][]string `yaml:"forbidden_combinations"`
}

// RulesConfig contains the detection rule tables for the pattern matcher.
// Each list holds plain phrases or terms; matching is case-insensitive and
// runs against normalized text.
type RulesConfig struct {
	// ReplaceDefaults discards the built-in rule tables and uses only the
	// entries configured here. When false, configured entries extend the
	// built-in tables.
	// Default: false
	ReplaceDefaults bool `yaml:"replace_defaults"`

	// InjectionPhrases are phrases that attempt to manipulate downstream
	// generative-model behavior (e.g., "ignore all previous instructions").
	InjectionPhrases []string `yaml:"injection_phrases"`

	// BlockedTerms are literal inappropriate terms.
	BlockedTerms []string `yaml:"blocked_terms"`

	// LeetspeakTerms are inappropriate terms spelled with digit/symbol
	// substitutions. They are matched after normalization folds the
	// substitutions back to letters, so entries here should be spelled
	// with plain letters.
	LeetspeakTerms []string `yaml:"leetspeak_terms"`

	// Homophones are terms that sound inappropriate when spoken aloud even
	// though they are spelled differently.
	Homophones []string `yaml:"homophones"`
}

// CategoryConfig describes one approved magic-word category.
type CategoryConfig struct {
	// Name is the category identifier referenced by selection requests
	// (e.g., "animals", "places").
	Name string `yaml:"name"`

	// Words is the approved word list for this category.
	Words []string `yaml:"words"`
}

// RateLimitConfig contains configuration for the per-session violation
// rate limiter.
type RateLimitConfig struct {
	// Threshold is the number of security violations within Window that
	// moves a session into cooldown.
	// Default: 3
	Threshold int `yaml:"threshold"`

	// Window is the sliding window over which violations are counted.
	// Default: 5m
	Window time.Duration `yaml:"window"`

	// Cooldown is how long a session is rejected outright after reaching
	// the threshold.
	// Default: 2m
	Cooldown time.Duration `yaml:"cooldown"`

	// SessionTTL is how long an idle session's state is retained before
	// the sweeper evicts it. Must be at least Window+Cooldown so active
	// penalties are never evicted early.
	// Default: 30m
	SessionTTL time.Duration `yaml:"session_ttl"`

	// SweepInterval is how often the background sweeper scans for idle
	// sessions to evict.
	// Default: 5m
	SweepInterval time.Duration `yaml:"sweep_interval"`
}

// AuditConfig contains configuration for security event recording.
type AuditConfig struct {
	// Enabled enables audit event recording.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// Backend selects the storage backend: "sqlite" or "memory".
	// Default: "sqlite"
	Backend string `yaml:"backend"`

	// SQLite contains settings for the SQLite backend.
	SQLite SQLiteConfig `yaml:"sqlite"`

	// Memory contains settings for the in-memory backend.
	Memory MemoryConfig `yaml:"memory"`

	// Emitter contains settings for the async event emitter.
	Emitter EmitterConfig `yaml:"emitter"`

	// Retention contains settings for scheduled event pruning.
	Retention RetentionConfig `yaml:"retention"`
}

// SQLiteConfig contains settings for the SQLite audit backend.
type SQLiteConfig struct {
	// Path is the database file path.
	// Default: "data/audit.db"
	Path string `yaml:"path"`

	// MaxOpenConns is the maximum number of open connections.
	// Default: 10
	MaxOpenConns int `yaml:"max_open_conns"`

	// MaxIdleConns is the maximum number of idle connections.
	// Default: 5
	MaxIdleConns int `yaml:"max_idle_conns"`

	// WALMode enables Write-Ahead Logging for better concurrency.
	// Default: true
	WALMode bool `yaml:"wal_mode"`

	// BusyTimeout is how long to wait when the database is locked.
	// Default: 5s
	BusyTimeout time.Duration `yaml:"busy_timeout"`
}

// MemoryConfig contains settings for the in-memory audit backend.
type MemoryConfig struct {
	// MaxEvents caps the number of retained events; the oldest are dropped
	// first once the cap is reached. Zero means unbounded.
	// Default: 10000
	MaxEvents int `yaml:"max_events"`
}

// EmitterConfig contains settings for the async audit emitter.
type EmitterConfig struct {
	// Buffer is the size of the async write channel. When the buffer is
	// full, new events are dropped rather than blocking validation.
	// Default: 1000
	Buffer int `yaml:"buffer"`

	// WriteTimeout is the timeout for writing a single event to storage.
	// Default: 5s
	WriteTimeout time.Duration `yaml:"write_timeout"`
}

// RetentionConfig contains settings for scheduled audit pruning.
type RetentionConfig struct {
	// MaxAge is the maximum age of retained events. Zero disables
	// age-based pruning.
	// Default: 2160h (90 days)
	MaxAge time.Duration `yaml:"max_age"`

	// MaxEvents caps the total number of retained events. Zero disables
	// count-based pruning.
	// Default: 0
	MaxEvents int64 `yaml:"max_events"`

	// Schedule is a standard cron expression controlling when pruning
	// runs. Empty disables the scheduler.
	// Default: "0 3 * * *" (daily at 3 AM)
	Schedule string `yaml:"schedule"`
}

// UsageConfig contains configuration for magic-word usage counting.
type UsageConfig struct {
	// Enabled enables best-effort usage counting on successful selections.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// Path is the SQLite database file path for usage counts.
	// Default: "data/usage.db"
	Path string `yaml:"path"`
}

// TelemetryConfig contains observability configuration.
type TelemetryConfig struct {
	// Logging contains structured logging settings.
	Logging LoggingConfig `yaml:"logging"`

	// Metrics contains Prometheus metrics settings.
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig contains structured logging settings.
type LoggingConfig struct {
	// Level is the minimum log level: "debug", "info", "warn", "error".
	// Default: "info"
	Level string `yaml:"level"`

	// Format is the output format: "json" or "text".
	// Default: "json"
	Format string `yaml:"format"`
}

// MetricsConfig contains Prometheus metrics settings.
type MetricsConfig struct {
	// Enabled enables metric collection.
	// Default: true
	Enabled bool `yaml:"enabled"`

	// Namespace is the metric namespace prefix.
	// Default: "warden"
	Namespace string `yaml:"namespace"`

	// Subsystem is the metric subsystem prefix.
	// Default: ""
	Subsystem string `yaml:"subsystem"`
}
