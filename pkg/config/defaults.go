package config

import "time"

// Default values for configuration fields.
const (
	// Safety defaults
	DefaultMaxRawLength  = 200
	DefaultMaxNameLength = 50

	// MinCategoryWords is the minimum approved-word count per category.
	// Selections draw from a small fixed set, so categories need enough
	// breadth to be meaningful.
	MinCategoryWords = 20

	// SelectionSize is the fixed number of magic words in a selection.
	SelectionSize = 3

	// Rate-limit defaults
	DefaultRateLimitThreshold = 3
	DefaultRateLimitWindow    = 5 * time.Minute
	DefaultRateLimitCooldown  = 2 * time.Minute
	DefaultSessionTTL         = 30 * time.Minute
	DefaultSweepInterval      = 5 * time.Minute

	// Audit defaults
	DefaultAuditEnabled           = true
	DefaultAuditBackend           = "sqlite"
	DefaultAuditSQLitePath        = "data/audit.db"
	DefaultAuditSQLiteMaxOpen     = 10
	DefaultAuditSQLiteMaxIdle     = 5
	DefaultAuditSQLiteWALMode     = true
	DefaultAuditSQLiteBusyTimeout = 5 * time.Second
	DefaultAuditMemoryMaxEvents   = 10000
	DefaultAuditEmitterBuffer     = 1000
	DefaultAuditWriteTimeout      = 5 * time.Second
	DefaultAuditRetentionMaxAge   = 90 * 24 * time.Hour
	DefaultAuditRetentionSchedule = "0 3 * * *"

	// Usage defaults
	DefaultUsageEnabled = true
	DefaultUsagePath    = "data/usage.db"

	// Telemetry defaults
	DefaultLoggingLevel     = "info"
	DefaultLoggingFormat    = "json"
	DefaultMetricsEnabled   = true
	DefaultMetricsNamespace = "warden"
)

// ApplyDefaults fills in default values for any unset configuration fields.
// It is called automatically by LoadConfig before validation.
func ApplyDefaults(cfg *Config) {
	applySafetyDefaults(&cfg.Safety)
	applyRateLimitDefaults(&cfg.RateLimit)
	applyAuditDefaults(&cfg.Audit)
	applyUsageDefaults(&cfg.Usage)
	applyTelemetryDefaults(&cfg.Telemetry)
}

func applySafetyDefaults(cfg *SafetyConfig) {
	if cfg.MaxRawLength == 0 {
		cfg.MaxRawLength = DefaultMaxRawLength
	}
	if cfg.MaxNameLength == 0 {
		cfg.MaxNameLength = DefaultMaxNameLength
	}
}

func applyRateLimitDefaults(cfg *RateLimitConfig) {
	if cfg.Threshold == 0 {
		cfg.Threshold = DefaultRateLimitThreshold
	}
	if cfg.Window == 0 {
		cfg.Window = DefaultRateLimitWindow
	}
	if cfg.Cooldown == 0 {
		cfg.Cooldown = DefaultRateLimitCooldown
	}
	if cfg.SessionTTL == 0 {
		cfg.SessionTTL = DefaultSessionTTL
	}
	if cfg.SweepInterval == 0 {
		cfg.SweepInterval = DefaultSweepInterval
	}
}

func applyAuditDefaults(cfg *AuditConfig) {
	// Since bools have zero value false, we apply true-defaults unconditionally.
	if !cfg.Enabled {
		cfg.Enabled = DefaultAuditEnabled
	}
	if !cfg.SQLite.WALMode {
		cfg.SQLite.WALMode = DefaultAuditSQLiteWALMode
	}
	if cfg.Backend == "" {
		cfg.Backend = DefaultAuditBackend
	}
	if cfg.SQLite.Path == "" {
		cfg.SQLite.Path = DefaultAuditSQLitePath
	}
	if cfg.SQLite.MaxOpenConns == 0 {
		cfg.SQLite.MaxOpenConns = DefaultAuditSQLiteMaxOpen
	}
	if cfg.SQLite.MaxIdleConns == 0 {
		cfg.SQLite.MaxIdleConns = DefaultAuditSQLiteMaxIdle
	}
	if cfg.SQLite.BusyTimeout == 0 {
		cfg.SQLite.BusyTimeout = DefaultAuditSQLiteBusyTimeout
	}
	if cfg.Memory.MaxEvents == 0 {
		cfg.Memory.MaxEvents = DefaultAuditMemoryMaxEvents
	}
	if cfg.Emitter.Buffer == 0 {
		cfg.Emitter.Buffer = DefaultAuditEmitterBuffer
	}
	if cfg.Emitter.WriteTimeout == 0 {
		cfg.Emitter.WriteTimeout = DefaultAuditWriteTimeout
	}
	if cfg.Retention.MaxAge == 0 {
		cfg.Retention.MaxAge = DefaultAuditRetentionMaxAge
	}
	if cfg.Retention.Schedule == "" {
		cfg.Retention.Schedule = DefaultAuditRetentionSchedule
	}
}

func applyUsageDefaults(cfg *UsageConfig) {
	if !cfg.Enabled {
		cfg.Enabled = DefaultUsageEnabled
	}
	if cfg.Path == "" {
		cfg.Path = DefaultUsagePath
	}
}

func applyTelemetryDefaults(cfg *TelemetryConfig) {
	if !cfg.Metrics.Enabled {
		cfg.Metrics.Enabled = DefaultMetricsEnabled
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = DefaultLoggingLevel
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = DefaultLoggingFormat
	}
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = DefaultMetricsNamespace
	}
}
