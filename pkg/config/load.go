package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from a YAML file at the specified path.
// It applies default values, validates the configuration, and returns any
// errors. The configuration is not modified by environment variables; use
// LoadConfigWithEnvOverrides for that functionality.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and applies
// environment variable overrides. Environment variables follow the naming
// convention WARDEN_SECTION_FIELD (e.g., WARDEN_RATE_LIMIT_THRESHOLD).
// Environment variables always take precedence over file-based configuration.
//
// The loading sequence is:
// 1. Load YAML from file
// 2. Apply default values
// 3. Apply environment variable overrides
// 4. Validate final configuration
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	// First load from file (this already applies defaults)
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	// Re-validate after overrides
	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

// DefaultConfig returns a Config populated entirely from defaults, without
// reading any file. The built-in rule tables and magic-word catalog apply.
func DefaultConfig() *Config {
	var cfg Config
	ApplyDefaults(&cfg)
	return &cfg
}

// applyEnvOverrides applies environment variable overrides to the
// configuration. Environment variables use the format WARDEN_SECTION_FIELD.
func applyEnvOverrides(cfg *Config) {
	// Safety overrides
	if val := os.Getenv("WARDEN_SAFETY_MAX_RAW_LENGTH"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Safety.MaxRawLength = i
		}
	}
	if val := os.Getenv("WARDEN_SAFETY_MAX_NAME_LENGTH"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Safety.MaxNameLength = i
		}
	}

	// Rate-limit overrides
	if val := os.Getenv("WARDEN_RATE_LIMIT_THRESHOLD"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.RateLimit.Threshold = i
		}
	}
	if val := os.Getenv("WARDEN_RATE_LIMIT_WINDOW"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.RateLimit.Window = d
		}
	}
	if val := os.Getenv("WARDEN_RATE_LIMIT_COOLDOWN"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.RateLimit.Cooldown = d
		}
	}
	if val := os.Getenv("WARDEN_RATE_LIMIT_SESSION_TTL"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.RateLimit.SessionTTL = d
		}
	}
	if val := os.Getenv("WARDEN_RATE_LIMIT_SWEEP_INTERVAL"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.RateLimit.SweepInterval = d
		}
	}

	// Audit overrides
	if val := os.Getenv("WARDEN_AUDIT_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Audit.Enabled = b
		}
	}
	if val := os.Getenv("WARDEN_AUDIT_BACKEND"); val != "" {
		cfg.Audit.Backend = val
	}
	if val := os.Getenv("WARDEN_AUDIT_SQLITE_PATH"); val != "" {
		cfg.Audit.SQLite.Path = val
	}
	if val := os.Getenv("WARDEN_AUDIT_RETENTION_MAX_AGE"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Audit.Retention.MaxAge = d
		}
	}
	if val := os.Getenv("WARDEN_AUDIT_RETENTION_SCHEDULE"); val != "" {
		cfg.Audit.Retention.Schedule = val
	}

	// Usage overrides
	if val := os.Getenv("WARDEN_USAGE_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Usage.Enabled = b
		}
	}
	if val := os.Getenv("WARDEN_USAGE_PATH"); val != "" {
		cfg.Usage.Path = val
	}

	// Telemetry overrides
	if val := os.Getenv("WARDEN_TELEMETRY_LOGGING_LEVEL"); val != "" {
		cfg.Telemetry.Logging.Level = val
	}
	if val := os.Getenv("WARDEN_TELEMETRY_LOGGING_FORMAT"); val != "" {
		cfg.Telemetry.Logging.Format = val
	}
	if val := os.Getenv("WARDEN_TELEMETRY_METRICS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Metrics.Enabled = b
		}
	}
}
