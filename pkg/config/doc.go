// Package config provides configuration management for Warden.
//
// This package handles loading, validating, and managing configuration from
// YAML files with environment variable overrides. It provides a type-safe
// configuration system with comprehensive validation and sensible defaults.
//
// # Configuration Loading
//
// Configuration can be loaded in two ways:
//
//  1. From a YAML file only:
//     cfg, err := config.LoadConfig("config.yaml")
//
//  2. From a YAML file with environment variable overrides:
//     cfg, err := config.LoadConfigWithEnvOverrides("config.yaml")
//
// # Environment Variable Overrides
//
// Environment variables follow the naming convention WARDEN_SECTION_FIELD.
// For example:
//
//   - WARDEN_RATE_LIMIT_THRESHOLD overrides rate_limit.threshold
//   - WARDEN_AUDIT_SQLITE_PATH overrides audit.sqlite.path
//   - WARDEN_TELEMETRY_LOGGING_LEVEL overrides telemetry.logging.level
//
// Environment variables always take precedence over file-based configuration.
//
// # Configuration Precedence
//
// Configuration values are applied in the following order (later overrides earlier):
//
//  1. Default values (defined in defaults.go)
//  2. Values from YAML file
//  3. Environment variable overrides
//  4. Validation (fails fast if invalid)
//
// # Immutability
//
// A loaded Config is immutable for the lifetime of the process. Every
// validation component receives the configuration by reference at
// construction time and must never mutate it. There is no singleton and no
// runtime reload: the Watcher (watcher.go) only reports that the file on
// disk has changed so an operator can restart the process.
//
// # Validation
//
// All configuration is validated automatically during loading. Validation includes:
//
//   - Required field checks (e.g., audit backend selection)
//   - Range validation (e.g., rate-limit threshold must be >= 1)
//   - Rule-table validation (e.g., approved categories need enough words,
//     forbidden combinations must match the selection size)
//
// Validation errors include field paths and helpful messages:
//
//	configuration validation failed with 2 errors:
//	  - rate_limit.threshold: must be at least 1
//	  - safety.categories[2]: category "colors" has 4 approved words, need at least 20
package config
