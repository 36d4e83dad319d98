package main

import (
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"

	"storyforge-hq/warden/pkg/audit"
	"storyforge-hq/warden/pkg/audit/storage"
	"storyforge-hq/warden/pkg/config"
	"storyforge-hq/warden/pkg/safety"
	"storyforge-hq/warden/pkg/telemetry/logging"
	"storyforge-hq/warden/pkg/telemetry/metrics"
	"storyforge-hq/warden/pkg/usage"
)

// engine bundles the validation controller with its collaborators for
// the lifetime of one command invocation.
type engine struct {
	cfg        *config.Config
	controller *safety.Controller
	store      audit.Storage
	emitter    *audit.Emitter
	usageStore *usage.Store
	registry   *prometheus.Registry
}

// loadEngineConfig loads the configuration file named by --config,
// falling back to built-in defaults when the file does not exist.
func loadEngineConfig() (*config.Config, error) {
	if _, err := os.Stat(cfgFile); os.IsNotExist(err) {
		return config.DefaultConfig(), nil
	}
	return config.LoadConfigWithEnvOverrides(cfgFile)
}

// newEngine assembles the validation pipeline from configuration.
func newEngine() (*engine, error) {
	cfg, err := loadEngineConfig()
	if err != nil {
		return nil, err
	}

	logCfg := cfg.Telemetry.Logging
	if verbose {
		logCfg.Level = "debug"
	}
	if _, err := logging.Setup(logCfg); err != nil {
		return nil, err
	}

	e := &engine{cfg: cfg}

	collab := safety.Collaborators{}

	if cfg.Audit.Enabled {
		e.store, err = newAuditStorage(cfg.Audit)
		if err != nil {
			return nil, err
		}
		e.emitter = audit.NewEmitter(e.store, cfg.Audit.Emitter)
		collab.Audit = e.emitter
	}

	if cfg.Usage.Enabled {
		e.usageStore, err = usage.NewStore(cfg.Usage)
		if err != nil {
			e.Close()
			return nil, err
		}
		collab.Usage = e.usageStore
	}

	if cfg.Telemetry.Metrics.Enabled {
		e.registry = prometheus.NewRegistry()
		collab.Metrics = metrics.NewValidationMetrics(cfg.Telemetry.Metrics, e.registry)
	}

	e.controller, err = safety.NewController(cfg, collab)
	if err != nil {
		e.Close()
		return nil, err
	}

	return e, nil
}

// newAuditStorage opens the configured audit backend.
func newAuditStorage(cfg config.AuditConfig) (audit.Storage, error) {
	switch cfg.Backend {
	case "memory":
		return storage.NewMemoryStorage(cfg.Memory), nil
	case "sqlite":
		return storage.NewSQLiteStorage(cfg.SQLite)
	default:
		return nil, fmt.Errorf("unknown audit backend: %q", cfg.Backend)
	}
}

// Close releases engine resources in reverse construction order.
func (e *engine) Close() {
	if e.controller != nil {
		e.controller.Close()
	}
	if e.emitter != nil {
		e.emitter.Close()
	}
	if e.store != nil {
		e.store.Close()
	}
	if e.usageStore != nil {
		e.usageStore.Close()
	}
}
