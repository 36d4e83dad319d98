// Package retention enforces audit retention policies: events older
// than a configured age, or beyond a configured count, are pruned on a
// cron schedule.
package retention

import (
	"context"
	"log/slog"
	"time"

	"storyforge-hq/warden/pkg/audit"
	"storyforge-hq/warden/pkg/config"
)

// Pruner enforces retention policies on stored security events.
type Pruner struct {
	storage audit.Storage
	config  config.RetentionConfig
	logger  *slog.Logger
}

// NewPruner creates a new retention pruner.
func NewPruner(storage audit.Storage, cfg config.RetentionConfig) *Pruner {
	return &Pruner{
		storage: storage,
		config:  cfg,
		logger:  slog.Default().With("component", "audit.retention"),
	}
}

// Prune deletes security events older than the retention period or
// exceeding the maximum event count.
//
// Pruning happens in two phases:
//  1. Age-based: delete events older than max_age
//  2. Count-based: if total events > max_events, delete oldest
//
// Both can run together. A phase with a zero limit is skipped.
func (p *Pruner) Prune(ctx context.Context) (int64, error) {
	var total int64

	if p.config.MaxAge > 0 {
		cutoff := time.Now().UTC().Add(-p.config.MaxAge)
		removed, err := p.storage.DeleteBefore(ctx, cutoff)
		if err != nil {
			return total, err
		}
		if removed > 0 {
			p.logger.Info("pruned aged audit events",
				"removed", removed,
				"cutoff", cutoff,
			)
		}
		total += removed
	}

	if p.config.MaxEvents > 0 {
		removed, err := p.storage.Trim(ctx, p.config.MaxEvents)
		if err != nil {
			return total, err
		}
		if removed > 0 {
			p.logger.Info("pruned excess audit events",
				"removed", removed,
				"max_events", p.config.MaxEvents,
			)
		}
		total += removed
	}

	return total, nil
}
