package storage

import (
	"context"
	"sync"
	"time"

	"storyforge-hq/warden/pkg/audit"
	"storyforge-hq/warden/pkg/config"
)

// MemoryStorage keeps security events in memory, capped at a maximum
// count with the oldest events evicted first. Intended for tests and
// deployments that do not need a durable audit trail.
//
// # Thread Safety
//
// All methods are safe for concurrent use.
type MemoryStorage struct {
	mu        sync.RWMutex
	events    []*audit.SecurityEvent
	maxEvents int
}

// NewMemoryStorage creates an in-memory event store.
func NewMemoryStorage(cfg config.MemoryConfig) *MemoryStorage {
	return &MemoryStorage{maxEvents: cfg.MaxEvents}
}

// Store appends ev, evicting the oldest event if the cap is reached.
func (m *MemoryStorage) Store(_ context.Context, ev *audit.SecurityEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.maxEvents > 0 && len(m.events) >= m.maxEvents {
		over := len(m.events) - m.maxEvents + 1
		m.events = append(m.events[:0], m.events[over:]...)
	}
	m.events = append(m.events, ev)
	return nil
}

// Query returns matching events, newest first.
func (m *MemoryStorage) Query(_ context.Context, q audit.Query) ([]*audit.SecurityEvent, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []*audit.SecurityEvent
	for i := len(m.events) - 1; i >= 0; i-- {
		ev := m.events[i]
		if q.SessionID != "" && ev.SessionID != q.SessionID {
			continue
		}
		if q.Kind != "" && ev.Kind != q.Kind {
			continue
		}
		if !q.Since.IsZero() && ev.Timestamp.Before(q.Since) {
			continue
		}
		out = append(out, ev)
		if q.Limit > 0 && len(out) >= q.Limit {
			break
		}
	}
	return out, nil
}

// Count returns the number of stored events.
func (m *MemoryStorage) Count(_ context.Context) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return int64(len(m.events)), nil
}

// DeleteBefore removes events older than cutoff.
func (m *MemoryStorage) DeleteBefore(_ context.Context, cutoff time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.events[:0]
	var removed int64
	for _, ev := range m.events {
		if ev.Timestamp.Before(cutoff) {
			removed++
			continue
		}
		kept = append(kept, ev)
	}
	m.events = kept
	return removed, nil
}

// Trim removes the oldest events until at most keep remain.
func (m *MemoryStorage) Trim(_ context.Context, keep int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if int64(len(m.events)) <= keep {
		return 0, nil
	}
	over := int64(len(m.events)) - keep
	m.events = append(m.events[:0], m.events[over:]...)
	return over, nil
}

// Close is a no-op for the in-memory backend.
func (m *MemoryStorage) Close() error {
	return nil
}
