package retention

import (
	"context"
	"testing"
	"time"

	"storyforge-hq/warden/pkg/audit"
	"storyforge-hq/warden/pkg/audit/storage"
	"storyforge-hq/warden/pkg/config"
)

func seedEvents(t *testing.T, s audit.Storage, ages ...time.Duration) {
	t.Helper()
	ctx := context.Background()
	now := time.Now().UTC()
	for _, age := range ages {
		ev := audit.NewEvent("session-1", "prompt_injection", nil)
		ev.Timestamp = now.Add(-age)
		if err := s.Store(ctx, ev); err != nil {
			t.Fatalf("Store() error = %v", err)
		}
	}
}

func TestPruner_AgeBased(t *testing.T) {
	s := storage.NewMemoryStorage(config.MemoryConfig{MaxEvents: 100})
	seedEvents(t, s, 100*time.Hour, 50*time.Hour, time.Hour)

	p := NewPruner(s, config.RetentionConfig{MaxAge: 72 * time.Hour})
	removed, err := p.Prune(context.Background())
	if err != nil {
		t.Fatalf("Prune() error = %v", err)
	}
	if removed != 1 {
		t.Errorf("Prune() removed %d, want 1", removed)
	}

	n, _ := s.Count(context.Background())
	if n != 2 {
		t.Errorf("Count() = %d, want 2", n)
	}
}

func TestPruner_CountBased(t *testing.T) {
	s := storage.NewMemoryStorage(config.MemoryConfig{MaxEvents: 100})
	seedEvents(t, s, 5*time.Hour, 4*time.Hour, 3*time.Hour, 2*time.Hour, time.Hour)

	p := NewPruner(s, config.RetentionConfig{MaxEvents: 2})
	removed, err := p.Prune(context.Background())
	if err != nil {
		t.Fatalf("Prune() error = %v", err)
	}
	if removed != 3 {
		t.Errorf("Prune() removed %d, want 3", removed)
	}

	n, _ := s.Count(context.Background())
	if n != 2 {
		t.Errorf("Count() = %d, want 2", n)
	}
}

func TestPruner_BothPhases(t *testing.T) {
	s := storage.NewMemoryStorage(config.MemoryConfig{MaxEvents: 100})
	seedEvents(t, s, 100*time.Hour, 5*time.Hour, 4*time.Hour, 3*time.Hour)

	p := NewPruner(s, config.RetentionConfig{
		MaxAge:    72 * time.Hour,
		MaxEvents: 2,
	})
	removed, err := p.Prune(context.Background())
	if err != nil {
		t.Fatalf("Prune() error = %v", err)
	}
	if removed != 2 {
		t.Errorf("Prune() removed %d, want 2", removed)
	}
}

func TestPruner_DisabledIsNoop(t *testing.T) {
	s := storage.NewMemoryStorage(config.MemoryConfig{MaxEvents: 100})
	seedEvents(t, s, 1000*time.Hour, time.Hour)

	p := NewPruner(s, config.RetentionConfig{})
	removed, err := p.Prune(context.Background())
	if err != nil {
		t.Fatalf("Prune() error = %v", err)
	}
	if removed != 0 {
		t.Errorf("Prune() removed %d, want 0", removed)
	}
}

func TestScheduler_EmptyScheduleDoesNotStart(t *testing.T) {
	s := storage.NewMemoryStorage(config.MemoryConfig{MaxEvents: 100})
	p := NewPruner(s, config.RetentionConfig{})

	sched := NewScheduler(p)
	if err := sched.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if sched.IsRunning() {
		t.Error("scheduler running with empty schedule")
	}
}

func TestScheduler_InvalidSchedule(t *testing.T) {
	s := storage.NewMemoryStorage(config.MemoryConfig{MaxEvents: 100})
	p := NewPruner(s, config.RetentionConfig{Schedule: "not a cron expr"})

	sched := NewScheduler(p)
	if err := sched.Start(context.Background()); err == nil {
		t.Error("Start() with invalid schedule should fail")
		sched.Stop()
	}
}

func TestScheduler_StartStop(t *testing.T) {
	s := storage.NewMemoryStorage(config.MemoryConfig{MaxEvents: 100})
	p := NewPruner(s, config.RetentionConfig{Schedule: "0 3 * * *"})

	sched := NewScheduler(p)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err := sched.Start(ctx); err != nil {
		t.Fatalf("Start() error = %v", err)
	}
	if !sched.IsRunning() {
		t.Error("scheduler should be running")
	}
	if sched.NextRun() == nil {
		t.Error("NextRun() = nil, want a scheduled time")
	}

	sched.Stop()
	if sched.IsRunning() {
		t.Error("scheduler should be stopped")
	}
}
