package ratelimit

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"storyforge-hq/warden/pkg/config"
)

func newTestLimiter(threshold int, window, cooldown time.Duration) *Limiter {
	return NewLimiter(config.RateLimitConfig{
		Threshold:     threshold,
		Window:        window,
		Cooldown:      cooldown,
		SessionTTL:    window + cooldown + time.Hour,
		SweepInterval: time.Hour,
	})
}

func TestLimiter_NormalUntilThreshold(t *testing.T) {
	l := newTestLimiter(3, time.Minute, time.Minute)
	defer l.Close()

	for i := 1; i <= 2; i++ {
		status := l.RecordViolation("s1")
		if status.Cooling {
			t.Fatalf("cooling after %d violations, threshold is 3", i)
		}
		if status.Violations != i {
			t.Errorf("Violations = %d, want %d", status.Violations, i)
		}
	}

	if status := l.Check("s1"); status.Cooling {
		t.Error("Check reports cooling below threshold")
	}
}

func TestLimiter_CoolingAtThreshold(t *testing.T) {
	l := newTestLimiter(3, time.Minute, time.Minute)
	defer l.Close()

	if st := l.RecordViolation("s1"); st.CooldownStarted {
		t.Error("CooldownStarted set below threshold")
	}
	l.RecordViolation("s1")
	status := l.RecordViolation("s1")
	if !status.Cooling {
		t.Fatal("not cooling after reaching threshold")
	}
	if !status.CooldownStarted {
		t.Error("threshold-crossing violation did not report CooldownStarted")
	}
	if status.RetryAfter <= 0 {
		t.Errorf("RetryAfter = %v, want positive", status.RetryAfter)
	}

	// Only the transition itself is reported as a start.
	if st := l.RecordViolation("s1"); st.CooldownStarted {
		t.Error("CooldownStarted set on a violation while already cooling")
	}
	if status := l.Check("s1"); !status.Cooling {
		t.Error("Check does not report cooling")
	} else if status.CooldownStarted {
		t.Error("Check reported CooldownStarted")
	}
}

func TestLimiter_CooldownExpiryResetsCounter(t *testing.T) {
	l := newTestLimiter(2, 50*time.Millisecond, 50*time.Millisecond)
	defer l.Close()

	l.RecordViolation("s1")
	l.RecordViolation("s1")
	if !l.Check("s1").Cooling {
		t.Fatal("expected cooling")
	}

	time.Sleep(80 * time.Millisecond)

	status := l.Check("s1")
	if status.Cooling {
		t.Fatal("still cooling after cooldown expiry")
	}
	if status.Violations != 0 {
		t.Errorf("Violations = %d after cooldown expiry, want 0", status.Violations)
	}

	// One fresh violation must not re-trigger cooldown.
	if status := l.RecordViolation("s1"); status.Cooling {
		t.Error("single violation after reset triggered cooldown")
	}
}

func TestLimiter_WindowExpiryResetsCounter(t *testing.T) {
	l := newTestLimiter(3, 50*time.Millisecond, time.Minute)
	defer l.Close()

	l.RecordViolation("s1")
	l.RecordViolation("s1")

	time.Sleep(80 * time.Millisecond)

	// The window has rolled; two more violations stay below threshold.
	l.RecordViolation("s1")
	status := l.RecordViolation("s1")
	if status.Cooling {
		t.Error("violations across expired windows accumulated into cooldown")
	}
	if status.Violations != 2 {
		t.Errorf("Violations = %d, want 2", status.Violations)
	}
}

func TestLimiter_SessionsAreIndependent(t *testing.T) {
	l := newTestLimiter(2, time.Minute, time.Minute)
	defer l.Close()

	l.RecordViolation("s1")
	l.RecordViolation("s1")

	if l.Check("s1").Cooling != true {
		t.Error("s1 should be cooling")
	}
	if l.Check("s2").Cooling {
		t.Error("s2 inherited s1's cooldown")
	}
}

func TestLimiter_UnknownSessionIsNormal(t *testing.T) {
	l := newTestLimiter(3, time.Minute, time.Minute)
	defer l.Close()

	status := l.Check("never-seen")
	if status.Cooling || status.Violations != 0 {
		t.Errorf("unknown session status = %+v, want zero value", status)
	}
	if l.Len() != 0 {
		t.Error("Check created session state")
	}
}

func TestLimiter_ConcurrentViolationsTriggerExactlyOneCooldown(t *testing.T) {
	l := newTestLimiter(10, time.Minute, time.Minute)
	defer l.Close()

	var wg sync.WaitGroup
	cooling := make(chan struct{}, 100)
	started := make(chan struct{}, 100)

	// 100 concurrent violations on one session with threshold 10: the
	// atomic increment-and-check means every violation from the tenth on
	// observes cooling, and none slips past.
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			st := l.RecordViolation("s1")
			if st.Cooling {
				cooling <- struct{}{}
			}
			if st.CooldownStarted {
				started <- struct{}{}
			}
		}()
	}
	wg.Wait()
	close(cooling)
	close(started)

	got := len(cooling)
	if got != 91 {
		t.Errorf("cooling observations = %d, want 91 (violations 10..100)", got)
	}
	// Exactly one call made the Normal-to-Cooling transition.
	if n := len(started); n != 1 {
		t.Errorf("CooldownStarted observations = %d, want 1", n)
	}
}

func TestLimiter_ConcurrentDistinctSessions(t *testing.T) {
	l := newTestLimiter(3, time.Minute, time.Minute)
	defer l.Close()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			id := fmt.Sprintf("session-%d", n)
			l.RecordViolation(id)
			l.Check(id)
		}(i)
	}
	wg.Wait()

	if l.Len() != 50 {
		t.Errorf("Len = %d, want 50", l.Len())
	}
}

func TestLimiter_EvictsIdleSessions(t *testing.T) {
	l := NewLimiter(config.RateLimitConfig{
		Threshold:     3,
		Window:        10 * time.Millisecond,
		Cooldown:      10 * time.Millisecond,
		SessionTTL:    30 * time.Millisecond,
		SweepInterval: 10 * time.Millisecond,
	})
	defer l.Close()

	l.RecordViolation("idle")
	if l.Len() != 1 {
		t.Fatal("session not created")
	}

	time.Sleep(100 * time.Millisecond)

	if l.Len() != 0 {
		t.Errorf("Len = %d after TTL, want 0", l.Len())
	}
}

func TestLimiter_TouchKeepsSessionAlive(t *testing.T) {
	l := NewLimiter(config.RateLimitConfig{
		Threshold:     3,
		Window:        time.Minute,
		Cooldown:      time.Minute,
		SessionTTL:    50 * time.Millisecond,
		SweepInterval: 10 * time.Millisecond,
	})
	defer l.Close()

	l.RecordViolation("active")
	for i := 0; i < 8; i++ {
		time.Sleep(20 * time.Millisecond)
		l.Touch("active")
	}

	if l.Len() != 1 {
		t.Error("touched session was evicted")
	}
	if l.Check("active").Violations != 1 {
		t.Error("violation count lost")
	}
}

func TestLimiter_CoolingSessionSurvivesSweep(t *testing.T) {
	l := NewLimiter(config.RateLimitConfig{
		Threshold:     1,
		Window:        10 * time.Millisecond,
		Cooldown:      time.Minute,
		SessionTTL:    20 * time.Millisecond,
		SweepInterval: 10 * time.Millisecond,
	})
	defer l.Close()

	l.RecordViolation("punished")
	time.Sleep(60 * time.Millisecond)

	if l.Len() != 1 {
		t.Error("cooling session was evicted")
	}
	if !l.Check("punished").Cooling {
		t.Error("cooldown lost")
	}
}
