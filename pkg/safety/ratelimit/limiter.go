package ratelimit

import (
	"log/slog"
	"sync"
	"time"

	"storyforge-hq/warden/pkg/config"
)

// session holds the violation state for one session ID.
// All fields are guarded by mu.
type session struct {
	mu            sync.Mutex
	count         int
	windowStart   time.Time
	cooldownUntil time.Time
	lastSeen      time.Time
}

// Status describes a session's current rate-limit state.
type Status struct {
	// Cooling reports whether the session is currently in cooldown.
	Cooling bool

	// RetryAfter is how long until the cooldown expires. Zero when the
	// session is not cooling.
	RetryAfter time.Duration

	// Violations is the violation count within the current window.
	Violations int

	// CooldownStarted reports that this call crossed the threshold and
	// entered the cooldown. Set by RecordViolation only, never Check, and
	// only on the one call that made the transition.
	CooldownStarted bool
}

// Limiter is a per-session sliding-window violation counter with an
// escalating cooldown. It is safe for concurrent use; operations on
// different sessions never contend with each other.
type Limiter struct {
	threshold  int
	window     time.Duration
	cooldown   time.Duration
	sessionTTL time.Duration

	mu       sync.RWMutex // guards the sessions map, not session contents
	sessions map[string]*session

	logger *slog.Logger
	stopCh chan struct{}
	wg     sync.WaitGroup
}

// NewLimiter creates a Limiter and starts its background sweeper. Call
// Close to stop the sweeper and release session state.
func NewLimiter(cfg config.RateLimitConfig) *Limiter {
	l := &Limiter{
		threshold:  cfg.Threshold,
		window:     cfg.Window,
		cooldown:   cfg.Cooldown,
		sessionTTL: cfg.SessionTTL,
		sessions:   make(map[string]*session),
		logger:     slog.Default().With("component", "safety.ratelimit"),
		stopCh:     make(chan struct{}),
	}

	l.wg.Add(1)
	go l.sweep(cfg.SweepInterval)

	return l
}

// Check returns the current status for a session without recording
// anything. A session with no recorded state is Normal.
func (l *Limiter) Check(sessionID string) Status {
	s := l.lookup(sessionID)
	if s == nil {
		return Status{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	l.advanceLocked(s, now)

	status := Status{Violations: s.count}
	if now.Before(s.cooldownUntil) {
		status.Cooling = true
		status.RetryAfter = s.cooldownUntil.Sub(now)
	}
	return status
}

// RecordViolation registers one security violation for a session, creating
// its state lazily on first use. It returns the status after the
// increment; when the violation count reaches the threshold the session
// enters cooldown and the returned status reflects it.
//
// The increment-and-check runs under the session's mutex, so two
// concurrent violations at threshold-1 cannot both slip through without
// one of them triggering the cooldown.
func (l *Limiter) RecordViolation(sessionID string) Status {
	s := l.obtain(sessionID)

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	l.advanceLocked(s, now)
	s.lastSeen = now

	// A violation while already cooling does not extend the penalty; the
	// caller rejected the request before running any detector.
	if now.Before(s.cooldownUntil) {
		return Status{Cooling: true, RetryAfter: s.cooldownUntil.Sub(now), Violations: s.count}
	}

	if s.count == 0 {
		s.windowStart = now
	}
	s.count++

	if s.count >= l.threshold {
		s.cooldownUntil = now.Add(l.cooldown)
		l.logger.Warn("session entered cooldown",
			"session_id", sessionID,
			"violations", s.count,
			"cooldown", l.cooldown,
		)
		return Status{Cooling: true, RetryAfter: l.cooldown, Violations: s.count, CooldownStarted: true}
	}

	return Status{Violations: s.count}
}

// Touch refreshes a session's idle timer without recording a violation.
// Called on successful validations so active well-behaved sessions are not
// evicted mid-conversation.
func (l *Limiter) Touch(sessionID string) {
	s := l.lookup(sessionID)
	if s == nil {
		return
	}
	s.mu.Lock()
	s.lastSeen = time.Now()
	s.mu.Unlock()
}

// Len returns the number of tracked sessions.
func (l *Limiter) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.sessions)
}

// Close stops the background sweeper. The limiter remains usable; only
// eviction stops.
func (l *Limiter) Close() {
	close(l.stopCh)
	l.wg.Wait()
}

// advanceLocked rolls expired windows and cooldowns forward.
// Caller must hold s.mu.
func (l *Limiter) advanceLocked(s *session, now time.Time) {
	// Cooldown expiry returns the session to Normal with a fresh counter.
	if !s.cooldownUntil.IsZero() && !now.Before(s.cooldownUntil) {
		s.cooldownUntil = time.Time{}
		s.count = 0
		s.windowStart = time.Time{}
	}

	// Window expiry resets the counter.
	if s.count > 0 && now.Sub(s.windowStart) > l.window {
		s.count = 0
		s.windowStart = time.Time{}
	}
}

// lookup returns the session for an ID, or nil.
func (l *Limiter) lookup(sessionID string) *session {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.sessions[sessionID]
}

// obtain returns the session for an ID, creating it if needed.
func (l *Limiter) obtain(sessionID string) *session {
	l.mu.RLock()
	s := l.sessions[sessionID]
	l.mu.RUnlock()
	if s != nil {
		return s
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	if s = l.sessions[sessionID]; s != nil {
		return s
	}
	s = &session{lastSeen: time.Now()}
	l.sessions[sessionID] = s
	return s
}

// sweep periodically evicts sessions idle longer than the TTL. Sessions
// still cooling are kept regardless of idleness so a penalty cannot be
// shed by going quiet.
func (l *Limiter) sweep(interval time.Duration) {
	defer l.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-l.stopCh:
			return
		case <-ticker.C:
			l.evictIdle()
		}
	}
}

func (l *Limiter) evictIdle() {
	now := time.Now()
	cutoff := now.Add(-l.sessionTTL)

	l.mu.Lock()
	defer l.mu.Unlock()

	evicted := 0
	for id, s := range l.sessions {
		s.mu.Lock()
		idle := s.lastSeen.Before(cutoff)
		cooling := now.Before(s.cooldownUntil)
		s.mu.Unlock()

		if idle && !cooling {
			delete(l.sessions, id)
			evicted++
		}
	}

	if evicted > 0 {
		l.logger.Debug("evicted idle sessions",
			"evicted", evicted,
			"remaining", len(l.sessions),
		)
	}
}
