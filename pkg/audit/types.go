package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// SecurityEvent is a single audit record describing a rejected request.
//
// By construction the event carries only identifiers and classifications.
// Callers must never place input text (raw, cleaned, or normalized) in
// any field; RuleIDs holds opaque rule identifiers such as
// "injection.003" and detector flag names such as "mixed_script".
type SecurityEvent struct {
	// ID uniquely identifies this event (UUIDv4).
	ID string `json:"id"`

	// Timestamp is when the event was recorded (UTC).
	Timestamp time.Time `json:"timestamp"`

	// SessionID identifies the session that triggered the event.
	SessionID string `json:"session_id"`

	// Kind classifies the rejection, e.g. "prompt_injection" or
	// "inappropriate_combination".
	Kind string `json:"kind"`

	// RuleIDs lists the rule identifiers and detector flags that fired.
	// May be empty for structural rejections such as length violations.
	RuleIDs []string `json:"rule_ids,omitempty"`
}

// NewEvent builds a SecurityEvent with a fresh ID and the current time.
func NewEvent(sessionID, kind string, ruleIDs []string) *SecurityEvent {
	return &SecurityEvent{
		ID:        uuid.NewString(),
		Timestamp: time.Now().UTC(),
		SessionID: sessionID,
		Kind:      kind,
		RuleIDs:   ruleIDs,
	}
}

// Query filters events when reading them back from storage.
// Zero-value fields are ignored.
type Query struct {
	// SessionID restricts results to one session.
	SessionID string

	// Kind restricts results to one event kind.
	Kind string

	// Since restricts results to events at or after this time.
	Since time.Time

	// Limit caps the number of returned events. Zero means no cap.
	Limit int
}

// Storage persists security events.
//
// Implementations must be safe for concurrent use.
type Storage interface {
	// Store persists a single event.
	Store(ctx context.Context, ev *SecurityEvent) error

	// Query returns events matching q, newest first.
	Query(ctx context.Context, q Query) ([]*SecurityEvent, error)

	// Count returns the total number of stored events.
	Count(ctx context.Context) (int64, error)

	// DeleteBefore removes events older than cutoff and reports how
	// many were removed.
	DeleteBefore(ctx context.Context, cutoff time.Time) (int64, error)

	// Trim removes the oldest events until at most keep remain and
	// reports how many were removed.
	Trim(ctx context.Context, keep int64) (int64, error)

	// Close releases storage resources.
	Close() error
}
