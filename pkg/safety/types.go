package safety

// ErrorKind classifies why a validation request was rejected.
type ErrorKind string

const (
	// KindNone indicates a valid result.
	KindNone ErrorKind = ""

	// KindPromptInjection indicates an attempt to manipulate downstream
	// story generation ("ignore all previous instructions" and friends).
	KindPromptInjection ErrorKind = "prompt_injection"

	// KindInappropriateContent indicates content unsuitable for a
	// children's story, including leetspeak and homophone variants.
	KindInappropriateContent ErrorKind = "inappropriate_content"

	// KindCharacterRuleViolation indicates structural problems: length,
	// disallowed characters, or a bypass-detector flag.
	KindCharacterRuleViolation ErrorKind = "character_rule_violation"

	// KindDuplicateSelection indicates the same magic word in more than
	// one selection slot.
	KindDuplicateSelection ErrorKind = "duplicate_selection"

	// KindUnapprovedSelection indicates a magic word outside the
	// approved catalog.
	KindUnapprovedSelection ErrorKind = "unapproved_selection"

	// KindInappropriateCombination indicates a selection matching the
	// forbidden-combination table.
	KindInappropriateCombination ErrorKind = "inappropriate_combination"

	// KindRateLimited indicates the session is in cooldown.
	KindRateLimited ErrorKind = "rate_limited"
)

// ValidationResult is the outcome of one validation request.
//
// Invariant: IsValid implies SanitizedText is non-empty, within the
// configured length limit, and restricted to the allowed character
// class; !IsValid implies SanitizedText is empty.
type ValidationResult struct {
	// IsValid reports whether the input was accepted.
	IsValid bool `json:"is_valid"`

	// ErrorKind classifies the rejection. KindNone when valid.
	ErrorKind ErrorKind `json:"error_kind,omitempty"`

	// ChildMessage is a short, gentle, non-technical explanation for the
	// child. Empty when valid.
	ChildMessage string `json:"child_message,omitempty"`

	// SanitizedText is the accepted input with whitespace collapsed and
	// casing preserved as typed. Empty when invalid.
	SanitizedText string `json:"sanitized_text,omitempty"`

	// SecurityFlags lists bypass-detector flags observed on the input,
	// in detection order. Any flag forces rejection, so this is only
	// populated on invalid results.
	SecurityFlags []string `json:"security_flags,omitempty"`
}
