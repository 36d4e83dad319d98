package combination

import (
	"fmt"
	"sort"
	"strings"

	"storyforge-hq/warden/pkg/config"
)

// Outcome classifies the result of validating one selection.
type Outcome string

const (
	// OutcomeOK means the selection is safe.
	OutcomeOK Outcome = "ok"

	// OutcomeUnapproved means at least one word is not in its claimed
	// category's approved list.
	OutcomeUnapproved Outcome = "unapproved_selection"

	// OutcomeDuplicate means the same word appears in more than one slot.
	OutcomeDuplicate Outcome = "duplicate_selection"

	// OutcomeForbidden means the full selection matches a forbidden
	// combination.
	OutcomeForbidden Outcome = "inappropriate_combination"
)

// Result is the outcome of validating one selection.
type Result struct {
	// Outcome classifies the selection.
	Outcome Outcome

	// Words holds the canonical (lowercased, trimmed) selection words.
	// Populated on every outcome; used for usage counting on success.
	Words []string

	// RuleID identifies the matched forbidden combination when Outcome is
	// OutcomeForbidden (e.g. "combination.004"). Stable for a given
	// configuration and safe for audit metadata.
	RuleID string
}

// Validator checks magic-word selections against the approved catalog and
// the forbidden-combination table. A Validator is immutable after
// construction and safe for concurrent use.
type Validator struct {
	// categories maps category name to its approved word set.
	categories map[string]map[string]bool

	// forbidden maps the canonical key of each forbidden combination to
	// its rule ID.
	forbidden map[string]string
}

// NewValidator builds a Validator from the configured catalog. Empty
// configuration sections fall back to the built-in catalog and forbidden
// table. Construction fails if a forbidden combination has the wrong size,
// which indicates malformed configuration that escaped config validation.
func NewValidator(categories []config.CategoryConfig, forbidden [][]string) (*Validator, error) {
	v := &Validator{
		categories: make(map[string]map[string]bool),
		forbidden:  make(map[string]string),
	}

	if len(categories) == 0 {
		for name, words := range defaultCatalog {
			v.addCategory(name, words)
		}
	} else {
		for _, cat := range categories {
			v.addCategory(cat.Name, cat.Words)
		}
	}

	if len(forbidden) == 0 {
		forbidden = defaultForbidden
	}
	for i, combo := range forbidden {
		if len(combo) != config.SelectionSize {
			return nil, fmt.Errorf("forbidden combination %d has %d words, need %d",
				i, len(combo), config.SelectionSize)
		}
		v.forbidden[comboKey(combo)] = fmt.Sprintf("combination.%03d", i+1)
	}

	return v, nil
}

func (v *Validator) addCategory(name string, words []string) {
	set := make(map[string]bool, len(words))
	for _, w := range words {
		set[canonical(w)] = true
	}
	v.categories[canonical(name)] = set
}

// Validate checks one selection. words and claimedCategories are parallel
// slices of length config.SelectionSize; claimed categories are
// re-checked authoritatively rather than trusted.
//
// Check order: duplicates first (a repeated word is a duplicate no matter
// what else is wrong with it), then membership, then the
// forbidden-combination lookup. Validate is pure and deterministic.
func (v *Validator) Validate(words, claimedCategories []string) Result {
	canon := make([]string, len(words))
	for i, w := range words {
		canon[i] = canonical(w)
	}
	result := Result{Outcome: OutcomeOK, Words: canon}

	if len(words) != config.SelectionSize || len(claimedCategories) != config.SelectionSize {
		result.Outcome = OutcomeUnapproved
		return result
	}

	// Duplicates across slots.
	seen := make(map[string]bool, len(canon))
	for _, w := range canon {
		if seen[w] {
			result.Outcome = OutcomeDuplicate
			return result
		}
		seen[w] = true
	}

	// Membership: every word must be in its claimed category's approved set.
	for i, w := range canon {
		set, ok := v.categories[canonical(claimedCategories[i])]
		if !ok || !set[w] {
			result.Outcome = OutcomeUnapproved
			return result
		}
	}

	// Order-independent forbidden lookup.
	if id, ok := v.forbidden[comboKey(canon)]; ok {
		result.Outcome = OutcomeForbidden
		result.RuleID = id
	}

	return result
}

// Categories returns the names of all approved categories, sorted.
func (v *Validator) Categories() []string {
	names := make([]string, 0, len(v.categories))
	for name := range v.categories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// canonical lowercases and trims a word for comparison.
func canonical(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// comboKey produces the order-independent lookup key for a combination.
func comboKey(words []string) string {
	sorted := make([]string, len(words))
	for i, w := range words {
		sorted[i] = canonical(w)
	}
	sort.Strings(sorted)
	return strings.Join(sorted, "\x1f")
}
