package combination

import (
	"testing"

	"storyforge-hq/warden/pkg/config"
)

func newTestCatalogValidator(t *testing.T) *Validator {
	t.Helper()
	v, err := NewValidator(nil, nil)
	if err != nil {
		t.Fatalf("NewValidator failed: %v", err)
	}
	return v
}

func TestValidator_ValidSelection(t *testing.T) {
	v := newTestCatalogValidator(t)

	result := v.Validate(
		[]string{"dragon", "castle", "happy"},
		[]string{"creatures", "places", "moods"},
	)
	if result.Outcome != OutcomeOK {
		t.Errorf("Outcome = %q, want %q", result.Outcome, OutcomeOK)
	}
	if len(result.Words) != 3 || result.Words[0] != "dragon" {
		t.Errorf("Words = %v, want canonical selection words", result.Words)
	}
}

func TestValidator_CaseAndSpaceInsensitive(t *testing.T) {
	v := newTestCatalogValidator(t)

	result := v.Validate(
		[]string{" Dragon ", "CASTLE", "Happy"},
		[]string{"Creatures", "places", "MOODS"},
	)
	if result.Outcome != OutcomeOK {
		t.Errorf("Outcome = %q, want %q", result.Outcome, OutcomeOK)
	}
}

func TestValidator_UnapprovedWord(t *testing.T) {
	v := newTestCatalogValidator(t)

	// "sword" is not in any approved list.
	result := v.Validate(
		[]string{"sword", "castle", "happy"},
		[]string{"objects", "places", "moods"},
	)
	if result.Outcome != OutcomeUnapproved {
		t.Errorf("Outcome = %q, want %q", result.Outcome, OutcomeUnapproved)
	}
}

func TestValidator_WordFromWrongCategory(t *testing.T) {
	v := newTestCatalogValidator(t)

	// "dragon" is approved, but not in "places": membership is checked
	// against the claimed category, not the whole catalog.
	result := v.Validate(
		[]string{"dragon", "castle", "happy"},
		[]string{"places", "places", "moods"},
	)
	if result.Outcome != OutcomeUnapproved {
		t.Errorf("Outcome = %q, want %q", result.Outcome, OutcomeUnapproved)
	}
}

func TestValidator_UnknownCategory(t *testing.T) {
	v := newTestCatalogValidator(t)

	result := v.Validate(
		[]string{"dragon", "castle", "happy"},
		[]string{"vehicles", "places", "moods"},
	)
	if result.Outcome != OutcomeUnapproved {
		t.Errorf("Outcome = %q, want %q", result.Outcome, OutcomeUnapproved)
	}
}

func TestValidator_DuplicateWords(t *testing.T) {
	v := newTestCatalogValidator(t)

	tests := [][]string{
		{"dragon", "dragon", "happy"},
		{"castle", "happy", "castle"},
		{"happy", "HAPPY", "dragon"}, // case-insensitive duplicate
	}
	cats := [][]string{
		{"creatures", "creatures", "moods"},
		{"places", "moods", "places"},
		{"moods", "moods", "creatures"},
	}

	for i, words := range tests {
		result := v.Validate(words, cats[i])
		if result.Outcome != OutcomeDuplicate {
			t.Errorf("Validate(%v) = %q, want %q", words, result.Outcome, OutcomeDuplicate)
		}
	}
}

func TestValidator_ForbiddenCombination(t *testing.T) {
	v := newTestCatalogValidator(t)

	// Every ordering of a forbidden triple must be rejected.
	orders := [][]string{
		{"scary", "monster", "dark"},
		{"dark", "scary", "monster"},
		{"monster", "dark", "scary"},
	}
	cats := [][]string{
		{"moods", "creatures", "moods"},
		{"moods", "moods", "creatures"},
		{"creatures", "moods", "moods"},
	}

	for i, words := range orders {
		result := v.Validate(words, cats[i])
		if result.Outcome != OutcomeForbidden {
			t.Errorf("Validate(%v) = %q, want %q", words, result.Outcome, OutcomeForbidden)
		}
		if result.RuleID == "" {
			t.Errorf("Validate(%v) returned no rule ID", words)
		}
	}
}

func TestValidator_SafeSubsetOfForbiddenWords(t *testing.T) {
	v := newTestCatalogValidator(t)

	// Two words of a forbidden triple plus a harmless third is fine.
	result := v.Validate(
		[]string{"scary", "monster", "balloon"},
		[]string{"moods", "creatures", "objects"},
	)
	if result.Outcome != OutcomeOK {
		t.Errorf("Outcome = %q, want %q", result.Outcome, OutcomeOK)
	}
}

func TestValidator_DuplicateCheckedBeforeMembership(t *testing.T) {
	v := newTestCatalogValidator(t)

	// A repeated word that is also unknown to the catalog is still a
	// duplicate; repetition outranks membership.
	result := v.Validate(
		[]string{"zzzz", "zzzz", "happy"},
		[]string{"creatures", "creatures", "moods"},
	)
	if result.Outcome != OutcomeDuplicate {
		t.Errorf("Outcome = %q, want %q", result.Outcome, OutcomeDuplicate)
	}
}

func TestValidator_DuplicateCheckedBeforeForbidden(t *testing.T) {
	v := newTestCatalogValidator(t)

	result := v.Validate(
		[]string{"dark", "dark", "monster"},
		[]string{"moods", "moods", "creatures"},
	)
	if result.Outcome != OutcomeDuplicate {
		t.Errorf("Outcome = %q, want %q", result.Outcome, OutcomeDuplicate)
	}
}

func TestValidator_ConfiguredCatalog(t *testing.T) {
	words := make([]string, config.MinCategoryWords)
	for i := range words {
		words[i] = string(rune('a'+i)) + "word"
	}
	words[0] = "zap"
	words[1] = "fizz"
	words[2] = "pop"

	v, err := NewValidator(
		[]config.CategoryConfig{{Name: "sounds", Words: words}},
		[][]string{{"zap", "fizz", "pop"}},
	)
	if err != nil {
		t.Fatalf("NewValidator failed: %v", err)
	}

	// Built-in catalog must be fully replaced.
	result := v.Validate(
		[]string{"dragon", "castle", "happy"},
		[]string{"creatures", "places", "moods"},
	)
	if result.Outcome != OutcomeUnapproved {
		t.Errorf("built-in catalog still active: %q", result.Outcome)
	}

	result = v.Validate(
		[]string{"zap", "fizz", "pop"},
		[]string{"sounds", "sounds", "sounds"},
	)
	if result.Outcome != OutcomeForbidden {
		t.Errorf("configured forbidden combination not matched: %q", result.Outcome)
	}
}

func TestValidator_WrongSelectionSize(t *testing.T) {
	v := newTestCatalogValidator(t)

	result := v.Validate([]string{"dragon", "castle"}, []string{"creatures", "places"})
	if result.Outcome != OutcomeUnapproved {
		t.Errorf("Outcome = %q, want %q", result.Outcome, OutcomeUnapproved)
	}
}
