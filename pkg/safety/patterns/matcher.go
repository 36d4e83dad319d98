package patterns

import (
	"fmt"
	"regexp"
	"strings"

	"storyforge-hq/warden/pkg/config"
)

// Kind classifies what a matched rule indicates about the input.
type Kind string

const (
	// KindNone indicates no rule matched.
	KindNone Kind = ""

	// KindPromptInjection indicates an attempt to manipulate the
	// downstream generative model.
	KindPromptInjection Kind = "prompt_injection"

	// KindInappropriateContent indicates content unsuitable for the
	// audience.
	KindInappropriateContent Kind = "inappropriate_content"
)

// Category names used in rule identifiers.
const (
	categoryInjection  = "injection"
	categoryLiteral    = "literal"
	categoryObfuscated = "obfuscated"
	categoryHomophone  = "homophone"
)

// Result is the outcome of matching one input against the rule tables.
type Result struct {
	// Matched reports whether any rule matched.
	Matched bool

	// Kind is the classification of the first matching category.
	Kind Kind

	// RuleIDs lists every rule that matched, in evaluation order, up to
	// the point evaluation short-circuited. Identifiers are stable for a
	// given configuration (e.g., "injection.003") and safe for audit
	// metadata; they never contain input text.
	RuleIDs []string
}

// rule is one compiled detection pattern.
type rule struct {
	id string
	re *regexp.Regexp
}

// ruleCategory is an ordered group of rules sharing a classification.
type ruleCategory struct {
	name  string
	kind  Kind
	rules []rule
}

// Matcher evaluates normalized text against the configured rule tables.
// A Matcher is immutable after construction and safe for concurrent use.
type Matcher struct {
	categories []ruleCategory
}

// NewMatcher builds a Matcher from the rule configuration. Configured
// entries extend the built-in tables unless cfg.ReplaceDefaults is set.
// Construction fails only if a generated pattern does not compile, which
// indicates a malformed configuration entry.
func NewMatcher(cfg config.RulesConfig) (*Matcher, error) {
	injection := mergeRules(defaultInjectionPhrases, cfg.InjectionPhrases, cfg.ReplaceDefaults)
	literal := mergeRules(defaultBlockedTerms, cfg.BlockedTerms, cfg.ReplaceDefaults)
	obfuscated := mergeRules(defaultObfuscatedTerms, cfg.LeetspeakTerms, cfg.ReplaceDefaults)
	homophone := mergeRules(defaultHomophones, cfg.Homophones, cfg.ReplaceDefaults)

	m := &Matcher{}

	// Category order is the evaluation order: injection outranks content.
	specs := []struct {
		name    string
		kind    Kind
		terms   []string
		compile func(term string) (*regexp.Regexp, error)
	}{
		{categoryInjection, KindPromptInjection, injection, compilePhrase},
		{categoryLiteral, KindInappropriateContent, literal, compileTerm},
		{categoryObfuscated, KindInappropriateContent, obfuscated, compileGapped},
		{categoryHomophone, KindInappropriateContent, homophone, compileTerm},
	}

	for _, spec := range specs {
		cat := ruleCategory{name: spec.name, kind: spec.kind}
		for i, term := range spec.terms {
			re, err := spec.compile(term)
			if err != nil {
				return nil, fmt.Errorf("invalid %s rule %q: %w", spec.name, term, err)
			}
			cat.rules = append(cat.rules, rule{
				id: fmt.Sprintf("%s.%03d", spec.name, i+1),
				re: re,
			})
		}
		m.categories = append(m.categories, cat)
	}

	return m, nil
}

// Match evaluates normalized text against every category in order. The
// first category containing a match determines the Kind; rules in later
// categories are not evaluated, but all matches within evaluated
// categories are reported.
func (m *Matcher) Match(normalized string) Result {
	result := Result{Kind: KindNone}

	if normalized == "" {
		return result
	}

	for _, cat := range m.categories {
		for _, r := range cat.rules {
			if r.re.MatchString(normalized) {
				result.Matched = true
				result.RuleIDs = append(result.RuleIDs, r.id)
			}
		}
		if result.Matched {
			result.Kind = cat.kind
			return result
		}
	}

	return result
}

// RuleCount returns the total number of compiled rules, mostly for
// startup logging.
func (m *Matcher) RuleCount() int {
	n := 0
	for _, cat := range m.categories {
		n += len(cat.rules)
	}
	return n
}

// mergeRules combines built-in and configured entries, lowercasing,
// trimming, and deduplicating while preserving order.
func mergeRules(defaults, extra []string, replace bool) []string {
	var combined []string
	if !replace {
		combined = append(combined, defaults...)
	}
	combined = append(combined, extra...)

	seen := make(map[string]bool, len(combined))
	out := make([]string, 0, len(combined))
	for _, term := range combined {
		t := strings.ToLower(strings.TrimSpace(term))
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		out = append(out, t)
	}
	return out
}

// compilePhrase builds a pattern for a multi-word phrase. Words may be
// separated by up to four whitespace characters so padded variants that
// survive normalization are still caught.
func compilePhrase(phrase string) (*regexp.Regexp, error) {
	words := strings.Fields(phrase)
	if len(words) == 0 {
		return nil, fmt.Errorf("empty phrase")
	}
	quoted := make([]string, len(words))
	for i, w := range words {
		quoted[i] = regexp.QuoteMeta(w)
	}
	return regexp.Compile(`(?i)\b` + strings.Join(quoted, `\s{1,4}`) + `\b`)
}

// compileTerm builds an exact whole-word pattern for a single term.
func compileTerm(term string) (*regexp.Regexp, error) {
	return regexp.Compile(`(?i)\b` + regexp.QuoteMeta(term) + `\b`)
}

// compileGapped builds a pattern tolerating up to two spacing or
// punctuation characters between letters ("k i l l", "k.i.l.l").
func compileGapped(term string) (*regexp.Regexp, error) {
	letters := []rune(term)
	if len(letters) == 0 {
		return nil, fmt.Errorf("empty term")
	}
	parts := make([]string, len(letters))
	for i, r := range letters {
		parts[i] = regexp.QuoteMeta(string(r))
	}
	return regexp.Compile(`(?i)\b` + strings.Join(parts, `[\s.\-_*]{0,2}`) + `\b`)
}
