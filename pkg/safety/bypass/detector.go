package bypass

import (
	"strings"
	"unicode"
)

// Flag identifies one structural obfuscation signal.
type Flag string

const (
	// FlagRepeatedCharacters reports the same code point repeated five or
	// more times consecutively.
	FlagRepeatedCharacters Flag = "repeated_characters"

	// FlagMixedScript reports letters from incompatible scripts inside one
	// token (e.g. Latin mixed with Cyrillic look-alikes).
	FlagMixedScript Flag = "mixed_script"

	// FlagInvisibleCharacters reports zero-width or bidirectional-control
	// code points in the raw input. These are stripped by normalization,
	// but having used them is itself a signal.
	FlagInvisibleCharacters Flag = "invisible_characters"

	// FlagNumericOnly reports a token consisting entirely of digits.
	FlagNumericOnly Flag = "numeric_only"
)

// repeatThreshold is the consecutive-repetition count that triggers
// FlagRepeatedCharacters.
const repeatThreshold = 5

// scripts a single-script name may legitimately come from. A token mixing
// two of these is flagged; connector runes (hyphen, apostrophe) and digits
// are script-neutral.
var knownScripts = []struct {
	name  string
	table *unicode.RangeTable
}{
	{"latin", unicode.Latin},
	{"cyrillic", unicode.Cyrillic},
	{"greek", unicode.Greek},
	{"arabic", unicode.Arabic},
	{"hebrew", unicode.Hebrew},
	{"han", unicode.Han},
	{"hangul", unicode.Hangul},
	{"hiragana", unicode.Hiragana},
	{"katakana", unicode.Katakana},
	{"devanagari", unicode.Devanagari},
	{"thai", unicode.Thai},
}

// Detect inspects raw and normalized projections of one input and returns
// every structural obfuscation flag found, in a fixed deterministic order.
// An empty result means no signal. Detect is pure and safe for concurrent
// use.
func Detect(raw, normalized string) []Flag {
	var flags []Flag

	if hasRepetition(raw) || hasRepetition(normalized) {
		flags = append(flags, FlagRepeatedCharacters)
	}
	if hasMixedScript(raw) {
		flags = append(flags, FlagMixedScript)
	}
	if hasInvisible(raw) {
		flags = append(flags, FlagInvisibleCharacters)
	}
	if hasNumericToken(raw) {
		flags = append(flags, FlagNumericOnly)
	}

	return flags
}

// hasRepetition reports whether any code point repeats repeatThreshold or
// more times consecutively.
func hasRepetition(s string) bool {
	var prev rune
	run := 0
	for _, r := range s {
		if r == prev {
			run++
			if run >= repeatThreshold {
				return true
			}
		} else {
			prev = r
			run = 1
		}
	}
	return false
}

// hasMixedScript reports whether any whitespace-delimited token contains
// letters from more than one known script.
func hasMixedScript(s string) bool {
	for _, token := range strings.Fields(s) {
		seen := ""
		for _, r := range token {
			if !unicode.IsLetter(r) {
				continue
			}
			script := scriptOf(r)
			if script == "" {
				continue
			}
			if seen == "" {
				seen = script
				continue
			}
			if script != seen {
				return true
			}
		}
	}
	return false
}

// scriptOf returns the script name of r, or "" for runes outside the known
// set (common/inherited runes stay neutral).
func scriptOf(r rune) string {
	for _, s := range knownScripts {
		if unicode.Is(s.table, r) {
			return s.name
		}
	}
	return ""
}

// hasInvisible reports whether s contains zero-width or directional format
// code points. Category Cf covers ZWSP, ZWJ, ZWNJ, the bidi embedding and
// override controls, and the BOM.
func hasInvisible(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Cf, r) {
			return true
		}
	}
	return false
}

// hasNumericToken reports whether any whitespace-delimited token consists
// entirely of digits.
func hasNumericToken(s string) bool {
	for _, token := range strings.Fields(s) {
		if token == "" {
			continue
		}
		allDigits := true
		for _, r := range token {
			if !unicode.IsDigit(r) {
				allDigits = false
				break
			}
		}
		if allDigits {
			return true
		}
	}
	return false
}
