package normalize

import (
	"strings"
	"sync"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

// chainPool holds fresh transformer chains. Transformers carry internal
// state, so concurrent callers each take their own from the pool.
//
// The order matters: compatibility decomposition first so precomposed
// letters split into base + combining mark before the mark is removed.
var chainPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			norm.NFKD,                          // decompose so marks become separable
			cases.Fold(),                       // unicode case folding
			runes.Remove(runes.In(unicode.Mn)), // strip combining diacritical marks
			runes.Remove(runes.In(unicode.Cf)), // strip format chars: ZWSP, ZWJ, bidi controls
			width.Fold,                         // map fullwidth forms to ASCII
		)
	},
}

// Normalize returns the detection projection of s. The result is only ever
// compared against rule tables; it must not be shown to users or logged.
func Normalize(s string) string {
	if s == "" {
		return ""
	}

	// Drop invalid UTF-8 bytes up front so the transform chain never errors.
	s = strings.ToValidUTF8(s, "")

	tr := chainPool.Get().(transform.Transformer)
	ns, _, _ := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)

	ns = foldLookalikes(ns)
	ns = collapseSpaces(ns)

	return ns
}

// Clean returns the sanitized projection of s: leading/trailing whitespace
// trimmed and internal whitespace runs collapsed to a single space. Case
// and letters are preserved as typed.
func Clean(s string) string {
	if s == "" {
		return ""
	}
	return collapseSpaces(strings.ToValidUTF8(s, ""))
}

// foldLookalikes maps a fixed set of digit and symbol look-alikes to the
// letters they imitate. The table is intentionally small and curated:
// folding too aggressively would corrupt legitimate names.
func foldLookalikes(s string) string {
	if s == "" {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case '4', '@':
			b.WriteRune('a')
		case '3':
			b.WriteRune('e')
		case '1', '!', '|':
			b.WriteRune('i')
		case '0':
			b.WriteRune('o')
		case '5', '$':
			b.WriteRune('s')
		case '7':
			b.WriteRune('t')
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// collapseSpaces converts every whitespace run to a single ASCII space and
// trims the result.
func collapseSpaces(s string) string {
	if s == "" {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	inWS := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			inWS = true
			continue
		}
		if inWS && b.Len() > 0 {
			b.WriteByte(' ')
		}
		inWS = false
		b.WriteRune(r)
	}
	return b.String()
}
