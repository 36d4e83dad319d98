// Package bypass detects structural obfuscation signals that indicate an
// evasion attempt independent of what the text literally says.
//
// The detector inspects both the raw and the normalized form of an input:
// some signals (invisible format characters, bidirectional controls) are
// only observable in the raw form because normalization strips them, while
// others (spaced-out repetition) are easier to see after normalization.
// Any flag at all classifies the input as a character-rule violation.
package bypass
