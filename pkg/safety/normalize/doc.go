// Package normalize canonicalizes untrusted text for safety detection.
//
// Two projections are produced from the same raw input:
//
//   - Normalize: the detection projection. Unicode compatibility
//     decomposition, case folding, removal of combining marks and invisible
//     format characters, width folding, a fixed look-alike substitution
//     table (leetspeak folding), and whitespace collapsing. Detectors only
//     ever see this form; it is never returned to callers.
//
//   - Clean: the sanitized projection. Trimming and whitespace collapsing
//     only, case preserved as typed. This is the form returned to callers
//     when validation succeeds.
//
// Both functions are pure, deterministic, O(n), and idempotent:
// Normalize(Normalize(s)) == Normalize(s) for all s.
package normalize
