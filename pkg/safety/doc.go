// Package safety implements the layered validation engine for the
// story generator's child-facing inputs.
//
// Two public operations cover the two input surfaces:
//
//   - Controller.ValidateName validates free-text character names
//     against prompt injection, inappropriate content (including
//     leetspeak and homophone variants), Unicode obfuscation, and
//     structural character rules.
//   - Controller.ValidateSelection validates controlled magic-word
//     selections against the approved catalog and the
//     forbidden-combination table.
//
// Both consult the per-session rate limiter before detection and
// record violations after it, so a session that keeps triggering
// rejections is placed in a temporary cooldown.
//
// Every outcome is returned as a ValidationResult value; no error or
// panic ever crosses the package boundary at validation time.
// Construction is the only fallible step: NewController rejects a
// malformed rule configuration.
//
// Detection internals live in the subpackages (normalize, patterns,
// bypass, combination, ratelimit); each is a pure function of its
// input and the immutable configuration, and independently testable.
package safety
