// Warden is a deterministic text-safety validation engine for a
// children's story generator.
//
// It validates the two child-facing input surfaces before anything
// reaches story generation:
//   - Free-text character names, against prompt injection,
//     inappropriate content, and Unicode obfuscation
//   - Controlled magic-word selections, against the approved catalog
//     and the forbidden-combination table
//
// Usage:
//
//	# Validate a character name
//	warden name "Alice" --session demo
//
//	# Validate a magic-word selection
//	warden selection dragon castle happy --categories creatures,places,moods
//
//	# Validate names interactively from stdin
//	warden run
//
//	# Check a configuration file
//	warden lint --config config.yaml
//
//	# Query the audit trail
//	warden events --kind prompt_injection --limit 20
//
//	# Show the most popular magic words
//	warden usage --category creatures
package main

func main() {
	Execute()
}
