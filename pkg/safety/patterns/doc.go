// Package patterns matches normalized text against categorized detection
// rule tables.
//
// Four ordered categories are evaluated: prompt-injection phrases first
// (the more severe classification), then literal inappropriate terms,
// spaced/punctuated obfuscation variants, and homophones. The first
// category with a match determines the classification and short-circuits
// later categories, but every rule matched up to that point is reported so
// audit events carry complete metadata.
//
// All compiled patterns use bounded repetition only, which together with
// Go's RE2 engine guarantees linear-time matching on any input.
package patterns
