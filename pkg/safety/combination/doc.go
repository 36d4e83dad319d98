// Package combination validates fixed-size magic-word selections for
// combinatorial safety.
//
// Every word in a selection comes from a pre-approved category list, so
// individual words are safe by construction — the risk is emergent meaning
// when particular words appear together. The validator re-checks category
// membership authoritatively (the client UI is not trusted to have
// enforced it), rejects duplicate words, and looks the full selection up
// in an order-independent forbidden-combination table.
package combination
