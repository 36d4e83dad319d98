// Package ratelimit tracks per-session security violations and applies an
// escalating cooldown.
//
// Each session moves between two states:
//
//	Normal  -> (violations within the window reach the threshold) -> Cooling
//	Cooling -> (cooldown expires)                                 -> Normal
//
// While a session is cooling, every validation call for it is rejected
// outright without running any detector. Violation counting uses a sliding
// window: the counter resets once the window expires, so an occasional
// mistake never accumulates into a penalty.
//
// Session state is the only mutable shared state in the engine. It lives
// in a bounded map keyed by session ID, each entry guarded by its own
// mutex so increment-and-check is atomic per session, and a background
// sweeper evicts entries idle longer than the configured TTL.
package ratelimit
