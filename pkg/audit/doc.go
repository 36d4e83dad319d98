// Package audit records security events emitted by the validation engine.
//
// Events are metadata only: they carry the session ID, the outcome kind,
// and the identifiers of matched rules — never the raw or normalized
// input text. This keeps the audit trail useful for tuning rule tables
// while guaranteeing that nothing a child typed is ever persisted.
//
// Emission is fire-and-forget. The Emitter buffers events on a channel
// drained by a background writer; when the buffer is full events are
// dropped and counted rather than blocking the validation path, and a
// storage failure is logged and swallowed. Validation results never
// depend on the audit trail in any way.
package audit
