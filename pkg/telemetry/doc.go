// Package telemetry provides observability for the validation engine.
//
// Subpackages:
//   - logging: structured logging via log/slog (JSON or text)
//   - metrics: Prometheus instrumentation for validations, rule hits,
//     rate limiting, and audit emission
//
// Both follow the same privacy rule as the rest of the engine: log
// records and metric labels carry classifications and identifiers,
// never user-supplied text.
package telemetry
