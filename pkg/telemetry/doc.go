// Package telemetry groups callisto's observability: structured logging
// and Prometheus metrics for validation runs.
//
//   - logging: slog-based structured logging with run-scoped context fields
//   - metrics: run counts, durations, and diagnostic totals on a private
//     Prometheus registry
package telemetry
