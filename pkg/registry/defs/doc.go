// Package defs contains the value objects produced by parsing and
// validating telemetry registry files.
//
// A registry run produces two kinds of definitions:
//
//   - Metric: a single named measurement, identified by (category, name)
//   - Ping: a named bundle of metrics transmitted together
//
// Definitions are immutable once built. Validation never mutates the source
// document; defaults (lifetime, send_in_pings, disabled, version) are
// filled into the definition structs for downstream consumers such as code
// generators.
//
// The metric type enumeration is closed: every variant the validator
// understands is declared here, and the rule table in the validator package
// dispatches over this set exhaustively.
package defs
