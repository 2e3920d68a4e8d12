// Package validator implements the definition validation engine for
// telemetry registry documents.
//
// The engine walks a parsed document (see the parser package) and checks
// every entry against the registry schema: identifier grammars, required
// and optional fields, and the type-conditional constraints that make
// metric validation interesting (a custom distribution needs bucket
// parameters, an event is forced to ping lifetime, and so on).
//
// # Rule Table
//
// Type-conditional constraints live in a static table keyed by the metric
// type enumeration. Each entry lists the fields the type additionally
// requires, the fields it additionally accepts, whether gecko_datapoint is
// allowed, and whether a lifetime is forced. Dispatch over the closed type
// set replaces the original's open-ended conditional schema composition.
//
// # Failure Model
//
// Content problems accumulate; no rule short-circuits the rest and no
// entry aborts its siblings. The only fatal class is structural: a
// document root or an entry that is not an object stops validation of that
// subtree alone. The engine always returns a complete diag.Report.
//
// Entries are independent, so the engine validates them concurrently and
// sorts the merged report for deterministic output.
package validator
