// Package registry validates telemetry registry documents: the YAML files
// that declare an application's metrics and pings.
//
// The subpackages split the work into stages: parser turns YAML into a
// plain document tree with source locations, validator checks the tree
// against the definition rules, diag carries the resulting diagnostics,
// and ident and defs hold the identifier grammars and definition model
// they share. This package ties the stages together behind a small
// convenience API; callers that need more control use the subpackages
// directly.
package registry
