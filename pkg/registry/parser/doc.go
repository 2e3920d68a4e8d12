// Package parser reads telemetry registry files into the document-object
// model consumed by the validation engine.
//
// Registry files are YAML. Parsing goes through yaml.Node rather than
// straight decoding so that source line numbers survive into the model;
// the validator attaches them to diagnostics via defs.Location.
//
// The model itself is deliberately plain: maps, slices, strings, numbers
// and booleans. The validator owns all schema knowledge; the parser only
// guarantees that the tree is made of those node kinds and that the root
// of a well-formed document is a map.
//
// ParseFiles merges several registry files of the same kind into one
// document, reporting metrics defined in more than one file.
package parser
