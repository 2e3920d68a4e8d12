// Package ident validates the identifier grammars used in telemetry
// registry files.
//
// Registry files name things in three related but distinct grammars:
//
//   - snake_case tokens (metric names, send_in_pings entries)
//   - dotted snake_case paths (metric categories, ping names)
//   - labeled-metric identifiers (label values, which also allow hyphens)
//
// Each check returns a Result rather than a bare bool so callers can build
// a precise diagnostic (too long vs. bad character vs. empty segment)
// without re-deriving the grammar.
//
// All patterns are compiled once at package load.
package ident
