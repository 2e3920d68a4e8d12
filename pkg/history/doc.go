// Package history persists validation runs so diagnostics can be compared
// across time: which files were validated, what the engine found, and when.
// The SQLite backend is the durable store; the memory backend serves tests
// and runs with history disabled.
package history
