// Package logging provides structured logging for callisto, built on
// log/slog. The Logger wraps an slog.Logger with level and format
// configuration and context-aware variants that pick up the run and
// source-file fields carried in a context.Context.
package logging
