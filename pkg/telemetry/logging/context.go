package logging

import "context"

// Context keys for common log fields.
type contextKey string

const (
	// RunIDKey is the context key for validation run identifiers.
	RunIDKey contextKey = "run_id"

	// SourceFileKey is the context key for the registry file being
	// validated.
	SourceFileKey contextKey = "source_file"
)

// WithRunID adds a validation run ID to the context.
func WithRunID(ctx context.Context, runID string) context.Context {
	return context.WithValue(ctx, RunIDKey, runID)
}

// GetRunID retrieves the validation run ID from the context.
func GetRunID(ctx context.Context) string {
	if runID, ok := ctx.Value(RunIDKey).(string); ok {
		return runID
	}
	return ""
}

// WithSourceFile adds the registry file path to the context.
func WithSourceFile(ctx context.Context, path string) context.Context {
	return context.WithValue(ctx, SourceFileKey, path)
}

// GetSourceFile retrieves the registry file path from the context.
func GetSourceFile(ctx context.Context) string {
	if path, ok := ctx.Value(SourceFileKey).(string); ok {
		return path
	}
	return ""
}

// extractContextFields returns slog key/value args for every log field the
// context carries.
func extractContextFields(ctx context.Context) []any {
	var args []any
	if runID := GetRunID(ctx); runID != "" {
		args = append(args, "run_id", runID)
	}
	if path := GetSourceFile(ctx); path != "" {
		args = append(args, "source_file", path)
	}
	return args
}
