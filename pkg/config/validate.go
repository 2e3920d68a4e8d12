package config

import (
	"fmt"
	"strings"
)

// FieldError represents a validation error for a specific configuration field.
type FieldError struct {
	// Field is the dotted path to the configuration field (e.g. "lint.format").
	Field string

	// Message is a human-readable error message.
	Message string
}

// Error returns the error message for this field error.
func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError represents one or more validation errors in a configuration.
type ValidationError struct {
	Errors []FieldError
}

// Error returns a formatted string containing all validation errors.
func (e ValidationError) Error() string {
	if len(e.Errors) == 0 {
		return "configuration validation failed"
	}
	if len(e.Errors) == 1 {
		return fmt.Sprintf("configuration validation failed: %s", e.Errors[0].Error())
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("configuration validation failed with %d errors:\n", len(e.Errors)))
	for _, err := range e.Errors {
		sb.WriteString(fmt.Sprintf("  - %s\n", err.Error()))
	}
	return sb.String()
}

// Validate checks the entire configuration, collecting every problem before
// failing. Returns nil when the configuration is valid.
func Validate(cfg *Config) error {
	var errs []FieldError

	if cfg.Lint.Format != "text" && cfg.Lint.Format != "json" {
		errs = append(errs, FieldError{
			Field:   "lint.format",
			Message: fmt.Sprintf("must be \"text\" or \"json\", got %q", cfg.Lint.Format),
		})
	}
	if cfg.Lint.Concurrency < 0 {
		errs = append(errs, FieldError{
			Field:   "lint.concurrency",
			Message: fmt.Sprintf("must be non-negative, got %d", cfg.Lint.Concurrency),
		})
	}

	if cfg.Watch.Debounce < 0 {
		errs = append(errs, FieldError{
			Field:   "watch.debounce",
			Message: "must be non-negative",
		})
	}

	if cfg.History.Enabled && cfg.History.Path == "" {
		errs = append(errs, FieldError{
			Field:   "history.path",
			Message: "required when history is enabled",
		})
	}
	if cfg.History.MaxOpenConns < 0 {
		errs = append(errs, FieldError{
			Field:   "history.max_open_conns",
			Message: "must be non-negative",
		})
	}
	if cfg.History.RetentionDays < 0 {
		errs = append(errs, FieldError{
			Field:   "history.retention_days",
			Message: "must be non-negative",
		})
	}

	switch cfg.Telemetry.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.level",
			Message: fmt.Sprintf("must be one of debug, info, warn, error, got %q", cfg.Telemetry.Logging.Level),
		})
	}
	switch cfg.Telemetry.Logging.Format {
	case "json", "text", "console":
	default:
		errs = append(errs, FieldError{
			Field:   "telemetry.logging.format",
			Message: fmt.Sprintf("must be one of json, text, console, got %q", cfg.Telemetry.Logging.Format),
		})
	}
	if cfg.Telemetry.Metrics.Enabled && !strings.HasPrefix(cfg.Telemetry.Metrics.Path, "/") {
		errs = append(errs, FieldError{
			Field:   "telemetry.metrics.path",
			Message: "must start with /",
		})
	}

	if len(errs) > 0 {
		return ValidationError{Errors: errs}
	}
	return nil
}
