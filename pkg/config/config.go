package config

import "time"

// Config is the root configuration for callisto.
type Config struct {
	// Lint configures registry validation.
	Lint LintConfig `yaml:"lint"`

	// Watch configures continuous validation of registry files.
	Watch WatchConfig `yaml:"watch"`

	// History configures persistence of validation runs.
	History HistoryConfig `yaml:"history"`

	// Telemetry configures logging and metrics.
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// LintConfig controls how registry files are validated.
type LintConfig struct {
	// Paths are the registry files or directories to validate. Directories
	// are scanned for *.yaml and *.yml files.
	Paths []string `yaml:"paths"`

	// AllowReserved permits reserved names. Only the telemetry SDK's own
	// registry files should set this.
	AllowReserved bool `yaml:"allow_reserved"`

	// Strict treats warnings as errors for exit-code purposes.
	Strict bool `yaml:"strict"`

	// Concurrency bounds parallel entry validation. Zero means one worker
	// per CPU.
	Concurrency int `yaml:"concurrency"`

	// Format selects diagnostic output: "text" or "json".
	Format string `yaml:"format"`
}

// WatchConfig controls watch mode.
type WatchConfig struct {
	// Debounce is how long to wait after a filesystem event before
	// revalidating, coalescing editor save bursts.
	Debounce time.Duration `yaml:"debounce"`

	// Schedule is an optional cron expression for periodic full
	// revalidation independent of filesystem events.
	Schedule string `yaml:"schedule"`

	// MetricsAddress, when set, serves Prometheus metrics on this address
	// during watch mode.
	MetricsAddress string `yaml:"metrics_address"`
}

// HistoryConfig controls the validation run store.
type HistoryConfig struct {
	// Enabled turns run persistence on.
	Enabled bool `yaml:"enabled"`

	// Path is the SQLite database file.
	Path string `yaml:"path"`

	// MaxOpenConns bounds the connection pool.
	MaxOpenConns int `yaml:"max_open_conns"`

	// BusyTimeout is the SQLite busy handler timeout.
	BusyTimeout time.Duration `yaml:"busy_timeout"`

	// RetentionDays prunes runs older than this many days. Zero keeps
	// everything.
	RetentionDays int `yaml:"retention_days"`
}

// TelemetryConfig controls observability.
type TelemetryConfig struct {
	Logging LoggingConfig `yaml:"logging"`
	Metrics MetricsConfig `yaml:"metrics"`
}

// LoggingConfig controls the structured logger.
type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level"`

	// Format is "json" or "text".
	Format string `yaml:"format"`
}

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled"`

	// Path is the HTTP path metrics are served on.
	Path string `yaml:"path"`
}
