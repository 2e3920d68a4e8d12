package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// LoadConfig loads configuration from a YAML file, applies defaults, and
// validates the result.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read configuration file %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse configuration file %q: %w", path, err)
	}

	ApplyDefaults(&cfg)

	if err := Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// LoadConfigWithEnvOverrides loads configuration from a YAML file and applies
// environment variable overrides. Variables follow the naming convention
// CALLISTO_SECTION_FIELD (e.g. CALLISTO_LINT_STRICT) and always take
// precedence over file-based configuration.
func LoadConfigWithEnvOverrides(path string) (*Config, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}

	applyEnvOverrides(cfg)

	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed after environment overrides: %w", err)
	}

	return cfg, nil
}

func applyEnvOverrides(cfg *Config) {
	if val := os.Getenv("CALLISTO_LINT_PATHS"); val != "" {
		cfg.Lint.Paths = strings.Split(val, ",")
	}
	if val := os.Getenv("CALLISTO_LINT_ALLOW_RESERVED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Lint.AllowReserved = b
		}
	}
	if val := os.Getenv("CALLISTO_LINT_STRICT"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Lint.Strict = b
		}
	}
	if val := os.Getenv("CALLISTO_LINT_CONCURRENCY"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.Lint.Concurrency = i
		}
	}
	if val := os.Getenv("CALLISTO_LINT_FORMAT"); val != "" {
		cfg.Lint.Format = val
	}

	if val := os.Getenv("CALLISTO_WATCH_DEBOUNCE"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			cfg.Watch.Debounce = d
		}
	}
	if val := os.Getenv("CALLISTO_WATCH_SCHEDULE"); val != "" {
		cfg.Watch.Schedule = val
	}
	if val := os.Getenv("CALLISTO_WATCH_METRICS_ADDRESS"); val != "" {
		cfg.Watch.MetricsAddress = val
	}

	if val := os.Getenv("CALLISTO_HISTORY_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.History.Enabled = b
		}
	}
	if val := os.Getenv("CALLISTO_HISTORY_PATH"); val != "" {
		cfg.History.Path = val
	}
	if val := os.Getenv("CALLISTO_HISTORY_RETENTION_DAYS"); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			cfg.History.RetentionDays = i
		}
	}

	if val := os.Getenv("CALLISTO_LOGGING_LEVEL"); val != "" {
		cfg.Telemetry.Logging.Level = val
	}
	if val := os.Getenv("CALLISTO_LOGGING_FORMAT"); val != "" {
		cfg.Telemetry.Logging.Format = val
	}
	if val := os.Getenv("CALLISTO_METRICS_ENABLED"); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			cfg.Telemetry.Metrics.Enabled = b
		}
	}
}
