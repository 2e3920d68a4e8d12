// Package config defines the callisto configuration model and its loading
// pipeline: parse YAML, apply defaults, apply CALLISTO_* environment
// overrides, validate. Validation collects every problem before failing so
// a misconfigured file is fixed in one pass.
package config
