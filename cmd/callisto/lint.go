package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"telescope-hq/callisto/pkg/config"
	"telescope-hq/callisto/pkg/history"
	"telescope-hq/callisto/pkg/registry"
	"telescope-hq/callisto/pkg/registry/diag"
)

var lintFlags struct {
	file          string
	dir           string
	strict        bool
	allowReserved bool
	format        string
	historyDB     string
}

var lintCmd = &cobra.Command{
	Use:   "lint",
	Short: "Validate registry files",
	Long: `Validate telemetry registry files for structural and semantic errors.

The lint command parses metrics and pings registries and performs
comprehensive validation:
  - YAML syntax and document shape
  - Identifier grammars (categories, names, labels, ping names)
  - Per-type definition rules (required and forbidden fields)
  - Reserved name usage
  - Cross-file duplicate definitions

Examples:
  # Lint a single file
  callisto lint --file metrics.yaml

  # Lint a directory of registry files
  callisto lint --dir telemetry/

  # Strict mode (warnings as errors)
  callisto lint --file metrics.yaml --strict

  # JSON output for CI/CD
  callisto lint --file metrics.yaml --format json`,
	RunE: lintRegistries,
}

func init() {
	rootCmd.AddCommand(lintCmd)

	lintCmd.Flags().StringVarP(&lintFlags.file, "file", "f", "", "registry file to validate")
	lintCmd.Flags().StringVarP(&lintFlags.dir, "dir", "d", "", "directory of registry files")
	lintCmd.Flags().BoolVar(&lintFlags.strict, "strict", false, "treat warnings as errors")
	lintCmd.Flags().BoolVar(&lintFlags.allowReserved, "allow-reserved", false, "permit reserved names (SDK registries only)")
	lintCmd.Flags().StringVar(&lintFlags.format, "format", "", "output format: text, json")
	lintCmd.Flags().StringVar(&lintFlags.historyDB, "history-db", "", "record the run in this history database")
}

func lintRegistries(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyLintFlags(cfg)

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}

	files, err := collectRegistryFiles(cfg.Lint.Paths)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no registry files found")
	}

	started := time.Now()
	result, err := registry.LintFiles(files, registry.Options{
		AllowReserved: cfg.Lint.AllowReserved,
		Concurrency:   cfg.Lint.Concurrency,
	})
	if err != nil {
		return err
	}
	duration := time.Since(started)

	if cfg.History.Enabled {
		if err := recordRun(cfg, "cli", files, result.Report, started, duration); err != nil {
			logger.Warn("failed to record run", "error", err)
		}
	}

	if cfg.Lint.Format == "json" {
		if err := outputJSON(files, result.Report); err != nil {
			return err
		}
	} else {
		outputText(files, result.Report)
	}

	errs, warns := result.Report.Counts()
	if errs > 0 || (cfg.Lint.Strict && warns > 0) {
		cmd.SilenceUsage = true
		return fmt.Errorf("validation failed: %d error(s), %d warning(s)", errs, warns)
	}
	return nil
}

// applyLintFlags overlays command-line flags onto the loaded configuration.
func applyLintFlags(cfg *config.Config) {
	if lintFlags.file != "" || lintFlags.dir != "" {
		cfg.Lint.Paths = nil
		if lintFlags.file != "" {
			cfg.Lint.Paths = append(cfg.Lint.Paths, lintFlags.file)
		}
		if lintFlags.dir != "" {
			cfg.Lint.Paths = append(cfg.Lint.Paths, lintFlags.dir)
		}
	}
	if lintFlags.strict {
		cfg.Lint.Strict = true
	}
	if lintFlags.allowReserved {
		cfg.Lint.AllowReserved = true
	}
	if lintFlags.format != "" {
		cfg.Lint.Format = lintFlags.format
	}
	if lintFlags.historyDB != "" {
		cfg.History.Enabled = true
		cfg.History.Path = lintFlags.historyDB
	}
}

// collectRegistryFiles expands the configured paths: files are taken as-is,
// directories are scanned for YAML files.
func collectRegistryFiles(paths []string) ([]string, error) {
	var files []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %q: %w", path, err)
		}
		if !info.IsDir() {
			files = append(files, path)
			continue
		}
		for _, pattern := range []string{"*.yaml", "*.yml"} {
			matches, err := filepath.Glob(filepath.Join(path, pattern))
			if err != nil {
				return nil, fmt.Errorf("failed to list registry files: %w", err)
			}
			files = append(files, matches...)
		}
	}
	sort.Strings(files)
	return files, nil
}

// recordRun persists a finished validation run to the history store.
func recordRun(cfg *config.Config, trigger string, files []string, report *diag.Report, started time.Time, duration time.Duration) error {
	store, err := history.NewSQLiteStore(&history.SQLiteConfig{
		Path:         cfg.History.Path,
		MaxOpenConns: cfg.History.MaxOpenConns,
		BusyTimeout:  cfg.History.BusyTimeout,
	})
	if err != nil {
		return err
	}
	defer store.Close()

	run := history.NewRun(trigger, files, report, started, duration)
	return store.Record(context.Background(), run)
}

// lintReport is the JSON output shape.
type lintReport struct {
	Files       []string          `json:"files"`
	Errors      int               `json:"errors"`
	Warnings    int               `json:"warnings"`
	Diagnostics []diag.Diagnostic `json:"diagnostics"`
}

func outputJSON(files []string, report *diag.Report) error {
	errs, warns := report.Counts()
	out := lintReport{
		Files:       files,
		Errors:      errs,
		Warnings:    warns,
		Diagnostics: report.Diagnostics,
	}
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func outputText(files []string, report *diag.Report) {
	for _, file := range files {
		fmt.Printf("Validating %s\n", file)
	}

	for _, d := range report.Diagnostics {
		marker := "✗"
		if d.Severity == diag.SeverityWarning {
			marker = "!"
		}
		fmt.Printf("%s %s\n", marker, d)
	}

	errs, warns := report.Counts()
	if errs == 0 && warns == 0 {
		fmt.Println("✓ All definitions valid")
		return
	}
	fmt.Printf("%d error(s), %d warning(s)\n", errs, warns)
}
