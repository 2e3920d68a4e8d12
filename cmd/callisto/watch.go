package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"telescope-hq/callisto/pkg/config"
	"telescope-hq/callisto/pkg/history"
	"telescope-hq/callisto/pkg/registry"
	"telescope-hq/callisto/pkg/telemetry/logging"
	"telescope-hq/callisto/pkg/telemetry/metrics"
	"telescope-hq/callisto/pkg/watch"
)

var watchFlags struct {
	file        string
	dir         string
	debounce    time.Duration
	schedule    string
	metricsAddr string
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Revalidate registry files as they change",
	Long: `Watch registry files and revalidate on every change.

A debounced filesystem watcher coalesces editor save bursts into single
validation runs. An optional cron schedule adds periodic full runs, which
catch problems that appear without a file change, such as expiry dates
passing. With --metrics-addr, Prometheus metrics for the runs are served
over HTTP.

Examples:
  # Watch a directory
  callisto watch --dir telemetry/

  # Revalidate hourly even without changes
  callisto watch --dir telemetry/ --schedule "0 * * * *"

  # Expose run metrics for scraping
  callisto watch --dir telemetry/ --metrics-addr 127.0.0.1:9090`,
	RunE: watchRegistries,
}

func init() {
	rootCmd.AddCommand(watchCmd)

	watchCmd.Flags().StringVarP(&watchFlags.file, "file", "f", "", "registry file to watch")
	watchCmd.Flags().StringVarP(&watchFlags.dir, "dir", "d", "", "directory of registry files to watch")
	watchCmd.Flags().DurationVar(&watchFlags.debounce, "debounce", 0, "quiet period before revalidating")
	watchCmd.Flags().StringVar(&watchFlags.schedule, "schedule", "", "cron expression for periodic validation")
	watchCmd.Flags().StringVar(&watchFlags.metricsAddr, "metrics-addr", "", "address to serve Prometheus metrics on")
}

func watchRegistries(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyWatchFlags(cfg)

	logger, err := newLogger(cfg)
	if err != nil {
		return err
	}

	if len(cfg.Lint.Paths) == 0 {
		return fmt.Errorf("either --file or --dir must be specified")
	}

	var store history.Store = history.NewMemoryStore()
	if cfg.History.Enabled {
		store, err = history.NewSQLiteStore(&history.SQLiteConfig{
			Path:         cfg.History.Path,
			MaxOpenConns: cfg.History.MaxOpenConns,
			BusyTimeout:  cfg.History.BusyTimeout,
		})
		if err != nil {
			return err
		}
	}
	defer store.Close()

	collector := metrics.NewCollector(nil)
	if cfg.Watch.MetricsAddress != "" {
		go serveMetrics(cfg, collector, logger)
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	runOnce := func(trigger string) error {
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

		collector.RecordRun(result.Report, len(files), duration)

		run := history.NewRun(trigger, files, result.Report, started, duration)
		if err := store.Record(ctx, run); err != nil {
			logger.Warn("failed to record run", "error", err)
		}

		errs, warns := result.Report.Counts()
		runLogger := logger.WithContext(logging.WithRunID(ctx, run.ID))
		if errs > 0 {
			runLogger.Warn("validation found problems",
				"files", len(files), "errors", errs, "warnings", warns)
			for _, d := range result.Report.Diagnostics {
				fmt.Println(d)
			}
		} else {
			runLogger.Info("validation clean",
				"files", len(files), "warnings", warns)
		}
		return nil
	}

	// Initial run so the first report does not wait for an edit.
	if err := runOnce("watch"); err != nil {
		return err
	}

	scheduler := watch.NewScheduler(cfg.Watch.Schedule, logger)
	if err := scheduler.Start(ctx, func() error { return runOnce("schedule") }); err != nil {
		return err
	}
	defer scheduler.Stop()

	watcher, err := watch.NewWatcher(&watch.WatcherConfig{
		Paths:    cfg.Lint.Paths,
		Debounce: cfg.Watch.Debounce,
	}, logger)
	if err != nil {
		return err
	}

	return watcher.Watch(ctx, func() error { return runOnce("watch") })
}

// applyWatchFlags overlays command-line flags onto the loaded configuration.
func applyWatchFlags(cfg *config.Config) {
	if watchFlags.file != "" || watchFlags.dir != "" {
		cfg.Lint.Paths = nil
		if watchFlags.file != "" {
			cfg.Lint.Paths = append(cfg.Lint.Paths, watchFlags.file)
		}
		if watchFlags.dir != "" {
			cfg.Lint.Paths = append(cfg.Lint.Paths, watchFlags.dir)
		}
	}
	if watchFlags.debounce > 0 {
		cfg.Watch.Debounce = watchFlags.debounce
	}
	if watchFlags.schedule != "" {
		cfg.Watch.Schedule = watchFlags.schedule
	}
	if watchFlags.metricsAddr != "" {
		cfg.Watch.MetricsAddress = watchFlags.metricsAddr
	}
}

func serveMetrics(cfg *config.Config, collector *metrics.Collector, logger *logging.Logger) {
	mux := http.NewServeMux()
	mux.Handle(cfg.Telemetry.Metrics.Path, collector.Handler())

	logger.Info("metrics endpoint started",
		"address", cfg.Watch.MetricsAddress,
		"path", cfg.Telemetry.Metrics.Path,
	)
	server := &http.Server{
		Addr:              cfg.Watch.MetricsAddress,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Error("metrics endpoint failed", "error", err)
	}
}
