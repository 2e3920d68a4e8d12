package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"telescope-hq/callisto/pkg/history"
)

var historyFlags struct {
	db    string
	limit int
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect past validation runs",
	Long: `Inspect validation runs recorded in the history database.

Runs are recorded by lint (when history is enabled in the configuration)
and by watch mode. Each run stores the validated files, the diagnostic
counts, and the full sorted report.`,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent validation runs",
	RunE:  listRuns,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show one run with its full diagnostic report",
	Args:  cobra.ExactArgs(1),
	RunE:  showRun,
}

var historyPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete runs older than the retention window",
	RunE:  pruneRuns,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyListCmd, historyShowCmd, historyPruneCmd)

	historyCmd.PersistentFlags().StringVar(&historyFlags.db, "db", "", "history database path")
	historyListCmd.Flags().IntVarP(&historyFlags.limit, "limit", "n", 20, "maximum runs to list")
}

// openHistoryStore opens the history database named by --db or the
// configuration.
func openHistoryStore() (*history.SQLiteStore, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	path := cfg.History.Path
	if historyFlags.db != "" {
		path = historyFlags.db
	}
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("history database %q not found", path)
	}
	return history.NewSQLiteStore(&history.SQLiteConfig{
		Path:         path,
		MaxOpenConns: cfg.History.MaxOpenConns,
		BusyTimeout:  cfg.History.BusyTimeout,
	})
}

func listRuns(cmd *cobra.Command, args []string) error {
	store, err := openHistoryStore()
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.Recent(context.Background(), historyFlags.limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no recorded runs")
		return nil
	}

	fmt.Printf("%-36s  %-20s  %-8s  %6s  %6s  %5s\n",
		"ID", "STARTED", "TRIGGER", "FILES", "ERRORS", "WARNS")
	for _, run := range runs {
		fmt.Printf("%-36s  %-20s  %-8s  %6d  %6d  %5d\n",
			run.ID,
			run.StartedAt.Local().Format("2006-01-02 15:04:05"),
			run.Trigger,
			len(run.Files),
			run.Errors,
			run.Warnings,
		)
	}
	return nil
}

func showRun(cmd *cobra.Command, args []string) error {
	store, err := openHistoryStore()
	if err != nil {
		return err
	}
	defer store.Close()

	run, err := store.Get(context.Background(), args[0])
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(run)
}

func pruneRuns(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.History.RetentionDays <= 0 {
		fmt.Println("retention disabled, nothing to prune")
		return nil
	}

	store, err := openHistoryStore()
	if err != nil {
		return err
	}
	defer store.Close()

	cutoff := time.Now().AddDate(0, 0, -cfg.History.RetentionDays)
	removed, err := store.Prune(context.Background(), cutoff)
	if err != nil {
		return err
	}
	fmt.Printf("pruned %d run(s) older than %s\n", removed, cutoff.Format("2006-01-02"))
	return nil
}
