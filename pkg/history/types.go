package history

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"telescope-hq/callisto/pkg/registry/diag"
)

// ErrNotFound is returned when a run ID does not exist in the store.
var ErrNotFound = errors.New("history: run not found")

// Run is one recorded validation run.
type Run struct {
	// ID is a UUID v4 assigned when the run is recorded.
	ID string `json:"id"`

	// StartedAt is when validation began.
	StartedAt time.Time `json:"started_at"`

	// Duration is the wall-clock run time.
	Duration time.Duration `json:"duration"`

	// Trigger records what started the run: "cli", "watch", or "schedule".
	Trigger string `json:"trigger"`

	// Files are the registry files validated, in input order.
	Files []string `json:"files"`

	// Errors and Warnings are the diagnostic counts.
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`

	// Diagnostics is the full sorted report.
	Diagnostics []diag.Diagnostic `json:"diagnostics"`
}

// NewRun builds a Run from a finished validation, assigning a fresh ID.
func NewRun(trigger string, files []string, report *diag.Report, startedAt time.Time, duration time.Duration) *Run {
	errs, warns := report.Counts()
	return &Run{
		ID:          uuid.NewString(),
		StartedAt:   startedAt,
		Duration:    duration,
		Trigger:     trigger,
		Files:       files,
		Errors:      errs,
		Warnings:    warns,
		Diagnostics: report.Diagnostics,
	}
}

// Clean reports whether the run found no errors.
func (r *Run) Clean() bool {
	return r.Errors == 0
}

// Store persists validation runs.
type Store interface {
	// Record stores one run.
	Record(ctx context.Context, run *Run) error

	// Get returns the run with the given ID, or ErrNotFound.
	Get(ctx context.Context, id string) (*Run, error)

	// Recent returns the most recent runs, newest first, at most limit.
	Recent(ctx context.Context, limit int) ([]*Run, error)

	// Prune deletes runs that started before the cutoff and returns how
	// many were removed.
	Prune(ctx context.Context, cutoff time.Time) (int64, error)

	// Close releases store resources.
	Close() error
}
