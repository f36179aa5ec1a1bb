// Package repository keeps an index of recent scoring runs and the report
// files each run produced.
package repository

import (
	"context"
	"slices"
	"time"
)

// Run describes one finished scoring run.
type Run struct {
	ID               string    `json:"run_id"`
	CreatedAt        time.Time `json:"created_at"`
	Dir              string    `json:"-"`
	TotalFile        string    `json:"total_file"`
	ClassFiles       []string  `json:"class_files"`
	SegmentsAccepted int       `json:"segments_accepted"`
	SegmentsRejected int       `json:"segments_rejected"`
	Students         int       `json:"students"`
}

// HasFile reports whether name is one of the run's report files.
func (r Run) HasFile(name string) bool {
	return name != "" && (name == r.TotalFile || slices.Contains(r.ClassFiles, name))
}

// Store provides read/write access to the run index.
type Store interface {
	// Put records a run, evicting the oldest when the store is full.
	Put(ctx context.Context, run Run) error

	// Get returns the run with id.
	// Returns ErrNotFound if the run is unknown.
	Get(ctx context.Context, id string) (Run, error)

	// Recent returns up to n runs, newest first.
	Recent(ctx context.Context, n int) ([]Run, error)

	// Clear forgets every run.
	Clear(ctx context.Context)

	// Count returns the number of remembered runs.
	Count(ctx context.Context) int
}
