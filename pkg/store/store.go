// Package store defines the contract for persisting forecast runs.
//
// A run is saved with its parameters and all output matrices so that
// past forecasts can be listed, re-read and served without recomputing
// them. The SQLite implementation lives in internal/iostore.
package store

import (
	"context"
	"time"

	"github.com/chuawjk/ecda/pkg/forecast"
)

// Store saves and retrieves forecast runs.
type Store interface {
	// Init opens the database and ensures the schema exists. It is
	// idempotent and safe to call on every start.
	Init(ctx context.Context) error

	// Save persists a finished run and returns its assigned ID.
	Save(ctx context.Context, rec *RunRecord) (string, error)

	// List returns summaries of all saved runs, newest first.
	List(ctx context.Context) ([]RunSummary, error)

	// Get returns a saved run by its ID.
	Get(ctx context.Context, id string) (*RunRecord, error)

	// Close releases the database handle.
	Close() error
}

// RunRecord is one forecast run with all its outputs.
type RunRecord struct {
	// ID identifies the run. Save assigns it when empty.
	ID string

	// CreatedAt is the time the run was saved.
	CreatedAt time.Time

	// Params are the settings the run was computed with.
	Params forecast.Params

	// Years are the forecast years, ascending.
	Years []int

	// Supply is the existing preschool count per subzone.
	Supply map[string]int

	// Preschoolers, Needed and Gap are the run's output matrices.
	Preschoolers forecast.Matrix
	Needed       forecast.Matrix
	Gap          forecast.Matrix
}

// RunSummary is the listing view of a saved run.
type RunSummary struct {
	ID        string
	CreatedAt time.Time
	Params    forecast.Params

	// Subzones is the number of distinct subzones the run covers.
	Subzones int
}
