// Package sources defines the contracts for loading the datasets a
// forecast run consumes.
//
// Each interface covers one published dataset: annual fertility rates,
// BTO housing completions, resident counts by age bin, and the listing
// of existing preschool centres. Implementations live in the internal/io
// packages and normalize the raw files into the tables the forecast
// package computes on.
package sources

import (
	"context"

	"github.com/chuawjk/ecda/pkg/forecast"
)

// Fertility loads age-specific fertility rates per year.
type Fertility interface {
	// Load parses the fertility dataset into a table of births per 1000
	// women, keyed by mother age bin and calendar year.
	Load(ctx context.Context) (*forecast.FertilityTable, error)
}

// Housing loads upcoming BTO housing completions.
type Housing interface {
	// Load parses the BTO mapping dataset into completion records, one
	// per subzone and estimated completion year.
	Load(ctx context.Context) ([]forecast.HousingCompletion, error)
}

// Residents loads current resident counts by subzone and age bin.
type Residents interface {
	// Load parses the resident population dataset, keeping female
	// residents of childbearing age grouped into five-year bins.
	Load(ctx context.Context) (*forecast.ResidentAgeBinTable, error)
}

// Preschools loads the existing preschool supply.
type Preschools interface {
	// Load returns the number of centres per subzone. Every subzone of
	// the planning boundary is present, zero when it hosts no centre.
	// When no processed centre listing exists yet, Load geocodes the
	// raw listing first.
	Load(ctx context.Context) (map[string]int, error)

	// Geocode resolves centre postal codes to coordinates, rewrites the
	// processed centre listing on disk, and reports how many centres
	// could not be located.
	Geocode(ctx context.Context) (*GeocodeReport, error)
}

// GeocodeReport summarizes one geocoding pass over the centre listing.
type GeocodeReport struct {
	// Total is the number of centres in the listing.
	Total int

	// Missing is the number of centres left without coordinates.
	Missing int

	// Output is the path of the processed listing that was written.
	Output string
}

// MissingPercent returns the share of centres without coordinates,
// in percent.
func (gr *GeocodeReport) MissingPercent() float64 {
	if gr.Total == 0 {
		return 0
	}
	return float64(gr.Missing) / float64(gr.Total) * 100
}
