// Package forecast projects preschool demand per Singapore subzone.
//
// The package is pure computation: all inputs arrive as prepared tables
// (fertility rates, resident counts, housing completions, preschool
// supply), all outputs are in-memory matrices. Loading and cleaning the
// raw data lives in the internal/io packages.
package forecast

import "slices"

// Params are the tunables of one forecast run.
type Params struct {
	// Years is the number of calendar years to forecast, starting the
	// year after CurrentYear.
	Years int

	// Capacity is the assumed number of children one preschool serves.
	Capacity int

	// MinAgeMonths and MaxAgeMonths bound the preschool age band.
	MinAgeMonths int
	MaxAgeMonths int

	// CurrentYear is the base year of the run. Forecast years run from
	// CurrentYear+1 through CurrentYear+Years.
	CurrentYear int
}

// Result bundles the outputs of one forecast run.
type Result struct {
	// Years are the forecast years, ascending.
	Years []int

	// Preschoolers is the expected preschooler count per year and subzone.
	Preschoolers Matrix

	// Needed is Preschoolers converted to the number of preschools
	// required, given Params.Capacity.
	Needed Matrix

	// Gap is existing supply minus Needed over the subzones present in
	// both; positive is surplus, negative shortage.
	Gap Matrix

	// Supply is the existing preschool count per subzone used for Gap.
	Supply map[string]int
}

// Forecaster drives a full forecast run over prepared inputs.
type Forecaster struct {
	params      Params
	fertility   *FertilityTable
	residents   *ResidentAgeBinTable
	completions []HousingCompletion
	supply      map[string]int
}

// NewForecaster validates the parameters and wires a run. A zero or
// negative capacity is rejected here so that the needed-preschools
// division can never produce infinities later.
func NewForecaster(
	params Params,
	fertility *FertilityTable,
	residents *ResidentAgeBinTable,
	completions []HousingCompletion,
	supply map[string]int,
) (*Forecaster, error) {
	switch {
	case params.Years <= 0:
		return nil, ParamsError(
			"number of forecast years must be positive, got %d", params.Years,
		)
	case params.Capacity <= 0:
		return nil, ParamsError(
			"preschool capacity must be positive, got %d", params.Capacity,
		)
	case params.MinAgeMonths < 0:
		return nil, ParamsError(
			"minimum preschool age cannot be negative, got %d months",
			params.MinAgeMonths,
		)
	case params.MaxAgeMonths <= params.MinAgeMonths:
		return nil, ParamsError(
			"maximum preschool age must exceed the minimum, got %d and %d months",
			params.MaxAgeMonths, params.MinAgeMonths,
		)
	case params.CurrentYear <= 0:
		return nil, ParamsError(
			"current year must be set, got %d", params.CurrentYear,
		)
	}

	res := &Forecaster{
		params:      params,
		fertility:   fertility,
		residents:   residents,
		completions: slices.Clone(completions),
		supply:      supply,
	}
	return res, nil
}

// ForecastYears returns the consecutive years covered by the run,
// CurrentYear+1 through CurrentYear+Years.
func (f *Forecaster) ForecastYears() []int {
	res := make([]int, f.params.Years)
	for i := range res {
		res[i] = f.params.CurrentYear + 1 + i
	}
	return res
}

// Run executes the forecast. The fertility table is extrapolated over the
// full birth-year window first, then each forecast year is estimated
// independently and sequentially; no state is shared or memoized between
// years, so the result is deterministic for identical inputs.
func (f *Forecaster) Run() *Result {
	years := f.ForecastYears()
	window := MultiYearWindow(years, f.params.MinAgeMonths, f.params.MaxAgeMonths)

	fertility := f.fertility.Extrapolate(window)
	housingRates := fertility.AveragedBirthRate(window)
	ageRates := fertility.AgeSpecificRates(MotherAgeBins, window)
	housing := NewHousingSupplySeries(f.completions, years[len(years)-1])

	estimator := NewPreschoolerEstimator(
		f.params.MinAgeMonths, f.params.MaxAgeMonths,
		ageRates, f.residents, housing, housingRates,
	)

	counts := make(Matrix, len(years))
	for _, year := range years {
		counts.Set(year, estimator.EstimateYear(year))
	}

	needed := NeededPreschools(counts, f.params.Capacity)
	gap := SupplyGap(f.supply, needed)

	return &Result{
		Years:        years,
		Preschoolers: counts,
		Needed:       needed,
		Gap:          gap,
		Supply:       f.supply,
	}
}
