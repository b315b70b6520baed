package forecast

import "math"

// PreschoolerEstimator computes the expected number of preschool-aged
// children per subzone for one forecast year. Two independent populations
// are estimated and summed:
//
//   - children born to women already living in a subzone, using
//     age-specific fertility rates over the full seven maternal age bins;
//   - children born to households moving into newly completed housing,
//     using one birth rate averaged over the four core childbearing bins.
//
// The two halves use different boundary-year discounts on purpose; see
// EstimateYear.
type PreschoolerEstimator struct {
	minAgeMonths int
	maxAgeMonths int

	// ageRates holds per-woman rates by age bin and birth year.
	ageRates map[string]map[int]float64
	// rateYears is the set of birth years present in any bin of ageRates.
	rateYears map[int]struct{}

	residents    *ResidentAgeBinTable
	housing      *HousingSupplySeries
	housingRates map[int]float64
}

// NewPreschoolerEstimator wires the estimator from prepared inputs.
// The ageRates come from FertilityTable.AgeSpecificRates over the full
// maternal bins, housingRates from FertilityTable.AveragedBirthRate; both
// must cover the birth years of the forecast run (extrapolate first).
func NewPreschoolerEstimator(
	minAgeMonths, maxAgeMonths int,
	ageRates map[string]map[int]float64,
	residents *ResidentAgeBinTable,
	housing *HousingSupplySeries,
	housingRates map[int]float64,
) *PreschoolerEstimator {
	res := &PreschoolerEstimator{
		minAgeMonths: minAgeMonths,
		maxAgeMonths: maxAgeMonths,
		ageRates:     ageRates,
		rateYears:    make(map[int]struct{}),
		residents:    residents,
		housing:      housing,
		housingRates: housingRates,
	}
	for _, col := range ageRates {
		for year := range col {
			res.rateYears[year] = struct{}{}
		}
	}
	return res
}

// EstimateYear returns the expected preschooler count per subzone for one
// forecast year. Contributions from both population halves are kept as
// floats and summed over the union of subzones; rounding happens exactly
// once, at the end. Negative inputs are not clamped; a negative result
// signals broken upstream data and propagates as such.
func (e *PreschoolerEstimator) EstimateYear(forecastYear int) map[string]int {
	existing := e.existingResidentBirths(forecastYear)
	housing := e.newHousingBirths(forecastYear)

	total := make(map[string]float64, len(existing)+len(housing))
	for subzone, births := range existing {
		total[subzone] += births
	}
	for subzone, births := range housing {
		total[subzone] += births
	}

	res := make(map[string]int, len(total))
	for subzone, births := range total {
		res[subzone] = int(math.Round(births))
	}
	return res
}

// existingResidentBirths estimates children born to current residents.
// For every birth year of the window it multiplies women counts by the
// age-specific rate of that year, across all seven maternal bins. The
// latest birth year counts only half: children born in its second half
// are still below the minimum preschool age during the forecast year.
// The discount is applied once per subzone, after summing the bins.
func (e *PreschoolerEstimator) existingResidentBirths(
	forecastYear int,
) map[string]float64 {
	window := SingleYearWindow(forecastYear, e.minAgeMonths, e.maxAgeMonths)

	res := make(map[string]float64, len(e.residents.Subzones()))
	for _, subzone := range e.residents.Subzones() {
		res[subzone] = 0
	}
	if len(window) == 0 {
		return res
	}
	maxBirthYear := window[len(window)-1]

	for _, birthYear := range window {
		if _, ok := e.rateYears[birthYear]; !ok {
			continue
		}
		for _, subzone := range e.residents.Subzones() {
			var births float64
			for _, bin := range MotherAgeBins {
				women := e.residents.Count(subzone, bin)
				rate, ok := e.ageRates[bin][birthYear]
				if women > 0 && ok {
					births += women * rate
				}
			}
			if birthYear == maxBirthYear {
				births *= 0.5
			}
			res[subzone] += births
		}
	}
	return res
}

// newHousingBirths estimates children born to households of newly
// completed housing. Cumulative units completed by each birth year are
// multiplied by the averaged birth rate of that year. Birth years without
// observed completions contribute nothing. The latest birth year is
// discounted by (12 - minAgeMonths%12)/12, and only when the minimum age
// does not fall on a year boundary: of the children born that year, only
// those past the minimum age by the forecast year are counted. The two
// discount formulas of the estimator halves differ deliberately and must
// not be unified.
func (e *PreschoolerEstimator) newHousingBirths(
	forecastYear int,
) map[string]float64 {
	window := SingleYearWindow(forecastYear, e.minAgeMonths, e.maxAgeMonths)

	res := make(map[string]float64, len(e.housing.Subzones()))
	for _, subzone := range e.housing.Subzones() {
		res[subzone] = 0
	}
	if len(window) == 0 {
		return res
	}
	maxBirthYear := window[len(window)-1]

	for _, birthYear := range window {
		units, ok := e.housing.UnitsFor(birthYear)
		if !ok {
			continue
		}
		rate, ok := e.housingRates[birthYear]
		if !ok {
			continue
		}

		factor := 1.0
		if birthYear == maxBirthYear && e.minAgeMonths%12 != 0 {
			factor = float64(12-e.minAgeMonths%12) / 12
		}
		for subzone, unitCount := range units {
			res[subzone] += unitCount * rate * factor
		}
	}
	return res
}
