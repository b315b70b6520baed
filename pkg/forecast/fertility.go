package forecast

import (
	"slices"
	"strings"
)

// FertilityEntry is one cell of the national fertility dataset: the number
// of live births per 1000 women of an age group during one calendar year.
type FertilityEntry struct {
	AgeBin string
	Year   int
	Rate   float64
}

// FertilityTable holds fertility rates by age bin and year. Rates are
// stored as published, per 1000 women per year. The table is immutable
// after construction; Extrapolate returns a new table instead of mutating
// the receiver.
type FertilityTable struct {
	// rates maps age bin -> year -> rate per 1000 women.
	rates map[string]map[int]float64
	// years is the sorted union of years present in any age bin.
	years []int
}

// NewFertilityTable builds a table from raw entries. Age bin labels are
// whitespace-trimmed before aggregation, and entries that collapse onto
// the same (bin, year) cell are summed, never overwritten.
func NewFertilityTable(entries []FertilityEntry) *FertilityTable {
	res := &FertilityTable{rates: make(map[string]map[int]float64)}
	yearSet := make(map[int]struct{})

	for _, e := range entries {
		bin := strings.TrimSpace(e.AgeBin)
		if bin == "" {
			continue
		}
		if _, ok := res.rates[bin]; !ok {
			res.rates[bin] = make(map[int]float64)
		}
		res.rates[bin][e.Year] += e.Rate
		yearSet[e.Year] = struct{}{}
	}

	res.years = make([]int, 0, len(yearSet))
	for year := range yearSet {
		res.years = append(res.years, year)
	}
	slices.Sort(res.years)
	return res
}

// Rate returns the stored per-1000 rate for an age bin and year.
func (t *FertilityTable) Rate(ageBin string, year int) (float64, bool) {
	col, ok := t.rates[ageBin]
	if !ok {
		return 0, false
	}
	rate, ok := col[year]
	return rate, ok
}

// HasYear reports whether any age bin has a rate for the year.
func (t *FertilityTable) HasYear(year int) bool {
	_, ok := slices.BinarySearch(t.years, year)
	return ok
}

// Years returns the sorted years present in the table.
func (t *FertilityTable) Years() []int {
	return slices.Clone(t.years)
}

// LatestYear returns the most recent year in the table. The second value
// is false for an empty table.
func (t *FertilityTable) LatestYear() (int, bool) {
	if len(t.years) == 0 {
		return 0, false
	}
	return t.years[len(t.years)-1], true
}

// AgeBins returns the sorted age bin labels present in the table.
func (t *FertilityTable) AgeBins() []string {
	res := make([]string, 0, len(t.rates))
	for bin := range t.rates {
		res = append(res, bin)
	}
	slices.Sort(res)
	return res
}

// Extrapolate returns a new table where every year after the latest
// observed one, up to the maximum of targetYears, carries a copy of the
// latest observed column. It is a flat carry-forward, not a trend model.
// Extrapolating an already extrapolated table again with the same targets
// changes nothing.
func (t *FertilityTable) Extrapolate(targetYears []int) *FertilityTable {
	res := t.clone()

	latest, ok := t.LatestYear()
	if !ok || len(targetYears) == 0 {
		return res
	}
	maxTarget := slices.Max(targetYears)
	if maxTarget <= latest {
		return res
	}

	for year := latest + 1; year <= maxTarget; year++ {
		if res.HasYear(year) {
			continue
		}
		for bin, col := range res.rates {
			if rate, ok := t.rates[bin][latest]; ok {
				col[year] = rate
			}
		}
		res.years = append(res.years, year)
	}
	slices.Sort(res.years)
	return res
}

// AgeSpecificRates converts stored per-1000 rates into per-woman rates for
// the requested age bins and years. Cells absent from the table are absent
// from the result; callers treat them as zero contribution.
func (t *FertilityTable) AgeSpecificRates(
	ageBins []string, years []int,
) map[string]map[int]float64 {
	res := make(map[string]map[int]float64)
	for _, bin := range ageBins {
		for _, year := range years {
			rate, ok := t.Rate(bin, year)
			if !ok {
				continue
			}
			if _, ok := res[bin]; !ok {
				res[bin] = make(map[int]float64)
			}
			res[bin][year] = rate / 1000
		}
	}
	return res
}

// AveragedBirthRate returns, for each requested year present in the table,
// the mean per-woman rate across the four core childbearing bins
// (CoreMotherAgeBins). This deliberately narrower subset models mothers of
// new-housing households; existing-resident estimates use the full
// seven-bin range instead. A bin missing a value contributes zero to the
// mean; years absent from the table are omitted from the result.
func (t *FertilityTable) AveragedBirthRate(years []int) map[int]float64 {
	res := make(map[int]float64)
	for _, year := range years {
		if !t.HasYear(year) {
			continue
		}
		var sum float64
		for _, bin := range CoreMotherAgeBins {
			rate, ok := t.Rate(bin, year)
			if !ok {
				continue
			}
			sum += rate
		}
		res[year] = sum / float64(len(CoreMotherAgeBins)) / 1000
	}
	return res
}

func (t *FertilityTable) clone() *FertilityTable {
	res := &FertilityTable{
		rates: make(map[string]map[int]float64, len(t.rates)),
		years: slices.Clone(t.years),
	}
	for bin, col := range t.rates {
		newCol := make(map[int]float64, len(col))
		for year, rate := range col {
			newCol[year] = rate
		}
		res.rates[bin] = newCol
	}
	return res
}
