package forecast

import (
	"slices"
	"strings"
)

// HousingCompletion is one new-housing project: the number of units
// estimated to be completed in a subzone during a year.
type HousingCompletion struct {
	Subzone string
	Year    int
	Units   float64
}

// HousingSupplySeries holds cumulative completed-unit counts per subzone
// per year. Only years with at least one completion anywhere appear in the
// series; a lookup for any other year reports absence and contributes
// nothing downstream. Within the observed years each subzone's cumulative
// count is monotonically non-decreasing.
type HousingSupplySeries struct {
	// cumulative maps observed year -> subzone -> units completed so far.
	cumulative map[int]map[string]float64
	years      []int
	subzones   []string
}

// NewHousingSupplySeries aggregates raw completions into a cumulative
// series. Subzone names are whitespace-trimmed before aggregation, and
// completions of the same (subzone, year) are summed. Completions after
// horizonYear are excluded.
func NewHousingSupplySeries(
	completions []HousingCompletion, horizonYear int,
) *HousingSupplySeries {
	// units per subzone per year after trim, dedup and horizon filter
	units := make(map[string]map[int]float64)
	yearSet := make(map[int]struct{})

	for _, c := range completions {
		if c.Year > horizonYear {
			continue
		}
		subzone := strings.TrimSpace(c.Subzone)
		if subzone == "" {
			continue
		}
		if _, ok := units[subzone]; !ok {
			units[subzone] = make(map[int]float64)
		}
		units[subzone][c.Year] += c.Units
		yearSet[c.Year] = struct{}{}
	}

	res := &HousingSupplySeries{
		cumulative: make(map[int]map[string]float64, len(yearSet)),
		years:      make([]int, 0, len(yearSet)),
		subzones:   make([]string, 0, len(units)),
	}
	for year := range yearSet {
		res.years = append(res.years, year)
		res.cumulative[year] = make(map[string]float64, len(units))
	}
	slices.Sort(res.years)
	for subzone := range units {
		res.subzones = append(res.subzones, subzone)
	}
	slices.Sort(res.subzones)

	// running sum per subzone across the observed years
	for _, subzone := range res.subzones {
		var sum float64
		for _, year := range res.years {
			sum += units[subzone][year]
			res.cumulative[year][subzone] = sum
		}
	}
	return res
}

// UnitsFor returns the cumulative unit counts per subzone for a year. The
// second value is false when no completion anywhere was observed for that
// year.
func (s *HousingSupplySeries) UnitsFor(year int) (map[string]float64, bool) {
	row, ok := s.cumulative[year]
	if !ok {
		return nil, false
	}
	res := make(map[string]float64, len(row))
	for subzone, units := range row {
		res[subzone] = units
	}
	return res, true
}

// Units returns the cumulative unit count for one subzone and year.
func (s *HousingSupplySeries) Units(subzone string, year int) (float64, bool) {
	row, ok := s.cumulative[year]
	if !ok {
		return 0, false
	}
	units, ok := row[subzone]
	return units, ok
}

// Years returns the sorted years with observed completions.
func (s *HousingSupplySeries) Years() []int {
	return slices.Clone(s.years)
}

// Subzones returns the sorted subzone names present in the series.
func (s *HousingSupplySeries) Subzones() []string {
	return slices.Clone(s.subzones)
}
