package forecast

import (
	"math"
	"slices"
)

// Matrix is a year-by-subzone table of integers. It backs the three run
// outputs: preschooler counts, preschools needed and the supply gap.
type Matrix map[int]map[string]int

// Set stores the values of one year.
func (m Matrix) Set(year int, values map[string]int) {
	m[year] = values
}

// Value returns the cell for a year and subzone, zero when absent.
func (m Matrix) Value(year int, subzone string) int {
	return m[year][subzone]
}

// Years returns the years of the matrix in ascending order.
func (m Matrix) Years() []int {
	res := make([]int, 0, len(m))
	for year := range m {
		res = append(res, year)
	}
	slices.Sort(res)
	return res
}

// Subzones returns the sorted union of subzone names across all years.
func (m Matrix) Subzones() []string {
	seen := make(map[string]struct{})
	for _, row := range m {
		for subzone := range row {
			seen[subzone] = struct{}{}
		}
	}
	res := make([]string, 0, len(seen))
	for subzone := range seen {
		res = append(res, subzone)
	}
	slices.Sort(res)
	return res
}

// YearTotal returns the sum of all subzone values for a year.
func (m Matrix) YearTotal(year int) int {
	var res int
	for _, v := range m[year] {
		res += v
	}
	return res
}

// Tabular flattens the matrix into a dense table: one row per year in
// ascending order, one column per subzone in sorted order, missing cells
// filled with zero.
func (m Matrix) Tabular() (years []int, subzones []string, cells [][]int) {
	years = m.Years()
	subzones = m.Subzones()
	cells = make([][]int, len(years))
	for i, year := range years {
		row := make([]int, len(subzones))
		for j, subzone := range subzones {
			row[j] = m.Value(year, subzone)
		}
		cells[i] = row
	}
	return years, subzones, cells
}

// NeededPreschools converts preschooler counts into the number of
// preschools required to serve them, round(count / capacity) per cell.
// Rounding is to the nearest integer with halves away from zero, not
// ceiling division: 149 children at capacity 100 need 1 preschool, 150
// need 2. Capacity must be positive; NewForecaster rejects zero capacity
// before any computation starts.
func NeededPreschools(counts Matrix, capacity int) Matrix {
	res := make(Matrix, len(counts))
	for year, row := range counts {
		needed := make(map[string]int, len(row))
		for subzone, count := range row {
			needed[subzone] = int(math.Round(float64(count) / float64(capacity)))
		}
		res[year] = needed
	}
	return res
}

// SupplyGap subtracts needed preschools from the existing supply,
// restricted to subzones known to both sides. Positive cells are surplus,
// negative cells shortage. Subzones forecasted but absent from the supply
// table are excluded rather than treated as zero supply.
func SupplyGap(supply map[string]int, needed Matrix) Matrix {
	common := make([]string, 0, len(supply))
	for _, subzone := range needed.Subzones() {
		if _, ok := supply[subzone]; ok {
			common = append(common, subzone)
		}
	}

	res := make(Matrix, len(needed))
	for _, year := range needed.Years() {
		row := make(map[string]int, len(common))
		for _, subzone := range common {
			row[subzone] = supply[subzone] - needed.Value(year, subzone)
		}
		res[year] = row
	}
	return res
}
