package forecast

import "math"

// yearsOfAge converts an age in months to whole years using math.Round,
// so the half-year boundary rounds away from zero (18 months -> 2 years).
func yearsOfAge(months int) int {
	return int(math.Round(float64(months) / 12))
}

// SingleYearWindow returns every birth year whose children are within the
// preschool age bounds during forecastYear. The result is a contiguous
// ascending range
//
//	[forecastYear - round(maxAgeMonths/12), forecastYear - round(minAgeMonths/12)]
//
// inclusive on both ends. With the default bounds of 18 and 72 months the
// window for 2026 is [2020..2024].
func SingleYearWindow(forecastYear, minAgeMonths, maxAgeMonths int) []int {
	start := forecastYear - yearsOfAge(maxAgeMonths)
	end := forecastYear - yearsOfAge(minAgeMonths)
	if end < start {
		return nil
	}

	res := make([]int, 0, end-start+1)
	for year := start; year <= end; year++ {
		res = append(res, year)
	}
	return res
}

// MultiYearWindow returns the birth years contributing to a sequence of
// forecast years. It takes the full window of the first forecast year and
// then appends only the maximum birth year of each later forecast year,
// because each window slides forward by exactly one year.
//
// Known limitation: the slide-forward shortcut is only equivalent to the
// union of the individual windows when the forecast years are consecutive
// integers. Non-consecutive input silently produces an incomplete window;
// it is not validated here.
func MultiYearWindow(forecastYears []int, minAgeMonths, maxAgeMonths int) []int {
	var res []int
	for i, fy := range forecastYears {
		window := SingleYearWindow(fy, minAgeMonths, maxAgeMonths)
		if i == 0 {
			res = append(res, window...)
			continue
		}
		res = append(res, window[len(window)-1])
	}
	return res
}
