package forecast_test

import (
	"testing"

	"github.com/chuawjk/ecda/pkg/forecast"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHousingSupplySeries(t *testing.T) {
	completions := []forecast.HousingCompletion{
		{Subzone: "Punggol Field", Year: 2024, Units: 400},
		{Subzone: "Punggol Field", Year: 2026, Units: 600},
		{Subzone: "Tampines West", Year: 2026, Units: 300},
	}

	t.Run("cumulative per subzone", func(t *testing.T) {
		series := forecast.NewHousingSupplySeries(completions, 2030)

		units, ok := series.Units("Punggol Field", 2024)
		require.True(t, ok)
		assert.InDelta(t, 400.0, units, 1e-9)

		units, ok = series.Units("Punggol Field", 2026)
		require.True(t, ok)
		assert.InDelta(t, 1000.0, units, 1e-9,
			"2026 must include the 2024 completion")

		// subzones without a completion that year still carry their
		// running total
		units, ok = series.Units("Tampines West", 2024)
		require.True(t, ok)
		assert.InDelta(t, 0.0, units, 1e-9)
	})

	t.Run("only observed years exist", func(t *testing.T) {
		series := forecast.NewHousingSupplySeries(completions, 2030)

		assert.Equal(t, []int{2024, 2026}, series.Years())
		_, ok := series.UnitsFor(2025)
		assert.False(t, ok,
			"a year with no completions anywhere is not in the series")
	})

	t.Run("completions beyond the horizon are dropped", func(t *testing.T) {
		series := forecast.NewHousingSupplySeries(completions, 2025)

		assert.Equal(t, []int{2024}, series.Years())
		assert.Equal(t, []string{"Punggol Field"}, series.Subzones())
	})

	t.Run("trims names before aggregation", func(t *testing.T) {
		series := forecast.NewHousingSupplySeries([]forecast.HousingCompletion{
			{Subzone: "Bedok", Year: 2024, Units: 100},
			{Subzone: "Bedok ", Year: 2024, Units: 50},
		}, 2030)

		assert.Equal(t, []string{"Bedok"}, series.Subzones(),
			"padded duplicate must collapse into one subzone")
		units, ok := series.Units("Bedok", 2024)
		require.True(t, ok)
		assert.InDelta(t, 150.0, units, 1e-9)
	})

	t.Run("duplicate subzone-year pairs are summed", func(t *testing.T) {
		series := forecast.NewHousingSupplySeries([]forecast.HousingCompletion{
			{Subzone: "Yishun East", Year: 2025, Units: 200},
			{Subzone: "Yishun East", Year: 2025, Units: 300},
		}, 2030)

		units, ok := series.Units("Yishun East", 2025)
		require.True(t, ok)
		assert.InDelta(t, 500.0, units, 1e-9)
	})

	t.Run("monotone non-decreasing per subzone", func(t *testing.T) {
		series := forecast.NewHousingSupplySeries(completions, 2030)

		for _, subzone := range series.Subzones() {
			prev := 0.0
			for _, year := range series.Years() {
				units, ok := series.Units(subzone, year)
				require.True(t, ok)
				assert.GreaterOrEqual(t, units, prev,
					"cumulative units must not decrease for %s", subzone)
				prev = units
			}
		}
	})
}
