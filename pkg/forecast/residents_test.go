package forecast_test

import (
	"testing"

	"github.com/chuawjk/ecda/pkg/forecast"
	"github.com/stretchr/testify/assert"
)

func TestNewResidentAgeBinTable(t *testing.T) {
	t.Run("aggregates duplicates after trimming", func(t *testing.T) {
		table := forecast.NewResidentAgeBinTable([]forecast.ResidentEntry{
			{Subzone: "Bedok", AgeBin: "25 - 29 Years", Count: 1200},
			{Subzone: "Bedok ", AgeBin: "25 - 29 Years", Count: 300},
			{Subzone: "Bedok", AgeBin: " 30 - 34 Years", Count: 900},
		})

		assert.Equal(t, []string{"Bedok"}, table.Subzones(),
			"padded duplicate must collapse into one subzone")
		assert.InDelta(t, 1500.0,
			table.Count("Bedok", "25 - 29 Years"), 1e-9,
			"duplicate counts must be summed")
		assert.InDelta(t, 900.0,
			table.Count("Bedok", "30 - 34 Years"), 1e-9)
	})

	t.Run("missing lookups are zero", func(t *testing.T) {
		table := forecast.NewResidentAgeBinTable([]forecast.ResidentEntry{
			{Subzone: "Bedok", AgeBin: "25 - 29 Years", Count: 1200},
		})

		assert.Zero(t, table.Count("Bedok", "45 - 49 Years"))
		assert.Zero(t, table.Count("Tampines", "25 - 29 Years"))
	})

	t.Run("subzones are sorted", func(t *testing.T) {
		table := forecast.NewResidentAgeBinTable([]forecast.ResidentEntry{
			{Subzone: "Yishun", AgeBin: "25 - 29 Years", Count: 1},
			{Subzone: "Ang Mo Kio", AgeBin: "25 - 29 Years", Count: 1},
			{Subzone: "Bedok", AgeBin: "25 - 29 Years", Count: 1},
		})

		assert.Equal(t, []string{"Ang Mo Kio", "Bedok", "Yishun"},
			table.Subzones())
	})
}

func TestMotherAgeBins(t *testing.T) {
	assert.Len(t, forecast.MotherAgeBins, 7)
	assert.Len(t, forecast.CoreMotherAgeBins, 4)
	for _, bin := range forecast.CoreMotherAgeBins {
		assert.Contains(t, forecast.MotherAgeBins, bin,
			"core bins must be a subset of the full range")
	}
}
