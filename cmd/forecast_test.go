package cmd

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chuawjk/ecda/internal/ioreport"
	"github.com/chuawjk/ecda/internal/iostore"
	"github.com/chuawjk/ecda/internal/iotesting"
	"github.com/chuawjk/ecda/pkg/config"
)

// TestGetForecastCmd_Exists verifies getForecastCmd returns
// a valid command.
func TestGetForecastCmd_Exists(t *testing.T) {
	cmd := getForecastCmd()
	require.NotNil(t, cmd, "Forecast command should exist")
	assert.Equal(t, "forecast", cmd.Use,
		"Command name should be forecast")
}

// TestGetForecastCmd_ShortDescription verifies short
// description.
func TestGetForecastCmd_ShortDescription(t *testing.T) {
	cmd := getForecastCmd()

	assert.NotEmpty(t, cmd.Short,
		"Short description should not be empty")
	assert.Contains(t, cmd.Short, "demand",
		"Short description should mention demand")
}

// TestGetForecastCmd_LongDescription verifies long
// description.
func TestGetForecastCmd_LongDescription(t *testing.T) {
	cmd := getForecastCmd()

	assert.NotEmpty(t, cmd.Long,
		"Long description should not be empty")
	assert.Contains(t, cmd.Long, "subzone",
		"Long description should mention subzones")
	assert.Contains(t, cmd.Long, "CSV",
		"Long description should mention CSV reports")
	assert.Contains(t, cmd.Long, "config.yaml",
		"Long description should mention config")
}

// TestGetForecastCmd_HasRunE verifies run function is set.
func TestGetForecastCmd_HasRunE(t *testing.T) {
	cmd := getForecastCmd()

	assert.NotNil(t, cmd.RunE,
		"RunE should be set")
}

// TestGetForecastCmd_RunAlias verifies the run alias.
func TestGetForecastCmd_RunAlias(t *testing.T) {
	cmd := getForecastCmd()

	assert.Contains(t, cmd.Aliases, "run",
		"forecast should be aliased as run")
}

// TestGetForecastCmd_YearsFlag verifies --years flag exists.
func TestGetForecastCmd_YearsFlag(t *testing.T) {
	cmd := getForecastCmd()

	flag := cmd.Flags().Lookup("years")
	require.NotNil(t, flag,
		"--years flag should exist")

	assert.Equal(t, "y", flag.Shorthand,
		"Short form should be -y")
	assert.Contains(t, flag.Usage, "years",
		"Usage should mention years")
}

// TestGetForecastCmd_CapacityFlag verifies --capacity
// flag exists.
func TestGetForecastCmd_CapacityFlag(t *testing.T) {
	cmd := getForecastCmd()

	flag := cmd.Flags().Lookup("capacity")
	require.NotNil(t, flag,
		"--capacity flag should exist")

	assert.Equal(t, "c", flag.Shorthand,
		"Short form should be -c")
	assert.Contains(t, flag.Usage, "children",
		"Usage should mention children")
}

// TestGetForecastCmd_CurrentYearFlag verifies
// --current-year flag exists.
func TestGetForecastCmd_CurrentYearFlag(t *testing.T) {
	cmd := getForecastCmd()

	flag := cmd.Flags().Lookup("current-year")
	require.NotNil(t, flag,
		"--current-year flag should exist")

	assert.Contains(t, flag.Usage, "base year",
		"Usage should mention the base year")
}

// TestGetForecastCmd_OutputFlag verifies --output
// flag exists.
func TestGetForecastCmd_OutputFlag(t *testing.T) {
	cmd := getForecastCmd()

	flag := cmd.Flags().Lookup("output")
	require.NotNil(t, flag,
		"--output flag should exist")

	assert.Equal(t, "o", flag.Shorthand,
		"Short form should be -o")
	assert.Equal(t, "results", flag.DefValue,
		"Default output directory should be results")
}

// TestGetForecastCmd_NoSaveFlag verifies --no-save
// flag exists.
func TestGetForecastCmd_NoSaveFlag(t *testing.T) {
	cmd := getForecastCmd()

	flag := cmd.Flags().Lookup("no-save")
	require.NotNil(t, flag,
		"--no-save flag should exist")

	assert.Contains(t, flag.Usage, "store",
		"Usage should mention the store")
}

// TestGetForecastCmd_IndependentInstances verifies each
// call returns independent instance.
func TestGetForecastCmd_IndependentInstances(t *testing.T) {
	cmd1 := getForecastCmd()
	cmd2 := getForecastCmd()

	// Should be different instances
	assert.NotSame(t, cmd1, cmd2,
		"Each call should return new instance")

	// Modifying one shouldn't affect the other
	cmd1.Short = "test1"
	cmd2.Short = "test2"

	assert.Equal(t, "test1", cmd1.Short)
	assert.Equal(t, "test2", cmd2.Short)
}

// Integration Tests

// TestForecast_EndToEnd runs the whole pipeline over fixture
// datasets: load, geocode, forecast, report and store.
func TestForecast_EndToEnd(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	srv := iotesting.OneMapStub(t)
	cfg = iotesting.Config(t, srv.URL)
	cfg.Update([]config.Option{
		config.OptForecastYears(2),
		config.OptForecastCurrentYear(2025),
	})

	output := filepath.Join(t.TempDir(), "results")
	err := runForecast(getForecastCmd(), 0, 0, 0, output, false)
	require.NoError(t, err)

	// All report files are written
	for _, name := range []string{
		ioreport.PreschoolersFile,
		ioreport.NeededFile,
		ioreport.GapFile,
		ioreport.SupplyFile,
		ioreport.ManifestFile,
	} {
		_, err = os.Stat(filepath.Join(output, name))
		assert.NoError(t, err, "report %s should exist", name)
	}

	// The run is saved with both fixture subzones
	ctx := context.Background()
	st := iostore.New(cfg)
	require.NoError(t, st.Init(ctx))
	defer st.Close()

	sums, err := st.List(ctx)
	require.NoError(t, err)
	require.Len(t, sums, 1)
	assert.Equal(t, 2025, sums[0].Params.CurrentYear)
	assert.Equal(t, 2, sums[0].Subzones)

	rec, err := st.Get(ctx, sums[0].ID)
	require.NoError(t, err)
	assert.Equal(t, []int{2026, 2027}, rec.Years)
	assert.Equal(t,
		map[string]int{"Bedok North": 1, "Punggol Field": 1},
		rec.Supply)

	for _, year := range rec.Years {
		assert.Positive(t, rec.Preschoolers.YearTotal(year),
			"year %d should expect preschoolers", year)
	}
}

// TestForecast_EndToEnd_NoSave verifies --no-save leaves the store
// untouched.
func TestForecast_EndToEnd_NoSave(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	srv := iotesting.OneMapStub(t)
	cfg = iotesting.Config(t, srv.URL)
	cfg.Update([]config.Option{
		config.OptForecastYears(1),
		config.OptForecastCurrentYear(2025),
	})

	output := filepath.Join(t.TempDir(), "results")
	err := runForecast(getForecastCmd(), 0, 0, 0, output, true)
	require.NoError(t, err)

	_, err = os.Stat(cfg.Store.File)
	assert.True(t, os.IsNotExist(err),
		"store file should not be created with --no-save")
}
