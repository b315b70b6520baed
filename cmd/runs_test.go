package cmd

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chuawjk/ecda/internal/iostore"
	"github.com/chuawjk/ecda/internal/iotesting"
	"github.com/chuawjk/ecda/pkg/forecast"
	"github.com/chuawjk/ecda/pkg/store"
)

// TestGetRunsCmd_Exists verifies getRunsCmd returns
// a valid command.
func TestGetRunsCmd_Exists(t *testing.T) {
	cmd := getRunsCmd()
	require.NotNil(t, cmd, "Runs command should exist")
	assert.Equal(t, "runs", cmd.Name(),
		"Command name should be runs")
}

// TestGetRunsCmd_ShortDescription verifies short
// description.
func TestGetRunsCmd_ShortDescription(t *testing.T) {
	cmd := getRunsCmd()

	assert.NotEmpty(t, cmd.Short,
		"Short description should not be empty")
	assert.Contains(t, cmd.Short, "saved",
		"Short description should mention saved runs")
}

// TestGetRunsCmd_LongDescription verifies long
// description.
func TestGetRunsCmd_LongDescription(t *testing.T) {
	cmd := getRunsCmd()

	assert.NotEmpty(t, cmd.Long,
		"Long description should not be empty")
	assert.Contains(t, cmd.Long, "newest first",
		"Long description should mention ordering")
	assert.Contains(t, cmd.Long, "shortage",
		"Long description should mention the shortage total")
}

// TestGetRunsCmd_HasRunE verifies run function is set.
func TestGetRunsCmd_HasRunE(t *testing.T) {
	cmd := getRunsCmd()

	assert.NotNil(t, cmd.RunE,
		"RunE should be set")
}

// TestGetRunsCmd_ArgsLimit verifies at most one
// run ID is accepted.
func TestGetRunsCmd_ArgsLimit(t *testing.T) {
	cmd := getRunsCmd()
	require.NotNil(t, cmd.Args)

	assert.NoError(t, cmd.Args(cmd, []string{}),
		"No arguments should be accepted")
	assert.NoError(t, cmd.Args(cmd, []string{"run-1"}),
		"One run ID should be accepted")
	assert.Error(t, cmd.Args(cmd, []string{"run-1", "run-2"}),
		"Two run IDs should be rejected")
}

// TestShortageTotal verifies only deficits count towards
// the shortage.
func TestShortageTotal(t *testing.T) {
	gap := forecast.Matrix{
		2026: {"Bedok North": -3, "Punggol Field": 2, "Seletar": -1},
	}

	assert.Equal(t, 4, shortageTotal(gap, 2026),
		"Shortage should sum deficits only")
	assert.Equal(t, 0, shortageTotal(gap, 2027),
		"Missing year should have no shortage")
}

// TestGetRunsCmd_IndependentInstances verifies each
// call returns independent instance.
func TestGetRunsCmd_IndependentInstances(t *testing.T) {
	cmd1 := getRunsCmd()
	cmd2 := getRunsCmd()

	assert.NotSame(t, cmd1, cmd2,
		"Each call should return new instance")

	cmd1.Short = "test1"
	cmd2.Short = "test2"

	assert.Equal(t, "test1", cmd1.Short)
	assert.Equal(t, "test2", cmd2.Short)
}

// Integration Tests

// TestRuns_EndToEnd lists and inspects a saved run through the
// command's run function.
func TestRuns_EndToEnd(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test")
	}

	srv := iotesting.OneMapStub(t)
	cfg = iotesting.Config(t, srv.URL)

	// Listing an empty store succeeds
	require.NoError(t, runRuns(nil))

	ctx := context.Background()
	st := iostore.New(cfg)
	require.NoError(t, st.Init(ctx))

	rec := &store.RunRecord{
		Params: forecast.Params{
			Years:        1,
			Capacity:     100,
			MinAgeMonths: 18,
			MaxAgeMonths: 72,
			CurrentYear:  2025,
		},
		Years:        []int{2026},
		Supply:       map[string]int{"Bedok North": 2},
		Preschoolers: forecast.Matrix{2026: {"Bedok North": 320}},
		Needed:       forecast.Matrix{2026: {"Bedok North": 3}},
		Gap:          forecast.Matrix{2026: {"Bedok North": -1}},
	}
	id, err := st.Save(ctx, rec)
	require.NoError(t, err)
	require.NoError(t, st.Close())

	require.NoError(t, runRuns(nil))
	require.NoError(t, runRuns([]string{id}))

	assert.Error(t, runRuns([]string{"no-such-run"}),
		"unknown run ID should fail")
}
