/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"context"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnfmt"
	"github.com/spf13/cobra"

	"github.com/chuawjk/ecda/internal/iofertility"
	"github.com/chuawjk/ecda/internal/iohousing"
	"github.com/chuawjk/ecda/internal/iopreschools"
	"github.com/chuawjk/ecda/internal/ioreport"
	"github.com/chuawjk/ecda/internal/ioresidents"
	"github.com/chuawjk/ecda/internal/iostore"
	"github.com/chuawjk/ecda/pkg/config"
	"github.com/chuawjk/ecda/pkg/forecast"
	"github.com/chuawjk/ecda/pkg/store"
)

// getForecastCmd returns the forecast command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getForecastCmd() *cobra.Command {
	var (
		years       int
		capacity    int
		currentYear int
		output      string
		noSave      bool
	)

	forecastCmd := &cobra.Command{
		Use:   "forecast",
		Short: "Forecast preschool demand and write the report",
		Long: `Project preschooler counts per subzone and the preschool
supply gap.

This command:
  1. Loads fertility rates, resident counts, BTO completions and
     the preschool centre listing
  2. Geocodes the centre listing when no processed copy exists yet
  3. Estimates preschoolers per subzone for each forecast year
  4. Converts the counts to needed preschools and compares them
     with the existing supply
  5. Writes CSV reports and a manifest to the output directory
  6. Saves the run for 'ecda runs' and 'ecda serve'

Forecast years run from current-year+1 through current-year+years.
Settings come from config.yaml and can be overridden with flags.

Examples:
  # Forecast with settings from config.yaml
  ecda forecast

  # Ten years ahead, 90 children per preschool
  ecda forecast -y 10 -c 90

  # Write reports elsewhere and skip the run store
  ecda forecast -o /tmp/reports --no-save`,
		Aliases: []string{"run"},
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runForecast(cmd, years, capacity, currentYear, output, noSave)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	forecastCmd.Flags().IntVarP(
		&years, "years", "y", 0,
		"number of years to forecast",
	)
	forecastCmd.Flags().IntVarP(
		&capacity, "capacity", "c", 0,
		"children served by one preschool",
	)
	forecastCmd.Flags().IntVar(
		&currentYear, "current-year", 0,
		"base year of the run (default: this year)",
	)
	forecastCmd.Flags().StringVarP(
		&output, "output", "o", "results",
		"directory for report files",
	)
	forecastCmd.Flags().BoolVar(
		&noSave, "no-save", false,
		"do not save the run to the store",
	)

	return forecastCmd
}

func runForecast(
	cmd *cobra.Command,
	years, capacity, currentYear int,
	output string,
	noSave bool,
) error {
	ctx := context.Background()

	// Build options from explicitly set flags
	var fcOpts []config.Option
	if cmd.Flags().Changed("years") {
		fcOpts = append(fcOpts, config.OptForecastYears(years))
	}
	if cmd.Flags().Changed("capacity") {
		fcOpts = append(fcOpts, config.OptForecastCapacity(capacity))
	}
	if cmd.Flags().Changed("current-year") {
		fcOpts = append(fcOpts, config.OptForecastCurrentYear(currentYear))
	}
	if len(fcOpts) > 0 {
		cfg.Update(fcOpts)
	}

	params := forecast.Params{
		Years:        cfg.Forecast.Years,
		Capacity:     cfg.Forecast.Capacity,
		MinAgeMonths: cfg.Forecast.MinAgeMonths,
		MaxAgeMonths: cfg.Forecast.MaxAgeMonths,
		CurrentYear:  cfg.Forecast.CurrentYear,
	}
	if params.CurrentYear == 0 {
		params.CurrentYear = time.Now().Year()
	}

	start := time.Now()

	gn.Info("Loading datasets...")
	inputs, err := loadInputs(ctx)
	if err != nil {
		return err
	}

	fc, err := forecast.NewForecaster(
		params,
		inputs.fertility,
		inputs.residents,
		inputs.completions,
		inputs.supply,
	)
	if err != nil {
		return err
	}

	gn.Info("Forecasting years <em>%d-%d</em>",
		params.CurrentYear+1, params.CurrentYear+params.Years)
	res := fc.Run()

	for _, year := range res.Years {
		gn.Info("Year %d: <em>%s</em> expected preschoolers",
			year, humanize.Comma(int64(res.Preschoolers.YearTotal(year))))
	}

	if _, err = ioreport.Write(output, params, res); err != nil {
		return err
	}
	gn.Info("Reports are in <em>%s</em>", output)

	if !noSave {
		if err = saveRun(ctx, params, res); err != nil {
			return err
		}
	}

	gn.Info("Forecast completed in %s",
		gnfmt.TimeString(time.Since(start).Seconds()))

	return nil
}

// runInputs bundles the four prepared datasets of a run.
type runInputs struct {
	fertility   *forecast.FertilityTable
	residents   *forecast.ResidentAgeBinTable
	completions []forecast.HousingCompletion
	supply      map[string]int
}

func loadInputs(ctx context.Context) (*runInputs, error) {
	fertility, err := iofertility.New(cfg).Load(ctx)
	if err != nil {
		return nil, err
	}

	residents, err := ioresidents.New(cfg).Load(ctx)
	if err != nil {
		return nil, err
	}

	completions, err := iohousing.New(cfg).Load(ctx)
	if err != nil {
		return nil, err
	}

	supply, err := iopreschools.New(cfg).Load(ctx)
	if err != nil {
		return nil, err
	}

	res := &runInputs{
		fertility:   fertility,
		residents:   residents,
		completions: completions,
		supply:      supply,
	}
	return res, nil
}

func saveRun(
	ctx context.Context,
	params forecast.Params,
	res *forecast.Result,
) error {
	st := iostore.New(cfg)
	if err := st.Init(ctx); err != nil {
		return err
	}
	defer st.Close()

	rec := &store.RunRecord{
		Params:       params,
		Years:        res.Years,
		Supply:       res.Supply,
		Preschoolers: res.Preschoolers,
		Needed:       res.Needed,
		Gap:          res.Gap,
	}
	id, err := st.Save(ctx, rec)
	if err != nil {
		return err
	}

	gn.Info("Saved run <em>%s</em>", id)
	return nil
}
