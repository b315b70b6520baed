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
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"

	"github.com/chuawjk/ecda/internal/iostore"
	"github.com/chuawjk/ecda/pkg/forecast"
	"github.com/chuawjk/ecda/pkg/store"
)

// getRunsCmd returns the runs command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getRunsCmd() *cobra.Command {
	runsCmd := &cobra.Command{
		Use:   "runs [id]",
		Short: "List and inspect saved forecast runs",
		Long: `Show forecast runs saved by 'ecda forecast'.

Without arguments the command lists all saved runs, newest first.
With a run ID it prints the run's parameters and its yearly totals:
expected preschoolers, preschools needed, and the shortage summed
over undersupplied subzones.

Examples:
  # List all saved runs
  ecda runs

  # Inspect one run
  ecda runs 2f1c62a8-95b7-4e17-a8b2-03c5d7a4f9e1`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runRuns(args)
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	return runsCmd
}

func runRuns(args []string) error {
	ctx := context.Background()

	st := iostore.New(cfg)
	if err := st.Init(ctx); err != nil {
		return err
	}
	defer st.Close()

	if len(args) == 0 {
		return listSavedRuns(ctx, st)
	}
	return showSavedRun(ctx, st, args[0])
}

func listSavedRuns(ctx context.Context, st store.Store) error {
	sums, err := st.List(ctx)
	if err != nil {
		return err
	}

	if len(sums) == 0 {
		gn.Info("No saved runs yet, run '<em>ecda forecast</em>' first")
		return nil
	}

	for _, v := range sums {
		fmt.Printf("%s  %s  years %d-%d  capacity %d  subzones %d\n",
			v.ID,
			v.CreatedAt.Local().Format("2006-01-02 15:04"),
			v.Params.CurrentYear+1,
			v.Params.CurrentYear+v.Params.Years,
			v.Params.Capacity,
			v.Subzones,
		)
	}

	return nil
}

func showSavedRun(ctx context.Context, st store.Store, id string) error {
	rec, err := st.Get(ctx, id)
	if err != nil {
		return err
	}

	gn.Info("Run <em>%s</em>, saved %s",
		rec.ID, rec.CreatedAt.Local().Format("2006-01-02 15:04"))
	fmt.Printf("years:     %d-%d\n",
		rec.Params.CurrentYear+1, rec.Params.CurrentYear+rec.Params.Years)
	fmt.Printf("age band:  %d-%d months\n",
		rec.Params.MinAgeMonths, rec.Params.MaxAgeMonths)
	fmt.Printf("capacity:  %d children per preschool\n", rec.Params.Capacity)
	fmt.Printf("subzones:  %d\n", len(rec.Supply))

	fmt.Println()
	fmt.Println("year  preschoolers  needed  shortage")
	for _, year := range rec.Years {
		fmt.Printf("%d  %12s  %6s  %8s\n",
			year,
			humanize.Comma(int64(rec.Preschoolers.YearTotal(year))),
			humanize.Comma(int64(rec.Needed.YearTotal(year))),
			humanize.Comma(int64(shortageTotal(rec.Gap, year))),
		)
	}

	return nil
}

// shortageTotal sums the deficits of one year, counting only subzones
// where needed preschools exceed supply.
func shortageTotal(gap forecast.Matrix, year int) int {
	var res int
	for _, v := range gap[year] {
		if v < 0 {
			res -= v
		}
	}
	return res
}
