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

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/spf13/cobra"

	"github.com/chuawjk/ecda/internal/iopreschools"
)

// getGeocodeCmd returns the geocode command.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getGeocodeCmd() *cobra.Command {
	geocodeCmd := &cobra.Command{
		Use:   "geocode",
		Short: "Geocode the preschool centre listing via OneMap",
		Long: `Resolve preschool centre postal codes to coordinates.

This command:
  1. Reads the raw centre listing (data.centres_file)
  2. Looks up each postal code against the OneMap search API
  3. Writes the geocoded listing to data.processed_centres_file

Forecasts reuse the processed listing instead of querying OneMap on
every run; rerun this command after the raw listing changes.

OneMap requires an access token, usually provided as the
ECDA_GEOCODER_TOKEN environment variable or in a local .env file.

Examples:
  ecda geocode`,
		RunE: func(cmd *cobra.Command, args []string) error {
			err := runGeocode()
			if err != nil {
				gn.PrintErrorMessage(err)
			}
			return err
		},
	}

	return geocodeCmd
}

func runGeocode() error {
	ctx := context.Background()

	report, err := iopreschools.New(cfg).Geocode(ctx)
	if err != nil {
		return err
	}

	gn.Info(
		"Geocoded <em>%s</em> centres, <em>%s</em> without coordinates (%.1f%%)",
		humanize.Comma(int64(report.Total)),
		humanize.Comma(int64(report.Missing)),
		report.MissingPercent(),
	)
	gn.Info("Processed listing is at <em>%s</em>", report.Output)

	return nil
}
