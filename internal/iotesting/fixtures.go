// Package iotesting provides shared fixtures for integration tests.
// This is an internal package for test infrastructure only.
//
// The fixtures model two subzones, Bedok North and Punggol Field,
// consistently across every dataset: the subzone boundaries contain
// the geocoded centres, the housing projects complete inside the
// forecast window, and the residents workbook covers the childbearing
// age bins of the fertility table.
package iotesting

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/chuawjk/ecda/pkg/config"
)

// Postal codes the OneMap stub resolves.
const (
	BedokPostal   = "460001"
	PunggolPostal = "821650"
)

const fertilityCSV = `Data Series,2024,2023,2022
Total Fertility Rate (Per Female),0.97,1.04,1.12
Total Live-Births,"33,541","35,605","38,672"
15 - 19 Years,2.3,2.5,2.8
20 - 24 Years,19.2,21.7,24.3
25 - 29 Years,63.5,68.2,72.5
30 - 34 Years,91.1,95.8,98.5
35 - 39 Years,59.7,62.3,63.1
40 - 44 Years,14.7,15.2,15.9
45 - 49 Years,1.1,1.2,1.3
`

const housingCSV = `Project,Town,Subzone,Estimated completion year,Total number of units
Bedok Vista,Bedok,Bedok North,2026,900
Punggol Sky,Punggol,Punggol Field,2027,"1,200"
`

const centresCSV = `centre_name,postal_code,centre_address
Sunshine Preschool,460001,1 Bedok North Ave 1
Little Tots,821650,2 Punggol Pl
`

const subzonesGeoJSON = `{
	"type": "FeatureCollection",
	"features": [
		{
			"type": "Feature",
			"properties": {
				"Description": "<tr><th>SUBZONE_N</th> <td>BEDOK NORTH</td></tr>"
			},
			"geometry": {"type": "Polygon", "coordinates": [[[103.90, 1.32], [103.95, 1.32], [103.95, 1.35], [103.90, 1.35], [103.90, 1.32]]]}
		},
		{
			"type": "Feature",
			"properties": {
				"Description": "<tr><th>SUBZONE_N</th> <td>PUNGGOL FIELD</td></tr>"
			},
			"geometry": {"type": "Polygon", "coordinates": [[[103.80, 1.38], [103.85, 1.38], [103.85, 1.42], [103.80, 1.42], [103.80, 1.38]]]}
		}
	]
}`

// WriteDatasets writes every input dataset of a forecast run into dir
// and returns the options pointing at them. The store file option is
// included so a full run can save its result next to the data.
func WriteDatasets(t *testing.T, dir string) []config.Option {
	t.Helper()

	files := map[string]string{
		"fertility.csv":    fertilityCSV,
		"btomapping.csv":   housingCSV,
		"centres.csv":      centresCSV,
		"subzones.geojson": subzonesGeoJSON,
	}
	for name, content := range files {
		err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644)
		require.NoError(t, err)
	}

	writeResidents(t, filepath.Join(dir, "residents.xlsx"))

	return []config.Option{
		config.OptDataFertilityFile(filepath.Join(dir, "fertility.csv")),
		config.OptDataHousingFile(filepath.Join(dir, "btomapping.csv")),
		config.OptDataResidentsFile(filepath.Join(dir, "residents.xlsx")),
		config.OptDataResidentsSheet("2024"),
		config.OptDataResidentsHeaderRow(3),
		config.OptDataCentresFile(filepath.Join(dir, "centres.csv")),
		config.OptDataProcessedCentresFile(
			filepath.Join(dir, "centres_processed.csv"),
		),
		config.OptDataSubzonesFile(filepath.Join(dir, "subzones.geojson")),
		config.OptStoreFile(filepath.Join(dir, "runs.sqlite")),
	}
}

// writeResidents builds a residents workbook the way SingStat lays it
// out: two title rows, a header row, then per-age records.
func writeResidents(t *testing.T, path string) {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	const sheet = "2024"
	f.SetSheetName("Sheet1", sheet)

	rows := [][]any{
		{"Singapore Residents by Planning Area/Subzone, Age and Sex"},
		{"June 2024"},
		{"Subzone", "Age", "Sex", 2024},
		{"Bedok North", "25", "Females", 800},
		{"Bedok North", "30", "Females", 900},
		{"Bedok North", "35", "Females", 700},
		{"Bedok North", "30", "Males", 850},
		{"Punggol Field", "25", "Females", 600},
		{"Punggol Field", "30", "Females", 880},
		{"Punggol Field", "35", "Females", 400},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}

	require.NoError(t, f.SaveAs(path))
}

// OneMapStub serves the search endpoint for the two fixture postal
// codes, returning coordinates inside their subzone boundaries. The
// server is closed when the test finishes.
func OneMapStub(t *testing.T) *httptest.Server {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(
		func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Query().Get("searchVal") {
			case BedokPostal:
				fmt.Fprint(w,
					`{"found":1,"results":[{"LATITUDE":"1.33","LONGITUDE":"103.92"}]}`,
				)
			case PunggolPostal:
				fmt.Fprint(w,
					`{"found":1,"results":[{"LATITUDE":"1.40","LONGITUDE":"103.82"}]}`,
				)
			default:
				fmt.Fprint(w, `{"found":0,"results":[]}`)
			}
		}))
	t.Cleanup(srv.Close)
	return srv
}

// Config returns a configuration whose datasets, geocoder and store
// all live under a fresh temporary directory.
func Config(t *testing.T, searchURL string) *config.Config {
	t.Helper()

	cfg := config.New()
	cfg.Update(WriteDatasets(t, t.TempDir()))
	cfg.Update([]config.Option{
		config.OptGeocoderSearchURL(searchURL),
		config.OptGeocoderToken("test-token"),
		config.OptJobsNumber(2),
	})
	return cfg
}
