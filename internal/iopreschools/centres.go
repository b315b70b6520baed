package iopreschools

import (
	"encoding/csv"
	"io"
	"os"
	"strconv"
	"strings"
)

// Column names of the centre listing. The raw ECDA download carries
// centre_name and postal_code, the processed listing adds coordinates.
const (
	colCentreName = "centre_name"
	colPostal     = "postal_code"
	colLatitude   = "latitude"
	colLongitude  = "longitude"
)

// centre is one licensed preschool. hasLocation stays false until the
// postal code is geocoded.
type centre struct {
	name        string
	postal      string
	lat         float64
	lng         float64
	hasLocation bool
}

// readCentres parses a centre listing CSV, raw or processed. Rows
// without a postal code are skipped.
func readCentres(path string) ([]centre, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, CentresFileError(path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if err != nil {
		return nil, CentresFileError(path, err)
	}

	colIdx := make(map[string]int)
	for i, h := range header {
		colIdx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	if _, ok := colIdx[colPostal]; !ok {
		return nil, CentresColumnError(path, colPostal)
	}

	postalIdx := colIdx[colPostal]
	nameIdx := index(colIdx, colCentreName)
	latIdx := index(colIdx, colLatitude)
	lngIdx := index(colIdx, colLongitude)

	var res []centre
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}

		postal, ok := cell(record, postalIdx)
		if !ok {
			continue
		}

		c := centre{postal: postal}
		c.name, _ = cell(record, nameIdx)

		latStr, okLat := cell(record, latIdx)
		lngStr, okLng := cell(record, lngIdx)
		if okLat && okLng {
			lat, errLat := strconv.ParseFloat(latStr, 64)
			lng, errLng := strconv.ParseFloat(lngStr, 64)
			if errLat == nil && errLng == nil {
				c.lat, c.lng, c.hasLocation = lat, lng, true
			}
		}

		res = append(res, c)
	}
	return res, nil
}

// writeCentres writes the processed centre listing. Centres without a
// location keep empty coordinate cells.
func writeCentres(path string, centres []centre) error {
	f, err := os.Create(path)
	if err != nil {
		return CentresWriteError(path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{colCentreName, colPostal, colLatitude, colLongitude}
	if err := w.Write(header); err != nil {
		return CentresWriteError(path, err)
	}

	for _, c := range centres {
		record := []string{c.name, c.postal, "", ""}
		if c.hasLocation {
			record[2] = strconv.FormatFloat(c.lat, 'f', -1, 64)
			record[3] = strconv.FormatFloat(c.lng, 'f', -1, 64)
		}
		if err := w.Write(record); err != nil {
			return CentresWriteError(path, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return CentresWriteError(path, err)
	}
	return nil
}

// index returns the position of a header column, -1 when absent.
func index(colIdx map[string]int, name string) int {
	if i, ok := colIdx[name]; ok {
		return i
	}
	return -1
}

// cell returns the trimmed value at idx, false when the column is
// absent from the record or empty.
func cell(record []string, idx int) (string, bool) {
	if idx < 0 || idx >= len(record) {
		return "", false
	}
	v := strings.TrimSpace(record[idx])
	return v, v != ""
}
