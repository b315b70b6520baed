// Package iohousing loads the BTO completion mapping dataset.
// This is an impure I/O package that reads the project-to-subzone CSV
// and normalizes it into completion records.
package iohousing

import (
	"context"
	"encoding/csv"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/chuawjk/ecda/pkg/config"
	"github.com/chuawjk/ecda/pkg/forecast"
	"github.com/chuawjk/ecda/pkg/sources"
)

// Required column headers, matched case-insensitively after trimming.
const (
	colSubzone = "subzone"
	colYear    = "estimated completion year"
	colUnits   = "total number of units"
)

// housingCSV implements the Housing interface.
type housingCSV struct {
	cfg *config.Config
}

// New creates a new Housing loader.
func New(cfg *config.Config) sources.Housing {
	return &housingCSV{cfg: cfg}
}

// Load reads the BTO mapping CSV. One record per project; the dataset
// carries more columns than needed, so columns are located by header
// name. Rows without a usable subzone, year or unit count are skipped.
func (l *housingCSV) Load(
	ctx context.Context,
) ([]forecast.HousingCompletion, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := l.cfg.Data.HousingFile
	f, err := os.Open(path)
	if err != nil {
		return nil, FileError(path, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	header, err := r.Read()
	if err != nil {
		return nil, FileError(path, err)
	}

	colIdx := make(map[string]int)
	for i, h := range header {
		colIdx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, col := range []string{colSubzone, colYear, colUnits} {
		if _, ok := colIdx[col]; !ok {
			return nil, ColumnError(path, col)
		}
	}

	var res []forecast.HousingCompletion
	var skipped int
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			skipped++
			continue
		}

		subzone, ok1 := cell(record, colIdx[colSubzone])
		yearStr, ok2 := cell(record, colIdx[colYear])
		unitsStr, ok3 := cell(record, colIdx[colUnits])
		if !ok1 || !ok2 || !ok3 {
			skipped++
			continue
		}

		year, err := strconv.Atoi(yearStr)
		if err != nil {
			skipped++
			continue
		}
		units, err := strconv.ParseFloat(
			strings.ReplaceAll(unitsStr, ",", ""), 64,
		)
		if err != nil {
			skipped++
			continue
		}

		res = append(res, forecast.HousingCompletion{
			Subzone: subzone,
			Year:    year,
			Units:   units,
		})
	}

	slog.Info("Loaded BTO completions",
		"file", path,
		"projects", len(res),
		"skipped", skipped,
	)
	return res, nil
}

// cell returns the trimmed value of a record column and whether it is
// present and non-empty.
func cell(record []string, idx int) (string, bool) {
	if idx >= len(record) {
		return "", false
	}
	s := strings.TrimSpace(record[idx])
	return s, s != ""
}
