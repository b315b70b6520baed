// Package ioresidents loads the SingStat residents dataset.
// This is an impure I/O package that reads the subzone population
// workbook and keeps female residents of childbearing age, grouped
// into five-year bins.
package ioresidents

import (
	"context"
	"log/slog"
	"strconv"
	"strings"

	"github.com/chuawjk/ecda/pkg/config"
	"github.com/chuawjk/ecda/pkg/forecast"
	"github.com/chuawjk/ecda/pkg/sources"
	"github.com/xuri/excelize/v2"
)

// Required column headers, matched case-insensitively after trimming.
// The count column carries the census year as its header and is located
// via the worksheet name.
const (
	colSubzone = "subzone"
	colAge     = "age"
	colSex     = "sex"
)

// residentsXLSX implements the Residents interface.
type residentsXLSX struct {
	cfg *config.Config
}

// New creates a new Residents loader.
func New(cfg *config.Config) sources.Residents {
	return &residentsXLSX{cfg: cfg}
}

// Load reads the residents workbook. The worksheet mixes per-age rows
// with 'Total' aggregates for subzone, age and sex; aggregates are
// dropped, only female rows with an age inside the childbearing bins
// are kept. Counts that are not numbers (the dataset marks suppressed
// cells with '-') are skipped.
func (l *residentsXLSX) Load(
	ctx context.Context,
) (*forecast.ResidentAgeBinTable, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := l.cfg.Data.ResidentsFile
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, FileError(path, err)
	}
	defer f.Close()

	sheet := l.cfg.Data.ResidentsSheet
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, SheetError(path, sheet, err)
	}

	headerRow := l.cfg.Data.ResidentsHeaderRow
	if headerRow < 1 || headerRow > len(rows) {
		return nil, ColumnError(path, colSubzone)
	}

	colIdx := make(map[string]int)
	for i, h := range rows[headerRow-1] {
		colIdx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	// The count column header is the census year, same as the sheet name
	countCol := strings.ToLower(strings.TrimSpace(sheet))
	for _, col := range []string{colSubzone, colAge, colSex, countCol} {
		if _, ok := colIdx[col]; !ok {
			return nil, ColumnError(path, col)
		}
	}

	bins := ageBins()

	var entries []forecast.ResidentEntry
	for _, record := range rows[headerRow:] {
		subzone, ok := cell(record, colIdx[colSubzone])
		if !ok || subzone == "Total" {
			continue
		}
		age, ok := cell(record, colIdx[colAge])
		if !ok || age == "Total" {
			continue
		}
		bin, ok := bins[age]
		if !ok {
			continue
		}
		sex, ok := cell(record, colIdx[colSex])
		if !ok || sex != "Females" {
			continue
		}
		countStr, ok := cell(record, colIdx[countCol])
		if !ok {
			continue
		}
		count, err := strconv.ParseFloat(
			strings.ReplaceAll(countStr, ",", ""), 64,
		)
		if err != nil {
			continue
		}

		entries = append(entries, forecast.ResidentEntry{
			Subzone: subzone,
			AgeBin:  bin,
			Count:   count,
		})
	}

	res := forecast.NewResidentAgeBinTable(entries)
	slog.Info("Loaded resident counts",
		"file", path,
		"sheet", sheet,
		"subzones", len(res.Subzones()),
	)
	return res, nil
}

// ageBins maps single-year age labels to the five-year bins of the
// fertility dataset, "15" through "49".
func ageBins() map[string]string {
	res := make(map[string]string)
	for _, bin := range forecast.MotherAgeBins {
		ends := strings.SplitN(strings.TrimSuffix(bin, " Years"), " - ", 2)
		if len(ends) != 2 {
			continue
		}
		lo, err1 := strconv.Atoi(ends[0])
		hi, err2 := strconv.Atoi(ends[1])
		if err1 != nil || err2 != nil {
			continue
		}
		for age := lo; age <= hi; age++ {
			res[strconv.Itoa(age)] = bin
		}
	}
	return res
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
