// Package iofertility loads the SingStat births and fertility dataset.
// This is an impure I/O package that reads the annual indicators CSV
// and normalizes it into a fertility table.
package iofertility

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

// fertilityCSV implements the Fertility interface.
type fertilityCSV struct {
	cfg *config.Config
}

// New creates a new Fertility loader.
func New(cfg *config.Config) sources.Fertility {
	return &fertilityCSV{cfg: cfg}
}

// Load reads the fertility CSV. The file is a SingStat table: the first
// column holds the data series label, the remaining columns one year
// each. Labels are trimmed, cells that are not numbers are skipped, so
// footnote rows and 'na' markers do not break the load.
func (l *fertilityCSV) Load(
	ctx context.Context,
) (*forecast.FertilityTable, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := l.cfg.Data.FertilityFile
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

	// Map column index to calendar year. Columns with non-year headers
	// are ignored.
	years := make(map[int]int)
	for i, h := range header {
		if i == 0 {
			continue
		}
		year, err := strconv.Atoi(strings.TrimSpace(h))
		if err != nil {
			continue
		}
		years[i] = year
	}
	if len(years) == 0 {
		return nil, HeaderError(path)
	}

	var entries []forecast.FertilityEntry
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			continue
		}
		if len(record) == 0 {
			continue
		}

		label := strings.TrimSpace(record[0])
		if label == "" {
			continue
		}

		for idx, year := range years {
			if idx >= len(record) {
				continue
			}
			cell := strings.TrimSpace(record[idx])
			if cell == "" {
				continue
			}
			// Birth counts use thousands separators
			cell = strings.ReplaceAll(cell, ",", "")
			rate, err := strconv.ParseFloat(cell, 64)
			if err != nil {
				continue
			}
			entries = append(entries, forecast.FertilityEntry{
				AgeBin: label,
				Year:   year,
				Rate:   rate,
			})
		}
	}

	res := forecast.NewFertilityTable(entries)
	slog.Info("Loaded fertility data",
		"file", path,
		"series", len(res.AgeBins()),
		"years", len(res.Years()),
	)
	return res, nil
}
