// Package ioreport writes the outputs of a forecast run to disk: one
// CSV per result matrix, the existing supply table, and a YAML manifest
// describing the run.
package ioreport

import (
	"encoding/csv"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/chuawjk/ecda/pkg/forecast"
)

// File names of a written report.
const (
	PreschoolersFile = "forecasted_preschoolers.csv"
	NeededFile       = "forecasted_preschools_needed.csv"
	GapFile          = "preschool_gap.csv"
	SupplyFile       = "existing_preschools.csv"
	ManifestFile     = "manifest.yaml"
)

// Manifest describes one written report.
type Manifest struct {
	CreatedAt    time.Time   `yaml:"created_at"`
	CurrentYear  int         `yaml:"current_year"`
	Years        []int       `yaml:"years,flow"`
	Capacity     int         `yaml:"capacity"`
	MinAgeMonths int         `yaml:"min_age_months"`
	MaxAgeMonths int         `yaml:"max_age_months"`
	Subzones     int         `yaml:"subzones"`
	Totals       map[int]int `yaml:"preschoolers_per_year"`
	Files        []string    `yaml:"files"`
}

// Write stores the result matrices and the manifest in dir, creating it
// when needed. It returns the manifest that was written.
func Write(
	dir string,
	params forecast.Params,
	res *forecast.Result,
) (*Manifest, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, WriteError(dir, err)
	}

	matrices := []struct {
		file string
		m    forecast.Matrix
	}{
		{PreschoolersFile, res.Preschoolers},
		{NeededFile, res.Needed},
		{GapFile, res.Gap},
	}
	for _, v := range matrices {
		if err := writeMatrix(filepath.Join(dir, v.file), v.m); err != nil {
			return nil, err
		}
	}

	if err := writeSupply(filepath.Join(dir, SupplyFile), res.Supply); err != nil {
		return nil, err
	}

	totals := make(map[int]int, len(res.Years))
	for _, year := range res.Years {
		totals[year] = res.Preschoolers.YearTotal(year)
	}

	manifest := &Manifest{
		CreatedAt:    time.Now().UTC(),
		CurrentYear:  params.CurrentYear,
		Years:        res.Years,
		Capacity:     params.Capacity,
		MinAgeMonths: params.MinAgeMonths,
		MaxAgeMonths: params.MaxAgeMonths,
		Subzones:     len(res.Preschoolers.Subzones()),
		Totals:       totals,
		Files: []string{
			PreschoolersFile, NeededFile, GapFile, SupplyFile,
		},
	}
	if err := writeManifest(filepath.Join(dir, ManifestFile), manifest); err != nil {
		return nil, err
	}

	slog.Info("Wrote forecast report", "dir", dir, "files", len(manifest.Files)+1)
	return manifest, nil
}

// writeMatrix stores a matrix as a dense CSV: years down, subzones
// across, missing cells zero.
func writeMatrix(path string, m forecast.Matrix) error {
	f, err := os.Create(path)
	if err != nil {
		return WriteError(path, err)
	}
	defer f.Close()

	years, subzones, cells := m.Tabular()

	w := csv.NewWriter(f)
	header := append([]string{"year"}, subzones...)
	if err := w.Write(header); err != nil {
		return WriteError(path, err)
	}

	for i, year := range years {
		record := make([]string, 0, len(subzones)+1)
		record = append(record, strconv.Itoa(year))
		for _, v := range cells[i] {
			record = append(record, strconv.Itoa(v))
		}
		if err := w.Write(record); err != nil {
			return WriteError(path, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return WriteError(path, err)
	}
	return nil
}

// writeSupply stores the existing preschool counts, one subzone per row
// in sorted order.
func writeSupply(path string, supply map[string]int) error {
	f, err := os.Create(path)
	if err != nil {
		return WriteError(path, err)
	}
	defer f.Close()

	subzones := make([]string, 0, len(supply))
	for subzone := range supply {
		subzones = append(subzones, subzone)
	}
	slices.Sort(subzones)

	w := csv.NewWriter(f)
	if err := w.Write([]string{"subzone", "num_preschools"}); err != nil {
		return WriteError(path, err)
	}
	for _, subzone := range subzones {
		record := []string{subzone, strconv.Itoa(supply[subzone])}
		if err := w.Write(record); err != nil {
			return WriteError(path, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return WriteError(path, err)
	}
	return nil
}

func writeManifest(path string, m *Manifest) error {
	data, err := yaml.Marshal(m)
	if err != nil {
		return WriteError(path, err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return WriteError(path, err)
	}
	return nil
}
