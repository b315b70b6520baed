package config

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/gnames/gn"
)

// Update applies a slice of Option functions to the Config.
// This is the only way to modify a Config after creation.
// Invalid options are rejected with warnings - config remains in valid state.
func (c *Config) Update(opts []Option) {
	for _, opt := range opts {
		opt(c)
	}
}

// ToOptions converts the Config to a slice of Option functions.
// Only includes persistent fields appropriate for config.yaml.
// Excludes runtime-only fields (HomeDir).
// Used for round-tripping config.yaml ↔ Config conversions.
func (c *Config) ToOptions() []Option {
	var res []Option
	var s string
	var i int
	i = c.Forecast.Years
	if i > 0 {
		res = append(res, OptForecastYears(i))
	}
	i = c.Forecast.Capacity
	if i > 0 {
		res = append(res, OptForecastCapacity(i))
	}
	i = c.Forecast.MinAgeMonths
	if i > 0 {
		res = append(res, OptForecastMinAgeMonths(i))
	}
	i = c.Forecast.MaxAgeMonths
	if i > 0 {
		res = append(res, OptForecastMaxAgeMonths(i))
	}
	i = c.Forecast.CurrentYear
	if i > 0 {
		res = append(res, OptForecastCurrentYear(i))
	}

	s = c.Data.FertilityFile
	if s != "" {
		res = append(res, OptDataFertilityFile(s))
	}
	s = c.Data.HousingFile
	if s != "" {
		res = append(res, OptDataHousingFile(s))
	}
	s = c.Data.ResidentsFile
	if s != "" {
		res = append(res, OptDataResidentsFile(s))
	}
	s = c.Data.ResidentsSheet
	if s != "" {
		res = append(res, OptDataResidentsSheet(s))
	}
	i = c.Data.ResidentsHeaderRow
	if i > 0 {
		res = append(res, OptDataResidentsHeaderRow(i))
	}
	s = c.Data.CentresFile
	if s != "" {
		res = append(res, OptDataCentresFile(s))
	}
	s = c.Data.ProcessedCentresFile
	if s != "" {
		res = append(res, OptDataProcessedCentresFile(s))
	}
	s = c.Data.SubzonesFile
	if s != "" {
		res = append(res, OptDataSubzonesFile(s))
	}

	s = c.Geocoder.SearchURL
	if s != "" {
		res = append(res, OptGeocoderSearchURL(s))
	}
	s = c.Geocoder.Token
	if s != "" {
		res = append(res, OptGeocoderToken(s))
	}
	i = c.Geocoder.CacheSize
	if i > 0 {
		res = append(res, OptGeocoderCacheSize(i))
	}

	s = c.Store.File
	if s != "" {
		res = append(res, OptStoreFile(s))
	}

	i = c.Server.Port
	if i > 0 {
		res = append(res, OptServerPort(i))
	}

	s = c.Log.Format
	if s != "" {
		res = append(res, OptLogFormat(s))
	}
	s = c.Log.Level
	if s != "" {
		res = append(res, OptLogLevel(s))
	}
	s = c.Log.Destination
	if s != "" {
		res = append(res, OptLogDestination(s))
	}

	i = c.JobsNumber
	if i > 0 {
		res = append(res, OptJobsNumber(i))
	}
	return res
}

func isValidString(name, s string) bool {
	res := s != ""
	if !res {
		gn.Warn("<em>%s</em> cannot be empty, ignoring", name)
	}
	return res
}

func isValidInt(name string, i int) bool {
	res := i > 0
	if !res {
		gn.Warn("<em>%s</em> has to be positive number, ignoring %d", name, i)
	}
	return res
}

func isValidNonNegInt(name string, i int) bool {
	res := i >= 0
	if !res {
		gn.Warn("<em>%s</em> cannot be negative, ignoring %d", name, i)
	}
	return res
}

func isValidEnum(name, val string) bool {
	s := struct{}{}
	data := map[string]map[string]struct{}{
		"Log.Level":       {"debug": s, "info": s, "warn": s, "error": s},
		"Log.Format":      {"json": s, "text": s, "tint": s},
		"Log.Destination": {"file": s, "stdin": s, "stdout": s},
	}
	vals := slices.Sorted(maps.Keys(data[name]))
	var lines []string
	for _, v := range vals {
		line := fmt.Sprintf("  * %s", v)
		lines = append(lines, line)
	}
	if _, ok := data[name][val]; ok {
		return true
	} else {
		gn.Warn(
			"<em>%s</em> does not support '%s' as a value. "+
				"Valid values are: \n%s\nIgnoring...",
			name, val, strings.Join(lines, "\n"),
		)
		return false
	}
}
