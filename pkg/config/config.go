// Package config provides configuration management for ECDA.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Forecast: years, capacity, min_age_months, max_age_months, current_year
//   - Data: fertility_file, housing_file, residents_file, residents_sheet,
//     residents_header_row, centres_file, processed_centres_file, subzones_file
//   - Geocoder: search_url, token, cache_size
//   - Store: file
//   - Server: port
//   - Log: level, format, destination
//   - General: jobs_number
//
// Runtime-only fields (CLI flags only):
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use ECDA_ prefix with underscores for nesting:
//
//	ECDA_FORECAST_YEARS=5
//	ECDA_GEOCODER_TOKEN=eyJhbGc...
//	ECDA_LOG_LEVEL=info
//	ECDA_JOBS_NUMBER=8
//
// See .env.example for complete list with defaults.
package config

import (
	"runtime"
)

// Config represents the complete ECDA configuration.
type Config struct {
	// Forecast contains the tunables of a forecast run.
	Forecast ForecastConfig `mapstructure:"forecast" yaml:"forecast"`

	// Data contains paths and layout details of the input datasets.
	Data DataConfig `mapstructure:"data" yaml:"data"`

	// Geocoder contains OneMap API settings for locating preschools.
	Geocoder GeocoderConfig `mapstructure:"geocoder" yaml:"geocoder"`

	// Store contains settings for the forecast run database.
	Store StoreConfig `mapstructure:"store" yaml:"store"`

	// Server contains settings for the HTTP API.
	Server ServerConfig `mapstructure:"server" yaml:"server"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// JobsNumber is the number of concurrent workers for parallel operations.
	// Default value is set accoring to the number of available threads.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// HomeDir determines where config, cache and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// ForecastConfig contains the tunables of a forecast run.
type ForecastConfig struct {
	// Years is the number of calendar years to forecast, starting the
	// year after CurrentYear.
	Years int `mapstructure:"years" yaml:"years"`

	// Capacity is the assumed number of children one preschool serves.
	Capacity int `mapstructure:"capacity" yaml:"capacity"`

	// MinAgeMonths is the age in months at which children enter preschool.
	MinAgeMonths int `mapstructure:"min_age_months" yaml:"min_age_months"`

	// MaxAgeMonths is the age in months at which children leave preschool.
	MaxAgeMonths int `mapstructure:"max_age_months" yaml:"max_age_months"`

	// CurrentYear is the base year of the run. Zero means the current
	// wall-clock year, resolved by the CLI before a run starts.
	CurrentYear int `mapstructure:"current_year" yaml:"current_year"`
}

// DataConfig contains paths and layout details of the input datasets.
// Relative paths are resolved against the working directory.
type DataConfig struct {
	// FertilityFile is the CSV of annual births and fertility rates
	// published by SingStat.
	FertilityFile string `mapstructure:"fertility_file" yaml:"fertility_file"`

	// HousingFile is the CSV mapping BTO projects to subzones with their
	// estimated completion years and unit counts.
	HousingFile string `mapstructure:"housing_file" yaml:"housing_file"`

	// ResidentsFile is the XLSX of residents by subzone, age and sex.
	ResidentsFile string `mapstructure:"residents_file" yaml:"residents_file"`

	// ResidentsSheet is the worksheet of ResidentsFile to read.
	ResidentsSheet string `mapstructure:"residents_sheet" yaml:"residents_sheet"`

	// ResidentsHeaderRow is the 1-based row of ResidentsSheet that holds
	// the column headers.
	ResidentsHeaderRow int `mapstructure:"residents_header_row" yaml:"residents_header_row"`

	// CentresFile is the CSV listing of licensed preschool centres.
	CentresFile string `mapstructure:"centres_file" yaml:"centres_file"`

	// ProcessedCentresFile is where the geocoded centre listing is
	// written and re-read, so that OneMap is not queried on every run.
	ProcessedCentresFile string `mapstructure:"processed_centres_file" yaml:"processed_centres_file"`

	// SubzonesFile is the GeoJSON of Master Plan subzone boundaries.
	SubzonesFile string `mapstructure:"subzones_file" yaml:"subzones_file"`
}

// GeocoderConfig contains OneMap API settings.
type GeocoderConfig struct {
	// SearchURL is the OneMap elastic search endpoint.
	SearchURL string `mapstructure:"search_url" yaml:"search_url"`

	// Token is the OneMap API access token. Required for geocoding,
	// usually provided via the ECDA_GEOCODER_TOKEN environment variable.
	Token string `mapstructure:"token" yaml:"token"`

	// CacheSize is the number of postal code lookups kept in memory.
	// Centres share buildings, so repeated postal codes are common.
	CacheSize int `mapstructure:"cache_size" yaml:"cache_size"`
}

// StoreConfig contains settings for the forecast run database.
type StoreConfig struct {
	// File is the SQLite database path. Empty means the default location
	// under the cache directory.
	File string `mapstructure:"file" yaml:"file"`
}

// ServerConfig contains settings for the HTTP API.
type ServerConfig struct {
	// Port is the TCP port the API listens on.
	Port int `mapstructure:"port" yaml:"port"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json', 'text' or 'tint' (user-facing and colored).
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Forecast: ForecastConfig{
			Years:        5,
			Capacity:     100,
			MinAgeMonths: 18, // youngest age for playgroup enrolment
			MaxAgeMonths: 72,
			CurrentYear:  0, // resolved to the wall-clock year at run time
		},
		Data: DataConfig{
			FertilityFile:        "data/BirthsAndFertilityRatesAnnual.csv",
			HousingFile:          "data/btomapping.csv",
			ResidentsFile:        "data/respopagesex2000to2020e.xlsx",
			ResidentsSheet:       "2020",
			ResidentsHeaderRow:   3,
			CentresFile:          "data/ListingofCentres.csv",
			ProcessedCentresFile: "data/preschools_data_processed.csv",
			SubzonesFile:         "data/Master Plan 2019 Subzone Boundary (No Sea) (GEOJSON).geojson",
		},
		Geocoder: GeocoderConfig{
			SearchURL: "https://www.onemap.gov.sg/api/common/elastic/search",
			CacheSize: 1000,
		},
		Server: ServerConfig{
			Port: 8080,
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
		JobsNumber: runtime.NumCPU(), // Default to number of CPU threads
	}

	return res
}
