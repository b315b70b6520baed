package config

import (
	"strings"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptForecastYears sets the number of calendar years to forecast.
func OptForecastYears(i int) Option {
	return func(c *Config) {
		if isValidInt("Forecast Years", i) {
			c.Forecast.Years = i
		}
	}
}

// OptForecastCapacity sets the assumed number of children per preschool.
func OptForecastCapacity(i int) Option {
	return func(c *Config) {
		if isValidInt("Preschool Capacity", i) {
			c.Forecast.Capacity = i
		}
	}
}

// OptForecastMinAgeMonths sets the preschool entry age in months.
// Zero is valid and means children enter at birth.
func OptForecastMinAgeMonths(i int) Option {
	return func(c *Config) {
		if isValidNonNegInt("Minimum Age", i) {
			c.Forecast.MinAgeMonths = i
		}
	}
}

// OptForecastMaxAgeMonths sets the preschool leaving age in months.
func OptForecastMaxAgeMonths(i int) Option {
	return func(c *Config) {
		if isValidInt("Maximum Age", i) {
			c.Forecast.MaxAgeMonths = i
		}
	}
}

// OptForecastCurrentYear sets the base year of a run.
// Zero (the default) is not an option value; it stands for the current
// wall-clock year and is resolved by the CLI.
func OptForecastCurrentYear(i int) Option {
	return func(c *Config) {
		if isValidInt("Current Year", i) {
			c.Forecast.CurrentYear = i
		}
	}
}

// OptDataFertilityFile sets the path of the fertility rates CSV.
func OptDataFertilityFile(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Fertility File", s) {
			c.Data.FertilityFile = s
		}
	}
}

// OptDataHousingFile sets the path of the BTO mapping CSV.
func OptDataHousingFile(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Housing File", s) {
			c.Data.HousingFile = s
		}
	}
}

// OptDataResidentsFile sets the path of the resident population XLSX.
func OptDataResidentsFile(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Residents File", s) {
			c.Data.ResidentsFile = s
		}
	}
}

// OptDataResidentsSheet sets the worksheet of the residents file to read.
func OptDataResidentsSheet(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Residents Sheet", s) {
			c.Data.ResidentsSheet = s
		}
	}
}

// OptDataResidentsHeaderRow sets the 1-based header row of the
// residents worksheet.
func OptDataResidentsHeaderRow(i int) Option {
	return func(c *Config) {
		if isValidInt("Residents Header Row", i) {
			c.Data.ResidentsHeaderRow = i
		}
	}
}

// OptDataCentresFile sets the path of the preschool centre listing CSV.
func OptDataCentresFile(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Centres File", s) {
			c.Data.CentresFile = s
		}
	}
}

// OptDataProcessedCentresFile sets the path of the geocoded centre
// listing CSV.
func OptDataProcessedCentresFile(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Processed Centres File", s) {
			c.Data.ProcessedCentresFile = s
		}
	}
}

// OptDataSubzonesFile sets the path of the subzone boundaries GeoJSON.
func OptDataSubzonesFile(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Subzones File", s) {
			c.Data.SubzonesFile = s
		}
	}
}

// OptGeocoderSearchURL sets the OneMap search endpoint.
func OptGeocoderSearchURL(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Geocoder Search URL", s) {
			c.Geocoder.SearchURL = s
		}
	}
}

// OptGeocoderToken sets the OneMap API access token.
func OptGeocoderToken(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Geocoder Token", s) {
			c.Geocoder.Token = s
		}
	}
}

// OptGeocoderCacheSize sets the number of postal code lookups kept
// in memory.
func OptGeocoderCacheSize(i int) Option {
	return func(c *Config) {
		if isValidInt("Geocoder Cache Size", i) {
			c.Geocoder.CacheSize = i
		}
	}
}

// OptStoreFile sets the SQLite database path for saved runs.
func OptStoreFile(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Store File", s) {
			c.Store.File = s
		}
	}
}

// OptServerPort sets the TCP port of the HTTP API.
func OptServerPort(i int) Option {
	return func(c *Config) {
		if isValidInt("Server Port", i) {
			c.Server.Port = i
		}
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text", "tint".
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "file", "stdin", "stdout".
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptJobsNumber sets the number of concurrent workers for parallel operations.
// Default is runtime.NumCPU().
func OptJobsNumber(i int) Option {
	return func(c *Config) {
		if isValidInt("Jobs Number", i) {
			c.JobsNumber = i
		}
	}
}

// OptHomeDir sets the home directory for config, cache, and log locations.
// Set once at startup from os.UserHomeDir().
// Runtime-only field - not in ToOptions().
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Directory", s) {
			c.HomeDir = s
		}
	}
}
