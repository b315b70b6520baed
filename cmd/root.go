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
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/gnames/gn"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/chuawjk/ecda/internal/iofs"
	"github.com/chuawjk/ecda/internal/iologger"
	app "github.com/chuawjk/ecda/pkg"
	"github.com/chuawjk/ecda/pkg/config"
)

var (
	homeDir string
	opts    []config.Option
	cfg     *config.Config
)

// getRootCmd assembles the root command with all subcommands attached.
// Extracted as a function to facilitate testing and dynamic
// command registration.
func getRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Version: fmt.Sprintf("version: %s\nbuild:   %s", app.Version, app.Build),
		Use:     "ecda",
		Short:   "ECDA forecasts preschool demand across Singapore subzones",
		Long: `ECDA projects how many preschoolers each Singapore subzone will have
in the coming years and how many preschools that demand requires.

A forecast combines four published datasets:
  - annual age-specific fertility rates (SingStat)
  - resident counts by subzone, age and sex (SingStat)
  - BTO projects mapped to subzones with completion years
  - the listing of licensed preschool centres (ECDA)

The main workflow:
  1. ecda geocode   resolve centre postal codes via OneMap
  2. ecda forecast  compute demand and write the report
  3. ecda runs      list and inspect saved forecast runs
  4. ecda serve     expose saved runs as a JSON API

Configuration precedence (highest to lowest):
  1. CLI flags
  2. Environment variables (ECDA_*)
  3. Config file (~/.config/ecda/config.yaml)
  4. Built-in defaults

Environment variables use underscores for nesting
(forecast.years → ECDA_FORECAST_YEARS). The OneMap token is
usually supplied as ECDA_GEOCODER_TOKEN, directly or via a
local .env file.`,
		PersistentPreRunE: bootstrap,
		RunE:              runRoot,
		SilenceErrors:     true,
		SilenceUsage:      true,
	}

	// Remove the automatic "ecda version" prefix
	rootCmd.SetVersionTemplate("{{.Version}}\n")

	// Override version flag to use -V
	rootCmd.Flags().BoolP("version", "V", false, "version for ecda")

	rootCmd.AddCommand(getForecastCmd())
	rootCmd.AddCommand(getGeocodeCmd())
	rootCmd.AddCommand(getRunsCmd())
	rootCmd.AddCommand(getServeCmd())

	return rootCmd
}

func bootstrap(cmd *cobra.Command, args []string) error {
	var err error
	homeDir, err = os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// Initialize logging with hardcoded defaults
	// Will be reconfigured later with user's config settings
	defaultLog := config.LogConfig{
		Format:      "json",
		Level:       "info",
		Destination: "file",
	}
	if err = iologger.Init(config.LogDir(homeDir), defaultLog, false); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	gn.Info(
		"Configuration files are available at <em>%s</em>",
		config.ConfigDir(homeDir),
	)

	// A local .env is the usual place for the OneMap token.
	_ = godotenv.Load()

	var cfgViper *config.Config
	if cfgViper, err = initConfig(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cfg = config.New()
	opts = cfgViper.ToOptions()
	cfg.Update(opts)

	// Set HomeDir after config is loaded
	cfg.Update([]config.Option{config.OptHomeDir(homeDir)})

	// Reconfigure logging with user's settings and proper log file location
	if err = reconfigureLogging(cfg); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded", "config_file", config.ConfigFilePath(homeDir))

	return nil
}

// reconfigureLogging reinitializes the logger with the loaded
// configuration. It appends so the entries written during bootstrap
// survive.
func reconfigureLogging(cfg *config.Config) error {
	logDir := config.LogDir(cfg.HomeDir)
	return iologger.Init(logDir, cfg.Log, true)
}

func runRoot(cmd *cobra.Command, args []string) error {
	return cmd.Help()
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := getRootCmd().Execute()
	if err != nil {
		os.Exit(1)
	}
}

func initConfig(home string) (*config.Config, error) {
	var err error
	cfgPath := config.ConfigFilePath(home)
	v := viper.New()
	v.SetConfigFile(cfgPath)

	initEnvVars(v)

	if err = v.ReadInConfig(); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	var res config.Config
	if err = v.Unmarshal(&res); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	return &res, nil
}

func initEnvVars(v *viper.Viper) {
	// Set environment variables we want.
	// We set them manually so we can see clearly which env variables are allowed.
	// These match the fields included in config.ToOptions() - i.e., persistent
	// configuration that can be stored in config.yaml.
	v.SetEnvPrefix("ECDA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Forecast configuration
	v.BindEnv("forecast.years", "FORECAST_YEARS")
	v.BindEnv("forecast.capacity", "FORECAST_CAPACITY")
	v.BindEnv("forecast.min_age_months", "FORECAST_MIN_AGE_MONTHS")
	v.BindEnv("forecast.max_age_months", "FORECAST_MAX_AGE_MONTHS")
	v.BindEnv("forecast.current_year", "FORECAST_CURRENT_YEAR")

	// Data file configuration
	v.BindEnv("data.fertility_file", "DATA_FERTILITY_FILE")
	v.BindEnv("data.housing_file", "DATA_HOUSING_FILE")
	v.BindEnv("data.residents_file", "DATA_RESIDENTS_FILE")
	v.BindEnv("data.residents_sheet", "DATA_RESIDENTS_SHEET")
	v.BindEnv("data.residents_header_row", "DATA_RESIDENTS_HEADER_ROW")
	v.BindEnv("data.centres_file", "DATA_CENTRES_FILE")
	v.BindEnv("data.processed_centres_file", "DATA_PROCESSED_CENTRES_FILE")
	v.BindEnv("data.subzones_file", "DATA_SUBZONES_FILE")

	// Geocoder configuration
	v.BindEnv("geocoder.search_url", "GEOCODER_SEARCH_URL")
	v.BindEnv("geocoder.token", "GEOCODER_TOKEN")
	v.BindEnv("geocoder.cache_size", "GEOCODER_CACHE_SIZE")

	// Store and server configuration
	v.BindEnv("store.file", "STORE_FILE")
	v.BindEnv("server.port", "SERVER_PORT")

	// Log configuration
	v.BindEnv("log.level", "LOG_LEVEL")
	v.BindEnv("log.format", "LOG_FORMAT")
	v.BindEnv("log.destination", "LOG_DESTINATION")

	// General configuration
	v.BindEnv("jobs_number", "JOBS_NUMBER")

	v.AutomaticEnv()
}
