package config

import (
	"path/filepath"
)

var (
	// AppName is used in generating file system paths.
	AppName = "ecda"
)

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/ecda by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// CacheDir returns the directory path for cache files.
// Returns ~/.cache/ecda by default.
func CacheDir(homeDir string) string {
	return filepath.Join(homeDir, ".cache", AppName)
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/ecda/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName, "logs")
}

// ConfigFilePath returns the full path to the config.yaml file.
// Returns ~/.config/ecda/config.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}

// StoreFilePath returns the default SQLite path for saved forecast runs.
// Returns ~/.cache/ecda/runs.sqlite by default. Config.Store.File
// overrides it when set.
func StoreFilePath(homeDir string) string {
	return filepath.Join(CacheDir(homeDir), "runs.sqlite")
}
