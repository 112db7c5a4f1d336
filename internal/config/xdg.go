// Package config provides XDG path helpers.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

const appName = "liftlog"

// xdgDir resolves an XDG base directory from env, falling back to the
// given path segments under the home directory.
func xdgDir(env string, fallback ...string) string {
	if v := os.Getenv(env); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "."
	}
	return filepath.Join(append([]string{home}, fallback...)...)
}

// XDGConfigHome returns the XDG config home or a default fallback.
func XDGConfigHome() string { return xdgDir("XDG_CONFIG_HOME", ".config") }

// XDGDataHome returns the XDG data home or a default fallback.
func XDGDataHome() string { return xdgDir("XDG_DATA_HOME", ".local", "share") }

// XDGStateHome returns the XDG state home or a default fallback.
func XDGStateHome() string { return xdgDir("XDG_STATE_HOME", ".local", "state") }

// DefaultDBPath returns the default path for the SQLite database.
func DefaultDBPath() string {
	return filepath.Join(XDGDataHome(), appName, appName+".db")
}

// DefaultConfigPath returns the default TOML config path.
func DefaultConfigPath() string {
	return filepath.Join(XDGConfigHome(), appName, "config.toml")
}

// DefaultLogPath is the suggested log file. Logs are state, not data, so
// they live apart from the database.
func DefaultLogPath() string {
	return filepath.Join(XDGStateHome(), appName, appName+".log")
}

// ExpandPath replaces a leading "~" with the home directory. Paths from
// the config file are not shell-expanded, so "~/lift.db" would otherwise
// create a directory literally named "~".
func ExpandPath(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
