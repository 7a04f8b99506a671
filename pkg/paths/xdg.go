// Package paths resolves the per-user directories covview reads and writes.
//
// Resolution order:
// 1. COVVIEW_HOME (portable root) → $COVVIEW_HOME/{config,state}
// 2. XDG env vars → $XDG_*_HOME/covview
// 3. Platform defaults → ~/.config/covview, ~/.local/state/covview
package paths

import (
	"os"
	"path/filepath"
)

const (
	appName = "covview"
	homeEnv = "COVVIEW_HOME"
)

func resolve(sub, xdgEnv string, fallback ...string) string {
	if root := os.Getenv(homeEnv); root != "" {
		return filepath.Join(root, sub)
	}
	if base := os.Getenv(xdgEnv); base != "" {
		return filepath.Join(base, appName)
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(append(append([]string{homeDir}, fallback...), appName)...)
}

// ConfigDir holds the global covview.yml.
func ConfigDir() string {
	return resolve("config", "XDG_CONFIG_HOME", ".config")
}

// StateDir is the fallback for logs when there is no working directory.
func StateDir() string {
	return resolve("state", "XDG_STATE_HOME", ".local", "state")
}

// GlobalConfigFile returns the path of the global covview.yml, or "" when
// no home directory can be determined.
func GlobalConfigFile() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "covview.yml")
}
