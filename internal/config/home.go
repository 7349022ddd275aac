package config

import (
	"os"
	"path/filepath"
)

// ConfigEnvVar overrides the config file location.
const ConfigEnvVar = "FILEKIT_CONFIG"

// ResolvePath picks the config file to load.
// Priority order:
//  1. explicit path (the --config flag)
//  2. FILEKIT_CONFIG environment variable
//  3. .filekit/config.yaml in the working directory
//  4. .filekit/config.yaml in the user's home directory
//
// When no candidate exists the working-directory path is returned; loading
// it yields the defaults.
func ResolvePath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if env := os.Getenv(ConfigEnvVar); env != "" {
		return env
	}

	local := filepath.Join(".filekit", "config.yaml")
	if _, err := os.Stat(local); err == nil {
		return local
	}

	if home, err := os.UserHomeDir(); err == nil {
		global := filepath.Join(home, ".filekit", "config.yaml")
		if _, err := os.Stat(global); err == nil {
			return global
		}
	}

	return local
}
