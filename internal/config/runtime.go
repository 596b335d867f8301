package config

import (
	"os"
	"path/filepath"
)

const defaultRuntimeDir = ".tripsmith"

// GetRuntimePath is used before any config is parsed, to locate the .env file.
func GetRuntimePath() string {
	return resolveRuntimePath(os.Getenv("TRIP_RUNTIME_PATH"))
}

func resolveRuntimePath(path string) string {
	if path == "" {
		path = defaultRuntimeDir
	}

	if !filepath.IsAbs(path) {
		home, _ := os.UserHomeDir()
		path = filepath.Join(home, path)
	}
	return path
}
