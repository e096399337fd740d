// Package config provides centralized configuration management.
// All environment lookups live here instead of being scattered
// across commands and controllers.
package config

import (
	"os"
	"path/filepath"
	"sync"
)

// DefaultAPIBase is the development backend address used when no
// override is present.
const DefaultAPIBase = "http://localhost:8000"

// Env holds all sweetshop environment variables.
type Env struct {
	// APIBase is the backend base URL (SWEETSHOP_API_BASE).
	// Resolved once at startup; trailing slashes are stripped.
	APIBase string

	// Username is an optional default login name (SWEETSHOP_USER).
	Username string

	// Debug enables verbose structured logging (SWEETSHOP_DEBUG).
	Debug bool
}

var (
	env     *Env
	envOnce sync.Once
)

// Get returns the singleton environment configuration.
// Thread-safe, loads once on first call.
func Get() *Env {
	envOnce.Do(func() {
		env = &Env{
			APIBase:  trimSlash(getEnvDefault("SWEETSHOP_API_BASE", DefaultAPIBase)),
			Username: os.Getenv("SWEETSHOP_USER"),
			Debug:    os.Getenv("SWEETSHOP_DEBUG") == "1",
		}
	})
	return env
}

// Reset resets the cached environment (for testing).
func Reset() {
	envOnce = sync.Once{}
	env = nil
}

func getEnvDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func trimSlash(s string) string {
	for len(s) > 0 && s[len(s)-1] == '/' {
		s = s[:len(s)-1]
	}
	return s
}

// Paths holds standard sweetshop directory paths.
type Paths struct {
	// Home is the sweetshop home directory (~/.sweetshop)
	Home string

	// Data is the data directory (~/.sweetshop/data)
	Data string
}

var (
	paths     *Paths
	pathsOnce sync.Once
)

// GetPaths returns the singleton paths configuration.
func GetPaths() *Paths {
	pathsOnce.Do(func() {
		home, err := os.UserHomeDir()
		if err != nil {
			home = "."
		}
		shopHome := filepath.Join(home, ".sweetshop")

		paths = &Paths{
			Home: shopHome,
			Data: filepath.Join(shopHome, "data"),
		}
	})
	return paths
}

// Path returns a path under the sweetshop home directory.
func Path(parts ...string) string {
	p := GetPaths()
	allParts := append([]string{p.Home}, parts...)
	return filepath.Join(allParts...)
}

// EnsureDir creates a directory if it doesn't exist.
func EnsureDir(path string) error {
	return os.MkdirAll(path, 0755)
}
