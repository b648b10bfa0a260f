// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Lot defaults, matching the original deployment: 20 spots at 2 currency
// units per hour.
const (
	DefaultTotalSpots = 20
	DefaultHourlyRate = 2
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// DataPath is the path of the bbolt file holding the persisted state.
	// Defaults to "parking.db" in the working directory.
	DataPath string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// TotalSpots is the lot capacity, fixed at startup. Defaults to 20.
	TotalSpots int

	// HourlyRate is the fee per started hour in currency units. Defaults to 2.
	HourlyRate float64
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error for values that are set but not parseable or out of range.
func Load() (Config, error) {
	cfg := Config{
		Port:        getEnv("PORT", "8080"),
		DataPath:    getEnv("DATA_PATH", "parking.db"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		CORSOrigins: splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
	}

	var err error

	cfg.TotalSpots, err = strconv.Atoi(getEnv("TOTAL_SPOTS", strconv.Itoa(DefaultTotalSpots)))
	if err != nil || cfg.TotalSpots < 1 {
		return Config{}, fmt.Errorf("TOTAL_SPOTS must be a positive integer, got %q", os.Getenv("TOTAL_SPOTS"))
	}

	cfg.HourlyRate, err = strconv.ParseFloat(getEnv("HOURLY_RATE", strconv.Itoa(DefaultHourlyRate)), 64)
	if err != nil || cfg.HourlyRate <= 0 {
		return Config{}, fmt.Errorf("HOURLY_RATE must be a positive number, got %q", os.Getenv("HOURLY_RATE"))
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
