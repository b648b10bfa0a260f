package config_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ahmedmasbah72/gestion-parking/internal/config"
)

// TestLoad_defaults verifies that every env var falls back to its default
// when nothing is set.
func TestLoad_defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("DATA_PATH", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("CORS_ORIGINS", "")
	t.Setenv("TOTAL_SPOTS", "")
	t.Setenv("HOURLY_RATE", "")

	cfg, err := config.Load()

	require.NoError(t, err)
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, "parking.db", cfg.DataPath)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, []string{"http://localhost:5173"}, cfg.CORSOrigins)
	require.Equal(t, 20, cfg.TotalSpots)
	require.Equal(t, 2.0, cfg.HourlyRate)
}

// TestLoad_overrides verifies that all values can be overridden via env vars.
func TestLoad_overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("DATA_PATH", "/var/lib/parking/state.db")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CORS_ORIGINS", "https://app.example.com, https://admin.example.com")
	t.Setenv("TOTAL_SPOTS", "50")
	t.Setenv("HOURLY_RATE", "3.5")

	cfg, err := config.Load()

	require.NoError(t, err)
	require.Equal(t, "9090", cfg.Port)
	require.Equal(t, "/var/lib/parking/state.db", cfg.DataPath)
	require.Equal(t, "debug", cfg.LogLevel)
	require.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.CORSOrigins)
	require.Equal(t, 50, cfg.TotalSpots)
	require.Equal(t, 3.5, cfg.HourlyRate)
}

// TestLoad_invalidTotalSpots verifies that a non-numeric or non-positive
// capacity is rejected with an error naming the variable.
func TestLoad_invalidTotalSpots(t *testing.T) {
	for _, value := range []string{"abc", "0", "-3"} {
		t.Setenv("TOTAL_SPOTS", value)
		t.Setenv("HOURLY_RATE", "")

		_, err := config.Load()

		require.Error(t, err, "TOTAL_SPOTS=%s", value)
		require.ErrorContains(t, err, "TOTAL_SPOTS")
	}
}

// TestLoad_invalidHourlyRate verifies that a non-numeric or non-positive
// rate is rejected with an error naming the variable.
func TestLoad_invalidHourlyRate(t *testing.T) {
	for _, value := range []string{"free", "0", "-2"} {
		t.Setenv("TOTAL_SPOTS", "")
		t.Setenv("HOURLY_RATE", value)

		_, err := config.Load()

		require.Error(t, err, "HOURLY_RATE=%s", value)
		require.ErrorContains(t, err, "HOURLY_RATE")
	}
}
