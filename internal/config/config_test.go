package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testMapboxToken = "pk.test-token"

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8000", cfg.APIBaseURL)
	assert.Equal(t, 15*time.Second, cfg.APITimeout)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 10*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 30*time.Second, cfg.RefreshInterval)
	assert.Equal(t, 24*time.Hour, cfg.ActiveWindow)
	assert.Equal(t, "admin", cfg.VerifierID)
	assert.Equal(t, int64(10*1024*1024), cfg.MaxMediaBytes)
	assert.Equal(t, 5, cfg.MaxMediaFiles)
	assert.Equal(t, Bounds{MinLat: 6.5, MaxLat: 24.5, MinLon: 68.0, MaxLon: 97.5}, cfg.Bounds)
	assert.False(t, cfg.MapboxEnabled)
	assert.Empty(t, cfg.MapboxToken)
	assert.Equal(t, 5*time.Second, cfg.MapboxTimeout)
	assert.Equal(t, 1000, cfg.MapboxCacheSize)
}

func TestLoad_CustomEnv(t *testing.T) {
	t.Setenv("HAZARD_API_URL", "http://hazard-api:9000")
	t.Setenv("HAZARD_API_TIMEOUT", "5s")
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("LOG_FORMAT", "text")
	t.Setenv("SHUTDOWN_TIMEOUT", "30s")
	t.Setenv("REFRESH_INTERVAL", "10s")
	t.Setenv("ACTIVE_WINDOW", "6h")
	t.Setenv("VERIFIER_ID", "ops-7")
	t.Setenv("MAX_MEDIA_BYTES", "1048576")
	t.Setenv("MAX_MEDIA_FILES", "3")
	t.Setenv("MAPBOX_TOKEN", testMapboxToken)
	t.Setenv("MAPBOX_TIMEOUT", "10s")
	t.Setenv("MAPBOX_CACHE_SIZE", "500")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "http://hazard-api:9000", cfg.APIBaseURL)
	assert.Equal(t, 5*time.Second, cfg.APITimeout)
	assert.Equal(t, ":9090", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 10*time.Second, cfg.RefreshInterval)
	assert.Equal(t, 6*time.Hour, cfg.ActiveWindow)
	assert.Equal(t, "ops-7", cfg.VerifierID)
	assert.Equal(t, int64(1048576), cfg.MaxMediaBytes)
	assert.Equal(t, 3, cfg.MaxMediaFiles)
	assert.True(t, cfg.MapboxEnabled)
	assert.Equal(t, testMapboxToken, cfg.MapboxToken)
	assert.Equal(t, 10*time.Second, cfg.MapboxTimeout)
	assert.Equal(t, 500, cfg.MapboxCacheSize)
}

func TestLoad_CustomBounds(t *testing.T) {
	t.Setenv("BOUNDS_MIN_LAT", "-10")
	t.Setenv("BOUNDS_MAX_LAT", "10")
	t.Setenv("BOUNDS_MIN_LON", "100")
	t.Setenv("BOUNDS_MAX_LON", "120")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Bounds{MinLat: -10, MaxLat: 10, MinLon: 100, MaxLon: 120}, cfg.Bounds)
}

func TestLoad_InvalidBounds(t *testing.T) {
	t.Setenv("BOUNDS_MIN_LAT", "30")
	t.Setenv("BOUNDS_MAX_LAT", "10")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid bounds")
}

func TestLoad_InvalidRefreshInterval(t *testing.T) {
	t.Setenv("REFRESH_INTERVAL", "not-a-duration")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "REFRESH_INTERVAL")
}

func TestLoad_MapboxEnabledWithoutToken(t *testing.T) {
	t.Setenv("MAPBOX_ENABLED", "true")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "MAPBOX_TOKEN")
}

func TestBounds_Contains(t *testing.T) {
	b := Bounds{MinLat: 6.5, MaxLat: 24.5, MinLon: 68.0, MaxLon: 97.5}

	tests := []struct {
		name string
		lat  float64
		lon  float64
		want bool
	}{
		{"chennai coast", 13.08, 80.27, true},
		{"southern edge", 6.5, 80.0, true},
		{"north atlantic", 40.0, -70.0, false},
		{"north of box", 30.0, 80.0, false},
		{"west of box", 13.0, 60.0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, b.Contains(tt.lat, tt.lon))
		})
	}
}
