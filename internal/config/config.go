package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all console settings, populated from environment variables.
type Config struct {
	APIBaseURL string
	APITimeout time.Duration

	HTTPAddr        string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	RefreshInterval time.Duration
	ActiveWindow    time.Duration

	VerifierID string

	// Coverage-area bounding box for submission validation.
	Bounds Bounds

	// Media attachment ceilings for submission validation.
	MaxMediaBytes int64
	MaxMediaFiles int

	// Mapbox geocoding configuration.
	MapboxToken     string
	MapboxEnabled   bool
	MapboxTimeout   time.Duration
	MapboxCacheSize int
}

// Bounds is a geographic bounding box in degrees.
type Bounds struct {
	MinLat float64
	MaxLat float64
	MinLon float64
	MaxLon float64
}

// Contains reports whether the coordinate pair lies inside the box.
func (b Bounds) Contains(lat, lon float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat && lon >= b.MinLon && lon <= b.MaxLon
}

// Load reads configuration from environment variables, applying defaults where
// unset. A .env file in the working directory is loaded first if present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	apiTimeout, err := envDuration("HAZARD_API_TIMEOUT", 15*time.Second)
	if err != nil {
		return nil, err
	}
	shutdownTimeout, err := envDuration("SHUTDOWN_TIMEOUT", 10*time.Second)
	if err != nil {
		return nil, err
	}
	refreshInterval, err := envDuration("REFRESH_INTERVAL", 30*time.Second)
	if err != nil {
		return nil, err
	}
	activeWindow, err := envDuration("ACTIVE_WINDOW", 24*time.Hour)
	if err != nil {
		return nil, err
	}
	mapboxTimeout, err := envDuration("MAPBOX_TIMEOUT", 5*time.Second)
	if err != nil {
		return nil, err
	}

	bounds, err := loadBounds()
	if err != nil {
		return nil, err
	}

	mapboxToken := os.Getenv("MAPBOX_TOKEN")
	mapboxEnabled := mapboxToken != ""
	if v := os.Getenv("MAPBOX_ENABLED"); v != "" {
		mapboxEnabled = v == "true"
	}

	cfg := &Config{
		APIBaseURL:      envOrDefault("HAZARD_API_URL", "http://localhost:8000"),
		APITimeout:      apiTimeout,
		HTTPAddr:        envOrDefault("HTTP_ADDR", ":8080"),
		LogLevel:        envOrDefault("LOG_LEVEL", "info"),
		LogFormat:       envOrDefault("LOG_FORMAT", "json"),
		ShutdownTimeout: shutdownTimeout,
		RefreshInterval: refreshInterval,
		ActiveWindow:    activeWindow,
		VerifierID:      envOrDefault("VERIFIER_ID", "admin"),
		Bounds:          bounds,
		MaxMediaBytes:   envInt64("MAX_MEDIA_BYTES", 10*1024*1024),
		MaxMediaFiles:   envInt("MAX_MEDIA_FILES", 5),

		MapboxToken:     mapboxToken,
		MapboxEnabled:   mapboxEnabled,
		MapboxTimeout:   mapboxTimeout,
		MapboxCacheSize: envInt("MAPBOX_CACHE_SIZE", 1000),
	}

	if cfg.APIBaseURL == "" {
		return nil, errors.New("HAZARD_API_URL is required")
	}
	if cfg.MapboxEnabled && cfg.MapboxToken == "" {
		return nil, errors.New("MAPBOX_ENABLED is true but MAPBOX_TOKEN is not set")
	}

	return cfg, nil
}

// loadBounds reads the coverage bounding box. Defaults cover the Indian
// coastline, matching the remote API's service area.
func loadBounds() (Bounds, error) {
	b := Bounds{
		MinLat: envFloat("BOUNDS_MIN_LAT", 6.5),
		MaxLat: envFloat("BOUNDS_MAX_LAT", 24.5),
		MinLon: envFloat("BOUNDS_MIN_LON", 68.0),
		MaxLon: envFloat("BOUNDS_MAX_LON", 97.5),
	}
	if b.MinLat >= b.MaxLat || b.MinLon >= b.MaxLon {
		return Bounds{}, fmt.Errorf("invalid bounds: min_lat=%v max_lat=%v min_lon=%v max_lon=%v",
			b.MinLat, b.MaxLat, b.MinLon, b.MaxLon)
	}
	return b, nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func envDuration(key string, def time.Duration) (time.Duration, error) {
	s := os.Getenv(key)
	if s == "" {
		return def, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s: %q", key, s)
	}
	return d, nil
}

func envInt(key string, def int) int {
	if s := os.Getenv(key); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 {
			return n
		}
	}
	return def
}

func envInt64(key string, def int64) int64 {
	if s := os.Getenv(key); s != "" {
		if n, err := strconv.ParseInt(s, 10, 64); err == nil && n > 0 {
			return n
		}
	}
	return def
}

func envFloat(key string, def float64) float64 {
	if s := os.Getenv(key); s != "" {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f
		}
	}
	return def
}
