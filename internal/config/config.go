package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"go.uber.org/fx"
)

// Config holds all environment-driven settings for the service.
type Config struct {
	Environment string
	HTTPAddr    string

	Database DatabaseConfig
	Logo     LogoConfig
	Trash    TrashConfig
	Tracing  TracingConfig
}

type DatabaseConfig struct {
	// Path is the sqlite database file; ":memory:" is accepted for tests.
	Path string
}

type LogoConfig struct {
	FetchTimeout time.Duration
	CacheTTL     time.Duration
}

type TrashConfig struct {
	RetentionDays int
	SweepInterval time.Duration
}

type TracingConfig struct {
	Enabled          bool
	ServiceName      string
	ServiceVersion   string
	ExporterEndpoint string
	ExporterProtocol string
	SamplingRatio    float64
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(c.Environment, "production")
}

// Load reads configuration from the environment, applying defaults.
func Load() Config {
	return Config{
		Environment: getString("OLIVER_ENV", "development"),
		HTTPAddr:    getString("OLIVER_HTTP_ADDR", ":8080"),
		Database: DatabaseConfig{
			Path: getString("OLIVER_DB_PATH", "oliver.db"),
		},
		Logo: LogoConfig{
			FetchTimeout: getDuration("OLIVER_LOGO_FETCH_TIMEOUT", 10*time.Second),
			CacheTTL:     getDuration("OLIVER_LOGO_CACHE_TTL", 5*time.Minute),
		},
		Trash: TrashConfig{
			RetentionDays: getInt("OLIVER_TRASH_RETENTION_DAYS", 90),
			SweepInterval: getDuration("OLIVER_TRASH_SWEEP_INTERVAL", time.Hour),
		},
		Tracing: TracingConfig{
			Enabled:          getBool("OLIVER_TRACING_ENABLED", false),
			ServiceName:      getString("OLIVER_TRACING_SERVICE_NAME", "oliver"),
			ServiceVersion:   getString("OLIVER_TRACING_SERVICE_VERSION", "dev"),
			ExporterEndpoint: getString("OLIVER_TRACING_EXPORTER_ENDPOINT", ""),
			ExporterProtocol: getString("OLIVER_TRACING_EXPORTER_PROTOCOL", "http"),
			SamplingRatio:    getFloat("OLIVER_TRACING_SAMPLING_RATIO", 1.0),
		},
	}
}

var Module = fx.Module("config",
	fx.Provide(Load),
)

func getString(key, fallback string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}

func getFloat(key string, fallback float64) float64 {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return fallback
	}
	return value
}

func getBool(key string, fallback bool) bool {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return fallback
	}
	return value
}

func getDuration(key string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	value, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}
	return value
}
