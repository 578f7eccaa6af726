// File: internal/config/config.go
package config

import (
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Preference store backends.
const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
)

// Config holds application configuration.
type Config struct {
	ListenAddress     string
	UpstreamURL       string
	HttpClientTimeout time.Duration
	RenderWait        time.Duration
	Debug             bool

	DefaultCity      string
	PlaceholderImage string
	AssetsDir        string

	PreferenceBackend string
	PreferenceTTL     time.Duration
	DatabaseURL       string

	OtelEnabled        bool
	OtelEndpoint       string // e.g., OTEL_EXPORTER_OTLP_ENDPOINT
	OtelServiceName    string // e.g., OTEL_SERVICE_NAME
	OtelServiceVersion string // e.g., OTEL_SERVICE_VERSION
}

// Load reads configuration from an optional .env file and then environment variables.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Debug("No .env file found, using environment variables only")
	}

	cfg := &Config{
		ListenAddress:     GetEnv("LISTEN_ADDRESS", ":8080"),
		UpstreamURL:       GetEnv("UPSTREAM_URL", "https://meetocure.onrender.com"),
		HttpClientTimeout: getEnvSeconds("HTTP_CLIENT_TIMEOUT_SECONDS", 15),
		RenderWait:        getEnvMillis("RENDER_WAIT_MS", 3000),
		Debug:             getEnvBool("DEBUG", false),

		DefaultCity:      GetEnv("DEFAULT_CITY", "Vijayawada"),
		PlaceholderImage: GetEnv("PLACEHOLDER_IMAGE", "/assets/doctor2.png"),
		AssetsDir:        GetEnv("ASSETS_DIR", ""),

		PreferenceBackend: GetEnv("PREFERENCE_BACKEND", BackendMemory),
		PreferenceTTL:     time.Duration(getEnvInt("PREFERENCE_TTL_HOURS", 720)) * time.Hour,
		DatabaseURL:       GetEnv("DATABASE_URL", ""),

		OtelEnabled:        getEnvBool("OTEL_ENABLED", true),
		OtelEndpoint:       GetEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
		OtelServiceName:    GetEnv("OTEL_SERVICE_NAME", "patient-dashboard"),
		OtelServiceVersion: GetEnv("OTEL_SERVICE_VERSION", "1.0.0"),
	}

	if cfg.PreferenceBackend != BackendMemory && cfg.PreferenceBackend != BackendPostgres {
		return nil, &InvalidError{Key: "PREFERENCE_BACKEND", Value: cfg.PreferenceBackend}
	}
	if cfg.PreferenceBackend == BackendPostgres && cfg.DatabaseURL == "" {
		return nil, &InvalidError{Key: "DATABASE_URL", Value: "", Reason: "required for postgres preference backend"}
	}

	return cfg, nil
}

// InvalidError reports a configuration value that cannot be used.
type InvalidError struct {
	Key    string
	Value  string
	Reason string
}

func (e *InvalidError) Error() string {
	if e.Reason != "" {
		return "invalid config " + e.Key + "=" + strconv.Quote(e.Value) + ": " + e.Reason
	}
	return "invalid config " + e.Key + "=" + strconv.Quote(e.Value)
}

// GetEnv retrieves an environment variable or returns a default value.
func GetEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	n, err := strconv.Atoi(GetEnv(key, strconv.Itoa(fallback)))
	if err != nil {
		return fallback
	}
	return n
}

func getEnvBool(key string, fallback bool) bool {
	b, err := strconv.ParseBool(GetEnv(key, strconv.FormatBool(fallback)))
	if err != nil {
		return fallback
	}
	return b
}

func getEnvSeconds(key string, fallback int) time.Duration {
	return time.Duration(getEnvInt(key, fallback)) * time.Second
}

func getEnvMillis(key string, fallback int) time.Duration {
	return time.Duration(getEnvInt(key, fallback)) * time.Millisecond
}
