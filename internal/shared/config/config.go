package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"ledgerlink/internal/infrastructure/aggclient"
)

type Config struct {
	Server     ServerConfig
	Aggregator AggregatorConfig
	Poll       PollConfig
	Sync       SyncConfig
	Telemetry  TelemetryConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	AllowedHosts []string
}

type AggregatorConfig struct {
	ClientID     string
	Secret       string
	Environment  string
	BaseURL      string
	Products     []string
	CountryCodes []string
	RedirectURI  string
}

type PollConfig struct {
	MaxAttempts int
	Delay       time.Duration
}

type SyncConfig struct {
	NotReadyDelay       time.Duration
	CappedNotReadyDelay time.Duration
	MaxPages            int
	RecordCap           int
	RecentCount         int
}

type TelemetryConfig struct {
	Enabled      bool
	ServiceName  string
	OTLPEndpoint string
	MetricsPort  string
}

// Load reads configuration from the environment. A .env file in the
// working directory is applied first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	clientID := getEnv("AGG_CLIENT_ID", "")
	if clientID == "" {
		return nil, fmt.Errorf("AGG_CLIENT_ID is required")
	}
	secret := getEnv("AGG_SECRET", "")
	if secret == "" {
		return nil, fmt.Errorf("AGG_SECRET is required")
	}

	env := getEnv("AGG_ENV", aggclient.EnvSandbox)
	switch env {
	case aggclient.EnvSandbox, aggclient.EnvDevelopment, aggclient.EnvProduction:
	default:
		return nil, fmt.Errorf("invalid AGG_ENV %q", env)
	}

	pollAttempts, err := strconv.Atoi(getEnv("POLL_MAX_ATTEMPTS", "20"))
	if err != nil {
		return nil, fmt.Errorf("invalid POLL_MAX_ATTEMPTS: %w", err)
	}
	pollDelay, err := time.ParseDuration(getEnv("POLL_DELAY", "1s"))
	if err != nil {
		return nil, fmt.Errorf("invalid POLL_DELAY: %w", err)
	}

	notReadyDelay, err := time.ParseDuration(getEnv("SYNC_NOT_READY_DELAY", "2s"))
	if err != nil {
		return nil, fmt.Errorf("invalid SYNC_NOT_READY_DELAY: %w", err)
	}
	cappedDelay, err := time.ParseDuration(getEnv("SYNC_CAPPED_NOT_READY_DELAY", "1s"))
	if err != nil {
		return nil, fmt.Errorf("invalid SYNC_CAPPED_NOT_READY_DELAY: %w", err)
	}
	maxPages, err := strconv.Atoi(getEnv("SYNC_MAX_PAGES", "250"))
	if err != nil {
		return nil, fmt.Errorf("invalid SYNC_MAX_PAGES: %w", err)
	}
	recordCap, err := strconv.Atoi(getEnv("SYNC_RECORD_CAP", "100"))
	if err != nil {
		return nil, fmt.Errorf("invalid SYNC_RECORD_CAP: %w", err)
	}
	recentCount, err := strconv.Atoi(getEnv("SYNC_RECENT_COUNT", "8"))
	if err != nil {
		return nil, fmt.Errorf("invalid SYNC_RECENT_COUNT: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:         getEnv("PORT", "8000"),
			Host:         getEnv("HOST", "0.0.0.0"),
			AllowedHosts: splitList(getEnv("ALLOWED_HOSTS", "")),
		},
		Aggregator: AggregatorConfig{
			ClientID:     clientID,
			Secret:       secret,
			Environment:  env,
			BaseURL:      getEnv("AGG_BASE_URL", ""),
			Products:     splitList(getEnv("AGG_PRODUCTS", "transactions")),
			CountryCodes: splitList(getEnv("AGG_COUNTRY_CODES", "US")),
			RedirectURI:  getEnv("AGG_REDIRECT_URI", ""),
		},
		Poll: PollConfig{
			MaxAttempts: pollAttempts,
			Delay:       pollDelay,
		},
		Sync: SyncConfig{
			NotReadyDelay:       notReadyDelay,
			CappedNotReadyDelay: cappedDelay,
			MaxPages:            maxPages,
			RecordCap:           recordCap,
			RecentCount:         recentCount,
		},
		Telemetry: TelemetryConfig{
			Enabled:      getBoolEnv("TELEMETRY_ENABLED", false),
			ServiceName:  getEnv("TELEMETRY_SERVICE_NAME", "ledgerlink-api"),
			OTLPEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
			MetricsPort:  getEnv("METRICS_PORT", "9090"),
		},
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

func splitList(value string) []string {
	if value == "" {
		return nil
	}
	var items []string
	for _, item := range strings.Split(value, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			items = append(items, item)
		}
	}
	return items
}
