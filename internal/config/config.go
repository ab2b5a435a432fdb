package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port           string
	GinMode        string
	CORSOrigins    []string
	MaxRequestSize int64

	// Langflow upstream
	LangflowBaseURL        string
	LangflowID             string
	FlowID                 string
	ApplicationToken       string
	UpstreamTimeoutSeconds int
	BreakerEnabled         bool

	// Rate limiting (0 requests disables it)
	RateLimitReqs   int
	RateLimitWindow int

	// Redis Configuration
	RedisURL      string
	RedisPassword string
	RedisDB       int

	// OpenTelemetry
	OTelEnabled     bool
	OTelEndpoint    string
	OTelSampleRatio float64
	ServiceName     string

	// Mock analytics data
	MockDataPath  string
	MockDataCount int
	MockDataCron  string
}

func LoadConfig() (*Config, error) {
	// Load .env file if exists
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(); err != nil {
			return nil, fmt.Errorf("error loading .env file: %v", err)
		}
	}

	cfg := &Config{
		Port:           getEnv("PORT", "8080"),
		GinMode:        getEnv("GIN_MODE", "debug"),
		CORSOrigins:    getEnvList("CORS_ORIGINS", "http://localhost:3000,http://localhost:8080"),
		MaxRequestSize: getEnvInt64("MAX_REQUEST_SIZE", 1048576), // 1MB

		LangflowBaseURL:        getEnv("LANGFLOW_BASE_URL", "https://api.langflow.astra.datastax.com"),
		LangflowID:             getEnv("LANGFLOW_ID", "d82ad8fb-94fa-455c-b3d3-62f311febc51"),
		FlowID:                 getEnv("LANGFLOW_FLOW_ID", "3f068f73-d972-4fe4-858e-4ec140d46644"),
		ApplicationToken:       getEnv("ASTRA_DB_APPLICATION_TOKEN", ""),
		UpstreamTimeoutSeconds: getEnvInt("UPSTREAM_TIMEOUT_SECONDS", 0),
		BreakerEnabled:         getEnvBool("RELAY_BREAKER_ENABLED", false),

		RateLimitReqs:   getEnvInt("RATE_LIMIT_REQUESTS", 0),
		RateLimitWindow: getEnvInt("RATE_LIMIT_WINDOW", 60),

		RedisURL:      getEnv("REDIS_URL", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisDB:       getEnvInt("REDIS_DB", 0),

		OTelEnabled:     getEnvBool("OTEL_ENABLED", false),
		OTelEndpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
		OTelSampleRatio: getEnvFloat("OTEL_SAMPLE_RATIO", 0.1),
		ServiceName:     getEnv("OTEL_SERVICE_NAME", "socially"),

		MockDataPath:  getEnv("MOCK_DATA_PATH", "mock_data.csv"),
		MockDataCount: getEnvInt("MOCK_DATA_COUNT", 10),
		MockDataCron:  getEnv("MOCK_DATA_CRON", ""),
	}

	// Validate required fields
	if cfg.ApplicationToken == "" {
		return nil, fmt.Errorf("ASTRA_DB_APPLICATION_TOKEN is required - set it in .env file")
	}

	if cfg.RateLimitReqs < 0 || cfg.RateLimitWindow <= 0 {
		return nil, fmt.Errorf("invalid rate limit: %d requests per %ds", cfg.RateLimitReqs, cfg.RateLimitWindow)
	}

	if cfg.OTelSampleRatio < 0 || cfg.OTelSampleRatio > 1 {
		return nil, fmt.Errorf("OTEL_SAMPLE_RATIO must be within [0, 1], got %g", cfg.OTelSampleRatio)
	}

	if cfg.MockDataCount < 0 {
		return nil, fmt.Errorf("MOCK_DATA_COUNT must be >= 0, got %d", cfg.MockDataCount)
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// getEnvList splits a comma separated value, dropping blanks
func getEnvList(key, defaultValue string) []string {
	var out []string
	for _, item := range strings.Split(getEnv(key, defaultValue), ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
