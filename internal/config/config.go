package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Common
	Environment string
	LogLevel    string

	// Engine
	Engine EngineConfig

	// Feed
	Feed FeedConfig

	// API
	API APIConfig
}

// EngineConfig holds the metrics engine configuration
type EngineConfig struct {
	RSIPeriod           int
	RSIOversold         float64
	RSIOverbought       float64
	VolumeHorizon       time.Duration
	DefaultTokenSupply  float64
	DefaultExchangeRate float64
}

// FeedConfig holds market data feed configuration
type FeedConfig struct {
	Provider          string // "mock" or "websocket"
	WebSocketURL      string
	ReconnectDelay    time.Duration
	MaxReconnectDelay time.Duration
	MockInterval      time.Duration
	BufferSize        int
}

// APIConfig holds the HTTP read surface configuration
type APIConfig struct {
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

// Load loads configuration from environment variables.
// It automatically loads a .env file if one exists in the current directory.
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	cfg := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		Engine: EngineConfig{
			RSIPeriod:           getEnvAsInt("ENGINE_RSI_PERIOD", 14),
			RSIOversold:         getEnvAsFloat("ENGINE_RSI_OVERSOLD", 30),
			RSIOverbought:       getEnvAsFloat("ENGINE_RSI_OVERBOUGHT", 70),
			VolumeHorizon:       getEnvAsDuration("ENGINE_VOLUME_HORIZON", 24*time.Hour),
			DefaultTokenSupply:  getEnvAsFloat("ENGINE_DEFAULT_TOKEN_SUPPLY", 1_000_000_000),
			DefaultExchangeRate: getEnvAsFloat("ENGINE_DEFAULT_EXCHANGE_RATE", 0),
		},
		Feed: FeedConfig{
			Provider:          getEnv("FEED_PROVIDER", "mock"),
			WebSocketURL:      getEnv("FEED_WS_URL", ""),
			ReconnectDelay:    getEnvAsDuration("FEED_RECONNECT_DELAY", 1*time.Second),
			MaxReconnectDelay: getEnvAsDuration("FEED_MAX_RECONNECT_DELAY", 30*time.Second),
			MockInterval:      getEnvAsDuration("FEED_MOCK_INTERVAL", 500*time.Millisecond),
			BufferSize:        getEnvAsInt("FEED_BUFFER_SIZE", 1000),
		},
		API: APIConfig{
			Port:            getEnvAsInt("API_PORT", 8080),
			ReadTimeout:     getEnvAsDuration("API_READ_TIMEOUT", 10*time.Second),
			WriteTimeout:    getEnvAsDuration("API_WRITE_TIMEOUT", 10*time.Second),
			ShutdownTimeout: getEnvAsDuration("API_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Engine.RSIPeriod < 2 {
		return fmt.Errorf("ENGINE_RSI_PERIOD must be at least 2")
	}
	if c.Engine.RSIOversold >= c.Engine.RSIOverbought {
		return fmt.Errorf("ENGINE_RSI_OVERSOLD must be below ENGINE_RSI_OVERBOUGHT")
	}
	if c.Engine.VolumeHorizon <= 0 {
		return fmt.Errorf("ENGINE_VOLUME_HORIZON must be positive")
	}
	if c.Engine.DefaultTokenSupply <= 0 {
		return fmt.Errorf("ENGINE_DEFAULT_TOKEN_SUPPLY must be positive")
	}
	if c.Feed.Provider == "websocket" && c.Feed.WebSocketURL == "" {
		return fmt.Errorf("FEED_WS_URL is required when FEED_PROVIDER=websocket")
	}
	return nil
}

// Helper functions

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return intValue
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	floatValue, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}
	return floatValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	duration, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return duration
}
