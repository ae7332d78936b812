package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Generator GeneratorConfig
	Retrieval RetrievalConfig
	Redis     RedisConfig
	App       AppConfig
}

type ServerConfig struct {
	Port string
}

// GeneratorConfig configures the generative-text service and the output
// of rendered documents.
type GeneratorConfig struct {
	APIKey        string
	BaseURL       string
	Model         string
	OutputDir     string
	RetentionDays int
	// Requests per second allowed against the generative-text service.
	// Zero disables rate limiting.
	RateLimit float64
}

// RetrievalConfig points at the knowledge-retrieval engine.
type RetrievalConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// RedisConfig enables the optional retrieval-result cache when Addr is set.
type RedisConfig struct {
	Addr     string
	Password string
	CacheTTL time.Duration
}

type AppConfig struct {
	Environment string
	LogLevel    string
	Version     string
}

func Load() (*Config, error) {
	// Load .env file if it exists (ignore error in production)
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		Generator: GeneratorConfig{
			APIKey:        getEnv("OPENAI_API_KEY", ""),
			BaseURL:       getEnv("OPENAI_BASE_URL", ""),
			Model:         getEnv("GENERATOR_MODEL", "gpt-4o-mini"),
			OutputDir:     getEnv("OUTPUT_DIR", "./output"),
			RetentionDays: getEnvAsInt("OUTPUT_RETENTION_DAYS", 0),
			RateLimit:     getEnvAsFloat("GENERATOR_RATE_LIMIT", 0),
		},
		Retrieval: RetrievalConfig{
			BaseURL: getEnv("RETRIEVAL_BASE_URL", "http://localhost:9621"),
			APIKey:  getEnv("RETRIEVAL_API_KEY", ""),
			Timeout: time.Duration(getEnvAsInt("RETRIEVAL_TIMEOUT_SECONDS", 120)) * time.Second,
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			CacheTTL: time.Duration(getEnvAsInt("RETRIEVAL_CACHE_TTL_SECONDS", 1800)) * time.Second,
		},
		App: AppConfig{
			Environment: getEnv("APP_ENV", "development"),
			LogLevel:    getEnv("LOG_LEVEL", "info"),
			Version:     getEnv("APP_VERSION", "1.0.0"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if c.Retrieval.BaseURL == "" {
		return fmt.Errorf("RETRIEVAL_BASE_URL is required")
	}

	if c.Generator.OutputDir == "" {
		return fmt.Errorf("OUTPUT_DIR is required")
	}

	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(valueStr)
	if err != nil {
		log.Printf("Warning: Invalid integer for %s, using default: %d", key, defaultValue)
		return defaultValue
	}

	return value
}

func getEnvAsFloat(key string, defaultValue float64) float64 {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}

	value, err := strconv.ParseFloat(valueStr, 64)
	if err != nil {
		log.Printf("Warning: Invalid float for %s, using default: %g", key, defaultValue)
		return defaultValue
	}

	return value
}
