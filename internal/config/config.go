package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Server    ServerConfig
	Catalog   CatalogConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Port string
	Host string
	Env  string
}

type CatalogConfig struct {
	ProductsFile string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type RateLimitConfig struct {
	MaxRequests int
	Window      time.Duration
}

// Load reads configuration from the environment, with a .env file as an
// optional source for local development
func Load() (*Config, error) {
	// A missing .env file is fine; real deployments set the environment
	// directly.
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "3001"),
			Host: getEnv("HOST", "localhost"),
			Env:  getEnv("APP_ENV", "development"),
		},
		Catalog: CatalogConfig{
			ProductsFile: getEnv("PRODUCTS_FILE", "data/products.json"),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvList("CORS_ALLOWED_ORIGINS", []string{
				"http://localhost:3000",
				"http://localhost:5173",
				"http://127.0.0.1:3000",
				"http://127.0.0.1:5173",
			}),
		},
		RateLimit: RateLimitConfig{
			MaxRequests: getEnvInt("RATE_LIMIT_MAX_REQUESTS", 100),
			Window:      getEnvDuration("RATE_LIMIT_WINDOW", 15*time.Minute),
		},
	}

	return cfg, nil
}

// IsDevelopment returns true when running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvList(key string, defaultValue []string) []string {
	if value := os.Getenv(key); value != "" {
		parts := strings.Split(value, ",")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}
		return parts
	}
	return defaultValue
}
