package config

import (
	"errors"
	"os"
	"strings"

	"github.com/yukikurage/task-tracker-api/internal/constants"
)

var (
	ErrMissingDatabaseURL = errors.New("DATABASE_URL (or MONGO_URI) is required")
	ErrMissingSecretKey   = errors.New("SECRET_KEY is required")
)

type Config struct {
	Port           string
	DatabaseURL    string
	MongoDatabase  string
	SecretKey      string
	GinMode        string
	LogLevel       string
	LogFormat      string
	AllowedOrigins []string
}

// Load reads the configuration from the environment. The store connection
// string and the signing secret have no defaults; a missing value is an error.
func Load() (*Config, error) {
	cfg := &Config{
		Port:           getEnv("PORT", "3000"),
		DatabaseURL:    getEnv("DATABASE_URL", os.Getenv("MONGO_URI")),
		MongoDatabase:  getEnv("MONGO_DATABASE", "tasktracker"),
		SecretKey:      os.Getenv("SECRET_KEY"),
		GinMode:        getEnv("GIN_MODE", "debug"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		LogFormat:      getEnv("LOG_FORMAT", "text"),
		AllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", constants.DefaultAllowedOrigin)),
	}

	if cfg.DatabaseURL == "" {
		return nil, ErrMissingDatabaseURL
	}
	if cfg.SecretKey == "" {
		return nil, ErrMissingSecretKey
	}

	return cfg, nil
}

// Addr returns the listen address for the HTTP server.
func (c *Config) Addr() string {
	return ":" + c.Port
}

func getEnv(key, defaultValue string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return defaultValue
	}
	return value
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			result = append(result, p)
		}
	}
	return result
}
