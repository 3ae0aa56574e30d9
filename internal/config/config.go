package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"strings"

	"github.com/joho/godotenv"
	"github.com/lk16/reversi/internal/search"
)

const (
	// MaxGameAgeHours is how long an in-memory game is kept after it was created.
	MaxGameAgeHours = 24

	// DefaultStrategy is used when REVERSI_DEFAULT_STRATEGY is not set.
	DefaultStrategy = search.AdvancedName
)

// ServerConfig holds all configuration values loaded from environment variables.
type ServerConfig struct {
	ServerHost        string
	ServerPort        string
	RedisURL          string
	PostgresURL       string
	BasicAuthUsername string
	BasicAuthPassword string
	Token             string
	Prefork           bool

	// DefaultStrategy is used for new games that don't specify a strategy.
	DefaultStrategy string

	// ParallelSearch searches root moves concurrently.
	ParallelSearch bool

	// Offline keeps analyses in memory instead of Redis and Postgres.
	Offline bool
}

// LoadServerConfig loads configuration from environment variables.
// Variables from a .env file in the working directory are used when they are not set yet.
func LoadServerConfig() *ServerConfig {
	loadDotEnv()

	cfg := &ServerConfig{
		ServerHost:        getEnvMust("REVERSI_SERVER_HOST"),
		ServerPort:        getEnvMust("REVERSI_SERVER_PORT"),
		BasicAuthUsername: getEnvMust("REVERSI_BASIC_AUTH_USER"),
		BasicAuthPassword: getEnvMust("REVERSI_BASIC_AUTH_PASS"),
		Token:             getEnvMust("REVERSI_TOKEN"),
		Prefork:           getEnvMustBool("REVERSI_PREFORK"),
		DefaultStrategy:   getEnvDefault("REVERSI_DEFAULT_STRATEGY", DefaultStrategy),
		ParallelSearch:    getEnvBool("REVERSI_PARALLEL_SEARCH", false),
		Offline:           getEnvBool("REVERSI_OFFLINE", false),
	}

	if err := validateStrategy(cfg.DefaultStrategy); err != nil {
		slog.Error("Cannot load environment variable", "key", "REVERSI_DEFAULT_STRATEGY", "error", err)
		os.Exit(1)
	}

	// External services are not needed when running offline.
	if !cfg.Offline {
		cfg.RedisURL = getEnvMust("REVERSI_REDIS_URL")
		cfg.PostgresURL = getEnvMust("REVERSI_POSTGRES_URL")
	}

	return cfg
}

func validateStrategy(name string) error {
	if !slices.Contains(search.Names(), name) {
		return fmt.Errorf("unknown strategy %q, expected one of: %s", name, strings.Join(search.Names(), ", "))
	}
	return nil
}

func loadDotEnv() {
	err := godotenv.Load()
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		slog.Error("Cannot load .env file", "error", err)
		os.Exit(1)
	}
}

// getEnvMust either returns the environment variable or logs a fatal error if it is not set.
func getEnvMust(key string) string {
	value := os.Getenv(key)
	if value == "" {
		slog.Error("Environment variable is not set", "key", key)
		os.Exit(1)
	}
	return value
}

func getEnvMustBool(key string) bool {
	return parseBool(key, getEnvMust(key))
}

func getEnvDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	return parseBool(key, value)
}

func parseBool(key, value string) bool {
	if value != "true" && value != "false" {
		slog.Error("Cannot load environment variable, it must be \"true\" or \"false\"", "key", key, "value", value)
		os.Exit(1)
	}

	return value == "true"
}
