package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	StorageMemory   = "memory"
	StoragePostgres = "postgres"
)

var ErrInvalidStorageDriver = errors.New("STORAGE_DRIVER must be 'memory' or 'postgres'")

// Config holds the application settings read at startup
type Config struct {
	Port             string
	Environment      string
	StorageDriver    string
	SeedData         bool
	AuthEnabled      bool
	PermissionsFile  string
	RabbitMQEnabled  bool
	TelemetryEnabled bool
	ShutdownTimeout  time.Duration
	AllowedOrigins   []string
}

// DefaultAllowedOrigins are the local web UI dev servers
var DefaultAllowedOrigins = []string{"http://localhost:3000", "http://localhost:5173"}

// Load reads .env files (if present) and then the environment
func Load(files ...string) (Config, error) {
	if err := godotenv.Load(files...); err != nil {
		log.Printf("Warning: no .env file loaded: %v", err)
	}
	return FromEnv()
}

// FromEnv builds a Config from environment variables with defaults
func FromEnv() (Config, error) {
	cfg := Config{
		Port:            getEnv("PORT", "8080"),
		Environment:     getEnv("ENVIRONMENT", "development"),
		StorageDriver:   strings.ToLower(getEnv("STORAGE_DRIVER", StorageMemory)),
		PermissionsFile: getEnv("PERMISSIONS_FILE", "config/permissions.yml"),
		SeedData:        true,
		ShutdownTimeout: 15 * time.Second,
		AllowedOrigins:  splitList(getEnv("ALLOWED_ORIGINS", strings.Join(DefaultAllowedOrigins, ","))),
	}

	var err error
	if cfg.SeedData, err = getBool("SEED_DATA", true); err != nil {
		return Config{}, err
	}
	if cfg.AuthEnabled, err = getBool("AUTH_ENABLED", false); err != nil {
		return Config{}, err
	}
	if cfg.RabbitMQEnabled, err = getBool("RABBITMQ_ENABLED", false); err != nil {
		return Config{}, err
	}
	if cfg.TelemetryEnabled, err = getBool("TELEMETRY_ENABLED", false); err != nil {
		return Config{}, err
	}

	if v := os.Getenv("SHUTDOWN_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return Config{}, fmt.Errorf("invalid SHUTDOWN_TIMEOUT %q", v)
		}
		cfg.ShutdownTimeout = d
	}

	if cfg.StorageDriver != StorageMemory && cfg.StorageDriver != StoragePostgres {
		return Config{}, ErrInvalidStorageDriver
	}

	return cfg, nil
}

// Addr is the listen address for the HTTP server
func (c Config) Addr() string {
	return ":" + c.Port
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func getBool(key string, fallback bool) (bool, error) {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("invalid %s %q: %w", key, v, err)
	}
	return b, nil
}
