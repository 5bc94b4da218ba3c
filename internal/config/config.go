package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds all runtime configuration, loaded from environment variables
type Config struct {
	Port        string `envconfig:"PORT" default:"3000"`
	Environment string `envconfig:"ENVIRONMENT" default:"development"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`

	// Store backend: memory, sqlite, postgres
	DBDriver    string `envconfig:"DB_DRIVER" default:"memory"`
	SQLiteFile  string `envconfig:"SQLITE_FILE" default:"dev.sqlite"`
	DatabaseURL string `envconfig:"DATABASE_URL"`

	NATSURL     string `envconfig:"NATS_URL" default:"nats://localhost:4222"`
	NATSSubject string `envconfig:"NATS_SUBJECT" default:"manch.events"`

	ClickHouseAddr     string `envconfig:"CLICKHOUSE_ADDR" default:"localhost:9000"`
	ClickHouseDB       string `envconfig:"CLICKHOUSE_DB" default:"default"`
	ClickHouseUser     string `envconfig:"CLICKHOUSE_USER" default:"default"`
	ClickHousePassword string `envconfig:"CLICKHOUSE_PASSWORD"`

	AuthentikBaseURL      string `envconfig:"AUTHENTIK_BASE_URL"`
	AuthentikClientID     string `envconfig:"AUTHENTIK_CLIENT_ID"`
	AuthentikClientSecret string `envconfig:"AUTHENTIK_CLIENT_SECRET"`
	AuthentikRedirectURL  string `envconfig:"AUTHENTIK_REDIRECT_URL" default:"http://localhost:3000/auth/callback"`
}

// IsDevelopment reports whether the app runs in local development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "" || c.Environment == "development"
}

// Load reads configuration from the environment, preferring a local .env
// file when present (development convenience, ignored if missing)
func Load() (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	if cfg.DBDriver == "postgres" && cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required for the postgres driver")
	}

	return &cfg, nil
}
