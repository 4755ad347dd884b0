// Package config loads the trivia API configuration from a TOML file and
// environment variables. Environment variables take precedence over the file.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/pelletier/go-toml/v2"
)

// Store drivers
const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

// Config holds the full application configuration
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Store    StoreConfig    `toml:"store"`
	Postgres PostgresConfig `toml:"postgres"`
	Redis    RedisConfig    `toml:"redis"`
}

// ServerConfig holds the HTTP server settings
type ServerConfig struct {
	Addr            string `toml:"addr"`
	ShutdownTimeout string `toml:"shutdown_timeout"`
	LogLevel        string `toml:"log_level"`
	BodyLimit       string `toml:"body_limit"`
}

// StoreConfig selects the storage backend
type StoreConfig struct {
	Driver      string `toml:"driver"`
	SQLitePath  string `toml:"sqlite_path"`
	AutoMigrate bool   `toml:"auto_migrate"`
}

// PostgresConfig holds the configuration for PostgreSQL connection
type PostgresConfig struct {
	Host     string `toml:"host"`
	Port     string `toml:"port"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	DBName   string `toml:"dbname"`
	SSLMode  string `toml:"sslmode"`
}

// RedisConfig holds the Redis configuration. Redis backs quiz history and
// rate limiting and is optional.
type RedisConfig struct {
	Enabled    bool   `toml:"enabled"`
	Host       string `toml:"host"`
	Port       string `toml:"port"`
	Password   string `toml:"password"`
	DB         int    `toml:"db"`
	HistoryTTL string `toml:"history_ttl"`
	RateLimit  int    `toml:"rate_limit"`
	RateWindow string `toml:"rate_window"`
}

// Default returns the configuration used when nothing is overridden
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            ":8080",
			ShutdownTimeout: "10s",
			LogLevel:        "info",
			BodyLimit:       "1M",
		},
		Store: StoreConfig{
			Driver:      DriverPostgres,
			SQLitePath:  "trivia.db",
			AutoMigrate: true,
		},
		Postgres: PostgresConfig{
			Host:     "localhost",
			Port:     "5432",
			User:     "postgres",
			Password: "postgres",
			DBName:   "trivia",
			SSLMode:  "disable",
		},
		Redis: RedisConfig{
			Host:       "localhost",
			Port:       "6379",
			HistoryTTL: "2h",
			RateLimit:  60,
			RateWindow: "1m",
		},
	}
}

// Load reads the configuration file at path, if any, then applies
// environment overrides and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Server.Addr = getEnv("TRIVIA_ADDR", c.Server.Addr)
	c.Server.LogLevel = getEnv("TRIVIA_LOG_LEVEL", c.Server.LogLevel)

	c.Store.Driver = getEnv("TRIVIA_STORE", c.Store.Driver)
	c.Store.SQLitePath = getEnv("TRIVIA_SQLITE_PATH", c.Store.SQLitePath)

	c.Postgres.Host = getEnv("POSTGRES_HOST", c.Postgres.Host)
	c.Postgres.Port = getEnv("POSTGRES_PORT", c.Postgres.Port)
	c.Postgres.User = getEnv("POSTGRES_USER", c.Postgres.User)
	c.Postgres.Password = getEnv("POSTGRES_PASSWORD", c.Postgres.Password)
	c.Postgres.DBName = getEnv("POSTGRES_DB", c.Postgres.DBName)

	c.Redis.Enabled = getEnvBool("REDIS_ENABLED", c.Redis.Enabled)
	c.Redis.Host = getEnv("REDIS_HOST", c.Redis.Host)
	c.Redis.Port = getEnv("REDIS_PORT", c.Redis.Port)
	c.Redis.Password = getEnv("REDIS_PASSWORD", c.Redis.Password)
}

// Validate checks the configuration for values the server cannot start with
func (c *Config) Validate() error {
	switch c.Store.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("unknown store driver %q", c.Store.Driver)
	}
	if c.Store.Driver == DriverSQLite && c.Store.SQLitePath == "" {
		return fmt.Errorf("store.sqlite_path is required for the sqlite driver")
	}
	if _, err := time.ParseDuration(c.Server.ShutdownTimeout); err != nil {
		return fmt.Errorf("invalid server.shutdown_timeout: %w", err)
	}
	if c.Redis.Enabled {
		if _, err := time.ParseDuration(c.Redis.HistoryTTL); err != nil {
			return fmt.Errorf("invalid redis.history_ttl: %w", err)
		}
		if _, err := time.ParseDuration(c.Redis.RateWindow); err != nil {
			return fmt.Errorf("invalid redis.rate_window: %w", err)
		}
	}
	return nil
}

// ShutdownTimeoutDuration returns the graceful shutdown timeout
func (s ServerConfig) ShutdownTimeoutDuration() time.Duration {
	d, _ := time.ParseDuration(s.ShutdownTimeout)
	return d
}

// DSN builds the pgx connection string
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		p.User,
		p.Password,
		p.Host,
		p.Port,
		p.DBName,
		p.SSLMode,
	)
}

// Addr returns the host:port Redis address
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%s", r.Host, r.Port)
}

// HistoryTTLDuration returns how long quiz history is kept
func (r RedisConfig) HistoryTTLDuration() time.Duration {
	d, _ := time.ParseDuration(r.HistoryTTL)
	return d
}

// RateWindowDuration returns the rate limiting window
func (r RedisConfig) RateWindowDuration() time.Duration {
	d, _ := time.ParseDuration(r.RateWindow)
	return d
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

func getEnvBool(key string, defaultValue bool) bool {
	b, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return defaultValue
	}
	return b
}
