package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is stripped from environment overrides, e.g.
// BACKOFFICE_DATABASE__HOST overrides database.host.
const EnvPrefix = "BACKOFFICE_"

// Config holds all configuration for the back office
type Config struct {
	App      AppConfig      `koanf:"app"`
	Database DatabaseConfig `koanf:"database"`
	RabbitMQ RabbitMQConfig `koanf:"rabbitmq"`
	Redis    RedisConfig    `koanf:"redis"`
	Report   ReportConfig   `koanf:"report"`
}

// AppConfig holds process-level settings
type AppConfig struct {
	Name           string        `koanf:"name"`
	HTTPPort       int           `koanf:"http_port"`
	LogLevel       string        `koanf:"log_level"`
	LogFile        string        `koanf:"log_file"`
	Timezone       string        `koanf:"timezone"`
	RequestTimeout time.Duration `koanf:"request_timeout"`
}

// DatabaseConfig holds database connection configuration
type DatabaseConfig struct {
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	User     string `koanf:"user"`
	Password string `koanf:"password"`
	Database string `koanf:"database"`
	MaxConns int32  `koanf:"max_conns"`
	MinConns int32  `koanf:"min_conns"`
}

// RabbitMQConfig holds RabbitMQ connection configuration
type RabbitMQConfig struct {
	Enabled  bool   `koanf:"enabled"`
	Host     string `koanf:"host"`
	Port     int    `koanf:"port"`
	User     string `koanf:"user"`
	Password string `koanf:"password"`
}

// RedisConfig holds the idempotency store settings
type RedisConfig struct {
	Enabled        bool          `koanf:"enabled"`
	Addr           string        `koanf:"addr"`
	Password       string        `koanf:"password"`
	DB             int           `koanf:"db"`
	IdempotencyTTL time.Duration `koanf:"idempotency_ttl"`
}

// ReportConfig carries the placeholder figures shown on the monthly report.
// None of them is derived from data.
type ReportConfig struct {
	RevenueGrowth     float64 `koanf:"revenue_growth"`
	AvgOrderGrowth    float64 `koanf:"avg_order_growth"`
	CustomerGrowth    float64 `koanf:"customer_growth"`
	SatisfactionScore float64 `koanf:"satisfaction_score"`
}

// Default returns the configuration used when a key is absent from every source
func Default() Config {
	return Config{
		App: AppConfig{
			Name:           "restaurant-backoffice",
			HTTPPort:       8080,
			LogLevel:       "info",
			Timezone:       "Local",
			RequestTimeout: 30 * time.Second,
		},
		Database: DatabaseConfig{
			Host:     "localhost",
			Port:     5432,
			User:     "backoffice",
			Database: "backoffice",
			MaxConns: 25,
			MinConns: 5,
		},
		RabbitMQ: RabbitMQConfig{
			Host: "localhost",
			Port: 5672,
			User: "guest",
		},
		Redis: RedisConfig{
			Addr:           "localhost:6379",
			IdempotencyTTL: 24 * time.Hour,
		},
		Report: ReportConfig{
			RevenueGrowth:     12.5,
			AvgOrderGrowth:    4.2,
			CustomerGrowth:    8.1,
			SatisfactionScore: 4.8,
		},
	}
}

// Load reads configuration from a YAML file, then applies BACKOFFICE_*
// environment overrides. A .env file next to the process is loaded first
// when present.
func Load(filename string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	k := koanf.New(".")

	if filename != "" {
		if err := k.Load(file.Provider(filename), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		key := strings.TrimPrefix(s, EnvPrefix)
		return strings.ReplaceAll(strings.ToLower(key), "__", ".")
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to load env overrides: %w", err)
	}

	cfg := Default()
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate rejects configurations the services cannot start with
func (c *Config) Validate() error {
	if c.App.HTTPPort <= 0 || c.App.HTTPPort > 65535 {
		return fmt.Errorf("app.http_port out of range: %d", c.App.HTTPPort)
	}
	if c.Database.Host == "" {
		return errors.New("database.host is required")
	}
	if c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("database.min_conns (%d) exceeds max_conns (%d)", c.Database.MinConns, c.Database.MaxConns)
	}
	if c.RabbitMQ.Enabled && c.RabbitMQ.Host == "" {
		return errors.New("rabbitmq.host is required when rabbitmq is enabled")
	}
	if c.Redis.Enabled && c.Redis.Addr == "" {
		return errors.New("redis.addr is required when redis is enabled")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	return nil
}

// Location resolves app.timezone; report windows and day buckets use it
func (c *Config) Location() (*time.Location, error) {
	if c.App.Timezone == "" || c.App.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid app.timezone %q: %w", c.App.Timezone, err)
	}
	return loc, nil
}

// DatabaseURL returns the PostgreSQL connection URL
func (c *Config) DatabaseURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		c.Database.User,
		c.Database.Password,
		c.Database.Host,
		c.Database.Port,
		c.Database.Database,
	)
}

// RabbitMQURL returns the RabbitMQ connection URL
func (c *Config) RabbitMQURL() string {
	return fmt.Sprintf("amqp://%s:%s@%s:%d/",
		c.RabbitMQ.User,
		c.RabbitMQ.Password,
		c.RabbitMQ.Host,
		c.RabbitMQ.Port,
	)
}
