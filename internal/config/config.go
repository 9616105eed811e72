package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App struct {
		Name string `envconfig:"APP_NAME" default:"Inventory Console API"`
		Port int    `envconfig:"PORT" default:"3000"`
	}

	DB struct {
		URL      string `envconfig:"DATABASE_URL"`
		Host     string `envconfig:"DB_HOST" default:"localhost"`
		Port     int    `envconfig:"DB_PORT" default:"5432"`
		User     string `envconfig:"DB_USER" default:"postgres"`
		Password string `envconfig:"DB_PASSWORD" default:""`
		Name     string `envconfig:"DB_NAME" default:"inventory"`
	}

	JWT struct {
		Secret string        `envconfig:"JWT_SECRET" default:"change-me-in-production"`
		TTL    time.Duration `envconfig:"JWT_TTL" default:"24h"`
	}

	// Reporting timezone for daily rollups. Never taken from the server's
	// ambient local time.
	Report struct {
		Timezone string `envconfig:"REPORT_TIMEZONE" default:"UTC"`
	}

	Stock struct {
		LowStockThreshold int           `envconfig:"LOW_STOCK_THRESHOLD" default:"5"`
		LockTimeout       time.Duration `envconfig:"STOCK_LOCK_TIMEOUT" default:"3s"`
	}

	Redis struct {
		Addr     string        `envconfig:"REDIS_ADDR"` // empty disables caching
		Password string        `envconfig:"REDIS_PASSWORD"`
		StatsTTL time.Duration `envconfig:"REDIS_STATS_TTL" default:"30s"`
	}
}

// DSN returns DATABASE_URL when set, otherwise builds one from the parts.
func (c *Config) DSN() string {
	if c.DB.URL != "" {
		return c.DB.URL
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%d sslmode=disable TimeZone=%s",
		c.DB.Host, c.DB.User, c.DB.Password, c.DB.Name, c.DB.Port, c.Report.Timezone,
	)
}

// ReportLocation resolves the configured reporting timezone.
func (c *Config) ReportLocation() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Report.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid REPORT_TIMEZONE %q: %w", c.Report.Timezone, err)
	}
	return loc, nil
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process config: %w", err)
	}
	return &cfg, nil
}
