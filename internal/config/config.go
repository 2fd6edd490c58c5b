// Package config loads runtime settings from the environment and an optional .env file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Host string
	Port int

	StoreDriver string
	DBPath      string
	CSVPath     string
	DatabaseURL string

	SecretKey       string
	Location        *time.Location
	DefaultLanguage string

	LogLevel    string
	Environment string

	OpenBrowser         bool
	SubmitRatePerMinute int
}

func (cfg *Config) ListenAddr() string {
	return fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
}

func (cfg *Config) BaseURL() string {
	host := cfg.Host
	if host == "" || host == "0.0.0.0" {
		host = "127.0.0.1"
	}
	return fmt.Sprintf("http://%s:%d/", host, cfg.Port)
}

// Load reads .env (if present) without overriding variables already set.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return FromEnv(os.Getenv)
}

func FromEnv(getenv func(string) string) (*Config, error) {
	env := func(key string, fallback string) string {
		if value := strings.TrimSpace(getenv(key)); value != "" {
			return value
		}
		return fallback
	}

	cfg := &Config{
		Host:            env("HOST", "127.0.0.1"),
		StoreDriver:     strings.ToLower(env("STORE_DRIVER", "sqlite")),
		DBPath:          env("DB_PATH", filepath.Join("data", "cyclenote.db")),
		CSVPath:         env("CSV_PATH", filepath.Join("data", "period_data.csv")),
		DatabaseURL:     env("DATABASE_URL", ""),
		SecretKey:       env("SECRET_KEY", "change_me_in_production"),
		DefaultLanguage: strings.ToLower(env("DEFAULT_LANGUAGE", "en")),
		LogLevel:        strings.ToLower(env("LOG_LEVEL", "info")),
		Environment:     strings.ToLower(env("ENVIRONMENT", "development")),
	}

	var err error
	if cfg.Port, err = strconv.Atoi(env("PORT", "5000")); err != nil || cfg.Port <= 0 || cfg.Port > 65535 {
		return nil, fmt.Errorf("invalid PORT %q", getenv("PORT"))
	}

	switch cfg.StoreDriver {
	case "sqlite", "csv", "memory":
	case "postgres":
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("DATABASE_URL is required when STORE_DRIVER=postgres")
		}
	default:
		return nil, fmt.Errorf("invalid STORE_DRIVER %q", cfg.StoreDriver)
	}

	tz := env("TZ", "UTC")
	if cfg.Location, err = time.LoadLocation(tz); err != nil {
		return nil, fmt.Errorf("invalid TZ %q: %w", tz, err)
	}

	if cfg.OpenBrowser, err = strconv.ParseBool(env("OPEN_BROWSER", "false")); err != nil {
		return nil, fmt.Errorf("invalid OPEN_BROWSER: %w", err)
	}

	if cfg.SubmitRatePerMinute, err = strconv.Atoi(env("SUBMIT_RATE_PER_MINUTE", "30")); err != nil || cfg.SubmitRatePerMinute < 0 {
		return nil, fmt.Errorf("invalid SUBMIT_RATE_PER_MINUTE %q", getenv("SUBMIT_RATE_PER_MINUTE"))
	}

	return cfg, nil
}
