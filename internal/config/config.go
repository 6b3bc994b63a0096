package config

import (
	"os"
	"strconv"

	"linfer/internal/errors"
)

// Config represents the complete application configuration
type Config struct {
	Database DatabaseConfig
	Server   ServerConfig
	Analysis AnalysisConfig
}

// DatabaseConfig holds database connection settings
type DatabaseConfig struct {
	URL     string
	Enabled bool // Runs are kept in memory when disabled
}

// ServerConfig holds web server settings
type ServerConfig struct {
	Port string
}

// AnalysisConfig holds pipeline defaults
type AnalysisConfig struct {
	Seed   int64
	Draws  int
	BurnIn int
	Chains int
	Level  float64
}

// Load reads configuration from environment variables and validates it
func Load() (*Config, error) {
	cfg := &Config{
		Database: DatabaseConfig{
			URL:     os.Getenv("DATABASE_URL"),
			Enabled: os.Getenv("DATABASE_URL") != "",
		},
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
		},
		Analysis: AnalysisConfig{
			Seed:   getEnvInt64("ANALYSIS_SEED", 42),
			Draws:  getEnvInt("SAMPLER_DRAWS", 2000),
			BurnIn: getEnvInt("SAMPLER_BURN_IN", 500),
			Chains: getEnvInt("SAMPLER_CHAINS", 4),
			Level:  getEnvFloat("INTERVAL_LEVEL", 0.95),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, errors.WithCode(err, errors.CodeConfig, "invalid configuration")
	}
	return cfg, nil
}

func (c *Config) validate() error {
	if c.Analysis.Draws <= 0 {
		return errors.New(errors.CodeConfig, "SAMPLER_DRAWS must be positive")
	}
	if c.Analysis.BurnIn < 0 {
		return errors.New(errors.CodeConfig, "SAMPLER_BURN_IN must be non-negative")
	}
	if c.Analysis.Chains <= 0 {
		return errors.New(errors.CodeConfig, "SAMPLER_CHAINS must be positive")
	}
	if c.Analysis.Level <= 0 || c.Analysis.Level >= 1 {
		return errors.New(errors.CodeConfig, "INTERVAL_LEVEL must be in (0, 1)")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
