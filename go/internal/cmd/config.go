package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/mcdev12/bowlpool/go/clients/espn_client"
)

type Config struct {
	Server struct {
		Port            string        `yaml:"port" validate:"required,numeric"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" validate:"gt=0"`
	} `yaml:"server"`

	Feed struct {
		BaseURL string        `yaml:"base_url" validate:"required,url"`
		Group   int           `yaml:"group" validate:"gt=0"`
		Timeout time.Duration `yaml:"timeout" validate:"gt=0"`
	} `yaml:"feed"`

	// Events are published only when NATS is enabled.
	NATS struct {
		Enabled bool   `yaml:"enabled"`
		URL     string `yaml:"url" validate:"required_if=Enabled true"`
	} `yaml:"nats"`

	Log struct {
		Level string `yaml:"level" validate:"oneof=trace debug info warn error"`
	} `yaml:"log"`
}

func defaultConfig() *Config {
	var cfg Config
	cfg.Server.Port = "8080"
	cfg.Server.ShutdownTimeout = 10 * time.Second
	cfg.Feed.BaseURL = espn_client.BaseURL
	cfg.Feed.Group = espn_client.FBSGroup
	cfg.Feed.Timeout = 10 * time.Second
	cfg.NATS.URL = nats.DefaultURL
	cfg.Log.Level = "info"
	return &cfg
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

// loadConfig reads the YAML file at path when it exists, then applies env overrides.
func loadConfig(path string) (*Config, error) {
	config := defaultConfig()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("failed to read config file: %w", err)
	default:
		if err := yaml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config: %w", err)
		}
	}

	config.Server.Port = getEnv("PORT", config.Server.Port)
	config.Log.Level = getEnv("LOG_LEVEL", config.Log.Level)
	config.Feed.BaseURL = getEnv("FEED_BASE_URL", config.Feed.BaseURL)
	config.Feed.Group = getEnvAsInt("FEED_GROUP", config.Feed.Group)
	config.Feed.Timeout = getEnvAsDuration("FEED_TIMEOUT", config.Feed.Timeout)
	if url := os.Getenv("NATS_URL"); url != "" {
		config.NATS.Enabled = true
		config.NATS.URL = url
	}

	if err := validator.New().Struct(config); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return config, nil
}

func (c *Config) logLevel() zerolog.Level {
	level, err := zerolog.ParseLevel(c.Log.Level)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}
