package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/PabloGalante/agentlink/internal/observability"
)

const (
	IDSourceUUID    = "uuid"
	IDSourceCounter = "counter"
)

type Config struct {
	Port string `yaml:"port"`

	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`

	// Latency is the simulated thinking time before each reply.
	Latency        time.Duration `yaml:"latency"`
	HistoryLimit   int           `yaml:"history_limit"`
	// WelcomeMessage overrides the built-in greeting when set.
	WelcomeMessage string        `yaml:"welcome_message"`
	IDSource       string        `yaml:"id_source"`
}

// Default returns the settings used when nothing is configured.
func Default() *Config {
	return &Config{
		Port:         "8080",
		LogLevel:     "info",
		LogFormat:    "json",
		Latency:      350 * time.Millisecond,
		HistoryLimit: 50,
		IDSource:     IDSourceUUID,
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// Load builds the config from defaults, then the YAML file named by
// AGENTLINK_CONFIG (if any), then AGENTLINK_* env vars.
func Load() (*Config, error) {
	return LoadFile(os.Getenv("AGENTLINK_CONFIG"))
}

// LoadFile is Load with an explicit YAML path; an empty path skips the file.
func LoadFile(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(b, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	c.Port = getEnv("AGENTLINK_PORT", getEnv("PORT", c.Port))
	c.LogLevel = getEnv("AGENTLINK_LOG_LEVEL", c.LogLevel)
	c.LogFormat = getEnv("AGENTLINK_LOG_FORMAT", c.LogFormat)
	c.WelcomeMessage = getEnv("AGENTLINK_WELCOME_MESSAGE", c.WelcomeMessage)
	c.IDSource = getEnv("AGENTLINK_ID_SOURCE", c.IDSource)

	if v := os.Getenv("AGENTLINK_LATENCY"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("AGENTLINK_LATENCY: %w", err)
		}
		c.Latency = d
	}
	if v := os.Getenv("AGENTLINK_HISTORY_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("AGENTLINK_HISTORY_LIMIT: %w", err)
		}
		c.HistoryLimit = n
	}
	return nil
}

// Validate reports the first setting that cannot be used.
func (c *Config) Validate() error {
	if c.Port == "" {
		return errors.New("port must be set")
	}
	if c.Latency < 0 {
		return fmt.Errorf("latency must not be negative, got %s", c.Latency)
	}
	if c.HistoryLimit < 0 {
		return fmt.Errorf("history_limit must not be negative, got %d", c.HistoryLimit)
	}
	if _, err := observability.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	switch c.LogFormat {
	case "json", "text":
	default:
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}
	switch c.IDSource {
	case IDSourceUUID, IDSourceCounter:
	default:
		return fmt.Errorf("unknown id source %q", c.IDSource)
	}
	return nil
}
