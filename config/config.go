// Package config loads the purse settings from the environment, an optional
// .env file and defaults, in that order of precedence.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable, e.g. PURSE_DATA_DIR.
const EnvPrefix = "PURSE"

// Config holds the purse settings.
type Config struct {
	DataDir      string        `mapstructure:"data_dir"`
	LogLevel     string        `mapstructure:"log_level"`
	LogFormat    string        `mapstructure:"log_format"` // text or json
	TickInterval time.Duration `mapstructure:"tick_interval"`
	QuoteURL     string        `mapstructure:"quote_url"`  // empty for simulated prices
	QuotePath    string        `mapstructure:"quote_path"` // JSONPath of the USD price
	StrictBills  bool          `mapstructure:"strict_bills"`
}

var keys = []string{"data_dir", "log_level", "log_format", "tick_interval", "quote_url", "quote_path", "strict_bills"}

// Load reads the configuration. envFile is loaded first if it exists, it
// never overrides variables already set in the environment.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("cannot load %s: %w", envFile, err)
		}
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetDefault("data_dir", defaultDataDir())
	v.SetDefault("log_level", "warn")
	v.SetDefault("log_format", "text")
	v.SetDefault("tick_interval", "3s")
	v.SetDefault("quote_url", "")
	v.SetDefault("quote_path", "$.{id}.usd")
	v.SetDefault("strict_bills", false)
	v.AutomaticEnv()
	for _, k := range keys {
		_ = v.BindEnv(k)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("cannot decode configuration: %w", err)
	}
	if cfg.TickInterval <= 0 {
		return nil, fmt.Errorf("%s_TICK_INTERVAL must be positive, got %s", EnvPrefix, cfg.TickInterval)
	}
	if cfg.QuoteURL != "" && cfg.QuotePath == "" {
		return nil, fmt.Errorf("%s_QUOTE_PATH is required with %s_QUOTE_URL", EnvPrefix, EnvPrefix)
	}
	return &cfg, nil
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".purse"
	}
	return filepath.Join(home, ".purse")
}

// NewLogger returns a logger writing to w at the configured level and format.
func (c *Config) NewLogger(w io.Writer) (*logrus.Logger, error) {
	log := logrus.New()
	log.SetOutput(w)
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid %s_LOG_LEVEL: %w", EnvPrefix, err)
	}
	log.SetLevel(level)
	switch strings.ToLower(c.LogFormat) {
	case "json":
		log.SetFormatter(&logrus.JSONFormatter{})
	case "text", "":
		log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	default:
		return nil, fmt.Errorf("invalid %s_LOG_FORMAT %q, want text or json", EnvPrefix, c.LogFormat)
	}
	return log, nil
}
