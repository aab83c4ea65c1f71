// Package config loads onehabit settings from a YAML file with ONEHABIT_* environment overrides.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/julianstephens/onehabit/internal/constants"
	"github.com/julianstephens/onehabit/internal/utils"
)

const (
	EnvPrefix         = "ONEHABIT_"
	maxConfigFileSize = 1024 * 1024
)

type Config struct {
	Database  DatabaseConfig  `koanf:"database"`
	Profile   ProfileConfig   `koanf:"profile"`
	Log       LogConfig       `koanf:"log"`
	Analytics AnalyticsConfig `koanf:"analytics"`
	Backup    BackupConfig    `koanf:"backup"`
}

type DatabaseConfig struct {
	// Path is a SQLite file path or a postgres:// connection string without credentials
	Path string `koanf:"path"`
}

type ProfileConfig struct {
	User     string `koanf:"user"`
	Timezone string `koanf:"timezone"`
}

type LogConfig struct {
	Level     string `koanf:"level"`
	JSON      bool   `koanf:"json"`
	MaxSizeMB int    `koanf:"max_size_mb"`
}

type AnalyticsConfig struct {
	PatternWindowDays int `koanf:"pattern_window_days"`
	BestDayMinSamples int `koanf:"best_day_min_samples"`
	TrendDays         int `koanf:"trend_days"`
}

type BackupConfig struct {
	Enabled bool `koanf:"enabled"`
	Keep    int  `koanf:"keep"`
}

// Default returns the configuration used when no file or environment overrides are present
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

// Load reads the YAML file at path, if it exists, then applies environment overrides.
//
// Environment variables split on the first underscore after the prefix:
//
//	ONEHABIT_DATABASE_PATH        -> database.path
//	ONEHABIT_LOG_MAX_SIZE_MB      -> log.max_size_mb
//	ONEHABIT_ANALYTICS_TREND_DAYS -> analytics.trend_days
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if path != "" {
		content, err := readConfigFile(ExpandHome(path))
		if err != nil {
			return nil, err
		}
		if content != nil {
			if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
				return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
			}
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// readConfigFile returns nil content when the file does not exist
func readConfigFile(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	if info.Size() > maxConfigFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", info.Size(), maxConfigFileSize)
	}

	content, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return content, nil
}

func envKey(s string) string {
	lower := strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	parts := strings.SplitN(lower, "_", 2)
	if len(parts) == 1 {
		return lower
	}
	return parts[0] + "." + parts[1]
}

func applyDefaults(cfg *Config) {
	if cfg.Database.Path == "" {
		cfg.Database.Path = constants.DefaultConfigPath
	}
	if cfg.Profile.Timezone == "" {
		cfg.Profile.Timezone = constants.DefaultTimezone
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.MaxSizeMB == 0 {
		cfg.Log.MaxSizeMB = 10
	}
	if cfg.Analytics.PatternWindowDays == 0 {
		cfg.Analytics.PatternWindowDays = constants.DefaultPatternWindowDays
	}
	if cfg.Analytics.BestDayMinSamples == 0 {
		cfg.Analytics.BestDayMinSamples = constants.BestDayMinSamples
	}
	if cfg.Analytics.TrendDays == 0 {
		cfg.Analytics.TrendDays = constants.WeeklyTrendDays
	}
	if cfg.Backup.Keep == 0 {
		cfg.Backup.Keep = constants.MaxBackups
	}
}

// Validate checks values that defaults cannot repair
func (c *Config) Validate() error {
	if !utils.ValidateTimezone(c.Profile.Timezone) {
		return fmt.Errorf("invalid timezone %q", c.Profile.Timezone)
	}
	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid log level %q", c.Log.Level)
	}
	if c.Analytics.PatternWindowDays < 1 {
		return fmt.Errorf("analytics.pattern_window_days must be positive")
	}
	if c.Analytics.BestDayMinSamples < 1 {
		return fmt.Errorf("analytics.best_day_min_samples must be positive")
	}
	if c.Analytics.TrendDays < 1 {
		return fmt.Errorf("analytics.trend_days must be positive")
	}
	if c.Backup.Keep < 1 {
		return fmt.Errorf("backup.keep must be positive")
	}
	if c.Log.MaxSizeMB < 1 {
		return fmt.Errorf("log.max_size_mb must be positive")
	}
	return nil
}

// ExpandHome replaces a leading ~ with the user's home directory
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~"))
}
