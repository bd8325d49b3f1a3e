package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap/zapcore"
)

// ErrInvalidConfig is returned by Validate.
var ErrInvalidConfig = errors.New("invalid configuration")

// Storage drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
	DriverMemory   = "memory"
)

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Title         string        `mapstructure:"title"`          // display title; empty uses the catalog title
	PassThreshold float64       `mapstructure:"pass_threshold"` // fraction of correct answers needed to pass
	TimeLimit     time.Duration `mapstructure:"time_limit"`     // advisory limit, 0 = untimed
	Shuffle       bool          `mapstructure:"shuffle"`        // randomize question order on a fresh start
	StorageKey    string        `mapstructure:"storage_key"`    // key progress is saved under
	Catalog       string        `mapstructure:"catalog"`        // JSON or XLSX catalog; empty = built-in
	Storage       Storage       `mapstructure:"storage"`
	Log           Log           `mapstructure:"log"`
}

// Storage selects the persistence backend.
type Storage struct {
	Driver    string        `mapstructure:"driver"`     // sqlite, postgres, redis or memory
	DSN       string        `mapstructure:"dsn"`        // sqlite path or postgres URL
	RedisAddr string        `mapstructure:"redis_addr"` // host:port
	RedisTTL  time.Duration `mapstructure:"redis_ttl"`  // expiry of saved progress, 0 = never
	Timeout   time.Duration `mapstructure:"timeout"`    // bound on each storage call, 0 = none
}

// Log configures the zap logger.
type Log struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"` // empty = default state dir
}

// Load reads configuration from an optional YAML file and QUIZAPP_*
// environment variables. An explicit path must exist; otherwise
// quizapp.yaml is looked up in the working directory and the user config
// directory.
func Load(path string) (*Config, error) {
	v := viper.New()
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("quizapp")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if dir, err := configDir(); err == nil {
			v.AddConfigPath(dir)
		}
	}

	v.SetDefault("title", "")
	v.SetDefault("pass_threshold", 0.7)
	v.SetDefault("time_limit", "0s")
	v.SetDefault("shuffle", false)
	v.SetDefault("storage_key", "quiz-progress")
	v.SetDefault("catalog", "")
	v.SetDefault("storage.driver", DriverSQLite)
	v.SetDefault("storage.dsn", "")
	v.SetDefault("storage.redis_addr", "localhost:6379")
	v.SetDefault("storage.redis_ttl", "0s")
	v.SetDefault("storage.timeout", "3s")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")

	v.SetEnvPrefix("QUIZAPP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}
	cfg.Storage.Driver = strings.ToLower(strings.TrimSpace(cfg.Storage.Driver))
	return &cfg, nil
}

// Validate reports every invalid setting.
func (c *Config) Validate() error {
	var errs []string

	if !(c.PassThreshold > 0 && c.PassThreshold <= 1) {
		errs = append(errs, fmt.Sprintf("pass_threshold must be in (0, 1], got %v", c.PassThreshold))
	}
	if c.TimeLimit < 0 {
		errs = append(errs, fmt.Sprintf("time_limit must not be negative, got %s", c.TimeLimit))
	}
	if strings.TrimSpace(c.StorageKey) == "" {
		errs = append(errs, "storage_key must not be empty")
	}

	if c.Storage.Timeout < 0 {
		errs = append(errs, fmt.Sprintf("storage.timeout must not be negative, got %s", c.Storage.Timeout))
	}

	switch c.Storage.Driver {
	case DriverSQLite, DriverMemory:
	case DriverPostgres:
		if c.Storage.DSN == "" {
			errs = append(errs, "storage.dsn is required for postgres")
		}
	case DriverRedis:
		if c.Storage.RedisAddr == "" {
			errs = append(errs, "storage.redis_addr is required for redis")
		}
		if c.Storage.RedisTTL < 0 {
			errs = append(errs, "storage.redis_ttl must not be negative")
		}
	default:
		errs = append(errs, fmt.Sprintf("unknown storage.driver %q", c.Storage.Driver))
	}

	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Sprintf("log.level: %v", err))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w:\n  %s", ErrInvalidConfig, strings.Join(errs, "\n  "))
	}
	return nil
}

// configDir returns $XDG_CONFIG_HOME/quizapp, falling back to ~/.config/quizapp.
func configDir() (string, error) {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "quizapp"), nil
}
