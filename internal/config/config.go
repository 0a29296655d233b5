// Package config provides configuration loading and validation for the CLI.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/Priyagaggar/TalentLens-AI/internal/pipeline"
	"github.com/Priyagaggar/TalentLens-AI/internal/ranking"
)

// EnvPrefix is prepended to every environment override, e.g. TALENTLENS_WORKERS
const EnvPrefix = "TALENTLENS"

// DefaultConfigName is the file looked up in the working directory when no path is given
const DefaultConfigName = "talentlens"

// Config holds every tunable of a scoring run.
// All fields are optional; zero values are replaced by defaults on load.
type Config struct {
	// Skill dictionary JSON; empty uses the embedded default
	Dictionary string `mapstructure:"dictionary"`

	// Matching
	ExtractionThreshold int             `mapstructure:"extraction_threshold" validate:"gte=1,lte=100"`
	GapThreshold        int             `mapstructure:"gap_threshold" validate:"gte=1,lte=100"`
	MaxFeatures         int             `mapstructure:"max_features" validate:"gte=1"`
	Weights             ranking.Weights `mapstructure:"weights"`
	ExperienceCap       float64         `mapstructure:"experience_cap" validate:"gt=0"`

	// Concurrency
	Workers int `mapstructure:"workers" validate:"gte=1,lte=256"`

	Redis       RedisConfig  `mapstructure:"redis"`
	DatabaseURL string       `mapstructure:"database_url"`
	Log         LogConfig    `mapstructure:"log"`
	Server      ServerConfig `mapstructure:"server"`
}

// RedisConfig enables the shared extraction cache when Addr is set
type RedisConfig struct {
	Addr     string        `mapstructure:"addr"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db" validate:"gte=0"`
	TTL      time.Duration `mapstructure:"ttl" validate:"gte=0"`
}

// ServerConfig tunes the HTTP API started by "talentlens serve"
type ServerConfig struct {
	Port            int               `mapstructure:"port" validate:"gte=1,lte=65535"`
	MaxFileBytes    int64             `mapstructure:"max_file_bytes" validate:"gte=1"`
	ShutdownTimeout time.Duration     `mapstructure:"shutdown_timeout" validate:"gte=0"`
	RateLimit       RateLimitConfig   `mapstructure:"rate_limit"`
	APIKeys         map[string]string `mapstructure:"api_keys"`
}

// RateLimitConfig bounds requests per client IP. Whitelist and Blacklist are comma-separated IPs.
type RateLimitConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	DefaultLimit int    `mapstructure:"default_limit" validate:"gte=0"`
	Whitelist    string `mapstructure:"whitelist"`
	Blacklist    string `mapstructure:"blacklist"`
}

// LogConfig selects the log encoder and level
type LogConfig struct {
	JSON  bool `mapstructure:"json"`
	Debug bool `mapstructure:"debug"`
}

// Default returns the configuration used when nothing is overridden
func Default() Config {
	opts := pipeline.DefaultOptions()
	return Config{
		ExtractionThreshold: opts.ExtractionThreshold,
		GapThreshold:        opts.GapThreshold,
		MaxFeatures:         opts.MaxFeatures,
		Weights:             opts.Weights,
		ExperienceCap:       opts.ExperienceCap,
		Workers:             opts.Workers,
		Redis:               RedisConfig{TTL: 24 * time.Hour},
		Server: ServerConfig{
			Port:            8080,
			MaxFileBytes:    5 << 20,
			ShutdownTimeout: 30 * time.Second,
			RateLimit:       RateLimitConfig{Enabled: true, DefaultLimit: 600},
		},
	}
}

// Load reads configuration from path (YAML, JSON or TOML by extension) and
// TALENTLENS_* environment variables. An empty path looks for talentlens.yaml in
// the working directory and tolerates its absence.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, Default())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path != "" {
		if !filepath.IsAbs(path) {
			cwd, err := os.Getwd()
			if err != nil {
				return nil, fmt.Errorf("failed to get current directory: %w", err)
			}
			path = filepath.Join(cwd, path)
		}
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	} else {
		v.SetConfigName(DefaultConfigName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

// setDefaults registers every key so AutomaticEnv can override keys absent from the file
func setDefaults(v *viper.Viper, d Config) {
	v.SetDefault("dictionary", d.Dictionary)
	v.SetDefault("extraction_threshold", d.ExtractionThreshold)
	v.SetDefault("gap_threshold", d.GapThreshold)
	v.SetDefault("max_features", d.MaxFeatures)
	v.SetDefault("weights.similarity", d.Weights.Similarity)
	v.SetDefault("weights.skills", d.Weights.Skills)
	v.SetDefault("weights.experience", d.Weights.Experience)
	v.SetDefault("experience_cap", d.ExperienceCap)
	v.SetDefault("workers", d.Workers)
	v.SetDefault("redis.addr", d.Redis.Addr)
	v.SetDefault("redis.password", d.Redis.Password)
	v.SetDefault("redis.db", d.Redis.DB)
	v.SetDefault("redis.ttl", d.Redis.TTL)
	v.SetDefault("database_url", d.DatabaseURL)
	v.SetDefault("log.json", d.Log.JSON)
	v.SetDefault("log.debug", d.Log.Debug)
	v.SetDefault("server.port", d.Server.Port)
	v.SetDefault("server.max_file_bytes", d.Server.MaxFileBytes)
	v.SetDefault("server.shutdown_timeout", d.Server.ShutdownTimeout)
	v.SetDefault("server.rate_limit.enabled", d.Server.RateLimit.Enabled)
	v.SetDefault("server.rate_limit.default_limit", d.Server.RateLimit.DefaultLimit)
	v.SetDefault("server.rate_limit.whitelist", d.Server.RateLimit.Whitelist)
	v.SetDefault("server.rate_limit.blacklist", d.Server.RateLimit.Blacklist)
}

var validate = validator.New()

// Validate checks that the configuration has valid values
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	if c.Dictionary != "" {
		if _, err := os.Stat(c.Dictionary); os.IsNotExist(err) {
			return fmt.Errorf("config error: dictionary file not found: %s", c.Dictionary)
		}
	}

	return nil
}

// MergeWithDefaults returns a new Config with zero-valued fields filled from defaults.
// This is used to apply config file values as defaults for CLI flags.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	if result.Dictionary == "" {
		result.Dictionary = defaults.Dictionary
	}
	if result.DatabaseURL == "" {
		result.DatabaseURL = defaults.DatabaseURL
	}
	if result.Redis.Addr == "" {
		result.Redis.Addr = defaults.Redis.Addr
	}
	if result.Redis.Password == "" {
		result.Redis.Password = defaults.Redis.Password
	}

	// Numeric fields: use default if zero
	if result.ExtractionThreshold == 0 {
		result.ExtractionThreshold = defaults.ExtractionThreshold
	}
	if result.GapThreshold == 0 {
		result.GapThreshold = defaults.GapThreshold
	}
	if result.MaxFeatures == 0 {
		result.MaxFeatures = defaults.MaxFeatures
	}
	if result.ExperienceCap == 0 {
		result.ExperienceCap = defaults.ExperienceCap
	}
	if result.Workers == 0 {
		result.Workers = defaults.Workers
	}
	if result.Redis.DB == 0 {
		result.Redis.DB = defaults.Redis.DB
	}
	if result.Redis.TTL == 0 {
		result.Redis.TTL = defaults.Redis.TTL
	}
	if result.Server.Port == 0 {
		result.Server.Port = defaults.Server.Port
	}
	if result.Server.MaxFileBytes == 0 {
		result.Server.MaxFileBytes = defaults.Server.MaxFileBytes
	}
	if result.Server.ShutdownTimeout == 0 {
		result.Server.ShutdownTimeout = defaults.Server.ShutdownTimeout
	}
	if result.Server.RateLimit.DefaultLimit == 0 {
		result.Server.RateLimit.DefaultLimit = defaults.Server.RateLimit.DefaultLimit
	}
	if result.Server.APIKeys == nil {
		result.Server.APIKeys = defaults.Server.APIKeys
	}

	// Weights are taken as a unit; a partially zero set is a deliberate choice
	if result.Weights == (ranking.Weights{}) {
		result.Weights = defaults.Weights
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

// Options converts the configuration into per-run pipeline options
func (c *Config) Options() pipeline.Options {
	return pipeline.Options{
		ExtractionThreshold: c.ExtractionThreshold,
		GapThreshold:        c.GapThreshold,
		MaxFeatures:         c.MaxFeatures,
		Weights:             c.Weights,
		ExperienceCap:       c.ExperienceCap,
		Workers:             c.Workers,
	}
}
