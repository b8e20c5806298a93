// Package config provides configuration management for the application.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Cache backend names accepted by cache.backend.
const (
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
)

// Config holds all configuration for the application.
//
//nolint:govet // fieldalignment: Accept minor memory overhead for better readability
type Config struct {
	Server  ServerConfig
	Logging LoggingConfig
	Source  SourceConfig
	YouTube YouTubeConfig
	Cache   CacheConfig
	Metrics MetricsConfig
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	Port            int
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	// APIKeys guard the cache invalidation endpoint. Empty rejects every call.
	APIKeys []string
}

// SourceConfig selects where dashboard data comes from.
type SourceConfig struct {
	CSVPath string
	Default string
	Live    LiveSourceConfig
}

// LiveSourceConfig controls how live rows are handed downstream.
type LiveSourceConfig struct {
	// DropIncomplete drops live rows with a null pub_date or duration, the way
	// the static loader always does. Off by default.
	DropIncomplete bool
}

// YouTubeConfig contains the trending query parameters and credential.
type YouTubeConfig struct {
	APIKey     string
	RegionCode string
	Chart      string
	MaxResults int64
	// Endpoint overrides the API base URL; empty uses Google's.
	Endpoint string
}

// CacheConfig picks the storage behind the static loader's memo.
type CacheConfig struct {
	Backend  string
	RedisURL string
}

// MetricsConfig contains Prometheus exposition configuration.
type MetricsConfig struct {
	Enabled bool
	Path    string
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level string
	File  string
}

// Load loads configuration from an optional .env file, a config file and
// environment variables, in increasing precedence.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	setDefaults()

	viper.SetEnvPrefix("APP")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()
	bindEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		// Config file not found, use defaults and env vars
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate rejects combinations the server cannot start with.
func (c *Config) Validate() error {
	switch c.Source.Default {
	case "static", "live":
	default:
		return fmt.Errorf("source.default must be static or live, got %q", c.Source.Default)
	}

	switch c.Cache.Backend {
	case CacheBackendMemory:
	case CacheBackendRedis:
		if c.Cache.RedisURL == "" {
			return fmt.Errorf("cache.redisurl is required for the redis backend")
		}
	default:
		return fmt.Errorf("unknown cache.backend %q", c.Cache.Backend)
	}

	if c.YouTube.MaxResults < 1 || c.YouTube.MaxResults > 50 {
		return fmt.Errorf("youtube.maxresults must be between 1 and 50, got %d", c.YouTube.MaxResults)
	}

	return nil
}

func setDefaults() {
	// Server
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.readtimeout", 15*time.Second)
	viper.SetDefault("server.writetimeout", 60*time.Second)
	viper.SetDefault("server.shutdowntimeout", 30*time.Second)
	viper.SetDefault("server.apikeys", []string{})

	// Source
	viper.SetDefault("source.csvpath", "youtube_data.csv")
	viper.SetDefault("source.default", "static")
	viper.SetDefault("source.live.dropincomplete", false)

	// YouTube
	viper.SetDefault("youtube.apikey", "")
	viper.SetDefault("youtube.regioncode", "IN")
	viper.SetDefault("youtube.chart", "mostPopular")
	viper.SetDefault("youtube.maxresults", 50)
	viper.SetDefault("youtube.endpoint", "")

	// Cache
	viper.SetDefault("cache.backend", CacheBackendMemory)
	viper.SetDefault("cache.redisurl", "")

	// Metrics
	viper.SetDefault("metrics.enabled", true)
	viper.SetDefault("metrics.path", "/metrics")

	// Logging
	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.file", "")
}

// bindEnv binds nested keys explicitly since AutomaticEnv does not map dots.
func bindEnv() {
	for _, key := range []string{
		"server.port",
		"server.apikeys",
		"source.csvpath",
		"source.default",
		"source.live.dropincomplete",
		"youtube.apikey",
		"youtube.regioncode",
		"youtube.chart",
		"youtube.maxresults",
		"youtube.endpoint",
		"cache.backend",
		"cache.redisurl",
		"metrics.enabled",
		"logging.level",
		"logging.file",
	} {
		_ = viper.BindEnv(key)
	}
}
