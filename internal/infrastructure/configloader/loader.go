package configloader

import (
	"fmt"
	"os"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// ServerConfig holds server-specific configurations. Timeouts are in seconds.
type ServerConfig struct {
	Port            string `yaml:"port"`
	ReadTimeout     int    `yaml:"readTimeout"`
	WriteTimeout    int    `yaml:"writeTimeout"`
	IdleTimeout     int    `yaml:"idleTimeout"`
	ShutdownTimeout int    `yaml:"shutdownTimeout"`
}

// LoggingConfig holds logging-specific configurations.
type LoggingConfig struct {
	Level string `yaml:"level"` // e.g., "debug", "info", "warn", "error"
}

// NetworksConfig selects the networks documents layered over the bundled one.
type NetworksConfig struct {
	RemoteURL           string `yaml:"remoteURL"`
	RemoteTimeoutMillis int64  `yaml:"remoteTimeoutMillis"`
	OverrideFile        string `yaml:"overrideFile"`
	OverrideDir         string `yaml:"overrideDir"`
	UseTor              bool   `yaml:"useTor"`
}

// CacheConfig holds configuration for the rendered document cache.
type CacheConfig struct {
	DefaultExpirationMinutes int `yaml:"defaultExpirationMinutes"`
	CleanupIntervalMinutes   int `yaml:"cleanupIntervalMinutes"`
}

// RateLimitConfig holds the API token bucket settings.
type RateLimitConfig struct {
	RequestsPerSecond float64 `yaml:"requestsPerSecond"`
	Burst             int     `yaml:"burst"`
}

// CORSConfig lists allowed origins. An empty list allows all origins.
type CORSConfig struct {
	AllowOrigins []string `yaml:"allowOrigins"`
}

// Config is the top-level configuration structure.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Logging   LoggingConfig   `yaml:"logging"`
	Networks  NetworksConfig  `yaml:"networks"`
	Cache     CacheConfig     `yaml:"cache"`
	RateLimit RateLimitConfig `yaml:"rateLimit"`
	CORS      CORSConfig      `yaml:"cors"`
}

// RemoteTimeout returns the remote document timeout as a duration.
func (c *Config) RemoteTimeout() time.Duration {
	return time.Duration(c.Networks.RemoteTimeoutMillis) * time.Millisecond
}

// CacheExpiration returns the cache default expiration as a duration.
func (c *Config) CacheExpiration() time.Duration {
	return time.Duration(c.Cache.DefaultExpirationMinutes) * time.Minute
}

// CacheCleanupInterval returns the cache janitor interval as a duration.
func (c *Config) CacheCleanupInterval() time.Duration {
	return time.Duration(c.Cache.CleanupIntervalMinutes) * time.Minute
}

// Load reads the YAML configuration file from the given path, unmarshals it
// and fills in defaults.
func Load(path string) (*Config, error) {
	logrus.Infof("Loading configuration from path: %s", path)
	data, err := os.ReadFile(path)
	if err != nil {
		logrus.Errorf("Failed to read config file %s: %v", path, err)
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	cfg, err := Parse(data)
	if err != nil {
		logrus.Errorf("Failed to unmarshal config data from %s: %v", path, err)
		return nil, fmt.Errorf("failed to unmarshal config data from %s: %w", path, err)
	}

	logrus.Info("Configuration loaded successfully.")
	return cfg, nil
}

// Parse unmarshals YAML configuration data and fills in defaults.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	if err := applyDefaults(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyDefaults(cfg *Config) error {
	if cfg.Server.Port == "" {
		cfg.Server.Port = "8080"
		logrus.Infof("Server.Port not set, defaulting to %s", cfg.Server.Port)
	}
	if cfg.Server.ReadTimeout <= 0 {
		cfg.Server.ReadTimeout = 10
	}
	if cfg.Server.WriteTimeout <= 0 {
		cfg.Server.WriteTimeout = 10
	}
	if cfg.Server.IdleTimeout <= 0 {
		cfg.Server.IdleTimeout = 60
	}
	if cfg.Server.ShutdownTimeout <= 0 {
		cfg.Server.ShutdownTimeout = 5
	}

	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}

	if cfg.Networks.RemoteTimeoutMillis <= 0 {
		cfg.Networks.RemoteTimeoutMillis = 10000 // 10 seconds
		if cfg.Networks.RemoteURL != "" {
			logrus.Infof("Networks.RemoteTimeoutMillis not set, defaulting to %d ms", cfg.Networks.RemoteTimeoutMillis)
		}
	}

	if cfg.Cache.DefaultExpirationMinutes <= 0 {
		cfg.Cache.DefaultExpirationMinutes = 10
	}
	if cfg.Cache.CleanupIntervalMinutes <= 0 {
		cfg.Cache.CleanupIntervalMinutes = 20
	}

	if cfg.RateLimit.RequestsPerSecond < 0 || cfg.RateLimit.Burst < 0 {
		return fmt.Errorf("rate limit must not be negative (requestsPerSecond=%v, burst=%d)",
			cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.Burst)
	}
	if cfg.RateLimit.RequestsPerSecond == 0 {
		cfg.RateLimit.RequestsPerSecond = 20
		logrus.Infof("RateLimit.RequestsPerSecond not set, defaulting to %v", cfg.RateLimit.RequestsPerSecond)
	}
	if cfg.RateLimit.Burst == 0 {
		cfg.RateLimit.Burst = 40
	}

	if cfg.Networks.OverrideFile != "" && cfg.Networks.OverrideFile == cfg.Networks.OverrideDir {
		logrus.Warnf("Networks.OverrideFile and Networks.OverrideDir both point at %s", cfg.Networks.OverrideFile)
	}
	return nil
}
