package model

import (
	"os"
	"path/filepath"
	"time"
)

// Config holds the complete client configuration. It is populated from
// defaults, then the config file (~/.framap/config.yaml), then FRAMAP_*
// environment variables, then CLI flags.
type Config struct {
	API     APIConfig     `yaml:"api" mapstructure:"api"`
	HTTP    HTTPConfig    `yaml:"http" mapstructure:"http"`
	Cache   CacheConfig   `yaml:"cache" mapstructure:"cache"`
	Session SessionConfig `yaml:"session" mapstructure:"session"`
	Output  OutputConfig  `yaml:"output" mapstructure:"output"`
}

// APIConfig locates the FRA backend.
type APIConfig struct {
	BaseURL string `yaml:"base_url" mapstructure:"base_url"`
}

// HTTPConfig tunes the underlying HTTP client.
type HTTPConfig struct {
	Timeout      time.Duration `yaml:"timeout" mapstructure:"timeout"`
	UserAgent    string        `yaml:"user_agent" mapstructure:"user_agent"`
	MaxBodyBytes int64         `yaml:"max_body_bytes" mapstructure:"max_body_bytes"`
	RatePerSec   float64       `yaml:"rate_per_sec" mapstructure:"rate_per_sec"`
	RateBurst    int           `yaml:"rate_burst" mapstructure:"rate_burst"`
	MaxRetries   int           `yaml:"max_retries" mapstructure:"max_retries"`
}

// CacheConfig controls the layered response cache.
type CacheConfig struct {
	Enabled   bool          `yaml:"enabled" mapstructure:"enabled"`
	Dir       string        `yaml:"dir" mapstructure:"dir"`
	MemoryTTL time.Duration `yaml:"memory_ttl" mapstructure:"memory_ttl"`
	DiskTTL   time.Duration `yaml:"disk_ttl" mapstructure:"disk_ttl"`
}

// SessionConfig locates the durable session snapshot.
type SessionConfig struct {
	Path string `yaml:"path" mapstructure:"path"`
}

// OutputConfig controls diagnostics and export defaults.
type OutputConfig struct {
	Verbose   bool   `yaml:"verbose" mapstructure:"verbose"`
	LogLevel  string `yaml:"log_level" mapstructure:"log_level"`
	ExportDir string `yaml:"export_dir" mapstructure:"export_dir"`
}

// DefaultConfig returns sensible defaults. The base URL matches the
// backend's development address.
func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL: "http://localhost:5000",
		},
		HTTP: HTTPConfig{
			Timeout:      30 * time.Second,
			UserAgent:    "framap/0.2 (+https://github.com/anirbansen/framap)",
			MaxBodyBytes: 10_000_000,
			RatePerSec:   5,
			RateBurst:    5,
			MaxRetries:   3,
		},
		Cache: CacheConfig{
			Enabled:   true,
			Dir:       filepath.Join(homeDir(), ".framap", "cache"),
			MemoryTTL: 5 * time.Minute,
			DiskTTL:   time.Hour,
		},
		Session: SessionConfig{
			Path: filepath.Join(homeDir(), ".framap", "auth-storage.json"),
		},
		Output: OutputConfig{
			Verbose:   false,
			LogLevel:  "info",
			ExportDir: ".",
		},
	}
}

func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
