package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultConfigPath is used when -config is not provided.
	DefaultConfigPath = "config.yml"

	defaultPort             = 8000
	defaultEnv              = "development"
	defaultDatabasePath     = "insights.db"
	defaultDatabaseLogLevel = "warn"
	defaultTimeoutSeconds   = 20
	defaultFallbackTopN     = 5
	defaultMaxUploadMB      = 10
)

// Config holds runtime configuration loaded from YAML and the environment.
type Config struct {
	Port         int        `yaml:"port"`
	Env          string     `yaml:"env"` // "development" | "production"
	Database     Database   `yaml:"database"`
	Summarizer   Summarizer `yaml:"summarizer"`
	FallbackTopN int        `yaml:"fallback_top_n"`
	MaxUploadMB  int        `yaml:"max_upload_mb"`
}

type Database struct {
	Path     string `yaml:"path"`
	LogLevel string `yaml:"log_level"` // silent | error | warn | info
}

// Summarizer configures the remote summarization endpoint. Both APIKey and
// URL must be set for the client to be enabled.
type Summarizer struct {
	APIKey         string `yaml:"api_key"`
	URL            string `yaml:"url"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// Timeout returns the HTTP timeout for a single summarize call.
func (s Summarizer) Timeout() time.Duration {
	if s.TimeoutSeconds <= 0 {
		return defaultTimeoutSeconds * time.Second
	}
	return time.Duration(s.TimeoutSeconds) * time.Second
}

// Load reads the YAML file at path (a missing file is not an error), applies
// environment overrides and fills defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist):
		default:
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	cfg.normalize()
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v, ok := lookupEnv("ENV"); ok {
		cfg.Env = v
	}
	if v, ok := lookupEnv("DATABASE_PATH"); ok {
		cfg.Database.Path = v
	}
	if v, ok := lookupEnv("DATABASE_LOG_LEVEL"); ok {
		cfg.Database.LogLevel = v
	}
	if v, ok := lookupEnv("SUMMARIZER_API_KEY"); ok {
		cfg.Summarizer.APIKey = v
	}
	if v, ok := lookupEnv("SUMMARIZER_URL"); ok {
		cfg.Summarizer.URL = v
	}

	ints := []struct {
		key string
		dst *int
	}{
		{"PORT", &cfg.Port},
		{"SUMMARIZER_TIMEOUT_SECONDS", &cfg.Summarizer.TimeoutSeconds},
		{"FALLBACK_TOP_N", &cfg.FallbackTopN},
		{"MAX_UPLOAD_MB", &cfg.MaxUploadMB},
	}
	for _, it := range ints {
		v, ok := lookupEnv(it.key)
		if !ok {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s %q: %w", it.key, v, err)
		}
		*it.dst = n
	}
	return nil
}

func lookupEnv(key string) (string, bool) {
	v, ok := os.LookupEnv(key)
	if !ok {
		return "", false
	}
	v = strings.TrimSpace(v)
	return v, v != ""
}

func (c *Config) normalize() {
	if c.Port <= 0 {
		c.Port = defaultPort
	}
	c.Env = strings.ToLower(strings.TrimSpace(c.Env))
	if c.Env == "" {
		c.Env = defaultEnv
	}
	if strings.TrimSpace(c.Database.Path) == "" {
		c.Database.Path = defaultDatabasePath
	}
	c.Database.LogLevel = strings.ToLower(strings.TrimSpace(c.Database.LogLevel))
	if c.Database.LogLevel == "" {
		c.Database.LogLevel = defaultDatabaseLogLevel
	}
	c.Summarizer.APIKey = strings.TrimSpace(c.Summarizer.APIKey)
	c.Summarizer.URL = strings.TrimSpace(c.Summarizer.URL)
	if c.Summarizer.TimeoutSeconds <= 0 {
		c.Summarizer.TimeoutSeconds = defaultTimeoutSeconds
	}
	if c.FallbackTopN <= 0 {
		c.FallbackTopN = defaultFallbackTopN
	}
	if c.MaxUploadMB <= 0 {
		c.MaxUploadMB = defaultMaxUploadMB
	}
}

// IsDev reports whether the service runs in development mode.
func (c *Config) IsDev() bool { return c.Env != "production" && c.Env != "prod" }

// Addr returns the listen address.
func (c *Config) Addr() string { return fmt.Sprintf(":%d", c.Port) }

// MaxUploadBytes is the request body limit for uploads.
func (c *Config) MaxUploadBytes() int64 { return int64(c.MaxUploadMB) << 20 }
