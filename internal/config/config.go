// Package config loads and validates securion CLI configuration from
// ~/.securion/config.yaml with environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Defaults and limits.
const (
	DefaultTimeoutSeconds  = 30
	DefaultCacheTTLSeconds = 300
	MinCacheTTLSeconds     = 1
	MaxCacheTTLSeconds     = 86400
	DefaultCacheMaxEntries = 1024
	DefaultPageSize        = 25

	configFileName = "config.yaml"
)

// Environment variable overrides.
const (
	EnvAPIBaseURL      = "SECURION_API_URL"
	EnvAPIToken        = "SECURION_TOKEN"
	EnvLogLevel        = "SECURION_LOG_LEVEL"
	EnvLogFormat       = "SECURION_LOG_FORMAT"
	EnvCacheTTLSeconds = "SECURION_CACHE_TTL_SECONDS"
	EnvCacheEnabled    = "SECURION_CACHE_ENABLED"
	EnvConfigDir       = "SECURION_CONFIG_DIR"
)

// Validation errors.
var (
	ErrMissingBaseURL = errors.New("api.base_url is required")
	ErrInvalidTTL     = fmt.Errorf("cache.ttl_seconds must be between %d and %d", MinCacheTTLSeconds, MaxCacheTTLSeconds)
	ErrInvalidTimeout = errors.New("api.timeout_seconds must be positive")
)

// APIConfig holds REST backend connection settings.
type APIConfig struct {
	// BaseURL is the backend root, e.g. "https://api.securion.example".
	BaseURL string `yaml:"base_url"`

	// Token is the bearer token attached to every request. Obtaining the
	// token is out of scope; it is treated as an opaque credential.
	Token string `yaml:"token"`

	// TimeoutSeconds bounds each HTTP request.
	TimeoutSeconds int `yaml:"timeout_seconds"`
}

// CacheConfig holds query cache settings.
type CacheConfig struct {
	Enabled    bool `yaml:"enabled"`
	TTLSeconds int  `yaml:"ttl_seconds"`
	MaxEntries int  `yaml:"max_entries"`
}

// LoggingConfig holds log output settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	File   string `yaml:"file"`
}

// OutputConfig holds default rendering settings for list commands.
type OutputConfig struct {
	// Format is "table" or "json".
	Format string `yaml:"format"`

	// PageSize is the default page size for list commands and the
	// interactive browser.
	PageSize int `yaml:"page_size"`
}

// Config is the root configuration object.
type Config struct {
	API     APIConfig     `yaml:"api"`
	Cache   CacheConfig   `yaml:"cache"`
	Logging LoggingConfig `yaml:"logging"`
	Output  OutputConfig  `yaml:"output"`
}

// Default returns a Config populated with defaults. The API base URL is
// intentionally empty: it must come from the config file or environment.
func Default() *Config {
	return &Config{
		API: APIConfig{
			TimeoutSeconds: DefaultTimeoutSeconds,
		},
		Cache: CacheConfig{
			Enabled:    true,
			TTLSeconds: DefaultCacheTTLSeconds,
			MaxEntries: DefaultCacheMaxEntries,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Output: OutputConfig{
			Format:   "table",
			PageSize: DefaultPageSize,
		},
	}
}

// Dir returns the securion config directory, honoring SECURION_CONFIG_DIR.
func Dir() string {
	if dir := os.Getenv(EnvConfigDir); dir != "" {
		return dir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".securion"
	}
	return filepath.Join(home, ".securion")
}

// Path returns the config file path inside Dir.
func Path() string {
	return filepath.Join(Dir(), configFileName)
}

// Load reads config from path, layering it over defaults and applying
// environment overrides. A missing file is not an error — defaults plus
// environment are returned.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if unmarshalErr := yaml.Unmarshal(data, cfg); unmarshalErr != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, unmarshalErr)
		}
	case os.IsNotExist(err):
		// Fall through to env overrides.
	default:
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	cfg.applyEnv()
	return cfg, nil
}

// LoadDefault loads config from the default path.
func LoadDefault() (*Config, error) {
	return Load(Path())
}

func (c *Config) applyEnv() {
	if v := os.Getenv(EnvAPIBaseURL); v != "" {
		c.API.BaseURL = v
	}
	if v := os.Getenv(EnvAPIToken); v != "" {
		c.API.Token = v
	}
	if v := os.Getenv(EnvLogLevel); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv(EnvLogFormat); v != "" {
		c.Logging.Format = v
	}
	if v := os.Getenv(EnvCacheEnabled); v != "" {
		if enabled, err := strconv.ParseBool(v); err == nil {
			c.Cache.Enabled = enabled
		}
	}
	if v := os.Getenv(EnvCacheTTLSeconds); v != "" {
		if ttl, err := strconv.Atoi(v); err == nil && ttl >= MinCacheTTLSeconds && ttl <= MaxCacheTTLSeconds {
			c.Cache.TTLSeconds = ttl
		}
	}
}

// Validate checks the config for values that would break at runtime.
func (c *Config) Validate() error {
	if c.API.BaseURL == "" {
		return ErrMissingBaseURL
	}
	if c.API.TimeoutSeconds <= 0 {
		return ErrInvalidTimeout
	}
	if c.Cache.TTLSeconds < MinCacheTTLSeconds || c.Cache.TTLSeconds > MaxCacheTTLSeconds {
		return fmt.Errorf("%w: got %d", ErrInvalidTTL, c.Cache.TTLSeconds)
	}
	return nil
}

// CacheTTL returns the cache TTL as a duration, with a CLI flag override
// taking precedence over env and file values. A zero flag value means
// "use configured TTL".
func (c *Config) CacheTTL(flagSeconds int) time.Duration {
	if flagSeconds > 0 {
		return time.Duration(flagSeconds) * time.Second
	}
	return time.Duration(c.Cache.TTLSeconds) * time.Second
}

// Timeout returns the per-request HTTP timeout.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.API.TimeoutSeconds) * time.Second
}

// Write persists the config as YAML to path, creating parent directories.
func (c *Config) Write(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}

	// Config holds the API token, keep it private.
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
