package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Empty(t, cfg.API.BaseURL)
	assert.Equal(t, DefaultTimeoutSeconds, cfg.API.TimeoutSeconds)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, DefaultCacheTTLSeconds, cfg.Cache.TTLSeconds)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "table", cfg.Output.Format)
	assert.Equal(t, DefaultPageSize, cfg.Output.PageSize)
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultCacheTTLSeconds, cfg.Cache.TTLSeconds)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
api:
  base_url: https://api.securion.example
  token: tok_abc123
  timeout_seconds: 10
cache:
  enabled: false
  ttl_seconds: 60
  max_entries: 50
logging:
  level: debug
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://api.securion.example", cfg.API.BaseURL)
	assert.Equal(t, "tok_abc123", cfg.API.Token)
	assert.Equal(t, 10, cfg.API.TimeoutSeconds)
	assert.False(t, cfg.Cache.Enabled)
	assert.Equal(t, 60, cfg.Cache.TTLSeconds)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api:\n  base_url: https://file.example\n"), 0600))

	t.Setenv(EnvAPIBaseURL, "https://env.example")
	t.Setenv(EnvCacheTTLSeconds, "120")
	t.Setenv(EnvCacheEnabled, "false")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "https://env.example", cfg.API.BaseURL)
	assert.Equal(t, 120, cfg.Cache.TTLSeconds)
	assert.False(t, cfg.Cache.Enabled)
}

func TestLoad_InvalidEnvTTLIgnored(t *testing.T) {
	t.Setenv(EnvCacheTTLSeconds, "not-a-number")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultCacheTTLSeconds, cfg.Cache.TTLSeconds)
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("api: [broken"), 0600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr error
	}{
		{
			name:   "valid",
			mutate: func(c *Config) { c.API.BaseURL = "https://api.example" },
		},
		{
			name:    "missing base url",
			mutate:  func(_ *Config) {},
			wantErr: ErrMissingBaseURL,
		},
		{
			name: "zero timeout",
			mutate: func(c *Config) {
				c.API.BaseURL = "https://api.example"
				c.API.TimeoutSeconds = 0
			},
			wantErr: ErrInvalidTimeout,
		},
		{
			name: "ttl out of range",
			mutate: func(c *Config) {
				c.API.BaseURL = "https://api.example"
				c.Cache.TTLSeconds = MaxCacheTTLSeconds + 1
			},
			wantErr: ErrInvalidTTL,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := cfg.Validate()
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCacheTTL_FlagPrecedence(t *testing.T) {
	cfg := Default()
	cfg.Cache.TTLSeconds = 300

	assert.Equal(t, 300*time.Second, cfg.CacheTTL(0))
	assert.Equal(t, 45*time.Second, cfg.CacheTTL(45))
}

func TestWriteRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")

	cfg := Default()
	cfg.API.BaseURL = "https://api.securion.example"
	cfg.API.Token = "tok_secret"
	require.NoError(t, cfg.Write(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg.API.BaseURL, loaded.API.BaseURL)
	assert.Equal(t, cfg.API.Token, loaded.API.Token)
}

func TestDir_EnvOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvConfigDir, dir)

	assert.Equal(t, dir, Dir())
	assert.Equal(t, filepath.Join(dir, "config.yaml"), Path())
}
