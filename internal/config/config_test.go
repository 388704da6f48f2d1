package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_ValidJSON(t *testing.T) {
	content := `{
		"provider": "gemini",
		"model": "gemini-2.5-pro",
		"per_role": 5,
		"cache_backend": "sqlite",
		"jobsite_base_url": "https://jobs.test",
		"verbose": true
	}`

	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(content), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "gemini", cfg.Provider)
	assert.Equal(t, "gemini-2.5-pro", cfg.Model)
	assert.Equal(t, 5, cfg.PerRole)
	assert.Equal(t, "sqlite", cfg.CacheBackend)
	assert.Equal(t, "https://jobs.test", cfg.JobSiteBaseURL)
	assert.True(t, cfg.Verbose)
}

func TestLoadConfig_InvalidJSON(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "config.json")
	err := os.WriteFile(tmpFile, []byte(`{ invalid json }`), 0644)
	require.NoError(t, err)

	cfg, err := LoadConfig(tmpFile)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to parse config JSON")
}

func TestLoadConfig_FileNotFound(t *testing.T) {
	cfg, err := LoadConfig("/nonexistent/path/config.json")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "config path is empty")
}

func TestValidate_Defaults(t *testing.T) {
	cfg := Defaults()
	assert.NoError(t, cfg.Validate())
}

func TestValidate_Invalid(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"unknown provider", func(c *Config) { c.Provider = "anthropic" }, "Provider"},
		{"unknown cache backend", func(c *Config) { c.CacheBackend = "redis" }, "CacheBackend"},
		{"bad base url", func(c *Config) { c.JobSiteBaseURL = "not a url" }, "JobSiteBaseURL"},
		{"negative per role", func(c *Config) { c.PerRole = -1 }, "PerRole"},
		{"jitter ratio above one", func(c *Config) { c.JitterRatio = 1.5 }, "JitterRatio"},
		{"too many workers", func(c *Config) { c.Concurrency = 20 }, "Concurrency"},
		{"rate without burst", func(c *Config) { c.Burst = 0 }, "burst"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidate_CacheDirIsFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "cache")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	cfg := Defaults()
	cfg.CacheDir = file
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a directory")
}

func TestMergeWithDefaults(t *testing.T) {
	cfg := &Config{
		Model:   "gpt-4.1",
		PerRole: 4,
		Rate:    0.5,
	}

	merged := cfg.MergeWithDefaults(Defaults())

	assert.Equal(t, "gpt-4.1", merged.Model)
	assert.Equal(t, 4, merged.PerRole)
	assert.Equal(t, 0.5, merged.Rate)
	assert.Equal(t, DefaultProvider, merged.Provider)
	assert.Equal(t, DefaultCacheDir, merged.CacheDir)
	assert.Equal(t, DefaultCacheTTLSeconds, merged.CacheTTLSeconds)
	assert.Equal(t, DefaultJobSiteBaseURL, merged.JobSiteBaseURL)
	assert.Equal(t, DefaultBurst, merged.Burst)
	assert.Equal(t, DefaultJitterRatio, merged.JitterRatio)

	// the receiver is untouched
	assert.Empty(t, cfg.Provider)
}

func TestProviderAPIKey(t *testing.T) {
	cfg := Config{APIKey: "sk-openai", GeminiAPIKey: "gm-key"}
	assert.Equal(t, "sk-openai", cfg.ProviderAPIKey())

	cfg.Provider = "gemini"
	assert.Equal(t, "gm-key", cfg.ProviderAPIKey())
}
