package config

import (
	"fmt"
	"os"
	"strconv"
)

// Environment variables read by ApplyEnv.
const (
	EnvOpenAIKey       = "OPENAI_API_KEY"
	EnvOpenAIModel     = "OPENAI_MODEL"
	EnvGeminiKey       = "GEMINI_API_KEY"
	EnvProvider        = "LLM_PROVIDER"
	EnvLLMBaseURL      = "LLM_BASE_URL"
	EnvCacheDir        = "LLM_CACHE_DIR"
	EnvCacheBackend    = "LLM_CACHE_BACKEND"
	EnvCacheTTLSeconds = "LLM_CACHE_TTL_SECONDS"
	EnvJobSiteBaseURL  = "JOBSITE_BASE_URL"
	EnvCrawlRate       = "CRAWL_RATE"
	EnvCrawlBurst      = "CRAWL_BURST"
	EnvCrawlPerRole    = "CRAWL_PER_ROLE"
	EnvDatabaseURL     = "DATABASE_URL"
)

// LookupFunc reports the value of an environment variable. os.LookupEnv satisfies it.
type LookupFunc func(key string) (string, bool)

// ApplyEnv overrides c with every variable set in the process environment.
func (c *Config) ApplyEnv() error {
	return c.ApplyEnvFrom(os.LookupEnv)
}

// ApplyEnvFrom overrides c with every variable lookup reports as set and non-empty.
func (c *Config) ApplyEnvFrom(lookup LookupFunc) error {
	stringVars := []struct {
		key string
		dst *string
	}{
		{EnvOpenAIKey, &c.APIKey},
		{EnvOpenAIModel, &c.Model},
		{EnvGeminiKey, &c.GeminiAPIKey},
		{EnvProvider, &c.Provider},
		{EnvLLMBaseURL, &c.BaseURL},
		{EnvCacheDir, &c.CacheDir},
		{EnvCacheBackend, &c.CacheBackend},
		{EnvJobSiteBaseURL, &c.JobSiteBaseURL},
		{EnvDatabaseURL, &c.DatabaseURL},
	}
	for _, s := range stringVars {
		if v, ok := lookup(s.key); ok && v != "" {
			*s.dst = v
		}
	}

	intVars := []struct {
		key string
		dst *int
	}{
		{EnvCacheTTLSeconds, &c.CacheTTLSeconds},
		{EnvCrawlBurst, &c.Burst},
		{EnvCrawlPerRole, &c.PerRole},
	}
	for _, i := range intVars {
		v, ok := lookup(i.key)
		if !ok || v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %v", i.key, err)
		}
		*i.dst = n
	}

	if v, ok := lookup(EnvCrawlRate); ok && v != "" {
		rate, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("invalid %s: %v", EnvCrawlRate, err)
		}
		if rate <= 0 {
			return fmt.Errorf("%s must be positive, got %v", EnvCrawlRate, rate)
		}
		c.Rate = rate
	}

	return nil
}

// Load builds the effective configuration: the optional JSON file at path,
// then environment overrides, then defaults for anything still unset.
// The result is validated.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if path != "" {
		loaded, err := LoadConfig(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	merged := cfg.MergeWithDefaults(Defaults())
	if err := merged.Validate(); err != nil {
		return nil, err
	}
	return &merged, nil
}
