// Package llm provides the chat-completion gateway: provider backends, response
// caching, the temperature-stripping retry and resilient JSON recovery.
package llm

import (
	"log/slog"
	"net/http"
	"time"
)

// Provider represents an LLM provider
type Provider string

// Provider constants define supported LLM providers
const (
	// ProviderOpenAI is any OpenAI-compatible chat completions endpoint
	ProviderOpenAI Provider = "openai"
	// ProviderGemini is the Google Gemini provider
	ProviderGemini Provider = "gemini"
)

// Cache backends.
const (
	CacheBackendDir    = "dir"
	CacheBackendSQLite = "sqlite"
	CacheBackendNone   = "none"
)

// Defaults applied by DefaultConfig.
const (
	DefaultCacheTTL = 180 * time.Second
	DefaultCacheDir = ".cache_llm"
)

var defaultModels = map[Provider]string{
	ProviderOpenAI: "gpt-4o-mini",
	ProviderGemini: "gemini-2.5-flash",
}

// DefaultModel returns the default model for a provider, or "" if unknown.
func DefaultModel(p Provider) string {
	return defaultModels[p]
}

// Config holds gateway configuration.
type Config struct {
	Provider     Provider
	Model        string
	APIKey       string
	BaseURL      string
	CacheDir     string
	CacheBackend string
	CacheTTL     time.Duration

	// Optional collaborators. When nil, the gateway builds them from the fields above.
	Backend    Backend
	Cache      Cache
	HTTPClient *http.Client
	Logger     *slog.Logger
}

// DefaultConfig returns the default configuration (OpenAI-compatible, directory cache).
func DefaultConfig() *Config {
	return &Config{
		Provider:     ProviderOpenAI,
		Model:        DefaultModel(ProviderOpenAI),
		CacheDir:     DefaultCacheDir,
		CacheBackend: CacheBackendDir,
		CacheTTL:     DefaultCacheTTL,
	}
}

// withDefaults fills zero-valued fields.
func (c Config) withDefaults() Config {
	if c.Provider == "" {
		c.Provider = ProviderOpenAI
	}
	if c.Model == "" {
		c.Model = DefaultModel(c.Provider)
	}
	if c.CacheTTL <= 0 {
		c.CacheTTL = DefaultCacheTTL
	}
	if c.CacheBackend == "" {
		c.CacheBackend = CacheBackendDir
	}
	if c.CacheDir == "" {
		c.CacheDir = DefaultCacheDir
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return c
}
