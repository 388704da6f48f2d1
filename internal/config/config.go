// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-playground/validator/v10"
)

// Defaults used by Defaults and MergeWithDefaults.
const (
	DefaultProvider        = "openai"
	DefaultCacheDir        = ".cache_llm"
	DefaultCacheBackend    = "dir"
	DefaultCacheTTLSeconds = 180
	DefaultJobSiteBaseURL  = "https://www.jobkorea.co.kr"
	DefaultRate            = 1.0
	DefaultBurst           = 2
	DefaultJitterMillis    = 600
	DefaultJitterRatio     = 0.4
	DefaultPerRole         = 2
	DefaultSearchTimeout   = 60
	DefaultDetailTimeout   = 45
	DefaultOptionalAsks    = 0
)

// Config represents the CLI configuration that can be loaded from a JSON file
// and overridden from the environment. Zero values mean "use the default".
type Config struct {
	// LLM gateway
	Provider        string `json:"provider,omitempty" validate:"omitempty,oneof=openai gemini"`
	Model           string `json:"model,omitempty"` // Empty selects the provider default
	APIKey          string `json:"api_key,omitempty"`        // OpenAI-compatible key
	GeminiAPIKey    string `json:"gemini_api_key,omitempty"` // Gemini key
	BaseURL         string `json:"llm_base_url,omitempty" validate:"omitempty,url"`
	CacheDir        string `json:"cache_dir,omitempty"`
	CacheBackend    string `json:"cache_backend,omitempty" validate:"omitempty,oneof=dir sqlite none"`
	CacheTTLSeconds int    `json:"cache_ttl_seconds,omitempty" validate:"gte=0"`

	// Crawling
	JobSiteBaseURL       string  `json:"jobsite_base_url,omitempty" validate:"omitempty,url"`
	PerRole              int     `json:"per_role,omitempty" validate:"gte=0,lte=50"`
	Rate                 float64 `json:"rate,omitempty" validate:"gte=0"`
	Burst                int     `json:"burst,omitempty" validate:"gte=0"`
	JitterMillis         int     `json:"jitter_ms,omitempty" validate:"gte=0"`
	JitterRatio          float64 `json:"jitter_ratio,omitempty" validate:"gte=0,lte=1"`
	Concurrency          int     `json:"concurrency,omitempty" validate:"gte=0,lte=8"`
	SearchTimeoutSeconds int     `json:"search_timeout_seconds,omitempty" validate:"gte=0"`
	DetailTimeoutSeconds int     `json:"detail_timeout_seconds,omitempty" validate:"gte=0"`
	Static               bool    `json:"static,omitempty"` // Plain HTTP pages instead of headless Chrome

	// Dialogue
	OptionalQuestions int `json:"optional_questions,omitempty" validate:"gte=0,lte=6"`

	// Behavior
	Verbose     bool   `json:"verbose,omitempty"`
	DatabaseURL string `json:"database_url,omitempty"` // PostgreSQL connection URL for --save
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Provider:             DefaultProvider,
		CacheDir:             DefaultCacheDir,
		CacheBackend:         DefaultCacheBackend,
		CacheTTLSeconds:      DefaultCacheTTLSeconds,
		JobSiteBaseURL:       DefaultJobSiteBaseURL,
		PerRole:              DefaultPerRole,
		Rate:                 DefaultRate,
		Burst:                DefaultBurst,
		JitterMillis:         DefaultJitterMillis,
		JitterRatio:          DefaultJitterRatio,
		Concurrency:          1,
		SearchTimeoutSeconds: DefaultSearchTimeout,
		DetailTimeoutSeconds: DefaultDetailTimeout,
		OptionalQuestions:    DefaultOptionalAsks,
	}
}

// LoadConfig loads configuration from a JSON file.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	// Resolve path relative to current directory if not absolute
	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	return &cfg, nil
}

var validate = validator.New()

// Validate checks that the configuration has valid values.
// Missing credentials are not checked here; the LLM gateway reports them
// when it is first used.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	if c.Rate > 0 && c.Burst == 0 {
		return fmt.Errorf("config error: 'burst' must be positive when 'rate' is set")
	}

	if c.CacheDir != "" {
		if info, err := os.Stat(c.CacheDir); err == nil && !info.IsDir() {
			return fmt.Errorf("config error: cache_dir is not a directory: %s", c.CacheDir)
		}
	}

	return nil
}

// ProviderAPIKey returns the credential for the configured provider.
func (c *Config) ProviderAPIKey() string {
	if c.Provider == "gemini" {
		return c.GeminiAPIKey
	}
	return c.APIKey
}

// MergeWithDefaults returns a new Config with zero-valued fields filled from defaults.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	// String fields: use default if empty
	mergeString(&result.Provider, defaults.Provider)
	mergeString(&result.Model, defaults.Model)
	mergeString(&result.APIKey, defaults.APIKey)
	mergeString(&result.GeminiAPIKey, defaults.GeminiAPIKey)
	mergeString(&result.BaseURL, defaults.BaseURL)
	mergeString(&result.CacheDir, defaults.CacheDir)
	mergeString(&result.CacheBackend, defaults.CacheBackend)
	mergeString(&result.JobSiteBaseURL, defaults.JobSiteBaseURL)
	mergeString(&result.DatabaseURL, defaults.DatabaseURL)

	// Numeric fields: use default if zero
	mergeInt(&result.CacheTTLSeconds, defaults.CacheTTLSeconds)
	mergeInt(&result.PerRole, defaults.PerRole)
	mergeInt(&result.Burst, defaults.Burst)
	mergeInt(&result.JitterMillis, defaults.JitterMillis)
	mergeInt(&result.Concurrency, defaults.Concurrency)
	mergeInt(&result.SearchTimeoutSeconds, defaults.SearchTimeoutSeconds)
	mergeInt(&result.DetailTimeoutSeconds, defaults.DetailTimeoutSeconds)
	mergeInt(&result.OptionalQuestions, defaults.OptionalQuestions)
	if result.Rate == 0 {
		result.Rate = defaults.Rate
	}
	if result.JitterRatio == 0 {
		result.JitterRatio = defaults.JitterRatio
	}

	// Bool fields: cannot distinguish unset from false, so we don't merge
	// (CLI flags should always win for bools)

	return result
}

func mergeString(dst *string, def string) {
	if *dst == "" {
		*dst = def
	}
}

func mergeInt(dst *int, def int) {
	if *dst == 0 {
		*dst = def
	}
}
