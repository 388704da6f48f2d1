package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/jonathan/job-scout/internal/config"
	"github.com/jonathan/job-scout/internal/crawling"
	"github.com/jonathan/job-scout/internal/fetch"
	"github.com/jonathan/job-scout/internal/llm"
	"github.com/jonathan/job-scout/internal/observability"
	"github.com/jonathan/job-scout/internal/ratelimit"
)

// app carries what every subcommand needs once flags are parsed.
type app struct {
	cfg    *config.Config
	logger *slog.Logger

	shutdownTracer observability.ShutdownFunc
}

// setup loads configuration, applies the persistent flags and builds the logger.
func setup() (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	applyAPIKey(cfg, apiKeyFlag)
	if verbose {
		cfg.Verbose = true
	}

	a := &app{cfg: cfg, logger: newLogger(os.Stderr, cfg.Verbose)}
	slog.SetDefault(a.logger)

	if traceEnabled {
		shutdown, err := observability.InitTracer(os.Stderr)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize tracing: %w", err)
		}
		a.shutdownTracer = shutdown
	}
	return a, nil
}

// Close flushes pending spans.
func (a *app) Close() {
	if a.shutdownTracer == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := a.shutdownTracer(ctx); err != nil {
		a.logger.Warn("tracer shutdown failed", "error", err)
	}
}

func (a *app) gateway() *llm.Gateway {
	g := llm.NewGateway(llmConfig(a.cfg, a.logger))
	a.logger.Debug("llm gateway", "provider", a.cfg.Provider, "model", g.Model())
	return g
}

func (a *app) crawler(static bool, concurrency int) *crawling.Crawler {
	opts := crawlOptions(a.cfg, a.logger)
	if concurrency > 0 {
		opts.Concurrency = concurrency
	}
	return crawling.New(sessionFactory(static || a.cfg.Static), opts)
}

// perRole resolves the per-role posting limit: a positive flag wins over config.
func (a *app) perRole(flag int) int {
	if flag > 0 {
		return flag
	}
	return a.cfg.PerRole
}

func newLogger(w io.Writer, debug bool) *slog.Logger {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// applyAPIKey stores a command-line key under the configured provider.
func applyAPIKey(cfg *config.Config, key string) {
	if key == "" {
		return
	}
	if cfg.Provider == string(llm.ProviderGemini) {
		cfg.GeminiAPIKey = key
		return
	}
	cfg.APIKey = key
}

func llmConfig(cfg *config.Config, logger *slog.Logger) *llm.Config {
	return &llm.Config{
		Provider:     llm.Provider(cfg.Provider),
		Model:        cfg.Model,
		APIKey:       cfg.ProviderAPIKey(),
		BaseURL:      cfg.BaseURL,
		CacheDir:     cfg.CacheDir,
		CacheBackend: cfg.CacheBackend,
		CacheTTL:     time.Duration(cfg.CacheTTLSeconds) * time.Second,
		Logger:       logger,
	}
}

func crawlOptions(cfg *config.Config, logger *slog.Logger) crawling.Options {
	opts := crawling.DefaultOptions()
	opts.Logger = logger
	if cfg.JobSiteBaseURL != "" {
		opts.BaseURL = cfg.JobSiteBaseURL
	}
	if cfg.SearchTimeoutSeconds > 0 {
		opts.SearchTimeout = time.Duration(cfg.SearchTimeoutSeconds) * time.Second
	}
	if cfg.DetailTimeoutSeconds > 0 {
		opts.DetailTimeout = time.Duration(cfg.DetailTimeoutSeconds) * time.Second
	}
	if cfg.Rate > 0 && cfg.Burst > 0 {
		opts.Limiter = ratelimit.NewTokenBucket(cfg.Burst, cfg.Rate)
	}
	opts.Jitter = ratelimit.Jitter{
		Base:  time.Duration(cfg.JitterMillis) * time.Millisecond,
		Ratio: cfg.JitterRatio,
	}
	if cfg.Concurrency > 0 {
		opts.Concurrency = cfg.Concurrency
	}
	return opts
}

// sessionFactory picks plain HTTP pages or a headless Chrome tab.
func sessionFactory(static bool) fetch.SessionFactory {
	if static {
		return fetch.StaticFactory(fetch.DefaultOptions())
	}
	return fetch.BrowserFactory(fetch.DefaultBrowserOptions())
}
