package llm

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const tracerName = "github.com/jonathan/job-scout/internal/llm"

// Completer is the chat-completion capability consumed by parsing, dialogue and mapping.
type Completer interface {
	Complete(ctx context.Context, messages []Message, temperature *float64) (string, error)
}

// Gateway is a cached, retrying Completer over a single Backend.
// Backend and cache are built lazily on first use and reused afterwards.
type Gateway struct {
	cfg Config

	once    sync.Once
	backend Backend
	cache   Cache
	initErr error
}

// NewGateway creates a gateway. No network or filesystem access happens until the
// first Complete call.
func NewGateway(cfg *Config) *Gateway {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Gateway{cfg: cfg.withDefaults()}
}

// Model returns the configured model name.
func (g *Gateway) Model() string {
	return g.cfg.Model
}

func (g *Gateway) init(ctx context.Context) error {
	g.once.Do(func() {
		g.cache = g.buildCache()
		g.backend, g.initErr = g.buildBackend(ctx)
	})
	return g.initErr
}

func (g *Gateway) buildBackend(ctx context.Context) (Backend, error) {
	if g.cfg.Backend != nil {
		return g.cfg.Backend, nil
	}
	switch g.cfg.Provider {
	case ProviderOpenAI:
		return NewOpenAIBackend(g.cfg.APIKey, g.cfg.BaseURL, g.cfg.HTTPClient)
	case ProviderGemini:
		return NewGeminiBackend(ctx, g.cfg.APIKey)
	default:
		return nil, &ConfigError{Message: fmt.Sprintf("unknown provider %q", g.cfg.Provider)}
	}
}

func (g *Gateway) buildCache() Cache {
	if g.cfg.Cache != nil {
		return g.cfg.Cache
	}
	switch g.cfg.CacheBackend {
	case CacheBackendNone:
		return noCache{}
	case CacheBackendSQLite:
		c, err := OpenSQLiteCache(filepath.Join(g.cfg.CacheDir, "llm_cache.db"))
		if err != nil {
			g.cfg.Logger.Warn("llm cache unavailable, continuing without cache", "error", err)
			return noCache{}
		}
		return c
	default:
		return NewDirCache(g.cfg.CacheDir)
	}
}

// Complete sends messages to the backend and returns the completion text.
//
// A temperature of nil or exactly 1 is omitted from the request. Responses are
// cached by request for the configured TTL. When the backend rejects a sampling
// parameter and the request carried a temperature, the request is retried once
// without it; the result is still cached under the original request's key.
func (g *Gateway) Complete(ctx context.Context, messages []Message, temperature *float64) (string, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "llm.complete")
	defer span.End()
	span.SetAttributes(attribute.String("model", g.cfg.Model))

	if err := g.init(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}

	req := Request{Model: g.cfg.Model, Messages: messages}
	if temperature != nil && *temperature != 1 {
		t := *temperature
		req.Temperature = &t
	}

	key := CacheKey(req)
	if cached, ok := g.cache.Get(key, g.cfg.CacheTTL); ok {
		span.SetAttributes(attribute.Bool("cache_hit", true))
		return cached, nil
	}
	span.SetAttributes(attribute.Bool("cache_hit", false))

	attempt := g.backend.Chat(ctx, req)
	retried := false
	if attempt.Kind == AttemptRetryable && req.Temperature != nil {
		g.cfg.Logger.Debug("backend rejected sampling parameter, retrying without temperature",
			"status", attempt.Status, "message", attempt.Message)
		retried = true
		attempt = g.backend.Chat(ctx, req.WithoutTemperature())
	}
	span.SetAttributes(attribute.Bool("retried", retried))

	if attempt.Kind != AttemptOK {
		err := &BackendError{Status: attempt.Status, Message: attempt.Message, Cause: attempt.Err}
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}

	g.cache.Put(key, attempt.Text)
	return attempt.Text, nil
}

// Close releases backend and cache resources that need it.
func (g *Gateway) Close() error {
	var errs []error
	if c, ok := g.backend.(interface{ Close() error }); ok {
		errs = append(errs, c.Close())
	}
	if c, ok := g.cache.(interface{ Close() error }); ok {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}

// Temperature is a convenience for building the optional temperature argument.
func Temperature(t float64) *float64 {
	return &t
}
