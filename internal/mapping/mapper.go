// Package mapping expands a resolved Spec into the recruiting site's filter
// vocabulary and the role keywords used as crawl inputs.
package mapping

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jonathan/job-scout/internal/llm"
	"github.com/jonathan/job-scout/internal/prompts"
	"github.com/jonathan/job-scout/internal/schemas"
	"github.com/jonathan/job-scout/internal/types"
)

// Mapper performs LLM-backed filter mapping and keyword extraction.
type Mapper struct {
	completer llm.Completer
	logger    *slog.Logger
}

// NewMapper creates a Mapper. A nil logger uses slog.Default().
func NewMapper(completer llm.Completer, logger *slog.Logger) *Mapper {
	if logger == nil {
		logger = slog.Default()
	}
	return &Mapper{completer: completer, logger: logger}
}

// MapFilters maps spec onto filter labels and generates keyword and role
// expansions with one LLM call.
//
// Unparseable output yields zero-valued filters; the post-processing still
// applies, so Duty falls back to spec.Role and the expansion lists are never nil.
// Completion errors are returned.
func (m *Mapper) MapFilters(ctx context.Context, spec types.Spec) (types.AppliedFilters, error) {
	payload, err := json.Marshal(spec)
	if err != nil {
		return types.AppliedFilters{}, fmt.Errorf("encoding spec: %w", err)
	}

	out, err := m.completer.Complete(ctx, []llm.Message{
		{Role: llm.RoleSystem, Content: prompts.Must(prompts.MapFilters)},
		{Role: llm.RoleUser, Content: string(payload)},
	}, nil)
	if err != nil {
		return types.AppliedFilters{}, err
	}

	applied := m.decodeFilters(out)
	return postProcessFilters(spec, applied), nil
}

func (m *Mapper) decodeFilters(out string) types.AppliedFilters {
	obj, ok := llm.ExtractJSON(out, map[string]any{}).(map[string]any)
	if !ok {
		m.logger.Warn("filter output is not a JSON object, using empty filters")
		return types.AppliedFilters{}
	}

	cleaned, dropped, err := schemas.DropInvalidFields(schemas.Filters, obj)
	if err != nil {
		m.logger.Warn("filter schema unavailable, using empty filters", "error", err)
		return types.AppliedFilters{}
	}
	if len(dropped) > 0 {
		m.logger.Warn("dropped invalid filter fields", "fields", dropped)
	}

	var applied types.AppliedFilters
	data, err := json.Marshal(cleaned)
	if err == nil {
		err = json.Unmarshal(data, &applied)
	}
	if err != nil {
		m.logger.Warn("filter decode failed, using empty filters", "error", err)
		return types.AppliedFilters{}
	}
	return applied
}

// postProcessFilters repairs the fields the rest of the pipeline depends on.
func postProcessFilters(spec types.Spec, applied types.AppliedFilters) types.AppliedFilters {
	if strings.Contains(applied.Industry, ",") {
		applied.Industry = strings.NewReplacer(",", "", " ", "").Replace(applied.Industry)
	}

	applied.ExpandedRoles = nonNil(types.Union(nil, applied.ExpandedRoles))
	applied.ExpandedKeywords = nonNil(types.Union(nil, applied.ExpandedKeywords))

	applied.Duty = strings.TrimSpace(applied.Duty)
	if applied.Duty == "" {
		applied.Duty = strings.TrimSpace(spec.Role)
	}
	if applied.Duty == "" && len(applied.ExpandedRoles) > 0 {
		applied.Duty = applied.ExpandedRoles[0]
	}
	return applied
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
