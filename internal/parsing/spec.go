// Package parsing turns free-text job-search profiles into structured Specs using LLM extraction.
package parsing

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/jonathan/job-scout/internal/llm"
	"github.com/jonathan/job-scout/internal/prompts"
	"github.com/jonathan/job-scout/internal/schemas"
	"github.com/jonathan/job-scout/internal/types"
)

// ParseSpec extracts a Spec from the user's free text with one LLM call.
//
// Unusable output never fails the call: unparseable text yields an empty Spec and
// fields that do not match the Spec schema are dropped, both logged at warn.
// Only completion failures are returned, as *APICallError wrapping the gateway error.
func ParseSpec(ctx context.Context, completer llm.Completer, text string) (types.Spec, error) {
	messages := []llm.Message{
		{Role: llm.RoleSystem, Content: prompts.Must(prompts.ParseSpec)},
		{Role: llm.RoleUser, Content: text},
	}

	out, err := completer.Complete(ctx, messages, nil)
	if err != nil {
		return types.Spec{}, &APICallError{Message: "failed to parse profile text", Cause: err}
	}

	spec := decodeSpec(out, slog.Default())
	return postProcessSpec(spec), nil
}

// decodeSpec recovers a Spec from model output, degrading to the empty Spec.
func decodeSpec(out string, logger *slog.Logger) types.Spec {
	obj, ok := llm.ExtractJSON(out, map[string]any{}).(map[string]any)
	if !ok {
		logger.Warn("spec output is not a JSON object, using empty spec",
			"error", &ParseError{Message: "expected object"})
		return types.Spec{}
	}

	cleaned, dropped, err := schemas.DropInvalidFields(schemas.Spec, obj)
	if err != nil {
		logger.Warn("spec schema unavailable, using empty spec", "error", err)
		return types.Spec{}
	}
	if len(dropped) > 0 {
		logger.Warn("dropped invalid spec fields",
			"error", &ParseError{Message: "schema mismatch", Fields: dropped})
	}

	data, err := json.Marshal(cleaned)
	if err != nil {
		return types.Spec{}
	}
	var spec types.Spec
	if err := json.Unmarshal(data, &spec); err != nil {
		logger.Warn("spec decode failed, using empty spec", "error", err)
		return types.Spec{}
	}
	return spec
}

// postProcessSpec trims scalars, dedupes lists and resolves the role.
func postProcessSpec(spec types.Spec) types.Spec {
	spec = spec.Normalized()
	spec.Role = CanonicalRole(spec.Role)
	if spec.Role == "" {
		spec.Role = RoleFromSkills(spec.Skills)
	}
	return spec
}
