package dialogue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/jonathan/job-scout/internal/llm"
	"github.com/jonathan/job-scout/internal/prompts"
	"github.com/jonathan/job-scout/internal/schemas"
	"github.com/jonathan/job-scout/internal/types"
)

// Engine generates clarifying questions with the LLM.
type Engine struct {
	completer llm.Completer
	logger    *slog.Logger
}

// NewEngine creates an Engine. A nil logger uses slog.Default().
func NewEngine(completer llm.Completer, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{completer: completer, logger: logger}
}

type requiredPayload struct {
	Current types.Spec `json:"current"`
	Missing []string   `json:"missing"`
}

type optionalPayload struct {
	Current types.Spec `json:"current"`
	Limit   int        `json:"limit"`
	Exclude []string   `json:"exclude"`
}

// AskRequiredBatch asks for all missing required fields in one LLM call.
//
// It never fails: completion errors (including configuration errors) and
// unusable output fall back to template turns for each missing field. The result
// always contains a turn targeting skills.
func (e *Engine) AskRequiredBatch(ctx context.Context, spec types.Spec, missing []string) []types.AskTurn {
	turns := e.requiredTurns(ctx, spec, missing)

	for _, t := range turns {
		if strings.EqualFold(t.Field, types.FieldSkills) {
			return turns
		}
	}
	return append(turns, DefaultTurn(types.FieldSkills))
}

func (e *Engine) requiredTurns(ctx context.Context, spec types.Spec, missing []string) []types.AskTurn {
	fallback := func() []types.AskTurn {
		turns := make([]types.AskTurn, 0, len(missing)+1)
		for _, field := range missing {
			turns = append(turns, DefaultTurn(field))
		}
		return turns
	}

	payload, err := json.Marshal(requiredPayload{Current: spec, Missing: nonNil(missing)})
	if err != nil {
		return fallback()
	}

	out, err := e.completer.Complete(ctx, []llm.Message{
		{Role: llm.RoleSystem, Content: prompts.Must(prompts.AskRequiredBatch)},
		{Role: llm.RoleUser, Content: string(payload)},
	}, nil)
	if err != nil {
		e.logger.Warn("required question batch failed, using templates", "error", err)
		return fallback()
	}

	turns := e.decodeTurns(out, true)
	if len(turns) == 0 {
		e.logger.Warn("required question batch unusable, using templates", "output_len", len(out))
		return fallback()
	}
	return turns
}

// AskOptionalBatch proposes up to limit questions for optional fields.
// Unusable output yields no turns; completion errors are returned.
func (e *Engine) AskOptionalBatch(ctx context.Context, spec types.Spec, limit int, exclude []string) ([]types.AskTurn, error) {
	if limit <= 0 {
		return nil, nil
	}

	payload, err := json.Marshal(optionalPayload{Current: spec, Limit: limit, Exclude: nonNil(exclude)})
	if err != nil {
		return nil, fmt.Errorf("encoding optional payload: %w", err)
	}

	system := prompts.Format(prompts.Must(prompts.AskOptionalBatch), map[string]string{
		"Candidates": strings.Join(OptionalCandidates, ", "),
		"Limit":      strconv.Itoa(limit),
	})

	out, err := e.completer.Complete(ctx, []llm.Message{
		{Role: llm.RoleSystem, Content: system},
		{Role: llm.RoleUser, Content: string(payload)},
	}, nil)
	if err != nil {
		return nil, err
	}

	excluded := make(map[string]bool, len(exclude))
	for _, f := range exclude {
		excluded[f] = true
	}

	var turns []types.AskTurn
	for _, t := range e.decodeTurns(out, false) {
		if excluded[t.Field] {
			continue
		}
		turns = append(turns, t)
		if len(turns) == limit {
			break
		}
	}
	return turns, nil
}

// decodeTurns recovers turns from model output, which may be an array or a
// single object. Items with an unknown field are skipped. An empty question
// falls back to the field's template; empty options fall back to the template
// only when templateOptions is set.
func (e *Engine) decodeTurns(out string, templateOptions bool) []types.AskTurn {
	var items []any
	switch v := llm.ExtractJSON(out, nil).(type) {
	case []any:
		items = v
	case map[string]any:
		items = []any{v}
	default:
		return nil
	}

	turns := make([]types.AskTurn, 0, len(items))
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			continue
		}
		obj, dropped, err := schemas.DropInvalidFields(schemas.AskTurn, obj)
		if err != nil {
			continue
		}
		if len(dropped) > 0 {
			e.logger.Debug("dropped invalid turn fields", "fields", dropped)
		}

		field := strings.TrimSpace(stringValue(obj["field"]))
		if !types.IsScalarField(field) && !types.IsListField(field) {
			e.logger.Debug("skipping turn for unknown field", "field", field)
			continue
		}

		tpl := TemplateFor(field)
		ask := types.FirstLine(stringValue(obj["ask"]))
		if ask == "" {
			ask = tpl.Ask
		}
		options := stringSlice(obj["options"])
		if len(options) == 0 && templateOptions {
			options = tpl.Options
		}

		turn, err := types.NewAskTurn(field, ask, options)
		if err != nil {
			continue
		}
		turns = append(turns, turn)
	}
	return turns
}

func stringValue(v any) string {
	s, _ := v.(string)
	return s
}

func stringSlice(v any) []string {
	raw, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(raw))
	for _, item := range raw {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
