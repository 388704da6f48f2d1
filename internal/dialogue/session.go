package dialogue

import (
	"context"
	"fmt"

	"github.com/jonathan/job-scout/internal/llm"
	"github.com/jonathan/job-scout/internal/parsing"
	"github.com/jonathan/job-scout/internal/types"
)

// Asker presents one question and returns the user's answer.
type Asker interface {
	Ask(ctx context.Context, turn types.AskTurn) (string, error)
}

// AskerFunc adapts a function to the Asker interface.
type AskerFunc func(ctx context.Context, turn types.AskTurn) (string, error)

// Ask calls f.
func (f AskerFunc) Ask(ctx context.Context, turn types.AskTurn) (string, error) {
	return f(ctx, turn)
}

// Session drives the required-slot loop: parse the profile text, ask for the
// missing required fields in one batch, apply each answer.
type Session struct {
	Completer llm.Completer
	Engine    *Engine
	Asker     Asker

	// OptionalLimit > 0 adds one optional round after the required one.
	OptionalLimit int

	// Seed, when set, is the base the parsed profile is merged onto.
	Seed *types.Spec
}

// Run resolves a Spec from the user's free text.
func (s *Session) Run(ctx context.Context, text string) (types.Spec, error) {
	spec, err := parsing.ParseSpec(ctx, s.Completer, text)
	if err != nil {
		return types.Spec{}, err
	}
	if s.Seed != nil {
		spec = types.Merge(*s.Seed, spec)
	}

	if missing := MissingRequired(spec); len(missing) > 0 {
		turns := s.Engine.AskRequiredBatch(ctx, spec, missing)
		if spec, err = s.askAll(ctx, spec, turns); err != nil {
			return types.Spec{}, err
		}
	}

	if s.OptionalLimit > 0 {
		turns, err := s.Engine.AskOptionalBatch(ctx, spec, s.OptionalLimit, filledFields(spec))
		if err != nil {
			return types.Spec{}, fmt.Errorf("optional questions: %w", err)
		}
		if spec, err = s.askAll(ctx, spec, turns); err != nil {
			return types.Spec{}, err
		}
	}
	return spec, nil
}

func (s *Session) askAll(ctx context.Context, spec types.Spec, turns []types.AskTurn) (types.Spec, error) {
	for _, turn := range turns {
		answer, err := s.Asker.Ask(ctx, turn)
		if err != nil {
			return types.Spec{}, fmt.Errorf("asking %s: %w", turn.Field, err)
		}
		spec = ApplyAnswer(spec, turn, answer)
	}
	return spec, nil
}

// filledFields lists the optional candidates that already hold a value.
func filledFields(spec types.Spec) []string {
	var filled []string
	for _, f := range OptionalCandidates {
		if !spec.IsEmpty(f) {
			filled = append(filled, f)
		}
	}
	return filled
}
