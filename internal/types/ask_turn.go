// Package types provides type definitions for structured data used throughout the job-scout system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
)

// MaxAskOptions caps the number of options shown for one question.
const MaxAskOptions = 6

// UnspecifiedTokens are the answer options meaning "no preference / unknown".
// They collapse to a single option in any option list.
var UnspecifiedTokens = []string{"무관", "모름"}

// AskTurn is one clarifying question targeting a single Spec field.
type AskTurn struct {
	Field   string   `json:"field" validate:"required"`
	Ask     string   `json:"ask" validate:"required"`
	Options []string `json:"options" validate:"max=6"`
}

// NewAskTurn builds a validated AskTurn. The question is cut to its first line and
// options are deduplicated (unspecified synonyms collapsed) and capped at MaxAskOptions.
// When capping would drop the unspecified option, it takes the last slot.
func NewAskTurn(field, ask string, options []string) (AskTurn, error) {
	turn := AskTurn{
		Field:   strings.TrimSpace(field),
		Ask:     FirstLine(ask),
		Options: capOptions(DedupOptions(options)),
	}
	if err := validator.New().Struct(turn); err != nil {
		return AskTurn{}, err
	}
	return turn, nil
}

// FirstLine returns the trimmed first line of text.
func FirstLine(text string) string {
	text = strings.TrimSpace(text)
	if idx := strings.IndexAny(text, "\r\n"); idx >= 0 {
		text = text[:idx]
	}
	return strings.TrimSpace(text)
}

// DedupOptions removes blank and duplicate options, treating every unspecified
// token as the same option. The first spelling encountered is kept.
func DedupOptions(options []string) []string {
	out := make([]string, 0, len(options))
	seen := make(map[string]bool, len(options))
	for _, o := range options {
		o = strings.TrimSpace(o)
		if o == "" {
			continue
		}
		key := o
		if isUnspecified(o) {
			key = UnspecifiedTokens[0]
		}
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, o)
	}
	return out
}

func isUnspecified(o string) bool {
	for _, tok := range UnspecifiedTokens {
		if o == tok {
			return true
		}
	}
	return false
}

func capOptions(opts []string) []string {
	if len(opts) <= MaxAskOptions {
		return opts
	}
	out := slices.Clone(opts[:MaxAskOptions])
	if !slices.ContainsFunc(out, isUnspecified) {
		if i := slices.IndexFunc(opts, isUnspecified); i >= 0 {
			out[MaxAskOptions-1] = opts[i]
		}
	}
	return out
}
