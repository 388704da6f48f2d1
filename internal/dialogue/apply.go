package dialogue

import (
	"strings"

	"github.com/jonathan/job-scout/internal/types"
)

// ApplyAnswer returns a new Spec with the answer written into the turn's field.
// Scalar fields are overwritten. List fields are replaced by the comma-separated
// answer, trimmed and deduplicated. A blank answer or unknown field leaves the
// Spec unchanged.
func ApplyAnswer(spec types.Spec, turn types.AskTurn, answer string) types.Spec {
	answer = strings.TrimSpace(answer)
	if answer == "" {
		return spec.Clone()
	}

	switch {
	case types.IsScalarField(turn.Field):
		return spec.WithScalar(turn.Field, answer)
	case types.IsListField(turn.Field):
		return spec.WithList(turn.Field, SplitAnswer(answer))
	default:
		return spec.Clone()
	}
}

// SplitAnswer splits a comma-separated answer, dropping blanks and duplicates.
func SplitAnswer(answer string) []string {
	parts := strings.FieldsFunc(answer, func(r rune) bool {
		return r == ',' || r == '，' || r == '、'
	})
	return types.Union(nil, parts)
}
