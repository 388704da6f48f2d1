package dialogue

import (
	"testing"

	"github.com/jonathan/job-scout/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestApplyAnswer(t *testing.T) {
	base := types.Spec{
		Location: "서울",
		Skills:   []string{"Python"},
	}

	tests := []struct {
		name   string
		field  string
		answer string
		check  func(t *testing.T, got types.Spec)
	}{
		{
			name:   "scalar overwrite",
			field:  types.FieldLocation,
			answer: " 부산 ",
			check: func(t *testing.T, got types.Spec) {
				assert.Equal(t, "부산", got.Location)
			},
		},
		{
			name:   "nested scalar",
			field:  types.FieldCareerLevel,
			answer: "신입",
			check: func(t *testing.T, got types.Spec) {
				assert.Equal(t, "신입", got.Career.Level)
			},
		},
		{
			name:   "list replaces",
			field:  types.FieldSkills,
			answer: "SQL, Go ,, sql",
			check: func(t *testing.T, got types.Spec) {
				assert.Equal(t, []string{"SQL", "Go"}, got.Skills)
			},
		},
		{
			name:   "certifications list",
			field:  types.FieldCertifications,
			answer: "정보처리기사",
			check: func(t *testing.T, got types.Spec) {
				assert.Equal(t, []string{"정보처리기사"}, got.Certifications)
			},
		},
		{
			name:   "empty answer unchanged",
			field:  types.FieldLocation,
			answer: "   ",
			check: func(t *testing.T, got types.Spec) {
				assert.Equal(t, base, got)
			},
		},
		{
			name:   "unknown field unchanged",
			field:  "hobby",
			answer: "등산",
			check: func(t *testing.T, got types.Spec) {
				assert.Equal(t, base, got)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ApplyAnswer(base, types.AskTurn{Field: tt.field, Ask: "?"}, tt.answer)
			tt.check(t, got)
		})
	}

	// The input Spec is never mutated.
	assert.Equal(t, "서울", base.Location)
	assert.Equal(t, []string{"Python"}, base.Skills)
}

func TestSplitAnswer(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, SplitAnswer("a, b，c、 a"))
	assert.Nil(t, SplitAnswer(" , "))
}

func TestTemplates(t *testing.T) {
	for _, field := range append(append([]string{}, RequiredPriority...), OptionalCandidates...) {
		tpl := TemplateFor(field)
		assert.NotEqual(t, fallbackAsk, tpl.Ask, field)
		assert.NotEmpty(t, tpl.Label, field)

		turn := DefaultTurn(field)
		assert.Equal(t, field, turn.Field)
		assert.LessOrEqual(t, len(turn.Options), types.MaxAskOptions)
	}

	unknown := DefaultTurn("hobby")
	assert.Equal(t, fallbackAsk, unknown.Ask)
	assert.Equal(t, []string{"무관"}, unknown.Options)
	assert.Equal(t, "근무지역", FieldLabel(types.FieldLocation))
}
