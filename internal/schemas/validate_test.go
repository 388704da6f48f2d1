package schemas

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_ValidSpec(t *testing.T) {
	doc := map[string]any{
		"role":     "백엔드 개발자",
		"location": nil,
		"career":   map[string]any{"level": "신입"},
		"skills":   []any{"Python", "SQL"},
	}
	assert.NoError(t, Validate(Spec, doc))
}

func TestValidate_WrongTypes(t *testing.T) {
	doc := map[string]any{
		"role":   []any{"a"},
		"skills": "Python",
	}
	err := Validate(Spec, doc)
	require.Error(t, err)

	verr, ok := err.(*ValidationError)
	require.True(t, ok, "error should be ValidationError type")
	fields := verr.Fields()
	sort.Strings(fields)
	assert.Equal(t, []string{"role", "skills"}, fields)
}

func TestValidate_UnknownSchema(t *testing.T) {
	err := Validate("nope", map[string]any{})
	var loadErr *SchemaLoadError
	require.ErrorAs(t, err, &loadErr)
	assert.Contains(t, err.Error(), "nope.schema.json")
}

func TestDropInvalidFields(t *testing.T) {
	doc := map[string]any{
		"role":     "데이터 분석가",
		"location": 42,
		"skills":   []any{"SQL", 3},
		"career":   map[string]any{"level": true},
		"keywords": []any{"핀테크"},
	}

	cleaned, dropped, err := DropInvalidFields(Spec, doc)
	require.NoError(t, err)

	sort.Strings(dropped)
	assert.Equal(t, []string{"career", "location", "skills"}, dropped)
	assert.Equal(t, map[string]any{"role": "데이터 분석가", "keywords": []any{"핀테크"}}, cleaned)

	// Input is not modified.
	assert.Contains(t, doc, "location")
}

func TestDropInvalidFields_AllValid(t *testing.T) {
	doc := map[string]any{"duty": "개발", "expanded_roles": []any{"백엔드"}}
	cleaned, dropped, err := DropInvalidFields(Filters, doc)
	require.NoError(t, err)
	assert.Empty(t, dropped)
	assert.Equal(t, doc, cleaned)
}

func TestValidateFile(t *testing.T) {
	dir := t.TempDir()
	valid := filepath.Join(dir, "spec.json")
	require.NoError(t, os.WriteFile(valid, []byte(`{"role":"PM","skills":["jira"]}`), 0o644))
	assert.NoError(t, ValidateFile(Spec, valid))

	invalid := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(invalid, []byte(`{"skills":"jira"}`), 0o644))
	var verr *ValidationError
	assert.ErrorAs(t, ValidateFile(Spec, invalid), &verr)

	err := ValidateFile(Spec, filepath.Join(dir, "missing.json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestValidationError_Error(t *testing.T) {
	err := &ValidationError{Errors: []FieldError{{Field: "skills.0", Message: "Invalid type"}}}
	assert.Contains(t, err.Error(), "1. skills.0: Invalid type")
	assert.Equal(t, []string{"skills"}, err.Fields())
}

func TestAllEmbeddedSchemasCompile(t *testing.T) {
	for _, name := range []string{Spec, Filters, AskTurn, ProjectKeywords} {
		_, err := load(name)
		assert.NoError(t, err, name)
	}
}
