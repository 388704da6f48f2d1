// Package schemas provides JSON Schema validation for LLM outputs.
// Schemas are embedded at compile time and compiled once on first use.
package schemas

import (
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed *.schema.json
var schemaFiles embed.FS

// Embedded schema names.
const (
	Spec            = "spec"
	Filters         = "filters"
	AskTurn         = "ask_turn"
	ProjectKeywords = "project_keywords"
)

var (
	compiled   = make(map[string]*gojsonschema.Schema)
	compiledMu sync.Mutex
)

// ValidationError represents a schema validation error with field paths
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
}

// SchemaLoadError represents errors loading or parsing the schema itself
type SchemaLoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Path, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// Fields returns the distinct top-level properties named by the errors, in order.
func (ve *ValidationError) Fields() []string {
	var out []string
	seen := make(map[string]bool)
	for _, e := range ve.Errors {
		top := topLevel(e.Field)
		if top == "" || seen[top] {
			continue
		}
		seen[top] = true
		out = append(out, top)
	}
	return out
}

// load compiles and caches an embedded schema.
func load(name string) (*gojsonschema.Schema, error) {
	compiledMu.Lock()
	defer compiledMu.Unlock()

	if s, ok := compiled[name]; ok {
		return s, nil
	}

	path := name + ".schema.json"
	data, err := schemaFiles.ReadFile(path)
	if err != nil {
		return nil, &SchemaLoadError{Path: path, Message: "unknown schema", Cause: err}
	}
	s, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return nil, &SchemaLoadError{Path: path, Message: "invalid schema", Cause: err}
	}
	compiled[name] = s
	return s, nil
}

// Validate checks a decoded JSON document (maps, slices, scalars) against an
// embedded schema.
func Validate(name string, doc any) error {
	schema, err := load(name)
	if err != nil {
		return err
	}
	return check(schema, gojsonschema.NewGoLoader(doc))
}

// ValidateFile validates a JSON file on disk against an embedded schema.
func ValidateFile(name, jsonPath string) error {
	absPath, err := filepath.Abs(jsonPath)
	if err != nil {
		return fmt.Errorf("failed to resolve JSON path: %w", err)
	}
	if _, err := os.Stat(absPath); os.IsNotExist(err) {
		return fmt.Errorf("JSON file not found: %s", absPath)
	}

	schema, err := load(name)
	if err != nil {
		return err
	}
	return check(schema, gojsonschema.NewReferenceLoader("file://"+filepath.ToSlash(absPath)))
}

func check(schema *gojsonschema.Schema, doc gojsonschema.JSONLoader) error {
	result, err := schema.Validate(doc)
	if err != nil {
		return fmt.Errorf("failed to load document: %w", err)
	}
	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}
	return validationErr
}

// DropInvalidFields validates an object against an embedded schema and removes
// every top-level property that fails. It returns a new map and the names of the
// dropped properties. Errors at the document root (for example a non-object) drop
// everything.
func DropInvalidFields(name string, doc map[string]any) (map[string]any, []string, error) {
	out := make(map[string]any, len(doc))
	for k, v := range doc {
		out[k] = v
	}

	var dropped []string
	for attempt := 0; attempt <= len(doc); attempt++ {
		err := Validate(name, out)
		if err == nil {
			return out, dropped, nil
		}
		verr, ok := err.(*ValidationError)
		if !ok {
			return nil, nil, err
		}

		fields := verr.Fields()
		progressed := false
		for _, f := range fields {
			if _, exists := out[f]; exists {
				delete(out, f)
				dropped = append(dropped, f)
				progressed = true
			}
		}
		if !progressed {
			for k := range out {
				dropped = append(dropped, k)
			}
			return map[string]any{}, dropped, nil
		}
	}
	return out, dropped, nil
}

// topLevel returns the first segment of a gojsonschema field path ("skills.0" -> "skills").
func topLevel(field string) string {
	if field == "" || field == "(root)" {
		return ""
	}
	if idx := strings.Index(field, "."); idx >= 0 {
		return field[:idx]
	}
	return field
}
