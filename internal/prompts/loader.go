// Package prompts provides the system prompts sent to the LLM gateway.
// Prompts are stored as JSON files (key -> text) and embedded at compile time.
package prompts

import (
	"embed"
	"encoding/json"
	"fmt"
	"strings"
	"sync"
)

//go:embed *.json
var promptFiles embed.FS

// Ref names one prompt: the embedded file and the key inside it.
type Ref struct {
	File string
	Key  string
}

func (r Ref) String() string {
	return r.File + "/" + r.Key
}

// Prompts used by the pipeline.
var (
	ParseSpec        = Ref{File: "parsing.json", Key: "parse-spec"}
	AskRequiredBatch = Ref{File: "dialogue.json", Key: "ask-required-batch"}
	AskOptionalBatch = Ref{File: "dialogue.json", Key: "ask-optional-batch"}
	MapFilters       = Ref{File: "mapping.json", Key: "map-filters"}
	ProjectKeywords  = Ref{File: "mapping.json", Key: "project-keywords"}
)

// cache stores parsed prompt files to avoid repeated JSON parsing
var (
	cache   = make(map[string]map[string]string)
	cacheMu sync.RWMutex
)

// Get retrieves a prompt by filename and key.
// The filename should not include the path (e.g., "parsing.json").
func Get(filename, key string) (string, error) {
	prompts, err := loadFile(filename)
	if err != nil {
		return "", err
	}

	prompt, exists := prompts[key]
	if !exists {
		return "", fmt.Errorf("prompt key %q not found in %s", key, filename)
	}

	return prompt, nil
}

// Load retrieves the prompt named by ref.
func Load(ref Ref) (string, error) {
	return Get(ref.File, ref.Key)
}

// Must retrieves the prompt named by ref, panicking if it is missing.
// Every Ref declared in this package is covered by tests.
func Must(ref Ref) string {
	prompt, err := Load(ref)
	if err != nil {
		panic(fmt.Sprintf("failed to load prompt: %v", err))
	}
	return prompt
}

// Format replaces placeholders in the form {{.Key}} with values from data.
// Unknown placeholders are left as-is.
func Format(template string, data map[string]string) string {
	if len(data) == 0 {
		return template
	}
	pairs := make([]string, 0, len(data)*2)
	for key, value := range data {
		pairs = append(pairs, "{{."+key+"}}", value)
	}
	return strings.NewReplacer(pairs...).Replace(template)
}

// loadFile loads and caches a prompt file.
func loadFile(filename string) (map[string]string, error) {
	cacheMu.RLock()
	if prompts, exists := cache[filename]; exists {
		cacheMu.RUnlock()
		return prompts, nil
	}
	cacheMu.RUnlock()

	data, err := promptFiles.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read prompt file %s: %w", filename, err)
	}

	var prompts map[string]string
	if err := json.Unmarshal(data, &prompts); err != nil {
		return nil, fmt.Errorf("failed to parse prompt file %s: %w", filename, err)
	}

	cacheMu.Lock()
	cache[filename] = prompts
	cacheMu.Unlock()

	return prompts, nil
}

// ClearCache clears the prompt cache. Useful for testing.
func ClearCache() {
	cacheMu.Lock()
	cache = make(map[string]map[string]string)
	cacheMu.Unlock()
}

