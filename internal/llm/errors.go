package llm

import "fmt"

// ConfigError reports a missing credential or an unusable gateway configuration.
// It is raised before any network traffic.
type ConfigError struct {
	Message string
	Cause   error
}

func (e *ConfigError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("llm config error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("llm config error: %s", e.Message)
}

func (e *ConfigError) Unwrap() error {
	return e.Cause
}

// BackendError reports a non-OK result from the completion backend after the
// permitted retry.
type BackendError struct {
	Status  int
	Message string
	Cause   error
}

func (e *BackendError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("llm backend error (HTTP %d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("llm backend error: %s", e.Message)
}

func (e *BackendError) Unwrap() error {
	return e.Cause
}
