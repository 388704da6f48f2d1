package parsing

import "fmt"

// APICallError wraps a failed completion call. The cause is the gateway's
// ConfigError or BackendError.
type APICallError struct {
	Message string
	Cause   error
}

func (e *APICallError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("API call failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("API call failed: %s", e.Message)
}

func (e *APICallError) Unwrap() error {
	return e.Cause
}

// ParseError describes model output that could not be used as-is.
// ParseSpec logs it and continues with defaults; it is never returned.
type ParseError struct {
	Message string
	Fields  []string
}

func (e *ParseError) Error() string {
	if len(e.Fields) > 0 {
		return fmt.Sprintf("parse error: %s: %v", e.Message, e.Fields)
	}
	return fmt.Sprintf("parse error: %s", e.Message)
}
