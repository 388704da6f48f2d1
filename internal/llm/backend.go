package llm

import (
	"context"
	"net/http"
	"strings"
)

// Message roles understood by every backend.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is one chat message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Request is the exact chat request sent to a backend. It is also the cache key input.
type Request struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature *float64  `json:"temperature,omitempty"`
}

// WithoutTemperature returns a copy of the request with temperature stripped.
func (r Request) WithoutTemperature() Request {
	r.Temperature = nil
	return r
}

// AttemptKind classifies the outcome of one backend call.
type AttemptKind int

const (
	// AttemptOK carries completion text.
	AttemptOK AttemptKind = iota
	// AttemptRetryable is a rejection of a sampling parameter; retrying without
	// temperature may succeed.
	AttemptRetryable
	// AttemptFatal is any other failure.
	AttemptFatal
)

func (k AttemptKind) String() string {
	switch k {
	case AttemptOK:
		return "ok"
	case AttemptRetryable:
		return "retryable"
	default:
		return "fatal"
	}
}

// Attempt is the result of one backend call.
type Attempt struct {
	Kind    AttemptKind
	Text    string
	Status  int
	Message string
	Err     error
}

// Backend performs one chat completion without retry or caching.
type Backend interface {
	Chat(ctx context.Context, req Request) Attempt
}

var unsupportedParamHints = []string{"temperature", "top_p", "unsupported", "does not support"}

// classifyFailure maps a failed HTTP status and its error body to an attempt kind.
// Only 400/422 responses that complain about a sampling parameter are retryable.
func classifyFailure(status int, body string) AttemptKind {
	if status != http.StatusBadRequest && status != http.StatusUnprocessableEntity {
		return AttemptFatal
	}
	lower := strings.ToLower(body)
	for _, hint := range unsupportedParamHints {
		if strings.Contains(lower, hint) {
			return AttemptRetryable
		}
	}
	return AttemptFatal
}

func okAttempt(text string) Attempt {
	return Attempt{Kind: AttemptOK, Text: text, Status: http.StatusOK}
}

func failedAttempt(status int, message string, err error) Attempt {
	return Attempt{
		Kind:    classifyFailure(status, message),
		Status:  status,
		Message: message,
		Err:     err,
	}
}
