package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultOpenAIBaseURL = "https://api.openai.com/v1"
	defaultHTTPTimeout   = 60 * time.Second
	maxErrorBody         = 64 << 10
)

// OpenAIBackend talks to any OpenAI-compatible /chat/completions endpoint.
type OpenAIBackend struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewOpenAIBackend creates a backend for the given key. An empty baseURL selects the
// public OpenAI endpoint; a nil client gets a 60s timeout.
func NewOpenAIBackend(apiKey, baseURL string, httpClient *http.Client) (*OpenAIBackend, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, &ConfigError{Message: "OPENAI_API_KEY is not set"}
	}
	if baseURL == "" {
		baseURL = defaultOpenAIBaseURL
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultHTTPTimeout}
	}
	return &OpenAIBackend{
		apiKey:     apiKey,
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
	}, nil
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

type errorEnvelope struct {
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Param   string `json:"param"`
	} `json:"error"`
}

// Chat sends the request and classifies the outcome.
func (b *OpenAIBackend) Chat(ctx context.Context, req Request) Attempt {
	body, err := json.Marshal(req)
	if err != nil {
		return Attempt{Kind: AttemptFatal, Message: fmt.Sprintf("marshaling request: %v", err), Err: err}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, b.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return Attempt{Kind: AttemptFatal, Message: fmt.Sprintf("creating request: %v", err), Err: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+b.apiKey)

	resp, err := b.httpClient.Do(httpReq)
	if err != nil {
		return Attempt{Kind: AttemptFatal, Message: fmt.Sprintf("executing request: %v", err), Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 8*maxErrorBody))
	if err != nil {
		return Attempt{Kind: AttemptFatal, Status: resp.StatusCode, Message: fmt.Sprintf("reading response: %v", err), Err: err}
	}

	if resp.StatusCode != http.StatusOK {
		return failedAttempt(resp.StatusCode, errorMessage(respBody), nil)
	}

	var parsed chatCompletionResponse
	if err := json.Unmarshal(respBody, &parsed); err != nil {
		return Attempt{Kind: AttemptFatal, Status: resp.StatusCode, Message: fmt.Sprintf("decoding response: %v", err), Err: err}
	}
	if len(parsed.Choices) == 0 {
		return Attempt{Kind: AttemptFatal, Status: resp.StatusCode, Message: "no choices in response"}
	}
	return okAttempt(parsed.Choices[0].Message.Content)
}

// errorMessage prefers the OpenAI error envelope and falls back to the raw body.
func errorMessage(body []byte) string {
	var env errorEnvelope
	if err := json.Unmarshal(body, &env); err == nil && env.Error != nil && env.Error.Message != "" {
		if env.Error.Param != "" && !strings.Contains(env.Error.Message, env.Error.Param) {
			return fmt.Sprintf("%s (param: %s)", env.Error.Message, env.Error.Param)
		}
		return env.Error.Message
	}
	msg := strings.TrimSpace(string(body))
	if len(msg) > maxErrorBody {
		msg = msg[:maxErrorBody]
	}
	return msg
}
