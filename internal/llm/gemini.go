package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
)

// GeminiBackend implements Backend for Google Gemini.
type GeminiBackend struct {
	client *genai.Client
}

// NewGeminiBackend creates a Gemini backend.
func NewGeminiBackend(ctx context.Context, apiKey string) (*GeminiBackend, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, &ConfigError{Message: "GEMINI_API_KEY is not set"}
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, &ConfigError{Message: "failed to create Gemini client", Cause: err}
	}
	return &GeminiBackend{client: client}, nil
}

// Chat maps system messages to the system instruction and replays the remaining
// messages as chat history, sending the last one.
func (b *GeminiBackend) Chat(ctx context.Context, req Request) Attempt {
	model := b.client.GenerativeModel(req.Model)
	if req.Temperature != nil {
		model.SetTemperature(float32(*req.Temperature))
	}

	system, history, last := splitForGemini(req.Messages)
	if system != "" {
		model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(system)}}
	}
	if last == "" {
		return Attempt{Kind: AttemptFatal, Message: "no user message to send"}
	}

	cs := model.StartChat()
	cs.History = history

	resp, err := cs.SendMessage(ctx, genai.Text(last))
	if err != nil {
		return geminiFailure(err)
	}

	text, err := extractTextFromResponse(resp)
	if err != nil {
		return Attempt{Kind: AttemptFatal, Message: err.Error(), Err: err}
	}
	return okAttempt(text)
}

// Close releases resources held by the client.
func (b *GeminiBackend) Close() error {
	if b.client != nil {
		return b.client.Close()
	}
	return nil
}

func splitForGemini(messages []Message) (system string, history []*genai.Content, last string) {
	var systemParts []string
	var turns []Message
	for _, m := range messages {
		if m.Role == RoleSystem {
			systemParts = append(systemParts, m.Content)
			continue
		}
		turns = append(turns, m)
	}
	system = strings.Join(systemParts, "\n\n")
	if len(turns) == 0 {
		return system, nil, ""
	}

	for _, m := range turns[:len(turns)-1] {
		role := "user"
		if m.Role == RoleAssistant {
			role = "model"
		}
		history = append(history, &genai.Content{Role: role, Parts: []genai.Part{genai.Text(m.Content)}})
	}
	return system, history, turns[len(turns)-1].Content
}

func geminiFailure(err error) Attempt {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		msg := apiErr.Message
		if msg == "" {
			msg = apiErr.Body
		}
		return failedAttempt(apiErr.Code, msg, err)
	}
	return Attempt{Kind: AttemptFatal, Message: fmt.Sprintf("failed to generate content: %v", err), Err: err}
}

// extractTextFromResponse extracts text from Gemini API response
func extractTextFromResponse(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return "", fmt.Errorf("no candidates in response")
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil || len(candidate.Content.Parts) == 0 {
		return "", fmt.Errorf("no content in response")
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}

	if len(parts) == 0 {
		return "", fmt.Errorf("no text parts in response")
	}

	return strings.Join(parts, ""), nil
}
