package llm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanJSONBlock(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "json code block",
			input:    "```json\n{\"key\": \"value\"}\n```",
			expected: `{"key": "value"}`,
		},
		{
			name:     "generic code block",
			input:    "```\n{\"key\": \"value\"}\n```",
			expected: `{"key": "value"}`,
		},
		{
			name:     "code block with language",
			input:    "```javascript\n{\"key\": \"value\"}\n```",
			expected: `{"key": "value"}`,
		},
		{
			name:     "plain JSON",
			input:    `  {"key": "value"} `,
			expected: `{"key": "value"}`,
		},
		{
			name:     "fence after preamble",
			input:    "질문 목록입니다:\n```json\n[{\"field\": \"location\"}]\n```\n감사합니다",
			expected: `[{"field": "location"}]`,
		},
		{
			name:     "unterminated fence",
			input:    "```json\n{\"key\": 1}",
			expected: `{"key": 1}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanJSONBlock(tt.input))
		})
	}
}
