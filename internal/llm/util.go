package llm

import "strings"

// CleanJSONBlock removes markdown code fence wrappers from an LLM response.
// If the text contains a fenced block anywhere, the first block's body is returned;
// otherwise the trimmed text is returned unchanged.
func CleanJSONBlock(text string) string {
	text = strings.TrimSpace(text)

	start := strings.Index(text, "```")
	if start < 0 {
		return text
	}
	body := text[start+3:]

	// Skip a language identifier on the opening fence line (e.g. "json")
	if idx := strings.Index(body, "\n"); idx >= 0 {
		firstLine := strings.TrimSpace(body[:idx])
		if len(firstLine) < 20 && !strings.ContainsAny(firstLine, " {[") {
			body = body[idx+1:]
		}
	}

	if end := strings.Index(body, "```"); end >= 0 {
		body = body[:end]
	}
	return strings.TrimSpace(body)
}
