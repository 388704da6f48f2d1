package llm

import (
	"encoding/json"
	"slices"
	"strings"
)

// ExtractJSON recovers a JSON value from model output.
//
// It tries, in order: the fence-stripped text as a whole, the raw text as a whole,
// then each balanced {...} or [...] span in order of its opening position. A span
// nested inside one that failed to parse is not tried. The first span that parses
// wins. If nothing parses, def is returned. It never panics.
func ExtractJSON(text string, def any) any {
	if strings.TrimSpace(text) == "" {
		return def
	}

	for _, candidate := range []string{CleanJSONBlock(text), text} {
		var v any
		if err := json.Unmarshal([]byte(candidate), &v); err == nil {
			return v
		}
	}

	failedEnd := -1
	for _, sp := range balancedSpans(text) {
		if sp.end <= failedEnd {
			continue
		}
		var v any
		if err := json.Unmarshal([]byte(text[sp.start:sp.end]), &v); err == nil {
			return v
		}
		failedEnd = sp.end
	}
	return def
}

// DecodeJSON recovers a JSON value from model output and decodes it into T.
// Returns def when no candidate decodes into T.
func DecodeJSON[T any](text string, def T) T {
	raw := ExtractJSON(text, nil)
	if raw == nil {
		return def
	}
	data, err := json.Marshal(raw)
	if err != nil {
		return def
	}
	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		return def
	}
	return out
}

type span struct {
	start, end int
}

// balancedSpans finds every bracket span that closes, sorted by opening position,
// in a single pass. Quotes only open a string literal inside an open bracket, so
// stray quotes in surrounding prose do not hide a later object. Mismatched
// closers are ignored. Openers that never close produce no span.
func balancedSpans(s string) []span {
	var spans []span
	var stack []int
	inString := false
	escaped := false

	for i := 0; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}

		switch c {
		case '"':
			inString = len(stack) > 0
		case '{', '[':
			stack = append(stack, i)
		case '}', ']':
			if len(stack) == 0 {
				continue
			}
			open := s[stack[len(stack)-1]]
			if (open == '{' && c == '}') || (open == '[' && c == ']') {
				spans = append(spans, span{start: stack[len(stack)-1], end: i + 1})
				stack = stack[:len(stack)-1]
			}
		}
	}

	slices.SortFunc(spans, func(a, b span) int { return a.start - b.start })
	return spans
}
