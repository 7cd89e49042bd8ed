package scoring

import (
	"encoding/json"
	"strings"
)

// ExtractErrorMessage pulls a human-readable message out of an error response
// body. The backend may be fronted by an API gateway that nests the real
// error inside a string-encoded body field, and the surrounding text may not
// be JSON at all, so the first balanced {...} block is located with a
// quote-and-escape-aware brace scan before parsing. When nothing usable is
// found a generic message is returned; raw bodies never reach the user.
func ExtractErrorMessage(body string) string {
	block, ok := matchBraceBlock(body)
	if !ok {
		return msgHTTP
	}

	var obj map[string]any
	if err := json.Unmarshal([]byte(block), &obj); err != nil {
		return msgHTTP
	}

	if msg := messageFromObject(obj); msg != "" {
		return msg
	}

	// Gateway envelope: the body field needs one more decode pass. It may be
	// a JSON object or a JSON-encoded plain string.
	if inner, ok := obj["body"].(string); ok {
		var innerObj map[string]any
		if err := json.Unmarshal([]byte(inner), &innerObj); err == nil {
			if msg := messageFromObject(innerObj); msg != "" {
				return msg
			}
		}

		var innerText string
		if err := json.Unmarshal([]byte(inner), &innerText); err == nil {
			if innerText = strings.TrimSpace(innerText); innerText != "" {
				return innerText
			}
		}
	}

	return msgHTTP
}

func messageFromObject(obj map[string]any) string {
	if msg, ok := obj["error"].(string); ok && strings.TrimSpace(msg) != "" {
		return msg
	}
	if msg, ok := obj["message"].(string); ok && strings.TrimSpace(msg) != "" {
		return msg
	}
	return ""
}

// matchBraceBlock returns the substring from the first '{' to its matching
// '}', tracking nesting depth while respecting quoted strings and backslash
// escapes.
func matchBraceBlock(s string) (string, bool) {
	start := strings.IndexByte(s, '{')
	if start == -1 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(s); i++ {
		if escaped {
			escaped = false
			continue
		}

		switch s[i] {
		case '\\':
			escaped = true
		case '"':
			inString = !inString
		case '{':
			if !inString {
				depth++
			}
		case '}':
			if !inString {
				depth--
				if depth == 0 {
					return s[start : i+1], true
				}
			}
		}
	}

	return "", false
}
