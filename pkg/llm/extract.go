package llm

import "strings"

// ExtractJSON pulls a JSON object out of model output. Fenced blocks
// are preferred because models that fence usually put prose around the
// fence; otherwise the first balanced object wins. Brace matching
// ignores braces inside string literals.
func ExtractJSON(raw string) (string, bool) {
	if s, ok := extractFenced(raw); ok {
		if obj, ok := firstBalancedObject(s); ok {
			return obj, true
		}
	}
	return firstBalancedObject(raw)
}

func extractFenced(raw string) (string, bool) {
	for _, marker := range []string{"```json", "```"} {
		start := strings.Index(raw, marker)
		if start < 0 {
			continue
		}
		rest := raw[start+len(marker):]
		end := strings.Index(rest, "```")
		if end < 0 {
			continue
		}
		return strings.TrimSpace(rest[:end]), true
	}
	return "", false
}

func firstBalancedObject(raw string) (string, bool) {
	start := strings.IndexByte(raw, '{')
	if start < 0 {
		return "", false
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(raw); i++ {
		c := raw[i]
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
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return raw[start : i+1], true
			}
		}
	}
	return "", false
}
