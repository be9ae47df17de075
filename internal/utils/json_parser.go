package utils

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

var (
	fencedJSONBlock = regexp.MustCompile("(?s)```json\\s*(.+?)\\s*```")
	fencedBlock     = regexp.MustCompile("(?s)```\\s*(.+?)\\s*```")
	trailingCommas  = regexp.MustCompile(`,\s*([}\]])`)
)

// ParseAIJSON extracts and parses JSON from LLM output that may be pure
// JSON, JSON wrapped in markdown code fences, or JSON buried in surrounding
// prose. It tries the cheapest strategy first.
func ParseAIJSON(input string, target interface{}) error {
	if input == "" {
		return fmt.Errorf("empty input")
	}

	if err := json.Unmarshal([]byte(input), target); err == nil {
		return nil
	}

	if extracted := stripCodeFences(input); extracted != "" {
		if err := json.Unmarshal([]byte(extracted), target); err == nil {
			return nil
		}
	}

	if extracted := findJSONValue(input); extracted != "" {
		if err := json.Unmarshal([]byte(extracted), target); err == nil {
			return nil
		}
		// Last resort: drop trailing commas, a common LLM slip.
		cleaned := trailingCommas.ReplaceAllString(extracted, "$1")
		if err := json.Unmarshal([]byte(cleaned), target); err == nil {
			return nil
		}
	}

	return fmt.Errorf("failed to parse JSON from input: %s", truncate(input, 100))
}

// stripCodeFences pulls the body out of a ```json or bare ``` block.
func stripCodeFences(input string) string {
	if m := fencedJSONBlock.FindStringSubmatch(input); len(m) > 1 {
		return strings.TrimSpace(m[1])
	}
	if m := fencedBlock.FindStringSubmatch(input); len(m) > 1 {
		body := strings.TrimSpace(m[1])
		if strings.HasPrefix(body, "{") || strings.HasPrefix(body, "[") {
			return body
		}
	}
	return ""
}

// findJSONValue locates the first balanced JSON object or array in the text.
func findJSONValue(input string) string {
	if start := strings.Index(input, "{"); start >= 0 {
		if v := balancedSlice(input[start:], '{', '}'); v != "" {
			return v
		}
	}
	if start := strings.Index(input, "["); start >= 0 {
		if v := balancedSlice(input[start:], '[', ']'); v != "" {
			return v
		}
	}
	return ""
}

// balancedSlice returns the prefix of input spanning one balanced pair of
// open/close delimiters, respecting string literals and escapes.
func balancedSlice(input string, open, close rune) string {
	depth := 0
	inString := false
	escape := false
	start := 0

	for i, ch := range input {
		if escape {
			escape = false
			continue
		}
		if ch == '\\' {
			escape = true
			continue
		}
		if ch == '"' {
			inString = !inString
			continue
		}
		if inString {
			continue
		}
		if ch == open {
			if depth == 0 {
				start = i
			}
			depth++
		} else if ch == close {
			depth--
			if depth == 0 {
				return input[start : i+1]
			}
		}
	}

	return ""
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
