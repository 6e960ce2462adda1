package utils

import (
	"encoding/json"
	"strings"
)

// ExtractJSONObject locates the first balanced {...} substring in freeform
// text and parses it as a JSON object. Model output often wraps JSON in
// prose or code fences, so callers cannot assume the whole payload parses.
// Returns ok=false when no balanced object is found or it fails to parse;
// this function never returns an error.
func ExtractJSONObject(text string) (map[string]interface{}, bool) {
	raw, found := extractBalanced(text, '{', '}')
	if !found {
		return nil, false
	}
	var obj map[string]interface{}
	if err := json.Unmarshal([]byte(raw), &obj); err != nil {
		return nil, false
	}
	return obj, true
}

// ExtractJSONArray locates the first balanced [...] substring in freeform
// text and parses it as a JSON array. Returns ok=false on any failure.
func ExtractJSONArray(text string) ([]interface{}, bool) {
	raw, found := extractBalanced(text, '[', ']')
	if !found {
		return nil, false
	}
	var arr []interface{}
	if err := json.Unmarshal([]byte(raw), &arr); err != nil {
		return nil, false
	}
	return arr, true
}

// ExtractStringArray parses the first JSON array in the text and keeps
// only its string elements, trimmed. Returns ok=false when no array is
// found or it contains no strings.
func ExtractStringArray(text string) ([]string, bool) {
	arr, ok := ExtractJSONArray(text)
	if !ok {
		return nil, false
	}
	out := make([]string, 0, len(arr))
	for _, v := range arr {
		if s, isString := v.(string); isString {
			if trimmed := strings.TrimSpace(s); trimmed != "" {
				out = append(out, trimmed)
			}
		}
	}
	if len(out) == 0 {
		return nil, false
	}
	return out, true
}

// extractBalanced returns the first substring starting at openCh and
// ending at its matching closeCh, tracking nesting depth and
// skipping braces inside JSON string literals.
func extractBalanced(text string, openCh, closeCh byte) (string, bool) {
	start := strings.IndexByte(text, openCh)
	if start < 0 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(text); i++ {
		c := text[i]

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
		case openCh:
			depth++
		case closeCh:
			depth--
			if depth == 0 {
				return text[start : i+1], true
			}
		}
	}

	return "", false
}
