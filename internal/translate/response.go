package translate

import (
	"encoding/json"
	"fmt"
	"strings"
)

// removes markdown formatting from the response
func cleanJSONResponse(s string) string {
	s = strings.TrimSpace(s)

	s = strings.ReplaceAll(s, "```json", "")
	s = strings.ReplaceAll(s, "```", "")

	return strings.TrimSpace(s)
}

// truncates a string for error messages
func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}

// fixInvalidEscapes rewrites escape sequences JSON does not know (a model
// echoing a literal \N line break, for instance) as escaped backslashes so
// the payload stays parseable with the literal text intact.
func fixInvalidEscapes(s string) string {
	var result strings.Builder
	result.Grow(len(s))

	valid := map[byte]bool{
		'"': true, '\\': true, '/': true, 'b': true,
		'f': true, 'n': true, 'r': true, 't': true, 'u': true,
	}

	i := 0
	for i < len(s) {
		if i < len(s)-1 && s[i] == '\\' && !valid[s[i+1]] {
			result.WriteString("\\\\")
			i++
			continue
		}
		result.WriteByte(s[i])
		i++
	}

	return result.String()
}

// extractResults scans for the first decodable JSON value in the response,
// tolerating preamble and trailing chatter. Both a bare array and a wrapper
// object whose values contain the array are accepted.
func extractResults(text string) ([]Item, error) {
	text = fixInvalidEscapes(text)

	for i := 0; i < len(text); i++ {
		if text[i] != '[' && text[i] != '{' {
			continue
		}
		decoder := json.NewDecoder(strings.NewReader(text[i:]))
		var raw json.RawMessage
		if err := decoder.Decode(&raw); err != nil {
			continue
		}
		if results, ok := tryExtractItems(raw); ok && len(results) > 0 {
			return results, nil
		}
	}

	return nil, fmt.Errorf("no valid translation JSON found in response")
}

func tryExtractItems(raw json.RawMessage) ([]Item, bool) {
	var items []Item
	if err := json.Unmarshal(raw, &items); err == nil {
		return items, validItems(items)
	}

	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(raw, &wrapper); err != nil {
		return nil, false
	}

	for _, value := range wrapper {
		if err := json.Unmarshal(value, &items); err == nil && validItems(items) {
			return items, true
		}
	}

	return nil, false
}

func validItems(items []Item) bool {
	if len(items) == 0 {
		return false
	}
	for _, item := range items {
		if item.ID == "" {
			return false
		}
	}
	return true
}
