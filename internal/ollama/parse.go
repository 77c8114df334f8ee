// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ollama

import (
	"encoding/json"
	"fmt"

	"github.com/kaptinlin/jsonrepair"
)

// ExtractJSON returns the first balanced top-level {...} object in text.
// Braces inside string literals do not count toward the balance, so
// prose like `{"note": "see {figure}"}` survives intact. Returns ""
// when no balanced object exists.
func ExtractJSON(text string) string {
	start := -1
	depth := 0
	inString := false
	escaped := false

	for i, r := range text {
		if inString {
			switch {
			case escaped:
				escaped = false
			case r == '\\':
				escaped = true
			case r == '"':
				inString = false
			}
			continue
		}
		switch r {
		case '"':
			if start >= 0 {
				inString = true
			}
		case '{':
			if start < 0 {
				start = i
			}
			depth++
		case '}':
			if start < 0 {
				continue
			}
			depth--
			if depth == 0 {
				return text[start : i+1]
			}
		}
	}
	return ""
}

// ParseObject carves the JSON object out of a raw model response and
// unmarshals it into v. Malformed JSON gets one repair pass before
// giving up. Models wrap JSON in prose and markdown fences routinely;
// a response with no usable object is an error the caller degrades on.
func ParseObject(raw string, v any) error {
	obj := ExtractJSON(raw)
	if obj == "" {
		return fmt.Errorf("no JSON object in model response")
	}
	if err := json.Unmarshal([]byte(obj), v); err == nil {
		return nil
	}
	repaired, err := jsonrepair.JSONRepair(obj)
	if err != nil {
		return fmt.Errorf("repairing model JSON: %w", err)
	}
	if err := json.Unmarshal([]byte(repaired), v); err != nil {
		return fmt.Errorf("parsing repaired model JSON: %w", err)
	}
	return nil
}
