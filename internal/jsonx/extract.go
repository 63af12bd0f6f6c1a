// Package jsonx extracts JSON payloads from free-form language model output.
package jsonx

import (
	"encoding/json"
	"errors"
)

// ErrNoObject is returned when text contains no parseable JSON object.
var ErrNoObject = errors.New("jsonx: no JSON object found")

// ExtractObject returns the first balanced top-level JSON object found in
// text. Models are instructed to respond with JSON only, but frequently wrap
// the payload in explanatory prose or markdown fences; this scans for the
// first '{', tracks brace depth while respecting string literals, and
// validates the candidate with the JSON parser before returning it.
func ExtractObject(text string) (string, error) {
	start := -1
	depth := 0
	inString := false
	escaped := false

	for i := 0; i < len(text); i++ {
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
				candidate := text[start : i+1]
				if json.Valid([]byte(candidate)) {
					return candidate, nil
				}
				// Malformed candidate; keep scanning after it.
				start = -1
			}
		}
	}

	return "", ErrNoObject
}

// Unmarshal extracts the first JSON object from text and decodes it into v.
func Unmarshal(text string, v any) error {
	obj, err := ExtractObject(text)
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(obj), v)
}
