// Package formatting provides parsing and formatting utilities: recovery of
// a typed JSON object from free-form model output, and human-readable byte
// sizes.
package formatting

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Extraction failure modes. ErrParseFailed wraps the decoder's message for
// candidates that were located but still do not decode.
var (
	ErrNoJSON      = errors.New("no JSON object found")
	ErrParseFailed = errors.New("parse failed after extraction")
	ErrIncomplete  = errors.New("incomplete JSON object")
)

// Parse recovers a value of type T from arbitrary model output. The content
// is first decoded directly; on failure the first balanced {...} object is
// extracted and decoded instead. Brace tracking respects string literals and
// escape sequences, so braces inside string values never affect nesting.
//
// Parse is idempotent: re-serializing a successful result and feeding it
// back through Parse yields an identical value.
func Parse[T any](content string) (T, error) {
	var result T

	if err := json.Unmarshal([]byte(strings.TrimSpace(content)), &result); err == nil {
		return result, nil
	}

	start := strings.IndexByte(content, '{')
	if start < 0 {
		return result, ErrNoJSON
	}

	depth := 0
	inString := false
	escaped := false

	for i := start; i < len(content); i++ {
		ch := content[i]

		if escaped {
			escaped = false
			continue
		}
		if inString {
			switch ch {
			case '\\':
				escaped = true
			case '"':
				inString = false
			}
			continue
		}

		switch ch {
		case '"':
			inString = true
			continue
		case '{':
			depth++
		case '}':
			depth--
		}

		if depth == 0 {
			candidate := content[start : i+1]
			if err := json.Unmarshal([]byte(candidate), &result); err != nil {
				var zero T
				return zero, fmt.Errorf("%w: %v", ErrParseFailed, err)
			}
			return result, nil
		}
	}

	return result, ErrIncomplete
}
