package ai

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/amishk599/tailor/internal/model"
)

const fence = "```"

// StripCodeFence returns the body of the first Markdown code block in raw, with
// any language hint dropped. Replies without a fence are returned trimmed.
func StripCodeFence(raw string) string {
	start := strings.Index(raw, fence)
	if start < 0 {
		return strings.TrimSpace(raw)
	}
	body := raw[start+len(fence):]
	if end := strings.Index(body, fence); end >= 0 {
		body = body[:end]
	}

	trimmed := strings.TrimLeft(body, " \t")
	line, rest, multiline := strings.Cut(trimmed, "\n")
	if multiline && isLanguageHint(strings.TrimSpace(line)) {
		body = rest
	} else if i := strings.IndexAny(line, "{[\""); i > 0 && isLanguageHint(strings.TrimSpace(line[:i])) {
		// Hint sharing a line with the payload, as in ```json {"a":1}.
		body = trimmed[i:]
	}
	return strings.TrimSpace(body)
}

func isLanguageHint(s string) bool {
	if s == "" {
		return true
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '-', r == '_', r == '+':
		default:
			return false
		}
	}
	return true
}

// DecodeJSON strips code fences from an LLM reply and unmarshals the rest into
// v. A literal null is rejected. Any failure wraps model.ErrMalformedResponse.
func DecodeJSON(raw string, v any) error {
	text := StripCodeFence(raw)
	if text == "" {
		return fmt.Errorf("%w: empty reply", model.ErrMalformedResponse)
	}
	if text == "null" {
		return fmt.Errorf("%w: null reply", model.ErrMalformedResponse)
	}
	if err := json.Unmarshal([]byte(text), v); err != nil {
		return fmt.Errorf("%w: %v", model.ErrMalformedResponse, err)
	}
	return nil
}

// blankJSON reports whether raw holds no content: null, blank strings, or
// arrays and objects made only of those.
func blankJSON(raw []byte) bool {
	var v any
	if json.Unmarshal(raw, &v) != nil {
		return false
	}
	return blankValue(v)
}

func blankValue(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case string:
		return strings.TrimSpace(x) == ""
	case []any:
		for _, e := range x {
			if !blankValue(e) {
				return false
			}
		}
		return true
	case map[string]any:
		for _, e := range x {
			if !blankValue(e) {
				return false
			}
		}
		return true
	default:
		return false
	}
}
