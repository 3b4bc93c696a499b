package jsonschema

import (
	"bytes"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

// Parse decodes a JSON Schema document produced by the schema runtime.
func Parse(raw []byte) (map[string]any, error) {
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil, errors.New("jsonschema: document is empty")
	}
	var doc map[string]any
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, errors.Wrap(err, "jsonschema: parse document")
	}
	if doc == nil {
		return nil, errors.New("jsonschema: document is null")
	}
	return doc, nil
}

// Clone deep-copies a document so callers can keep the original around
// while the passes rewrite the copy.
func Clone(doc map[string]any) map[string]any {
	if doc == nil {
		return nil
	}
	out, _ := cloneValue(doc).(map[string]any)
	return out
}

func cloneValue(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		out := make(map[string]any, len(typed))
		for key, item := range typed {
			out[key] = cloneValue(item)
		}
		return out
	case []any:
		out := make([]any, len(typed))
		for idx, item := range typed {
			out[idx] = cloneValue(item)
		}
		return out
	case []string:
		return append([]string(nil), typed...)
	default:
		return value
	}
}
