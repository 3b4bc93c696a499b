package orchestrator

import (
	"bytes"
	"context"
	"strings"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// Transformer mutates the final document after the pass pipeline has run.
type Transformer interface {
	Transform(ctx context.Context, doc map[string]any) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, doc map[string]any) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, doc map[string]any) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, doc)
}

// OverlayTransformer deep-merges a declarative overlay into the document.
// Objects merge key by key; any other overlay value replaces the target and
// a null removes it:
//
//	definitions:
//	  posts:
//	    properties:
//	      slug:
//	        goJSONSchema: {type: "Slug"}
//	      legacy: null
type OverlayTransformer struct {
	overlay map[string]any
}

// NewOverlayTransformer constructs a transformer from raw JSON or YAML bytes.
func NewOverlayTransformer(data []byte) (*OverlayTransformer, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("overlay transformer: document is empty")
	}
	var overlay map[string]any
	if err := json.Unmarshal(data, &overlay); err != nil {
		overlay = nil
		if yamlErr := yaml.Unmarshal(data, &overlay); yamlErr != nil {
			return nil, errors.Wrap(yamlErr, "overlay transformer: parse document")
		}
	}
	return &OverlayTransformer{overlay: overlay}, nil
}

// NewOverlayTransformerFromFS loads an overlay document from fs.
func NewOverlayTransformerFromFS(fs afero.Fs, path string) (*OverlayTransformer, error) {
	if fs == nil {
		return nil, errors.New("overlay transformer: filesystem is nil")
	}
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("overlay transformer: path is required")
	}
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, errors.Wrapf(err, "overlay transformer: read %s", path)
	}
	return NewOverlayTransformer(data)
}

// Transform applies the overlay to doc.
func (t *OverlayTransformer) Transform(_ context.Context, doc map[string]any) error {
	if t == nil || doc == nil {
		return nil
	}
	mergeInto(doc, t.overlay)
	return nil
}

func mergeInto(target, overlay map[string]any) {
	for key, value := range overlay {
		if value == nil {
			delete(target, key)
			continue
		}
		patch, ok := value.(map[string]any)
		if !ok {
			target[key] = value
			continue
		}
		existing, ok := target[key].(map[string]any)
		if !ok {
			existing = map[string]any{}
			target[key] = existing
		}
		mergeInto(existing, patch)
	}
}
