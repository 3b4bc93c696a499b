package testsupport

import (
	"context"
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pkg/errors"

	"github.com/goliatone/go-payloadgen/pkg/fields"
)

// LoadConfig reads a field forest fixture. Failures abort the test.
func LoadConfig(t *testing.T, path string) *fields.Config {
	t.Helper()

	cfg, err := LoadConfigFromPath(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	return cfg
}

// LoadConfigFromPath returns a field forest without requiring testing.T.
func LoadConfigFromPath(path string) (*fields.Config, error) {
	if path == "" {
		return nil, errors.New("testsupport: config path is required")
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "testsupport: read config")
	}
	return fields.Decode(data, path)
}

// Lookup walks doc along keys and returns the node found, or nil.
func Lookup(doc map[string]any, keys ...string) any {
	var node any = doc
	for _, key := range keys {
		m, ok := node.(map[string]any)
		if !ok {
			return nil
		}
		node = m[key]
	}
	return node
}

// CompareGolden returns a diff string if the values differ.
func CompareGolden(want, got any) string {
	return cmp.Diff(want, got)
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}
