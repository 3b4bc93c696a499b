package output

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONPath(t *testing.T) {
	t.Parallel()

	tt := map[string]string{
		"src/payload-types.ts":   "src/payload-types.json",
		"src/payload-types.json": "src/payload-types.json",
		"types.tsx":              "types.tsx",
		"":                       "",
	}
	for input, want := range tt {
		assert.Equal(t, want, JSONPath(input), input)
	}
}

func TestEncode(t *testing.T) {
	t.Parallel()

	got, err := Encode(map[string]any{
		"b": 1,
		"a": map[string]any{"$ref": "#/definitions/users"},
	})
	require.NoError(t, err)

	want := "{\n    \"a\": {\n        \"$ref\": \"#/definitions/users\"\n    },\n    \"b\": 1\n}"
	assert.Equal(t, want, string(got))
}

func TestWriter(t *testing.T) {
	t.Parallel()

	t.Run("Writes and creates directories", func(t *testing.T) {
		t.Parallel()

		fs := afero.NewMemMapFs()
		w := NewWriter(fs)

		exists, err := w.Exists("gen/types.json")
		require.NoError(t, err)
		assert.False(t, exists)

		require.NoError(t, w.Write("gen/types.json", map[string]any{"title": "Config"}))

		exists, err = w.Exists("gen/types.json")
		require.NoError(t, err)
		assert.True(t, exists)

		data, err := afero.ReadFile(fs, "gen/types.json")
		require.NoError(t, err)
		assert.JSONEq(t, `{"title":"Config"}`, string(data))
	})

	t.Run("Empty path", func(t *testing.T) {
		t.Parallel()

		err := NewWriter(afero.NewMemMapFs()).Write(" ", map[string]any{})
		assert.ErrorContains(t, err, "path is required")
	})

	t.Run("Read only filesystem", func(t *testing.T) {
		t.Parallel()

		fs := afero.NewReadOnlyFs(afero.NewMemMapFs())
		err := NewWriter(fs).Write("types.json", map[string]any{})
		assert.ErrorContains(t, err, "output: write types.json")
	})
}
