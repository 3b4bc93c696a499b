// Package output serializes generated documents to disk.
package output

import (
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

// Indent matches the four-space indentation Payload's type generator uses.
const Indent = "    "

// JSONPath maps a TypeScript output path onto its JSON sibling, so the
// Payload `typescript.outputFile` setting can be reused as is.
func JSONPath(path string) string {
	if strings.HasSuffix(path, ".ts") {
		return strings.TrimSuffix(path, ".ts") + ".json"
	}
	return path
}

// Encode pretty-prints doc. Object keys are sorted.
func Encode(doc map[string]any) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", Indent)
	if err != nil {
		return nil, errors.Wrap(err, "output: encode document")
	}
	return data, nil
}

// Writer writes documents to a filesystem.
type Writer struct {
	fs afero.Fs
}

// NewWriter returns a Writer over fs; nil means the OS filesystem.
func NewWriter(fs afero.Fs) *Writer {
	if fs == nil {
		fs = afero.NewOsFs()
	}
	return &Writer{fs: fs}
}

// Exists reports whether path is already present.
func (w *Writer) Exists(path string) (bool, error) {
	return afero.Exists(w.fs, path)
}

// Write encodes doc and writes it to path, creating parent directories.
func (w *Writer) Write(path string, doc map[string]any) error {
	if strings.TrimSpace(path) == "" {
		return errors.New("output: path is required")
	}
	data, err := Encode(doc)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := w.fs.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrapf(err, "output: create %s", dir)
		}
	}
	if err := afero.WriteFile(w.fs, path, data, 0o644); err != nil {
		return errors.Wrapf(err, "output: write %s", path)
	}
	return nil
}
