package loader

import (
	"context"
	"io/fs"

	"github.com/pkg/errors"
	"github.com/spf13/afero"
)

func loadFile(ctx context.Context, files afero.Fs, path string) ([]byte, error) {
	if path == "" {
		return nil, errors.New("file path is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := afero.ReadFile(files, path)
	if err != nil {
		return nil, errors.Wrap(err, "read file")
	}
	return data, nil
}

func loadFromFS(ctx context.Context, files fs.FS, name string) ([]byte, error) {
	if name == "" {
		return nil, errors.New("fs path is required")
	}
	if files == nil {
		return nil, errors.New("fs is nil")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := fs.ReadFile(files, name)
	if err != nil {
		return nil, errors.Wrap(err, "read fs entry")
	}
	return data, nil
}
