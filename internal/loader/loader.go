// Package loader reads raw documents from files, fs.FS entries and HTTP
// endpoints.
package loader

import (
	"context"
	"io/fs"
	"net/http"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/afero"

	"github.com/goliatone/go-payloadgen/pkg/source"
)

// Options configures a Loader. A nil Files falls back to the OS filesystem.
type Options struct {
	Files          afero.Fs
	FileSystem     fs.FS
	HTTPClient     *http.Client
	AllowHTTP      bool
	RequestTimeout time.Duration
}

// Loader fetches raw bytes for a source.
type Loader struct {
	files     afero.Fs
	fs        fs.FS
	http      *http.Client
	allowHTTP bool
	timeout   time.Duration
}

// New constructs a Loader from options.
func New(options Options) *Loader {
	files := options.Files
	if files == nil {
		files = afero.NewOsFs()
	}

	var httpClient *http.Client
	switch {
	case options.HTTPClient != nil:
		clone := *options.HTTPClient
		if options.RequestTimeout > 0 && clone.Timeout == 0 {
			clone.Timeout = options.RequestTimeout
		}
		httpClient = &clone
	case options.AllowHTTP:
		httpClient = &http.Client{Timeout: options.RequestTimeout}
	}

	return &Loader{
		files:     files,
		fs:        options.FileSystem,
		http:      httpClient,
		allowHTTP: httpClient != nil,
		timeout:   options.RequestTimeout,
	}
}

// Load returns the raw bytes behind src.
func (l *Loader) Load(ctx context.Context, src source.Source) ([]byte, error) {
	if src == nil {
		return nil, errors.New("loader: source is nil")
	}

	var (
		data []byte
		err  error
	)
	switch src.Kind() {
	case source.KindFile:
		data, err = loadFile(ctx, l.files, src.Location())
	case source.KindFS:
		data, err = loadFromFS(ctx, l.fs, src.Location())
	case source.KindURL:
		if !l.allowHTTP {
			return nil, errors.New("loader: http support disabled")
		}
		data, err = loadHTTP(ctx, l.http, src.Location(), l.timeout)
	default:
		err = errors.Errorf("loader: unsupported source kind %q", src.Kind())
	}
	if err != nil {
		return nil, errors.Wrapf(err, "loader: load %s", src.Location())
	}
	return data, nil
}
