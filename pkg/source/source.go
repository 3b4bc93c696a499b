// Package source identifies where field forests and schema documents are
// read from, so loaders can operate on files, fs.FS entries or URLs without
// leaking implementation details.
package source

import (
	"net/url"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
)

// Source identifies where a document originated.
type Source interface {
	Kind() Kind
	Location() string
}

// Kind enumerates the loader modalities.
type Kind string

const (
	KindFile Kind = "file"
	KindFS   Kind = "fs"
	KindURL  Kind = "url"
)

type fileSource struct {
	path string
}

func (s fileSource) Location() string { return s.path }
func (s fileSource) Kind() Kind       { return KindFile }

// FromFile returns a Source pointing to a file path.
func FromFile(path string) Source {
	return fileSource{path: filepath.Clean(path)}
}

type fsSource struct {
	name string
}

func (s fsSource) Location() string { return s.name }
func (s fsSource) Kind() Kind       { return KindFS }

// FromFS returns a Source identifying a resource inside an fs.FS.
func FromFS(name string) Source {
	return fsSource{name: name}
}

type urlSource struct {
	raw string
}

func (s urlSource) Location() string { return s.raw }
func (s urlSource) Kind() Kind       { return KindURL }

// FromURL parses the supplied URL string and returns a Source.
func FromURL(raw string) (Source, error) {
	if raw == "" {
		return nil, errors.New("source: empty URL")
	}
	if _, err := url.ParseRequestURI(raw); err != nil {
		return nil, errors.Wrapf(err, "source: invalid URL %q", raw)
	}
	return urlSource{raw: raw}, nil
}

// Parse returns a URL source for http(s) locations and a file source for
// everything else. Empty input yields nil.
func Parse(raw string) (Source, error) {
	location := strings.TrimSpace(raw)
	if location == "" {
		return nil, nil
	}
	if strings.HasPrefix(location, "http://") || strings.HasPrefix(location, "https://") {
		return FromURL(location)
	}
	return FromFile(location), nil
}
