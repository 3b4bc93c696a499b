// Package config resolves generator settings from the environment and
// optional dotenv files. It is only read at the edges; the annotation and
// pass packages receive explicit options.
package config

import (
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/pkg/errors"
	"github.com/spf13/afero"

	"github.com/goliatone/go-payloadgen/internal/output"
	"github.com/goliatone/go-payloadgen/pkg/annotate"
)

// Environment keys.
const (
	OutputPathKey       = "PAYLOAD_TS_OUTPUT_PATH"
	OpaqueMediaKey      = "PAYLOAD_GEN_OPAQUE_MEDIA"
	RelationshipMetaKey = "PAYLOAD_GEN_RELATIONSHIP_META"
	AdapterImportKey    = "PAYLOAD_GEN_ADAPTER_IMPORT"
	IDTypeKey           = "PAYLOAD_GEN_ID_TYPE"
)

// Config holds every environment-driven setting.
type Config struct {
	OutputPath                 string `env:"PAYLOAD_TS_OUTPUT_PATH"`
	UseOpaqueMediaType         bool   `env:"PAYLOAD_GEN_OPAQUE_MEDIA"`
	AssignRelationshipMetadata bool   `env:"PAYLOAD_GEN_RELATIONSHIP_META" envDefault:"true"`
	AdapterImport              string `env:"PAYLOAD_GEN_ADAPTER_IMPORT"`
	IDType                     string `env:"PAYLOAD_GEN_ID_TYPE" envDefault:"string"`
}

// Load parses Config from the process environment merged with the given
// dotenv files. Process variables win over dotenv values; missing dotenv
// files are skipped.
func Load(fs afero.Fs, dotenv ...string) (Config, error) {
	return LoadFrom(fs, os.Environ(), dotenv...)
}

// LoadFrom is Load with an explicit environment in KEY=VALUE form.
func LoadFrom(fs afero.Fs, environ []string, dotenv ...string) (Config, error) {
	if fs == nil {
		fs = afero.NewOsFs()
	}

	vars := map[string]string{}
	for _, path := range dotenv {
		if strings.TrimSpace(path) == "" {
			continue
		}
		exists, err := afero.Exists(fs, path)
		if err != nil {
			return Config{}, errors.Wrapf(err, "config: stat %s", path)
		}
		if !exists {
			continue
		}
		file, err := fs.Open(path)
		if err != nil {
			return Config{}, errors.Wrapf(err, "config: open %s", path)
		}
		parsed, err := godotenv.Parse(file)
		_ = file.Close()
		if err != nil {
			return Config{}, errors.Wrapf(err, "config: parse %s", path)
		}
		for key, value := range parsed {
			if _, ok := vars[key]; !ok {
				vars[key] = value
			}
		}
	}
	for _, kv := range environ {
		if key, value, ok := strings.Cut(kv, "="); ok {
			vars[key] = value
		}
	}

	var cfg Config
	if err := env.ParseWithOptions(&cfg, env.Options{Environment: vars}); err != nil {
		return Config{}, errors.Wrap(err, "config: parse environment")
	}
	return cfg, nil
}

// Options converts the config into annotation options.
func (c Config) Options() annotate.Options {
	return annotate.Options{
		UseOpaqueMediaType:         c.UseOpaqueMediaType,
		AssignRelationshipMetadata: c.AssignRelationshipMetadata,
		AdapterImport:              c.AdapterImport,
	}
}

// ResolveOutputPath returns the path the document is written to: the
// environment override when set, else fallback, with a .ts suffix swapped
// for .json.
func (c Config) ResolveOutputPath(fallback string) string {
	path := fallback
	if override := strings.TrimSpace(c.OutputPath); override != "" {
		path = override
	}
	return output.JSONPath(path)
}
