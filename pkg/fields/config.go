package fields

import (
	"bytes"
	"strings"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Collection is a Payload collection: a slugged list of top-level fields.
// Auth marks collections that carry login credentials.
type Collection struct {
	Slug   string   `json:"slug" yaml:"slug"`
	Auth   bool     `json:"auth,omitempty" yaml:"auth,omitempty"`
	Fields []*Field `json:"fields" yaml:"fields"`
}

// Global is a Payload global: a singleton document with its own fields.
type Global struct {
	Slug   string   `json:"slug" yaml:"slug"`
	Fields []*Field `json:"fields" yaml:"fields"`
}

// Config is the complete field forest of a Payload project.
type Config struct {
	Collections []*Collection `json:"collections" yaml:"collections"`
	Globals     []*Global     `json:"globals" yaml:"globals"`
}

// Decode parses a field forest from JSON or YAML. The name is only used in
// error messages.
func Decode(data []byte, name string) (*Config, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.Errorf("fields: %s is empty", name)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		cfg = Config{}
		if yamlErr := yaml.Unmarshal(data, &cfg); yamlErr != nil {
			return nil, errors.Wrapf(yamlErr, "fields: parse %s: invalid JSON or YAML", name)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "fields: %s", name)
	}
	return &cfg, nil
}

// Validate checks the structural requirements the walker and document
// builder rely on: unique, non-empty slugs and named data fields.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config is nil")
	}
	seen := make(map[string]struct{}, len(c.Collections)+len(c.Globals))
	check := func(kind, slug string, list []*Field) error {
		slug = strings.TrimSpace(slug)
		if slug == "" {
			return errors.Errorf("%s slug is required", kind)
		}
		if _, ok := seen[slug]; ok {
			return errors.Errorf("duplicate slug %q", slug)
		}
		seen[slug] = struct{}{}
		return validateFields(slug, list)
	}
	for _, col := range c.Collections {
		if col == nil {
			continue
		}
		if err := check("collection", col.Slug, col.Fields); err != nil {
			return err
		}
	}
	for _, global := range c.Globals {
		if global == nil {
			continue
		}
		if err := check("global", global.Slug, global.Fields); err != nil {
			return err
		}
	}

	var collision error
	c.ForEachFieldList(func(slug string, list []*Field) {
		if collision != nil {
			return
		}
		forEachBlock(list, func(block *Block) {
			name := block.DefinitionName()
			if _, ok := seen[name]; ok && collision == nil {
				collision = errors.Errorf("%s: block definition %q collides with a collection or global slug", slug, name)
			}
		})
	})
	return collision
}

// forEachBlock calls fn for every block reachable from list.
func forEachBlock(list []*Field, fn func(*Block)) {
	for _, f := range list {
		if f == nil {
			continue
		}
		if f.Type.HasFields() {
			forEachBlock(f.Fields, fn)
		}
		for _, tab := range f.Tabs {
			if tab != nil {
				forEachBlock(tab.Fields, fn)
			}
		}
		for _, block := range f.Blocks {
			if block == nil {
				continue
			}
			fn(block)
			forEachBlock(block.Fields, fn)
		}
	}
}

func validateFields(path string, list []*Field) error {
	for idx, f := range list {
		if f == nil {
			return errors.Errorf("%s: field %d is nil", path, idx)
		}
		if strings.TrimSpace(string(f.Type)) == "" {
			return errors.Errorf("%s: field %d has no type", path, idx)
		}
		if !f.Type.IsLayout() && strings.TrimSpace(f.Name) == "" {
			return errors.Errorf("%s: %s field %d requires a name", path, f.Type, idx)
		}
		child := path + "." + f.Name
		if err := validateFields(child, f.Fields); err != nil {
			return err
		}
		for _, block := range f.Blocks {
			if block == nil || strings.TrimSpace(block.Slug) == "" {
				return errors.Errorf("%s: block slug is required", child)
			}
			if err := validateFields(child+"."+block.Slug, block.Fields); err != nil {
				return err
			}
		}
		for _, tab := range f.Tabs {
			if tab == nil {
				continue
			}
			if err := validateFields(child+"."+tab.Name, tab.Fields); err != nil {
				return err
			}
		}
	}
	return nil
}

// ForEachFieldList calls fn with the top-level field list of every
// collection and global, collections first.
func (c *Config) ForEachFieldList(fn func(slug string, list []*Field)) {
	if c == nil || fn == nil {
		return
	}
	for _, col := range c.Collections {
		if col != nil {
			fn(col.Slug, col.Fields)
		}
	}
	for _, global := range c.Globals {
		if global != nil {
			fn(global.Slug, global.Fields)
		}
	}
}
