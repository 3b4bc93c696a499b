package fields

import (
	"strings"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// SchemaTransformer rewrites the JSON Schema emitted for a single field.
// Transformers attached to a field run in registration order, each one
// receiving the output of the previous.
type SchemaTransformer func(schema map[string]any) map[string]any

// Field is one node of a field tree. Type selects which of the remaining
// members are meaningful:
//
//   - relationship/upload: RelationTo, HasMany
//   - select/radio: Options (HasMany for select)
//   - group/array/row/collapsible: Fields
//   - blocks: Blocks
//   - tabs: Tabs
//
// Layout nodes (row, collapsible, tabs, ui) may omit Name.
type Field struct {
	Type       Kind       `json:"type" yaml:"type"`
	Name       string     `json:"name,omitempty" yaml:"name,omitempty"`
	Label      string     `json:"label,omitempty" yaml:"label,omitempty"`
	Required   bool       `json:"required,omitempty" yaml:"required,omitempty"`
	HasMany    bool       `json:"hasMany,omitempty" yaml:"hasMany,omitempty"`
	RelationTo RelationTo `json:"relationTo,omitempty" yaml:"relationTo,omitempty"`
	Options    []Option   `json:"options,omitempty" yaml:"options,omitempty"`
	Fields     []*Field   `json:"fields,omitempty" yaml:"fields,omitempty"`
	Blocks     []*Block   `json:"blocks,omitempty" yaml:"blocks,omitempty"`
	Tabs       []*Tab     `json:"tabs,omitempty" yaml:"tabs,omitempty"`

	// Annotation is the Go type override attached by the walker.
	Annotation *Annotation `json:"-" yaml:"-"`
	// Meta is the relationship/positional sidecar attached by the walker.
	Meta *Meta `json:"-" yaml:"-"`
	// TypeSchema lists the transformers the document builder applies to the
	// field's emitted schema.
	TypeSchema []SchemaTransformer `json:"-" yaml:"-"`
}

// ApplySchema runs every attached transformer over schema in order.
func (f *Field) ApplySchema(schema map[string]any) map[string]any {
	if f == nil {
		return schema
	}
	for _, transform := range f.TypeSchema {
		if transform == nil {
			continue
		}
		schema = transform(schema)
	}
	return schema
}

// ResetAnnotations clears everything a previous walk attached.
func (f *Field) ResetAnnotations() {
	if f == nil {
		return
	}
	f.Annotation = nil
	f.Meta = nil
	f.TypeSchema = nil
}

// Block is a named sub-schema of a blocks field.
type Block struct {
	Slug          string   `json:"slug" yaml:"slug"`
	InterfaceName string   `json:"interfaceName,omitempty" yaml:"interfaceName,omitempty"`
	Fields        []*Field `json:"fields,omitempty" yaml:"fields,omitempty"`
}

// DefinitionName returns the key the block is emitted under in the
// document's definitions.
func (b *Block) DefinitionName() string {
	if name := strings.TrimSpace(b.InterfaceName); name != "" {
		return name
	}
	return b.Slug
}

// Tab is one tab of a tabs field. Named tabs nest their fields under the
// name; unnamed tabs flatten into the parent.
type Tab struct {
	Name   string   `json:"name,omitempty" yaml:"name,omitempty"`
	Label  string   `json:"label,omitempty" yaml:"label,omitempty"`
	Fields []*Field `json:"fields,omitempty" yaml:"fields,omitempty"`
}

// Option is a select or radio choice. It decodes from either a bare string
// or a {label, value} object.
type Option struct {
	Label string `json:"label,omitempty" yaml:"label,omitempty"`
	Value string `json:"value" yaml:"value"`
}

type optionObject Option

// UnmarshalJSON implements json.Unmarshaler.
func (o *Option) UnmarshalJSON(data []byte) error {
	var value string
	if err := json.Unmarshal(data, &value); err == nil {
		*o = Option{Label: value, Value: value}
		return nil
	}
	var obj optionObject
	if err := json.Unmarshal(data, &obj); err != nil {
		return errors.New("fields: option must be a string or an object")
	}
	*o = Option(obj)
	return nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (o *Option) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.ScalarNode {
		*o = Option{Label: node.Value, Value: node.Value}
		return nil
	}
	var obj optionObject
	if err := node.Decode(&obj); err != nil {
		return err
	}
	*o = Option(obj)
	return nil
}
