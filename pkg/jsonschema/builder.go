package jsonschema

import (
	"strings"

	"github.com/goliatone/go-payloadgen/pkg/fields"
)

// Slugs the base document reserves for Payload's own bookkeeping.
const (
	AuthDefinition      = "auth"
	LockedDocumentsSlug = "payload-locked-documents"
)

const (
	draft04       = "http://json-schema.org/draft-04/schema#"
	defaultIDType = "string"
)

// Builder lowers an annotated field forest into the base JSON Schema
// document, the way Payload's own config-to-schema step does: one definition
// per collection, global and block, with the fields' attached transformers
// applied to every emitted property.
type Builder struct {
	idType string
}

// BuildOption configures a Builder.
type BuildOption func(*Builder)

// WithIDType sets the JSON type of document ids ("string" or "number").
func WithIDType(idType string) BuildOption {
	return func(b *Builder) {
		if t := strings.TrimSpace(idType); t != "" {
			b.idType = t
		}
	}
}

// NewBuilder constructs a Builder.
func NewBuilder(options ...BuildOption) *Builder {
	b := &Builder{idType: defaultIDType}
	for _, opt := range options {
		if opt != nil {
			opt(b)
		}
	}
	return b
}

// Build lowers cfg with a default Builder.
func Build(cfg *fields.Config) map[string]any {
	return NewBuilder().Build(cfg)
}

// Build lowers cfg into a new document. A nil config yields a document with
// only the internal collections.
func (b *Builder) Build(cfg *fields.Config) map[string]any {
	st := &buildState{idType: b.idType, defs: map[string]any{}, blocks: map[string]any{}}

	collections := map[string]any{}
	var collectionSlugs, authSlugs []string
	if cfg != nil {
		for _, col := range cfg.Collections {
			if col == nil {
				continue
			}
			st.defs[col.Slug] = st.collection(col)
			collections[col.Slug] = map[string]any{"$ref": Ref(col.Slug)}
			collectionSlugs = append(collectionSlugs, col.Slug)
			if col.Auth {
				authSlugs = append(authSlugs, col.Slug)
			}
		}
	}
	st.defs[LockedDocumentsSlug] = st.lockedDocuments(collectionSlugs)
	collections[LockedDocumentsSlug] = map[string]any{"$ref": Ref(LockedDocumentsSlug)}
	collectionSlugs = append(collectionSlugs, LockedDocumentsSlug)

	globals := map[string]any{}
	var globalSlugs []string
	if cfg != nil {
		for _, global := range cfg.Globals {
			if global == nil {
				continue
			}
			st.defs[global.Slug] = st.global(global)
			globals[global.Slug] = map[string]any{"$ref": Ref(global.Slug)}
			globalSlugs = append(globalSlugs, global.Slug)
		}
	}

	props := map[string]any{
		"collections": objectSchema(collections, collectionSlugs),
		"globals":     objectSchema(globals, globalSlugs),
	}
	required := []string{"collections", "globals"}
	if len(authSlugs) > 0 {
		st.defs[AuthDefinition] = authDefinition(authSlugs)
		props[AuthDefinition] = map[string]any{"$ref": Ref(AuthDefinition)}
		required = append(required, AuthDefinition)
	}

	// Collection, global and internal definitions take precedence over
	// blocks of the same name.
	for name, def := range st.blocks {
		if _, taken := st.defs[name]; !taken {
			st.defs[name] = def
		}
	}

	return map[string]any{
		"$schema":              draft04,
		"title":                "Config",
		"type":                 "object",
		"additionalProperties": false,
		"properties":           props,
		"required":             required,
		"definitions":          st.defs,
	}
}

type buildState struct {
	idType string
	defs   map[string]any
	blocks map[string]any
}

func (st *buildState) collection(col *fields.Collection) map[string]any {
	props := map[string]any{"id": map[string]any{"type": st.idType}}
	required := []string{"id"}
	st.lowerFields(col.Fields, props, &required)
	if col.Auth {
		props["email"] = map[string]any{"type": "string", "format": "email"}
		required = append(required, "email")
	}
	props["updatedAt"] = dateTime()
	props["createdAt"] = dateTime()
	required = append(required, "updatedAt", "createdAt")
	return objectSchema(props, required)
}

func (st *buildState) global(global *fields.Global) map[string]any {
	props := map[string]any{"id": map[string]any{"type": st.idType}}
	required := []string{"id"}
	st.lowerFields(global.Fields, props, &required)
	props["updatedAt"] = nullable(dateTime())
	props["createdAt"] = nullable(dateTime())
	return objectSchema(props, required)
}

func (st *buildState) lockedDocuments(slugs []string) map[string]any {
	document := map[string]any{}
	if len(slugs) > 0 {
		document = st.relation(fields.PolymorphicRelation(slugs...), false)
	}
	props := map[string]any{
		"id":         map[string]any{"type": st.idType},
		"document":   document,
		"globalSlug": map[string]any{"type": []any{"string", "null"}},
		"updatedAt":  dateTime(),
		"createdAt":  dateTime(),
	}
	return objectSchema(props, []string{"id", "updatedAt", "createdAt"})
}

func authDefinition(slugs []string) map[string]any {
	props := make(map[string]any, len(slugs))
	for _, slug := range slugs {
		props[slug] = objectSchema(map[string]any{
			"email":    map[string]any{"type": "string"},
			"password": map[string]any{"type": "string"},
		}, []string{"email", "password"})
	}
	return objectSchema(props, slugs)
}

// lowerFields emits every data field of list into props. Row, collapsible
// and unnamed tabs flatten into the parent; named tabs nest.
func (st *buildState) lowerFields(list []*fields.Field, props map[string]any, required *[]string) {
	for _, f := range list {
		if f == nil {
			continue
		}
		switch f.Type {
		case fields.KindRow, fields.KindCollapsible:
			st.lowerFields(f.Fields, props, required)
			continue
		case fields.KindTabs:
			st.lowerTabs(f.Tabs, props, required)
			continue
		case fields.KindUI:
			continue
		}
		if f.Name == "" {
			continue
		}
		props[f.Name] = f.ApplySchema(st.lower(f))
		if f.Required {
			*required = append(*required, f.Name)
		}
	}
}

func (st *buildState) lowerTabs(tabs []*fields.Tab, props map[string]any, required *[]string) {
	for _, tab := range tabs {
		if tab == nil {
			continue
		}
		if tab.Name == "" {
			st.lowerFields(tab.Fields, props, required)
			continue
		}
		tabProps := map[string]any{}
		var tabRequired []string
		st.lowerFields(tab.Fields, tabProps, &tabRequired)
		props[tab.Name] = objectSchema(tabProps, tabRequired)
		*required = append(*required, tab.Name)
	}
}

func (st *buildState) lower(f *fields.Field) map[string]any {
	switch f.Type {
	case fields.KindText, fields.KindTextarea, fields.KindEmail, fields.KindCode:
		return many(map[string]any{"type": "string"}, f.HasMany && f.Type == fields.KindText)
	case fields.KindNumber:
		return many(map[string]any{"type": "number"}, f.HasMany)
	case fields.KindCheckbox:
		return map[string]any{"type": "boolean"}
	case fields.KindDate:
		return dateTime()
	case fields.KindSelect, fields.KindRadio:
		values := make([]any, 0, len(f.Options))
		for _, opt := range f.Options {
			values = append(values, opt.Value)
		}
		return many(map[string]any{"type": "string", "enum": values}, f.HasMany && f.Type == fields.KindSelect)
	case fields.KindPoint:
		return map[string]any{
			"type":     "array",
			"items":    []any{map[string]any{"type": "number"}, map[string]any{"type": "number"}},
			"minItems": 2,
			"maxItems": 2,
		}
	case fields.KindJSON:
		return map[string]any{"type": []any{"object", "array", "string", "number", "boolean", "null"}}
	case fields.KindRichText:
		return objectSchema(map[string]any{
			"root": map[string]any{"type": "object"},
		}, []string{"root"})
	case fields.KindUpload, fields.KindRelationship:
		return st.relation(f.RelationTo, f.HasMany)
	case fields.KindGroup:
		props := map[string]any{}
		var required []string
		st.lowerFields(f.Fields, props, &required)
		return objectSchema(props, required)
	case fields.KindArray:
		props := map[string]any{"id": map[string]any{"type": []any{"string", "null"}}}
		var required []string
		st.lowerFields(f.Fields, props, &required)
		return map[string]any{"type": "array", "items": objectSchema(props, required)}
	case fields.KindBlocks:
		refs := make([]any, 0, len(f.Blocks))
		for _, block := range f.Blocks {
			if block == nil {
				continue
			}
			refs = append(refs, map[string]any{"$ref": Ref(st.block(block))})
		}
		return map[string]any{"type": "array", "items": map[string]any{"oneOf": refs}}
	default:
		return map[string]any{}
	}
}

// block emits the block's definition on first use and returns its name.
func (st *buildState) block(block *fields.Block) string {
	name := block.DefinitionName()
	if _, exists := st.blocks[name]; exists {
		return name
	}
	props := map[string]any{
		"id":        map[string]any{"type": []any{"string", "null"}},
		"blockName": map[string]any{"type": []any{"string", "null"}},
		"blockType": map[string]any{"const": block.Slug},
	}
	required := []string{"blockType"}
	st.blocks[name] = map[string]any{}
	st.lowerFields(block.Fields, props, &required)
	st.blocks[name] = objectSchema(props, required)
	return name
}

// relation emits the id-or-document union Payload uses for relationship
// and upload values.
func (st *buildState) relation(rel fields.RelationTo, hasMany bool) map[string]any {
	var union map[string]any
	switch {
	case rel.IsZero():
		union = map[string]any{}
	case rel.IsPolymorphic():
		variants := make([]any, 0, len(rel.Slugs()))
		for _, slug := range rel.Slugs() {
			variants = append(variants, objectSchema(map[string]any{
				"relationTo": map[string]any{"type": "string", "const": slug},
				"value":      st.valueUnion(slug),
			}, []string{"relationTo", "value"}))
		}
		union = map[string]any{"oneOf": variants}
	default:
		slug, _ := rel.Single()
		union = st.valueUnion(slug)
	}
	return many(union, hasMany)
}

func (st *buildState) valueUnion(slug string) map[string]any {
	return map[string]any{
		"oneOf": []any{
			map[string]any{"type": st.idType},
			map[string]any{"$ref": Ref(slug)},
		},
	}
}

func objectSchema(props map[string]any, required []string) map[string]any {
	out := map[string]any{
		"type":                 "object",
		"additionalProperties": false,
		"properties":           props,
	}
	if len(required) > 0 {
		out["required"] = required
	}
	return out
}

func many(item map[string]any, hasMany bool) map[string]any {
	if !hasMany {
		return item
	}
	return map[string]any{"type": "array", "items": item}
}

func dateTime() map[string]any {
	return map[string]any{"type": "string", "format": "date-time"}
}

func nullable(schema map[string]any) map[string]any {
	schema["type"] = []any{schema["type"], "null"}
	return schema
}
