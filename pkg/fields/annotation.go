package fields

// GoSchema is the `goJSONSchema` override consumed by the Go generator: the
// type to emit, the imports it needs, and whether the field may be nil.
type GoSchema struct {
	Imports  []string `json:"imports"`
	Nillable bool     `json:"nillable"`
	Type     string   `json:"type"`
}

// Map returns the document representation of the override.
func (g GoSchema) Map() map[string]any {
	imports := make([]any, 0, len(g.Imports))
	for _, imp := range g.Imports {
		imports = append(imports, imp)
	}
	return map[string]any{
		"imports":  imports,
		"nillable": g.Nillable,
		"type":     g.Type,
	}
}

// Annotation is a Go type annotation for a field. SchemaType, when set,
// replaces the primitive JSON Schema type alongside the override so tools
// that ignore goJSONSchema still see a sensible type.
type Annotation struct {
	SchemaType string
	Go         GoSchema
}

// Transformer returns the schema transformer that applies the annotation.
// The emitted schema is replaced, not merged.
func (a Annotation) Transformer() SchemaTransformer {
	return func(map[string]any) map[string]any {
		out := map[string]any{"goJSONSchema": a.Go.Map()}
		if a.SchemaType != "" {
			out["type"] = a.SchemaType
		}
		return out
	}
}

// Meta is the positional and relationship sidecar a field carries into the
// document under the `payload` key so later passes need not re-derive it.
type Meta struct {
	Name       string
	Type       Kind
	Label      string
	HasMany    bool
	RelationTo RelationTo
}

// MetaFor derives the sidecar for a field.
func MetaFor(f *Field) Meta {
	meta := Meta{
		Name:  f.Name,
		Type:  f.Type,
		Label: f.Label,
	}
	if f.Type == KindRelationship {
		meta.HasMany = f.HasMany
		meta.RelationTo = f.RelationTo
	}
	return meta
}

// Map returns the document representation of the sidecar.
func (m Meta) Map() map[string]any {
	out := map[string]any{
		"name": m.Name,
		"type": m.Type.String(),
	}
	if m.Label != "" {
		out["label"] = m.Label
	}
	if m.Type == KindRelationship {
		out["hasMany"] = m.HasMany
		if value := m.RelationTo.Value(); value != nil {
			out["relationTo"] = value
		}
	}
	return out
}

// Transformer returns the schema transformer that writes the sidecar.
func (m Meta) Transformer() SchemaTransformer {
	return func(schema map[string]any) map[string]any {
		out := cloneSchema(schema)
		out["payload"] = m.Map()
		return out
	}
}

func cloneSchema(schema map[string]any) map[string]any {
	out := make(map[string]any, len(schema)+1)
	for key, value := range schema {
		out[key] = value
	}
	return out
}
