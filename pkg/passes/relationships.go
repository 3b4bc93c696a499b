package passes

import (
	"github.com/goliatone/go-payloadgen/pkg/fields"
	"github.com/goliatone/go-payloadgen/pkg/jsonschema"
)

// sidecarKeys survive the relationship rewrite.
var sidecarKeys = []string{"payload", "goJSONSchema"}

// ResolveRelationshipUnions replaces the id-or-document oneOf of every
// single-target relationship with a plain reference to the target
// definition, wrapped in an array for hasMany fields. Relationships nested in
// groups, named tabs and arrays are reached by descending through
// `properties` and `items.properties`. Polymorphic relationships are left
// alone.
func ResolveRelationshipUnions(doc map[string]any) map[string]any {
	jsonschema.ForEachDefinitionProperty(doc, func(_ string, prop map[string]any) {
		resolveRelationship(prop)
	})
	return doc
}

func resolveRelationship(prop map[string]any) {
	meta := jsonschema.Payload(prop)
	if jsonschema.ReadString(meta, "type") == string(fields.KindRelationship) {
		slug, ok := meta["relationTo"].(string)
		if !ok || slug == "" {
			return
		}
		ref := map[string]any{"$ref": jsonschema.Ref(slug)}
		if jsonschema.ReadBool(meta, "hasMany") {
			replaceProperty(prop, map[string]any{"type": "array", "items": ref})
			return
		}
		replaceProperty(prop, ref)
		return
	}

	for _, key := range jsonschema.SortedKeys(jsonschema.Object(prop, "properties")) {
		if child, ok := jsonschema.Object(prop, "properties")[key].(map[string]any); ok {
			resolveRelationship(child)
		}
	}
	items := jsonschema.Object(prop, "items")
	for _, key := range jsonschema.SortedKeys(jsonschema.Object(items, "properties")) {
		if child, ok := jsonschema.Object(items, "properties")[key].(map[string]any); ok {
			resolveRelationship(child)
		}
	}
}

// replaceProperty swaps the schema body of prop for body, keeping the
// annotation sidecars.
func replaceProperty(prop, body map[string]any) {
	kept := make(map[string]any, len(sidecarKeys))
	for _, key := range sidecarKeys {
		if value, ok := prop[key]; ok {
			kept[key] = value
		}
	}
	for key := range prop {
		delete(prop, key)
	}
	for key, value := range body {
		prop[key] = value
	}
	for key, value := range kept {
		prop[key] = value
	}
}
