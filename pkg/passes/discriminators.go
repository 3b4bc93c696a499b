package passes

import "github.com/goliatone/go-payloadgen/pkg/jsonschema"

const discriminatorKey = "blockType"

// NormalizeDiscriminators turns every direct blockType property into a plain
// string so block tags decode as strings rather than single-value enums.
// Both const and enum are removed.
func NormalizeDiscriminators(doc map[string]any) map[string]any {
	jsonschema.ForEachDefinitionProperty(doc, func(key string, prop map[string]any) {
		if key != discriminatorKey {
			return
		}
		prop["type"] = "string"
		delete(prop, "const")
		delete(prop, "enum")
	})
	return doc
}
