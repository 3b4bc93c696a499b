package passes

import (
	"github.com/goliatone/go-payloadgen/pkg/fields"
	"github.com/goliatone/go-payloadgen/pkg/jsonschema"
)

const formFieldName = "form"

// PatchFormRelationship strips $ref from direct relationship properties
// named "form". Nothing replaces it; the goJSONSchema override, when present,
// is what the generator reads.
func PatchFormRelationship(doc map[string]any) map[string]any {
	jsonschema.ForEachDefinitionProperty(doc, func(_ string, prop map[string]any) {
		meta := jsonschema.Payload(prop)
		if jsonschema.ReadString(meta, "type") != string(fields.KindRelationship) {
			return
		}
		if jsonschema.ReadString(meta, "name") != formFieldName {
			return
		}
		delete(prop, "$ref")
	})
	return doc
}
