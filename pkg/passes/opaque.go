package passes

import "github.com/goliatone/go-payloadgen/pkg/annotate"

// opaqueDefinitions maps definition names to the adapter types that replace
// them.
var opaqueDefinitions = []struct {
	name     string
	typeName string
}{
	{name: "settings", typeName: annotate.TypeSettings},
	{name: "forms", typeName: annotate.TypeForm},
	{name: "form-submissions", typeName: annotate.TypeFormSubmission},
}

// SynthesizeOpaqueDefinitions replaces the body of the settings, forms and
// form-submissions definitions with an empty object stub carrying the
// adapter type. Definitions that do not exist are not created.
func SynthesizeOpaqueDefinitions(doc map[string]any, annotator annotate.Annotator) map[string]any {
	defs, _ := doc["definitions"].(map[string]any)
	if defs == nil {
		return doc
	}
	for _, entry := range opaqueDefinitions {
		if _, ok := defs[entry.name]; !ok {
			continue
		}
		defs[entry.name] = map[string]any{
			"type":                 "object",
			"additionalProperties": false,
			"goJSONSchema":         annotator.Opaque(entry.typeName, false).Go.Map(),
		}
	}
	return doc
}
