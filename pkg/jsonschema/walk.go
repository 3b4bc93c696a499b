package jsonschema

import "sort"

// DefinitionsPrefix is the JSON pointer prefix of draft-04 definitions.
const DefinitionsPrefix = "#/definitions/"

// Ref returns the $ref pointer for a definition name.
func Ref(name string) string {
	return DefinitionsPrefix + name
}

// ForEachDefinitionProperty calls fn once for every direct property of every
// definition that has a properties map. Definitions and properties are
// visited in key order; entries that are not objects are skipped. fn may
// mutate the property in place.
func ForEachDefinitionProperty(doc map[string]any, fn func(key string, property map[string]any)) {
	if fn == nil {
		return
	}
	defs := Object(doc, "definitions")
	for _, name := range SortedKeys(defs) {
		def, ok := defs[name].(map[string]any)
		if !ok {
			continue
		}
		props := Object(def, "properties")
		for _, key := range SortedKeys(props) {
			prop, ok := props[key].(map[string]any)
			if !ok {
				continue
			}
			fn(key, prop)
		}
	}
}

// Object returns node[key] when it is an object.
func Object(node map[string]any, key string) map[string]any {
	if node == nil {
		return nil
	}
	value, _ := node[key].(map[string]any)
	return value
}

// Payload returns the payload sidecar of a property, if any.
func Payload(property map[string]any) map[string]any {
	return Object(property, "payload")
}

// ReadString returns node[key] when it is a string.
func ReadString(node map[string]any, key string) string {
	if node == nil {
		return ""
	}
	value, ok := node[key]
	if !ok {
		return ""
	}
	str, ok := value.(string)
	if !ok {
		return ""
	}
	return str
}

// ReadBool returns node[key] when it is a bool.
func ReadBool(node map[string]any, key string) bool {
	if node == nil {
		return false
	}
	value, _ := node[key].(bool)
	return value
}

// RemoveRequired drops name from node's required list. Both decoded ([]any)
// and built ([]string) lists are handled.
func RemoveRequired(node map[string]any, name string) {
	if node == nil {
		return
	}
	switch list := node["required"].(type) {
	case []string:
		out := make([]string, 0, len(list))
		for _, item := range list {
			if item != name {
				out = append(out, item)
			}
		}
		node["required"] = out
	case []any:
		out := make([]any, 0, len(list))
		for _, item := range list {
			if str, ok := item.(string); ok && str == name {
				continue
			}
			out = append(out, item)
		}
		node["required"] = out
	}
}

// SortedKeys returns the keys of m in ascending order.
func SortedKeys(m map[string]any) []string {
	if len(m) == 0 {
		return nil
	}
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
