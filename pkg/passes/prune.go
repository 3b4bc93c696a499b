package passes

import "github.com/goliatone/go-payloadgen/pkg/jsonschema"

// Slugs removed from every document.
const (
	mediaSlug     = "media"
	redirectsSlug = "redirects"
)

// PruneOptions configures Prune.
type PruneOptions struct {
	// DropMedia removes the media collection; uploads then reference the
	// adapter's Media type instead.
	DropMedia bool
}

// Prune removes auth, the locked-documents bookkeeping collection, redirects
// and, optionally, media from the document's top-level properties, its
// collections listing and its definitions.
func Prune(doc map[string]any, opts PruneOptions) map[string]any {
	if doc == nil {
		return doc
	}

	delete(jsonschema.Object(doc, "properties"), jsonschema.AuthDefinition)
	delete(jsonschema.Object(doc, "definitions"), jsonschema.AuthDefinition)
	jsonschema.RemoveRequired(doc, jsonschema.AuthDefinition)

	slugs := []string{jsonschema.LockedDocumentsSlug, redirectsSlug}
	if opts.DropMedia {
		slugs = append(slugs, mediaSlug)
	}
	for _, slug := range slugs {
		dropCollection(doc, slug)
	}
	return doc
}

func dropCollection(doc map[string]any, slug string) {
	delete(jsonschema.Object(doc, "definitions"), slug)

	props := jsonschema.Object(doc, "properties")
	delete(props, slug)

	collections := jsonschema.Object(props, "collections")
	if collections == nil {
		return
	}
	delete(jsonschema.Object(collections, "properties"), slug)
	jsonschema.RemoveRequired(collections, slug)
}
