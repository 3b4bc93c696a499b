package annotate

import "strings"

// DefaultAdapterImport is the package providing the opaque Payload types.
const DefaultAdapterImport = "github.com/ainsleydev/webkit/pkg/adapters/payload"

// Options configures annotation. The zero value annotates with the default
// adapter import and leaves uploads and metadata alone.
type Options struct {
	// UseOpaqueMediaType maps upload fields to the adapter's Media type.
	UseOpaqueMediaType bool
	// AssignRelationshipMetadata attaches the payload sidecar to every
	// non-layout field.
	AssignRelationshipMetadata bool
	// AdapterImport overrides DefaultAdapterImport.
	AdapterImport string
}

func (o Options) adapterImport() string {
	if imp := strings.TrimSpace(o.AdapterImport); imp != "" {
		return strings.TrimSuffix(imp, "/")
	}
	return DefaultAdapterImport
}

func qualifier(importPath string) string {
	if idx := strings.LastIndex(importPath, "/"); idx >= 0 {
		return importPath[idx+1:]
	}
	return importPath
}
