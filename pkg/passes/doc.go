// Package passes rewrites the base JSON Schema document into the shape the
// Go generator consumes. Five passes run strictly in order over one shared
// document: prune, opaque definitions, relationship unions, discriminators
// and the form carve-out. Relationship rewriting depends on the payload
// sidecar the annotate walker attached, so the order is fixed.
//
// Every pass tolerates documents missing the shape it expects.
package passes
