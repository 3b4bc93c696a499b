// Package annotate attaches Go type annotations to a Payload field forest.
//
// The Annotator maps a single field to the opaque adapter type the generator
// should reference. The Walker descends every collection and global, applies
// the Annotator, and optionally records relationship metadata for the
// document passes that run later.
package annotate
