// Package fields models the Payload field forest: collections and globals
// holding trees of field nodes. Nodes are a tagged union keyed by Kind; the
// annotate package attaches Go type annotations and relationship metadata to
// them before the base JSON Schema document is built.
package fields
