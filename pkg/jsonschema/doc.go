// Package jsonschema builds the draft-04 base document from a field forest
// and provides the traversal helpers the pass pipeline rewrites it with.
package jsonschema
