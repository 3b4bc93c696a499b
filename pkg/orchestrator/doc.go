// Package orchestrator wires the load, annotate, build and pass stages into a
// single entry point that turns a Payload field forest into the final
// JSON Schema document.
package orchestrator
