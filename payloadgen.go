// Package payloadgen annotates Payload CMS field trees with Go type hints and
// lowers them into the JSON Schema document a Go type generator consumes.
package payloadgen

import (
	"context"

	"github.com/goliatone/go-payloadgen/pkg/annotate"
	"github.com/goliatone/go-payloadgen/pkg/fields"
	"github.com/goliatone/go-payloadgen/pkg/orchestrator"
	"github.com/goliatone/go-payloadgen/pkg/source"
)

// Options aliases annotate.Options so callers can configure generation from
// the top-level module.
type Options = annotate.Options

// Config aliases the field forest type.
type Config = fields.Config

// NewOrchestrator exposes the orchestrator constructor from the top-level
// module.
func NewOrchestrator(options ...orchestrator.Option) *orchestrator.Orchestrator {
	return orchestrator.New(options...)
}

// Generate annotates cfg and returns the final document.
func Generate(ctx context.Context, cfg *Config, opts Options, options ...orchestrator.Option) (map[string]any, error) {
	gen := orchestrator.New(append([]orchestrator.Option{orchestrator.WithOptions(opts)}, options...)...)
	return gen.Generate(ctx, orchestrator.Request{Config: cfg})
}

// GenerateFromSource loads a JSON or YAML field forest and returns the final
// document.
func GenerateFromSource(ctx context.Context, src source.Source, opts Options, options ...orchestrator.Option) (map[string]any, error) {
	gen := orchestrator.New(append([]orchestrator.Option{orchestrator.WithOptions(opts)}, options...)...)
	return gen.Generate(ctx, orchestrator.Request{Source: src})
}

// PostProcess runs the pass pipeline over a base document produced
// elsewhere. The document is rewritten in place.
func PostProcess(ctx context.Context, doc map[string]any, opts Options, options ...orchestrator.Option) (map[string]any, error) {
	gen := orchestrator.New(append([]orchestrator.Option{orchestrator.WithOptions(opts)}, options...)...)
	return gen.Generate(ctx, orchestrator.Request{Document: doc})
}
