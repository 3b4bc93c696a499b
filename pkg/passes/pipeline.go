package passes

import "github.com/goliatone/go-payloadgen/pkg/annotate"

// Pass names, in execution order.
const (
	NamePrune              = "prune"
	NameOpaqueDefinitions  = "opaque-definitions"
	NameRelationshipUnions = "relationship-unions"
	NameDiscriminators     = "discriminators"
	NameFormCarveOut       = "form-carve-out"
)

// Pass is a named document rewrite. Apply mutates doc and returns it.
type Pass struct {
	Name  string
	Apply func(doc map[string]any) map[string]any
}

// Pipeline runs passes over a document in order.
type Pipeline struct {
	passes []Pass
}

// New returns the standard five-pass pipeline for opts.
func New(opts annotate.Options) *Pipeline {
	annotator := annotate.NewAnnotator(opts)
	return &Pipeline{passes: []Pass{
		{Name: NamePrune, Apply: func(doc map[string]any) map[string]any {
			return Prune(doc, PruneOptions{DropMedia: opts.UseOpaqueMediaType})
		}},
		{Name: NameOpaqueDefinitions, Apply: func(doc map[string]any) map[string]any {
			return SynthesizeOpaqueDefinitions(doc, annotator)
		}},
		{Name: NameRelationshipUnions, Apply: ResolveRelationshipUnions},
		{Name: NameDiscriminators, Apply: NormalizeDiscriminators},
		{Name: NameFormCarveOut, Apply: PatchFormRelationship},
	}}
}

// Passes returns a copy of the pipeline's passes.
func (p *Pipeline) Passes() []Pass {
	return append([]Pass(nil), p.passes...)
}

// Run threads doc through every pass; the output of one pass is the sole
// input of the next. The document is rewritten in place.
func (p *Pipeline) Run(doc map[string]any) map[string]any {
	return p.RunWith(doc, nil)
}

// RunWith is Run with a callback invoked after each pass completes.
func (p *Pipeline) RunWith(doc map[string]any, after func(name string, doc map[string]any)) map[string]any {
	for _, pass := range p.passes {
		if pass.Apply == nil {
			continue
		}
		doc = pass.Apply(doc)
		if after != nil {
			after(pass.Name, doc)
		}
	}
	return doc
}
