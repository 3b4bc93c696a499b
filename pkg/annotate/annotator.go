package annotate

import "github.com/goliatone/go-payloadgen/pkg/fields"

// Opaque type names exported by the adapter package.
const (
	TypeBlocks         = "Blocks"
	TypeJSON           = "JSON"
	TypeRichText       = "RichText"
	TypeMedia          = "Media"
	TypePoint          = "Point"
	TypeForm           = "Form"
	TypeFormSubmission = "FormSubmission"
	TypeSettings       = "Settings"
	TypeSettingsMeta   = "SettingsMeta"
)

// formsSlug is the collection slug of the form builder plugin.
const formsSlug = "forms"

// Annotator maps field kinds to opaque adapter types.
type Annotator struct {
	importPath  string
	qualifier   string
	opaqueMedia bool
}

// NewAnnotator constructs an Annotator for the supplied options.
func NewAnnotator(opts Options) Annotator {
	imp := opts.adapterImport()
	return Annotator{
		importPath:  imp,
		qualifier:   qualifier(imp),
		opaqueMedia: opts.UseOpaqueMediaType,
	}
}

// Opaque returns an annotation referencing the named adapter type.
func (a Annotator) Opaque(name string, nillable bool) fields.Annotation {
	return fields.Annotation{
		Go: fields.GoSchema{
			Imports:  []string{a.importPath},
			Nillable: nillable,
			Type:     a.qualifier + "." + name,
		},
	}
}

// Annotate returns the annotation for f, or false when the field keeps the
// type the document builder derives for it. Unknown kinds are never
// annotated.
func (a Annotator) Annotate(f *fields.Field) (fields.Annotation, bool) {
	if f == nil {
		return fields.Annotation{}, false
	}

	switch f.Type {
	case fields.KindBlocks:
		return a.Opaque(TypeBlocks, false), true
	case fields.KindJSON:
		return a.Opaque(TypeJSON, false), true
	case fields.KindRichText:
		ann := a.Opaque(TypeRichText, false)
		ann.SchemaType = "string"
		return ann, true
	case fields.KindUpload:
		if !a.opaqueMedia {
			return fields.Annotation{}, false
		}
		ann := a.Opaque(TypeMedia, !f.Required)
		if f.HasMany {
			ann.Go.Type = "[]" + ann.Go.Type
		}
		return ann, true
	case fields.KindPoint:
		return a.Opaque(TypePoint, !f.Required), true
	case fields.KindRelationship:
		slug, ok := f.RelationTo.Single()
		if !ok || slug != formsSlug {
			return fields.Annotation{}, false
		}
		ann := a.Opaque(TypeForm, !f.Required)
		if f.HasMany {
			ann.Go.Type = "[]" + ann.Go.Type
		}
		return ann, true
	default:
		return fields.Annotation{}, false
	}
}
