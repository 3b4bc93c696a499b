package annotate

import "github.com/goliatone/go-payloadgen/pkg/fields"

// settingsMetaGroup is the group name that always maps to SettingsMeta.
const settingsMetaGroup = "meta"

// Walker annotates field trees in place.
type Walker struct {
	annotator  Annotator
	assignMeta bool
}

// NewWalker constructs a Walker for the supplied options.
func NewWalker(opts Options) *Walker {
	return &Walker{
		annotator:  NewAnnotator(opts),
		assignMeta: opts.AssignRelationshipMetadata,
	}
}

// MapConfig annotates the fields of every collection and global.
func (w *Walker) MapConfig(cfg *fields.Config) *fields.Config {
	cfg.ForEachFieldList(func(_ string, list []*fields.Field) {
		w.Map(list)
	})
	return cfg
}

// Map annotates every node of the list and its descendants. Annotations from
// a previous walk are replaced, so walking twice equals walking once.
func (w *Walker) Map(list []*fields.Field) []*fields.Field {
	for _, f := range list {
		w.visit(f)
	}
	return list
}

func (w *Walker) visit(f *fields.Field) {
	if f == nil {
		return
	}
	f.ResetAnnotations()

	if ann, ok := w.annotator.Annotate(f); ok {
		w.attach(f, ann)
	}

	switch f.Type {
	case fields.KindBlocks:
		for _, block := range f.Blocks {
			if block != nil {
				w.Map(block.Fields)
			}
		}
	case fields.KindTabs:
		for _, tab := range f.Tabs {
			if tab != nil {
				w.Map(tab.Fields)
			}
		}
	case fields.KindGroup:
		if f.Name == settingsMetaGroup {
			w.attach(f, w.annotator.Opaque(TypeSettingsMeta, true))
		}
		w.Map(f.Fields)
	case fields.KindArray, fields.KindRow, fields.KindCollapsible:
		w.Map(f.Fields)
	}

	if w.assignMeta && !f.Type.IsLayout() {
		meta := fields.MetaFor(f)
		f.Meta = &meta
		f.TypeSchema = append(f.TypeSchema, meta.Transformer())
	}
}

func (w *Walker) attach(f *fields.Field, ann fields.Annotation) {
	f.Annotation = &ann
	f.TypeSchema = append(f.TypeSchema, ann.Transformer())
}
