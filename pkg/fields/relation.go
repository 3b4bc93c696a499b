package fields

import (
	"strings"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// RelationTo holds the target collection(s) of a relationship or upload
// field. Payload accepts either a single slug or a list of slugs; a list
// always denotes a polymorphic relation, even with one entry.
type RelationTo struct {
	slugs       []string
	polymorphic bool
}

// Relation returns a single-target relation.
func Relation(slug string) RelationTo {
	return RelationTo{slugs: []string{slug}}
}

// PolymorphicRelation returns a relation that may point at any of the slugs.
func PolymorphicRelation(slugs ...string) RelationTo {
	return RelationTo{slugs: append([]string(nil), slugs...), polymorphic: true}
}

// Single returns the target slug when the relation is not polymorphic.
func (r RelationTo) Single() (string, bool) {
	if r.polymorphic || len(r.slugs) != 1 {
		return "", false
	}
	return r.slugs[0], true
}

// Slugs returns a copy of every target slug.
func (r RelationTo) Slugs() []string {
	return append([]string(nil), r.slugs...)
}

// IsPolymorphic reports whether the relation was declared as a list.
func (r RelationTo) IsPolymorphic() bool {
	return r.polymorphic
}

// IsZero reports whether no target was declared.
func (r RelationTo) IsZero() bool {
	return len(r.slugs) == 0
}

// Value returns the JSON shape of the relation: a string for single targets
// and a list for polymorphic ones. Zero relations return nil.
func (r RelationTo) Value() any {
	if r.IsZero() {
		return nil
	}
	if slug, ok := r.Single(); ok {
		return slug
	}
	out := make([]any, 0, len(r.slugs))
	for _, slug := range r.slugs {
		out = append(out, slug)
	}
	return out
}

// MarshalJSON implements json.Marshaler.
func (r RelationTo) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Value())
}

// UnmarshalJSON implements json.Unmarshaler.
func (r *RelationTo) UnmarshalJSON(data []byte) error {
	var single string
	if err := json.Unmarshal(data, &single); err == nil {
		return r.set(single)
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return errors.New("fields: relationTo must be a string or a list of strings")
	}
	return r.setMany(many)
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (r *RelationTo) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		return r.set(node.Value)
	case yaml.SequenceNode:
		var many []string
		if err := node.Decode(&many); err != nil {
			return err
		}
		return r.setMany(many)
	default:
		return errors.New("fields: relationTo must be a string or a list of strings")
	}
}

func (r *RelationTo) set(slug string) error {
	slug = strings.TrimSpace(slug)
	if slug == "" {
		*r = RelationTo{}
		return nil
	}
	*r = Relation(slug)
	return nil
}

func (r *RelationTo) setMany(slugs []string) error {
	clean := make([]string, 0, len(slugs))
	for _, slug := range slugs {
		slug = strings.TrimSpace(slug)
		if slug == "" {
			return errors.New("fields: relationTo contains an empty slug")
		}
		clean = append(clean, slug)
	}
	*r = PolymorphicRelation(clean...)
	return nil
}
