package fields

// Kind identifies the type tag of a field node.
type Kind string

const (
	KindText         Kind = "text"
	KindTextarea     Kind = "textarea"
	KindEmail        Kind = "email"
	KindCode         Kind = "code"
	KindNumber       Kind = "number"
	KindDate         Kind = "date"
	KindCheckbox     Kind = "checkbox"
	KindSelect       Kind = "select"
	KindRadio        Kind = "radio"
	KindRichText     Kind = "richText"
	KindJSON         Kind = "json"
	KindUpload       Kind = "upload"
	KindRelationship Kind = "relationship"
	KindPoint        Kind = "point"
	KindBlocks       Kind = "blocks"
	KindTabs         Kind = "tabs"
	KindGroup        Kind = "group"
	KindArray        Kind = "array"
	KindRow          Kind = "row"
	KindCollapsible  Kind = "collapsible"
	KindUI           Kind = "ui"
)

// String returns the raw tag.
func (k Kind) String() string {
	return string(k)
}

// IsLayout reports whether the kind only arranges other fields in the admin
// UI and never produces data of its own.
func (k Kind) IsLayout() bool {
	switch k {
	case KindTabs, KindRow, KindCollapsible, KindUI:
		return true
	default:
		return false
	}
}

// HasFields reports whether nodes of this kind carry their own child list.
func (k Kind) HasFields() bool {
	switch k {
	case KindGroup, KindArray, KindRow, KindCollapsible:
		return true
	default:
		return false
	}
}
