package autofill

import (
	"github.com/formpilot/formpilot/pkg/dom"
)

// FieldType classifies a fillable element. It is a closed vocabulary:
// every concrete element maps to exactly one type.
type FieldType string

const (
	// TypeText is the short-text default for inputs
	TypeText FieldType = "text"

	TypeEmail    FieldType = "email"
	TypePassword FieldType = "password"
	TypePhone    FieldType = "phone"
	TypeNumber   FieldType = "number"
	TypeURL      FieldType = "url"
	TypeSearch   FieldType = "search"

	TypeDate     FieldType = "date"
	TypeMonth    FieldType = "month"
	TypeWeek     FieldType = "week"
	TypeTime     FieldType = "time"
	TypeDateTime FieldType = "datetime"

	TypeTextArea       FieldType = "textarea"
	TypeSelect         FieldType = "select"
	TypeSelectMultiple FieldType = "select-multiple"
	TypeCheckbox       FieldType = "checkbox"
	TypeRadio          FieldType = "radio"

	// TypeUnknown is the fallback for element kinds that are not
	// input, textarea, or select. Unrecognized input type attributes
	// classify as TypeText, never TypeUnknown.
	TypeUnknown FieldType = "unknown"
)

// inputTypes maps the declared type attribute of a native input to a
// FieldType. Lookup is case-sensitive; values outside this vocabulary
// default to TypeText.
var inputTypes = map[string]FieldType{
	"text":           TypeText,
	"email":          TypeEmail,
	"password":       TypePassword,
	"tel":            TypePhone,
	"number":         TypeNumber,
	"url":            TypeURL,
	"search":         TypeSearch,
	"date":           TypeDate,
	"month":          TypeMonth,
	"week":           TypeWeek,
	"time":           TypeTime,
	"datetime-local": TypeDateTime,
	"checkbox":       TypeCheckbox,
	"radio":          TypeRadio,
}

// Classify determines the FieldType of an element from its kind and,
// for native inputs, its declared type attribute.
func Classify(el *dom.Element) FieldType {
	switch el.Tag() {
	case "input":
		if t, ok := inputTypes[el.Attr("type")]; ok {
			return t
		}
		return TypeText
	case "textarea":
		return TypeTextArea
	case "select":
		if el.HasAttr("multiple") {
			return TypeSelectMultiple
		}
		return TypeSelect
	default:
		return TypeUnknown
	}
}

// IsTextual reports whether values of this type are applied as plain
// text (single-line inputs and textareas).
func (t FieldType) IsTextual() bool {
	switch t {
	case TypeText, TypeEmail, TypePassword, TypePhone, TypeNumber,
		TypeURL, TypeSearch, TypeDate, TypeMonth, TypeWeek, TypeTime,
		TypeDateTime, TypeTextArea:
		return true
	}
	return false
}

// IsSelect reports whether this type is applied via option selection.
func (t FieldType) IsSelect() bool {
	return t == TypeSelect || t == TypeSelectMultiple
}

// IsToggle reports whether this type is applied as a checked state.
func (t FieldType) IsToggle() bool {
	return t == TypeCheckbox || t == TypeRadio
}

// Field is a snapshot of one fillable element at scan time. The Element
// handle is a borrow into the scanned document and must not outlive the
// scan-then-fill cycle that produced it.
type Field struct {
	// ID and Name are the element's identity signals; either may be empty
	ID   string
	Name string

	// Type is the classified field kind
	Type FieldType

	// Label is the best-effort human-readable caption, if any
	Label string

	// Placeholder is the placeholder attribute, if any
	Placeholder string

	// Attributes holds every attribute in document order, used as a
	// keyword-matching surface
	Attributes []dom.Attr

	// Selector targets the same element on the live page
	Selector string

	// Element is the underlying snapshot element
	Element *dom.Element
}

// Attr returns the value of the named attribute, or "".
func (f *Field) Attr(name string) string {
	for _, a := range f.Attributes {
		if a.Name == name {
			return a.Value
		}
	}
	return ""
}

// Identity returns a human-readable identity for log messages: the id,
// then the name, then the placeholder, whichever is present first.
func (f *Field) Identity() string {
	switch {
	case f.ID != "":
		return "#" + f.ID
	case f.Name != "":
		return f.Name
	default:
		return f.Placeholder
	}
}
