package autofill

import (
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Mapping is one configured fill rule. Selectors are optional: a rule
// may match by exact id or name, by type plus keywords, by keywords
// alone, or by type alone. Mappings are read-only configuration and are
// never mutated by the engine.
type Mapping struct {
	// ID matches a field's id exactly
	ID string `yaml:"id,omitempty" json:"id,omitempty"`

	// Name matches a field's name exactly
	Name string `yaml:"name,omitempty" json:"name,omitempty"`

	// Type matches a field's classified type
	Type FieldType `yaml:"type,omitempty" json:"type,omitempty"`

	// Keywords are lowercase-compared substrings matched against the
	// field's label, placeholder, and attribute text
	Keywords []string `yaml:"keywords,omitempty" json:"keywords,omitempty"`

	// Value is what gets assigned to matching fields
	Value Value `yaml:"value" json:"value"`
}

// ValueKind tags the shape of a mapping value.
type ValueKind int

const (
	// KindText is a single string value
	KindText ValueKind = iota
	// KindBool is a checked state for checkbox/radio fields
	KindBool
	// KindCandidates is an ordered list of alternative strings for
	// select fields, tried until one matches an option
	KindCandidates
)

// Value is a tagged scalar: a string, a boolean, or a sequence of
// candidate strings. In YAML it is written as the corresponding plain
// scalar or sequence.
type Value struct {
	kind       ValueKind
	text       string
	checked    bool
	candidates []string
}

// TextValue creates a single-string value.
func TextValue(s string) Value {
	return Value{kind: KindText, text: s}
}

// BoolValue creates a checked-state value.
func BoolValue(b bool) Value {
	return Value{kind: KindBool, checked: b}
}

// CandidatesValue creates an ordered list of alternative strings.
func CandidatesValue(candidates ...string) Value {
	return Value{kind: KindCandidates, candidates: candidates}
}

// Kind returns the shape tag of the value.
func (v Value) Kind() ValueKind {
	return v.kind
}

// Text returns the value as a single string: the string itself, the
// first candidate, or "true"/"false" for a boolean.
func (v Value) Text() string {
	switch v.kind {
	case KindBool:
		return strconv.FormatBool(v.checked)
	case KindCandidates:
		if len(v.candidates) > 0 {
			return v.candidates[0]
		}
		return ""
	default:
		return v.text
	}
}

// Bool returns the checked state. Non-boolean values parse their text
// leniently, defaulting to false.
func (v Value) Bool() bool {
	if v.kind == KindBool {
		return v.checked
	}
	b, err := strconv.ParseBool(v.Text())
	if err != nil {
		return false
	}
	return b
}

// Candidates returns the ordered alternative strings: the list itself,
// or the single string wrapped in a one-element list.
func (v Value) Candidates() []string {
	switch v.kind {
	case KindCandidates:
		return v.candidates
	case KindText:
		if v.text == "" {
			return nil
		}
		return []string{v.text}
	default:
		return nil
	}
}

// UnmarshalYAML accepts a plain string, a boolean, or a sequence of
// strings as the mapping value.
func (v *Value) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Tag == "!!bool" {
			var b bool
			if err := node.Decode(&b); err != nil {
				return fmt.Errorf("invalid boolean value: %w", err)
			}
			*v = BoolValue(b)
			return nil
		}
		var s string
		if err := node.Decode(&s); err != nil {
			return fmt.Errorf("invalid string value: %w", err)
		}
		*v = TextValue(s)
		return nil
	case yaml.SequenceNode:
		var candidates []string
		if err := node.Decode(&candidates); err != nil {
			return fmt.Errorf("invalid candidate list: %w", err)
		}
		*v = CandidatesValue(candidates...)
		return nil
	default:
		return fmt.Errorf("mapping value must be a string, boolean, or list of strings")
	}
}

// MarshalYAML renders the value back in its natural shape.
func (v Value) MarshalYAML() (interface{}, error) {
	switch v.kind {
	case KindBool:
		return v.checked, nil
	case KindCandidates:
		return v.candidates, nil
	default:
		return v.text, nil
	}
}
