package autofill

import (
	"fmt"
	"strings"

	"github.com/formpilot/formpilot/pkg/dom"
	"github.com/formpilot/formpilot/pkg/logging"
)

// excludedInputTypes are input kinds that never produce a detected
// field, regardless of identity.
var excludedInputTypes = map[string]bool{
	"hidden": true,
	"submit": true,
	"button": true,
	"image":  true,
	"reset":  true,
}

// Scanner walks a document snapshot and produces detected fields.
type Scanner struct {
	log *logging.Logger
}

// NewScanner creates a scanner that reports through the given logger.
func NewScanner(log *logging.Logger) *Scanner {
	return &Scanner{log: log}
}

// Detect returns every fillable field under root, in document order.
//
// When root contains form containers, each form is scanned independently
// and results are concatenated in container-then-document order. When no
// form exists anywhere under root, the entire root is scanned directly,
// which handles pages that place inputs outside any form wrapper.
func (s *Scanner) Detect(root *dom.Element) []*Field {
	var fields []*Field

	forms := root.FindAll("form")
	if len(forms) > 0 {
		for _, form := range forms {
			fields = append(fields, s.scanUnit(form)...)
		}
	} else {
		fields = s.scanUnit(root)
	}

	s.log.Debugw("scan complete", "fields", len(fields), "forms", len(forms))
	return fields
}

// scanUnit enumerates input-like elements within one scan unit. A
// failure on one element skips that element only.
func (s *Scanner) scanUnit(unit *dom.Element) []*Field {
	var fields []*Field
	for _, el := range unit.FindAll("input", "textarea", "select") {
		field, err := s.scanElement(el)
		if err != nil {
			s.log.Warnw("skipping element", "tag", el.Tag(), "error", err)
			continue
		}
		if field != nil {
			fields = append(fields, field)
		}
	}
	return fields
}

// scanElement derives a Field from one element, or nil when the element
// is excluded or lacks every identity signal. Panics while processing
// the element are recovered and surfaced as errors so one bad element
// never aborts the whole scan.
func (s *Scanner) scanElement(el *dom.Element) (field *Field, err error) {
	defer func() {
		if r := recover(); r != nil {
			field = nil
			err = fmt.Errorf("element processing panicked: %v", r)
		}
	}()

	if isExcluded(el) {
		return nil, nil
	}

	id := el.Attr("id")
	name := el.Attr("name")
	placeholder := el.Attr("placeholder")

	// Fields without any identity signal cannot be matched reliably.
	if id == "" && name == "" && placeholder == "" {
		s.log.Debugw("element has no identity signal", "tag", el.Tag())
		return nil, nil
	}

	field = &Field{
		ID:          id,
		Name:        name,
		Type:        Classify(el),
		Label:       resolveLabel(el),
		Placeholder: placeholder,
		Attributes:  el.Attrs(),
		Selector:    el.Selector(),
		Element:     el,
	}

	if isAutoCompleteControl(el) {
		field.Attributes = append(field.Attributes, dom.Attr{Name: "isAutoComplete", Value: "true"})
	}

	return field, nil
}

// isExcluded applies the exclusion rule: non-fillable input kinds and
// disabled elements produce no field.
func isExcluded(el *dom.Element) bool {
	if el.HasAttr("disabled") {
		return true
	}
	return el.Tag() == "input" && excludedInputTypes[el.Attr("type")]
}

// isAutoCompleteControl detects elements that manage their own value
// suggestions. The marker attribute is informational and not consumed
// by the matching tiers.
func isAutoCompleteControl(el *dom.Element) bool {
	return el.Attr("autocomplete") == "off" ||
		el.HasAttr("readonly") ||
		el.Attr("role") == "combobox"
}

// resolveLabel finds a human-readable caption for the element, trying
// in order: an explicit label bound by for-reference, a wrapping label
// with the element's own text subtracted, an aria-label attribute, and
// the text of the element referenced by aria-labelledby.
func resolveLabel(el *dom.Element) string {
	if label := labelByFor(el); label != "" {
		return label
	}
	if label := wrappingLabel(el); label != "" {
		return label
	}
	if label := strings.TrimSpace(el.Attr("aria-label")); label != "" {
		return label
	}
	return labelledByText(el)
}

// labelByFor returns the text of the first label whose for attribute
// references the element's id.
func labelByFor(el *dom.Element) string {
	id := el.Attr("id")
	if id == "" {
		return ""
	}
	for _, label := range el.Document().Root().FindAll("label") {
		if label.Attr("for") != id {
			continue
		}
		if text := strings.TrimSpace(label.Text()); text != "" {
			return text
		}
	}
	return ""
}

// wrappingLabel returns the text of an ancestor label element, with the
// element's own text content subtracted out.
func wrappingLabel(el *dom.Element) string {
	label := el.Closest("label")
	if label == nil {
		return ""
	}
	text := label.Text()
	if own := el.Text(); own != "" {
		text = strings.Replace(text, own, "", 1)
	}
	return strings.TrimSpace(text)
}

// labelledByText resolves aria-labelledby references. Multiple ids are
// joined in reference order.
func labelledByText(el *dom.Element) string {
	refs := strings.Fields(el.Attr("aria-labelledby"))
	if len(refs) == 0 {
		return ""
	}

	var parts []string
	for _, ref := range refs {
		target := el.Document().ElementByID(ref)
		if target == nil {
			continue
		}
		if text := strings.TrimSpace(target.Text()); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " ")
}
