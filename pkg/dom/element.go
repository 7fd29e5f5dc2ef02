package dom

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// Attr is a single attribute name/value pair. Attribute order from the
// source markup is preserved.
type Attr struct {
	Name  string
	Value string
}

// Element is a non-owning handle on one node within a Document snapshot.
// It is only valid for the lifetime of the Document it came from.
type Element struct {
	node *html.Node
	doc  *Document
}

// Tag returns the lowercased tag name, or "" for non-element nodes.
func (e *Element) Tag() string {
	if e.node.Type != html.ElementNode {
		return ""
	}
	return strings.ToLower(e.node.Data)
}

// Attr returns the value of the named attribute, or "" if absent.
func (e *Element) Attr(name string) string {
	for _, a := range e.node.Attr {
		if a.Key == name {
			return a.Val
		}
	}
	return ""
}

// HasAttr reports whether the named attribute is present, regardless of value.
func (e *Element) HasAttr(name string) bool {
	for _, a := range e.node.Attr {
		if a.Key == name {
			return true
		}
	}
	return false
}

// Attrs returns every attribute in document order.
func (e *Element) Attrs() []Attr {
	attrs := make([]Attr, 0, len(e.node.Attr))
	for _, a := range e.node.Attr {
		attrs = append(attrs, Attr{Name: a.Key, Value: a.Val})
	}
	return attrs
}

// SetAttr sets or replaces the named attribute.
func (e *Element) SetAttr(name, value string) {
	for i, a := range e.node.Attr {
		if a.Key == name {
			e.node.Attr[i].Val = value
			return
		}
	}
	e.node.Attr = append(e.node.Attr, html.Attribute{Key: name, Val: value})
}

// RemoveAttr removes the named attribute if present.
func (e *Element) RemoveAttr(name string) {
	for i, a := range e.node.Attr {
		if a.Key == name {
			e.node.Attr = append(e.node.Attr[:i], e.node.Attr[i+1:]...)
			return
		}
	}
}

// Text returns the whitespace-normalized text content of the element
// and its descendants.
func (e *Element) Text() string {
	var builder strings.Builder
	collectText(e.node, &builder)
	return strings.Join(strings.Fields(builder.String()), " ")
}

func collectText(n *html.Node, builder *strings.Builder) {
	if n.Type == html.TextNode {
		builder.WriteString(n.Data)
		builder.WriteString(" ")
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, builder)
	}
}

// FindAll returns every descendant element whose tag is in tags,
// in document order.
func (e *Element) FindAll(tags ...string) []*Element {
	wanted := make(map[string]bool, len(tags))
	for _, tag := range tags {
		wanted[strings.ToLower(tag)] = true
	}

	var found []*Element
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && wanted[strings.ToLower(n.Data)] {
			found = append(found, &Element{node: n, doc: e.doc})
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(e.node)
	return found
}

// Parent returns the parent element, or nil at the top of the tree.
func (e *Element) Parent() *Element {
	for p := e.node.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode {
			return &Element{node: p, doc: e.doc}
		}
	}
	return nil
}

// Closest returns the nearest ancestor with the given tag, or nil.
func (e *Element) Closest(tag string) *Element {
	tag = strings.ToLower(tag)
	for p := e.Parent(); p != nil; p = p.Parent() {
		if p.Tag() == tag {
			return p
		}
	}
	return nil
}

// Document returns the document this element belongs to.
func (e *Element) Document() *Document {
	return e.doc
}

// Is reports whether two handles refer to the same underlying node.
func (e *Element) Is(other *Element) bool {
	return other != nil && e.node == other.node
}

// Value returns the element's current value: the value attribute for
// inputs and options, or the text content for textareas.
func (e *Element) Value() string {
	switch e.Tag() {
	case "textarea":
		return e.Text()
	default:
		return e.Attr("value")
	}
}

// SetValue sets the element's value: the value attribute for inputs,
// or the text content for textareas.
func (e *Element) SetValue(value string) {
	if e.Tag() == "textarea" {
		for c := e.node.FirstChild; c != nil; {
			next := c.NextSibling
			e.node.RemoveChild(c)
			c = next
		}
		e.node.AppendChild(&html.Node{Type: html.TextNode, Data: value})
		return
	}
	e.SetAttr("value", value)
}

// Checked reports whether a checkbox or radio element is checked.
func (e *Element) Checked() bool {
	return e.HasAttr("checked")
}

// SetChecked sets or clears the checked state.
func (e *Element) SetChecked(checked bool) {
	if checked {
		e.SetAttr("checked", "checked")
		return
	}
	e.RemoveAttr("checked")
}

// Options returns the option elements of a select, in document order.
func (e *Element) Options() []*Element {
	return e.FindAll("option")
}

// OptionValue returns the submit value of an option element: the value
// attribute when present, otherwise the option's text, mirroring
// browser behavior.
func (e *Element) OptionValue() string {
	if e.HasAttr("value") {
		return e.Attr("value")
	}
	return e.Text()
}

// SelectedOption returns the index of the currently selected option of
// a select element, or -1 when none carries a selected attribute.
func (e *Element) SelectedOption() int {
	for i, opt := range e.Options() {
		if opt.HasAttr("selected") {
			return i
		}
	}
	return -1
}

// SelectOption marks the option at index as selected and clears the
// selected state of every other option.
func (e *Element) SelectOption(index int) error {
	options := e.Options()
	if index < 0 || index >= len(options) {
		return fmt.Errorf("option index %d out of range (%d options)", index, len(options))
	}
	for i, opt := range options {
		if i == index {
			opt.SetAttr("selected", "selected")
		} else {
			opt.RemoveAttr("selected")
		}
	}
	return nil
}

// Emit records synthetic events against this element, in order.
func (e *Element) Emit(types ...string) {
	e.doc.events.emit(e, types...)
}
