// Package dom provides a lightweight snapshot of an HTML document for
// form-field detection and filling. A Document is parsed once from page
// markup; Element values are non-owning handles into the parse tree and
// must not be retained past the scan-then-fill cycle they were produced
// for. Mutations performed through an Element are recorded in the
// document's EventLog so callers can observe synthetic input/change/click
// notifications in emission order.
package dom

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// Document is a parsed snapshot of a page (or page fragment).
type Document struct {
	root   *html.Node
	byID   map[string]*html.Node
	events *EventLog
}

// Parse parses an HTML document from r.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc := &Document{
		root:   root,
		byID:   make(map[string]*html.Node),
		events: &EventLog{},
	}
	doc.indexIDs(root)
	return doc, nil
}

// ParseString parses an HTML document from a string.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// indexIDs builds the id lookup table used by ElementByID.
// The first occurrence of an id wins, matching getElementById semantics.
func (d *Document) indexIDs(n *html.Node) {
	if n.Type == html.ElementNode {
		for _, attr := range n.Attr {
			if attr.Key == "id" && attr.Val != "" {
				if _, exists := d.byID[attr.Val]; !exists {
					d.byID[attr.Val] = n
				}
			}
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		d.indexIDs(c)
	}
}

// Root returns a handle to the document root.
func (d *Document) Root() *Element {
	return &Element{node: d.root, doc: d}
}

// ElementByID returns the element with the given id, or nil.
func (d *Document) ElementByID(id string) *Element {
	if id == "" {
		return nil
	}
	n, ok := d.byID[id]
	if !ok {
		return nil
	}
	return &Element{node: n, doc: d}
}

// Events returns the synthetic event log for this document.
func (d *Document) Events() *EventLog {
	return d.events
}

// Render serializes the (possibly mutated) snapshot back to HTML.
func (d *Document) Render(w io.Writer) error {
	if err := html.Render(w, d.root); err != nil {
		return fmt.Errorf("failed to render HTML: %w", err)
	}
	return nil
}
