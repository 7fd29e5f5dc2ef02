package dom

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
)

// Selector derives a CSS selector that targets this element on the live
// page: the id when present, then the name attribute scoped to the tag,
// then a structural nth-of-type path as a last resort.
func (e *Element) Selector() string {
	if id := e.Attr("id"); id != "" {
		return "#" + id
	}
	if name := e.Attr("name"); name != "" {
		return fmt.Sprintf("%s[name=%q]", e.Tag(), name)
	}
	return e.path()
}

// path builds an nth-of-type chain from the nearest id-bearing ancestor
// (or the document root) down to the element.
func (e *Element) path() string {
	var segments []string
	for n := e.node; n != nil && n.Type == html.ElementNode; n = parentElement(n) {
		el := &Element{node: n, doc: e.doc}
		if id := el.Attr("id"); id != "" {
			segments = append(segments, "#"+id)
			break
		}
		segments = append(segments, fmt.Sprintf("%s:nth-of-type(%d)", el.Tag(), nthOfType(n)))
		if el.Tag() == "html" || el.Tag() == "body" {
			break
		}
	}

	// Reverse into root-to-leaf order.
	for i, j := 0, len(segments)-1; i < j; i, j = i+1, j-1 {
		segments[i], segments[j] = segments[j], segments[i]
	}
	return strings.Join(segments, " > ")
}

func parentElement(n *html.Node) *html.Node {
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode {
			return p
		}
	}
	return nil
}

// nthOfType returns the 1-based position of n among same-tag siblings.
func nthOfType(n *html.Node) int {
	pos := 1
	for sib := n.PrevSibling; sib != nil; sib = sib.PrevSibling {
		if sib.Type == html.ElementNode && sib.Data == n.Data {
			pos++
		}
	}
	return pos
}
