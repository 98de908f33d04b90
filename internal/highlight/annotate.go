package highlight

import (
	"html"
	"strings"

	xhtml "golang.org/x/net/html"
)

// HighlightClass marks the transient highlight element so it can be found
// and unwrapped again.
const HighlightClass = "citation-highlight"

// AnnotateText renders plain-text segments as an escaped HTML fragment
// with the matched range wrapped in a mark element. With a nil match the
// fragment is the plain rendering.
func AnnotateText(segments []Segment, m *Match) string {
	var sb strings.Builder
	sb.WriteString("<pre>")
	for i, seg := range segments {
		if i > 0 {
			sb.WriteByte('\n')
		}
		if m == nil || seg.Node < m.StartNode || seg.Node > m.EndNode {
			sb.WriteString(html.EscapeString(seg.Text))
			continue
		}
		start, end := rangeWithin(seg, m)
		sb.WriteString(html.EscapeString(seg.Text[:start]))
		sb.WriteString(`<mark class="` + HighlightClass + `">`)
		sb.WriteString(html.EscapeString(seg.Text[start:end]))
		sb.WriteString("</mark>")
		sb.WriteString(html.EscapeString(seg.Text[end:]))
	}
	sb.WriteString("</pre>")
	return sb.String()
}

// AnnotateHTML re-walks an HTML rendering and wraps the matched range in
// mark elements. A range crossing element boundaries wraps each covered
// text-node portion separately.
func AnnotateHTML(fragment string, m *Match) string {
	doc, err := xhtml.Parse(strings.NewReader(fragment))
	if err != nil || m == nil {
		return fragment
	}

	// Collect text nodes first; splitting mutates the tree.
	var textNodes []*xhtml.Node
	var collect func(n *xhtml.Node)
	collect = func(n *xhtml.Node) {
		if n.Type == xhtml.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == xhtml.TextNode {
			textNodes = append(textNodes, n)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(doc)

	for node, tn := range textNodes {
		if node < m.StartNode || node > m.EndNode {
			continue
		}
		seg := Segment{Node: node, Text: tn.Data}
		start, end := rangeWithin(seg, m)
		wrapTextNode(tn, start, end)
	}

	return renderFragment(doc)
}

// StripHighlights unwraps every highlight mark back to plain text,
// restoring the pre-highlight rendering.
func StripHighlights(fragment string) string {
	doc, err := xhtml.Parse(strings.NewReader(fragment))
	if err != nil {
		return fragment
	}
	var walk func(n *xhtml.Node)
	walk = func(n *xhtml.Node) {
		c := n.FirstChild
		for c != nil {
			next := c.NextSibling
			if isHighlightMark(c) {
				unwrap(n, c)
			} else {
				walk(c)
			}
			c = next
		}
	}
	walk(doc)
	return renderFragment(doc)
}

// rangeWithin clamps the match boundaries to one segment.
func rangeWithin(seg Segment, m *Match) (int, int) {
	start := 0
	if seg.Node == m.StartNode {
		start = m.StartOffset
	}
	end := len(seg.Text)
	if seg.Node == m.EndNode && m.EndOffset < end {
		end = m.EndOffset
	}
	if start > end {
		start = end
	}
	return start, end
}

// wrapTextNode splits a text node at [start,end) and wraps the middle in
// a mark element.
func wrapTextNode(tn *xhtml.Node, start, end int) {
	if start >= end {
		return
	}
	parent := tn.Parent
	if parent == nil {
		return
	}
	before, mid, after := tn.Data[:start], tn.Data[start:end], tn.Data[end:]

	mark := &xhtml.Node{
		Type: xhtml.ElementNode,
		Data: "mark",
		Attr: []xhtml.Attribute{{Key: "class", Val: HighlightClass}},
	}
	mark.AppendChild(&xhtml.Node{Type: xhtml.TextNode, Data: mid})

	ref := tn.NextSibling
	parent.RemoveChild(tn)
	insertBefore(parent, &xhtml.Node{Type: xhtml.TextNode, Data: before}, ref)
	insertBefore(parent, mark, ref)
	if after != "" {
		insertBefore(parent, &xhtml.Node{Type: xhtml.TextNode, Data: after}, ref)
	}
}

func insertBefore(parent, n, ref *xhtml.Node) {
	if ref != nil {
		parent.InsertBefore(n, ref)
	} else {
		parent.AppendChild(n)
	}
}

func isHighlightMark(n *xhtml.Node) bool {
	if n.Type != xhtml.ElementNode || n.Data != "mark" {
		return false
	}
	for _, a := range n.Attr {
		if a.Key == "class" && strings.Contains(a.Val, HighlightClass) {
			return true
		}
	}
	return false
}

// unwrap replaces a mark element with its children. No-op safety: the
// element may already be detached.
func unwrap(parent, mark *xhtml.Node) {
	ref := mark.NextSibling
	parent.RemoveChild(mark)
	c := mark.FirstChild
	for c != nil {
		next := c.NextSibling
		mark.RemoveChild(c)
		insertBefore(parent, c, ref)
		c = next
	}
}

// renderFragment serializes the children of body, undoing the implicit
// html/head/body wrapping that Parse adds to fragments.
func renderFragment(doc *xhtml.Node) string {
	body := findBody(doc)
	if body == nil {
		return ""
	}
	var sb strings.Builder
	for c := body.FirstChild; c != nil; c = c.NextSibling {
		xhtml.Render(&sb, c)
	}
	return sb.String()
}

func findBody(n *xhtml.Node) *xhtml.Node {
	if n.Type == xhtml.ElementNode && n.Data == "body" {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if body := findBody(c); body != nil {
			return body
		}
	}
	return nil
}
