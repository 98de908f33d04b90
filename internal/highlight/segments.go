// Package highlight locates a citation's quoted substring inside a
// rendered document and produces a time-bounded visual highlight.
//
// The matcher is pure: it operates on a linear sequence of text segments
// (the document's text nodes in document order) and resolves matches back
// to segment-relative offsets only at the end. Rendering concerns (mark
// insertion, expiry) live in the Engine.
package highlight

import (
	"strings"

	"golang.org/x/net/html"
)

// Segment is one text node of the rendered document, in document order.
// Node is the index of the text node within the rendering.
type Segment struct {
	Node int
	Text string
}

// SegmentsFromText splits plain text into per-line segments, mirroring how
// a text rendering breaks into nodes.
func SegmentsFromText(text string) []Segment {
	lines := strings.Split(text, "\n")
	segments := make([]Segment, 0, len(lines))
	for i, line := range lines {
		segments = append(segments, Segment{Node: i, Text: line})
	}
	return segments
}

// SegmentsFromHTML walks an HTML fragment's text nodes in document order.
// Script and style subtrees are skipped; node indices count every text
// node visited so annotation can find the same nodes again.
func SegmentsFromHTML(fragment string) []Segment {
	doc, err := html.Parse(strings.NewReader(fragment))
	if err != nil {
		return nil
	}
	var segments []Segment
	node := 0
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.Data == "script" || n.Data == "style") {
			return
		}
		if n.Type == html.TextNode {
			segments = append(segments, Segment{Node: node, Text: n.Data})
			node++
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return segments
}
