// Package citations parses citation markers out of model-generated HTML.
// A marker is a sup element whose data-quote attribute holds the exact
// cited source substring; the element's text is its sequence number.
package citations

import (
	"strconv"
	"strings"

	"golang.org/x/net/html"

	"github.com/sobiswriter/LegalLM/models"
)

// Parse collects every citation marker in the fragment, in document
// order. Markers without a data-quote attribute are skipped: they are
// decorative footnote numbers, not locatable citations.
func Parse(fragment string) []models.Citation {
	doc, err := html.Parse(strings.NewReader(fragment))
	if err != nil {
		return nil
	}

	var out []models.Citation
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "sup" {
			if quote, ok := attr(n, "data-quote"); ok {
				out = append(out, models.Citation{
					Number: markerNumber(n),
					Quote:  quote,
				})
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return out
}

// QuoteForMarker returns the data-quote of the marker with the given
// sequence number, or empty when absent.
func QuoteForMarker(fragment string, number int) string {
	for _, c := range Parse(fragment) {
		if c.Number == number {
			return c.Quote
		}
	}
	return ""
}

func attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// markerNumber reads the marker's visible sequence number; 0 when the
// text is not numeric.
func markerNumber(n *html.Node) int {
	var sb strings.Builder
	var collect func(n *html.Node)
	collect = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			collect(c)
		}
	}
	collect(n)
	num, err := strconv.Atoi(strings.TrimSpace(sb.String()))
	if err != nil {
		return 0
	}
	return num
}
