package highlight

import (
	"strings"
	"testing"
)

func TestAnnotateText(t *testing.T) {
	segments := []Segment{{Node: 0, Text: "The contract is valid until June 1, 2024."}}
	m := Locate(segments, "valid until June 1, 2024")
	if m == nil {
		t.Fatal("Locate() = nil, want match")
	}

	got := AnnotateText(segments, m)
	want := `<pre>The contract is <mark class="citation-highlight">valid until June 1, 2024</mark>.</pre>`
	if got != want {
		t.Errorf("AnnotateText() = %q, want %q", got, want)
	}
}

func TestAnnotateText_EscapesHTML(t *testing.T) {
	segments := []Segment{{Node: 0, Text: `Seller & Buyer agree that 1 < 2.`}}
	m := Locate(segments, "Seller & Buyer")
	if m == nil {
		t.Fatal("Locate() = nil, want match")
	}

	got := AnnotateText(segments, m)
	if !strings.Contains(got, "Seller &amp; Buyer") {
		t.Errorf("matched range not escaped: %q", got)
	}
	if !strings.Contains(got, "1 &lt; 2.") {
		t.Errorf("trailing text not escaped: %q", got)
	}
}

func TestAnnotateText_NilMatch(t *testing.T) {
	segments := []Segment{{Node: 0, Text: "plain text"}}
	got := AnnotateText(segments, nil)
	if got != "<pre>plain text</pre>" {
		t.Errorf("AnnotateText(nil) = %q", got)
	}
}

func TestAnnotateHTML(t *testing.T) {
	fragment := `<p>The contract is valid until June 1, 2024.</p>`
	segments := SegmentsFromHTML(fragment)
	m := Locate(segments, "valid until June 1, 2024")
	if m == nil {
		t.Fatal("Locate() = nil, want match")
	}

	got := AnnotateHTML(fragment, m)
	want := `<p>The contract is <mark class="citation-highlight">valid until June 1, 2024</mark>.</p>`
	if got != want {
		t.Errorf("AnnotateHTML() = %q, want %q", got, want)
	}
}

func TestAnnotateHTML_CrossElement(t *testing.T) {
	fragment := `<p>Either party may terminate</p><p>this Agreement at will.</p>`
	segments := SegmentsFromHTML(fragment)
	m := Locate(segments, "may terminate this Agreement")
	if m == nil {
		t.Fatal("Locate() = nil, want match")
	}

	got := AnnotateHTML(fragment, m)
	if strings.Count(got, `<mark class="citation-highlight">`) != 2 {
		t.Errorf("cross-element match should wrap each covered portion: %q", got)
	}
	if !strings.Contains(got, `<mark class="citation-highlight">may terminate</mark>`) {
		t.Errorf("first portion not wrapped: %q", got)
	}
	if !strings.Contains(got, `<mark class="citation-highlight">this Agreement</mark>`) {
		t.Errorf("second portion not wrapped: %q", got)
	}
}

func TestStripHighlights_RestoresRendering(t *testing.T) {
	fragment := `<p>The contract is valid until June 1, 2024.</p>`
	segments := SegmentsFromHTML(fragment)
	m := Locate(segments, "valid until June 1, 2024")
	if m == nil {
		t.Fatal("Locate() = nil, want match")
	}

	annotated := AnnotateHTML(fragment, m)
	restored := StripHighlights(annotated)
	if restored != fragment {
		t.Errorf("StripHighlights() = %q, want %q", restored, fragment)
	}
}

func TestStripHighlights_NoMarks(t *testing.T) {
	fragment := `<p>nothing highlighted here</p>`
	if got := StripHighlights(fragment); got != fragment {
		t.Errorf("StripHighlights() = %q, want unchanged", got)
	}
}
