package extract

import (
	"archive/zip"
	"bytes"
	"errors"
	"strings"
	"testing"
)

// buildDocx assembles a minimal DOCX container around the given
// word/document.xml body.
func buildDocx(t *testing.T, documentXML string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create("word/document.xml")
	if err != nil {
		t.Fatalf("create document.xml: %v", err)
	}
	if _, err := w.Write([]byte(documentXML)); err != nil {
		t.Fatalf("write document.xml: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

const sampleDocumentXML = `<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">
  <w:body>
    <w:p>
      <w:pPr><w:pStyle w:val="Heading1"/></w:pPr>
      <w:r><w:t>Purchase Agreement</w:t></w:r>
    </w:p>
    <w:p>
      <w:r><w:t>The Seller shall deliver</w:t></w:r>
      <w:r><w:t xml:space="preserve"> the goods within thirty days.</w:t></w:r>
    </w:p>
    <w:p>
      <w:r><w:t>Column A</w:t><w:tab/><w:t>Column B</w:t></w:r>
    </w:p>
    <w:p></w:p>
  </w:body>
</w:document>`

func TestExtractDocxText(t *testing.T) {
	data := buildDocx(t, sampleDocumentXML)
	got, err := extractDocxText(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "Purchase Agreement The Seller shall deliver the goods within thirty days. Column A Column B"
	if got != want {
		t.Errorf("extractDocxText() = %q, want %q", got, want)
	}
}

func TestExtractDocxText_TooShort(t *testing.T) {
	short := `<w:document xmlns:w="x"><w:body><w:p><w:r><w:t>Hi</w:t></w:r></w:p></w:body></w:document>`
	_, err := extractDocxText(buildDocx(t, short))
	if !errors.Is(err, ErrTooShort) {
		t.Errorf("error = %v, want ErrTooShort", err)
	}
}

func TestExtractDocxText_NotAZip(t *testing.T) {
	_, err := extractDocxText([]byte("this is not a zip archive at all"))
	if !errors.Is(err, ErrFailed) {
		t.Errorf("error = %v, want ErrFailed", err)
	}
}

func TestExtractDocxText_MissingDocumentXML(t *testing.T) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, _ := zw.Create("word/styles.xml")
	w.Write([]byte("<w:styles/>"))
	zw.Close()

	_, err := extractDocxText(buf.Bytes())
	if !errors.Is(err, ErrFailed) {
		t.Errorf("error = %v, want ErrFailed", err)
	}
}

func TestRenderDocxHTML(t *testing.T) {
	data := buildDocx(t, sampleDocumentXML)
	got, err := RenderDocxHTML(data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.HasPrefix(got, `<div class="document">`) || !strings.HasSuffix(got, "</div>") {
		t.Errorf("rendering not wrapped in document div: %q", got)
	}
	if !strings.Contains(got, "<h1>Purchase Agreement</h1>") {
		t.Errorf("heading style not rendered: %q", got)
	}
	if !strings.Contains(got, "<p>The Seller shall deliver the goods within thirty days.</p>") {
		t.Errorf("paragraph not rendered: %q", got)
	}
}

func TestRenderDocxHTML_EscapesContent(t *testing.T) {
	xml := `<w:document xmlns:w="x"><w:body><w:p><w:r><w:t>Seller &amp; Buyer agree: 1 &lt; 2</w:t></w:r></w:p></w:body></w:document>`
	got, err := RenderDocxHTML(buildDocx(t, xml))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(got, "<p>Seller &amp; Buyer agree: 1 &lt; 2</p>") {
		t.Errorf("content not escaped: %q", got)
	}
}

func TestDocxHeadingLevel(t *testing.T) {
	tests := []struct {
		style string
		want  int
	}{
		{"Heading1", 1},
		{"heading3", 3},
		{"Heading6", 6},
		{"Heading7", 0},
		{"Title", 1},
		{"Subtitle", 2},
		{"Normal", 0},
		{"", 0},
	}

	for _, tt := range tests {
		t.Run(tt.style, func(t *testing.T) {
			if got := docxHeadingLevel(tt.style); got != tt.want {
				t.Errorf("docxHeadingLevel(%q) = %d, want %d", tt.style, got, tt.want)
			}
		})
	}
}
