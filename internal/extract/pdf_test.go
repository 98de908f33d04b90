package extract

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"testing"

	"github.com/sobiswriter/LegalLM/internal/logger"
)

func TestParseContentStream(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{
			name: "Tj operator",
			data: "BT\n/F1 12 Tf\n(Hello World) Tj\nET",
			want: "Hello World",
		},
		{
			name: "TJ array with kerning",
			data: "BT\n[(Gov) 10 (erning) -20 ( Law)] TJ\nET",
			want: "Gov erning Law",
		},
		{
			name: "quote operator",
			data: "BT\n(Next line text) '\nET",
			want: "Next line text",
		},
		{
			name: "multiple operators joined",
			data: "(First clause.) Tj\n(Second clause.) Tj",
			want: "First clause. Second clause.",
		},
		{
			name: "whitespace-only strings skipped",
			data: "(   ) Tj\n(real text) Tj",
			want: "real text",
		},
		{
			name: "non-text operators ignored",
			data: "1 0 0 1 50 700 cm\n0.5 g\n(kept) Tj",
			want: "kept",
		},
		{
			name: "empty stream",
			data: "",
			want: "",
		},
		{
			name: "escaped parentheses",
			data: `(section \(a\)) Tj`,
			want: "section (a)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := parseContentStream([]byte(tt.data)); got != tt.want {
				t.Errorf("parseContentStream() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDecodePDFString(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"plain", "hello", "hello"},
		{"newline escape", `line\nbreak`, "line\nbreak"},
		{"tab escape", `a\tb`, "a\tb"},
		{"escaped backslash", `a\\b`, `a\b`},
		{"octal space", `a\040b`, "a b"},
		{"octal single digit", `\12`, "\n"},
		{"trailing backslash kept safe", `abc\`, "abc\\"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := decodePDFString([]byte(tt.raw)); got != tt.want {
				t.Errorf("decodePDFString(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestCleanPDFText(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"collapse whitespace", "a  b\n\nc", "a b c"},
		{"drop non-printable", "a\x00b\x07c", "abc"},
		{"trim", "  text  ", "text"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cleanPDFText(tt.in); got != tt.want {
				t.Errorf("cleanPDFText(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

// buildPDF assembles a minimal single-page PDF whose content stream
// shows the given text, with a correct cross-reference table.
func buildPDF(t *testing.T, pageText string) []byte {
	t.Helper()

	stream := fmt.Sprintf("BT\n/F1 12 Tf\n72 720 Td\n(%s) Tj\nET", pageText)
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Contents 4 0 R /Resources << /Font << /F1 5 0 R >> >> >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream),
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica >>",
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}
	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return buf.Bytes()
}

type fakeRasterizer struct {
	calls int
}

func (r *fakeRasterizer) RenderPage(ctx context.Context, pdf []byte, pageNr int, scale float64) (image.Image, error) {
	r.calls++
	return image.NewGray(image.Rect(0, 0, 8, 8)), nil
}

type fakeRecognizer struct {
	text  string
	err   error
	calls int
}

func (r *fakeRecognizer) Recognize(ctx context.Context, img image.Image) (string, error) {
	r.calls++
	return r.text, r.err
}

func TestExtractPDF_OCRFallback(t *testing.T) {
	// Text layer too sparse: the page is rasterized and recognized, and
	// the OCR output becomes the page's contribution.
	pdf := buildPDF(t, "Hi.")
	raster := &fakeRasterizer{}
	ocr := &fakeRecognizer{text: "This lease was recovered through optical character recognition."}
	p := New(Config{}, logger.NewNoOpLogger(), WithRasterizer(raster), WithRecognizer(ocr))

	ext, err := p.Extract(context.Background(), "scan.pdf", pdf)
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}
	if ext.Text != ocr.text {
		t.Errorf("Text = %q, want recognized text", ext.Text)
	}
	if ext.OCRPages != 1 {
		t.Errorf("OCRPages = %d, want 1", ext.OCRPages)
	}
	if ext.PagesProcessed != 1 {
		t.Errorf("PagesProcessed = %d, want 1", ext.PagesProcessed)
	}
	if raster.calls != 1 || ocr.calls != 1 {
		t.Errorf("rasterizer/recognizer calls = %d/%d, want 1/1", raster.calls, ocr.calls)
	}
}

func TestExtractPDF_TextLayerBypassesOCR(t *testing.T) {
	pdf := buildPDF(t, "The tenant shall maintain the premises in good repair.")
	ocr := &fakeRecognizer{text: "should never be used"}
	p := New(Config{}, logger.NewNoOpLogger(), WithRasterizer(&fakeRasterizer{}), WithRecognizer(ocr))

	ext, err := p.Extract(context.Background(), "lease.pdf", pdf)
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}
	if ext.Text != "The tenant shall maintain the premises in good repair." {
		t.Errorf("Text = %q", ext.Text)
	}
	if ext.OCRPages != 0 {
		t.Errorf("OCRPages = %d, want 0", ext.OCRPages)
	}
	if ocr.calls != 0 {
		t.Errorf("recognizer called %d times for a sufficient text layer", ocr.calls)
	}
}

func TestExtractPDF_OCRFailureKeepsTextLayer(t *testing.T) {
	// A failing recognizer never aborts extraction: the page keeps its
	// sparse text layer and the document still extracts.
	pdf := buildPDF(t, "Some short words here.")
	ocr := &fakeRecognizer{err: ErrOCR}
	p := New(Config{}, logger.NewNoOpLogger(), WithRasterizer(&fakeRasterizer{}), WithRecognizer(ocr))

	ext, err := p.Extract(context.Background(), "scan.pdf", pdf)
	if err != nil {
		t.Fatalf("Extract() error: %v", err)
	}
	if ext.Text != "Some short words here." {
		t.Errorf("Text = %q, want the text layer kept", ext.Text)
	}
	if ext.OCRPages != 0 {
		t.Errorf("OCRPages = %d, want 0 after OCR failure", ext.OCRPages)
	}
	if ocr.calls != 1 {
		t.Errorf("recognizer called %d times, want 1", ocr.calls)
	}
}
