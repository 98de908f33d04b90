package extract

import (
	"context"
	"errors"
	"testing"

	"github.com/sobiswriter/LegalLM/internal/logger"
	"github.com/sobiswriter/LegalLM/models"
)

func newTestPipeline(t *testing.T, opts ...Option) *Pipeline {
	t.Helper()
	return New(Config{}, logger.NewNoOpLogger(), opts...)
}

func TestExtract_PlainText(t *testing.T) {
	p := newTestPipeline(t)
	got, err := p.Extract(context.Background(), "notes.txt", []byte("This agreement covers delivery and payment terms."))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Format != models.FormatText {
		t.Errorf("format = %v, want text", got.Format)
	}
	if got.Text != "This agreement covers delivery and payment terms." {
		t.Errorf("text = %q", got.Text)
	}
	if got.RenderedHTML != "" {
		t.Errorf("plain text should not carry a rendering, got %q", got.RenderedHTML)
	}
}

func TestExtract_Docx(t *testing.T) {
	p := newTestPipeline(t)
	data := buildDocx(t, sampleDocumentXML)

	got, err := p.Extract(context.Background(), "contract.docx", data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Format != models.FormatDocx {
		t.Errorf("format = %v, want docx", got.Format)
	}
	if got.Text == "" {
		t.Error("canonical text is empty")
	}
	if got.RenderedHTML == "" {
		t.Error("docx should carry an HTML rendering")
	}
}

func TestExtract_MislabeledDocx(t *testing.T) {
	p := newTestPipeline(t)
	data := buildDocx(t, sampleDocumentXML)

	// Text extension, DOCX payload: magic detection should win.
	got, err := p.Extract(context.Background(), "contract.txt", data)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Format != models.FormatDocx {
		t.Errorf("format = %v, want docx via magic detection", got.Format)
	}
}

func TestExtract_CorruptPDF(t *testing.T) {
	p := newTestPipeline(t)
	_, err := p.Extract(context.Background(), "broken.pdf", []byte("%PDF-1.7 garbage"))
	if !errors.Is(err, ErrFailed) {
		t.Errorf("error = %v, want ErrFailed", err)
	}
}

func TestExtract_TextTooShort(t *testing.T) {
	p := newTestPipeline(t)
	_, err := p.Extract(context.Background(), "tiny.txt", []byte("hi"))
	if !errors.Is(err, ErrTooShort) {
		t.Errorf("error = %v, want ErrTooShort", err)
	}
}

func TestConfigDefaults(t *testing.T) {
	p := New(Config{}, logger.NewNoOpLogger())
	if p.cfg.MaxPDFPages != 5 {
		t.Errorf("MaxPDFPages default = %d, want 5", p.cfg.MaxPDFPages)
	}
	if p.cfg.OCRScale != 2.0 {
		t.Errorf("OCRScale default = %v, want 2.0", p.cfg.OCRScale)
	}
}
