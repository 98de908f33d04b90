package extract

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/sobiswriter/LegalLM/models"
)

func TestSniffFormat(t *testing.T) {
	tests := []struct {
		name string
		file string
		want models.Format
	}{
		{"pdf extension", "contract.pdf", models.FormatPDF},
		{"pdf uppercase", "CONTRACT.PDF", models.FormatPDF},
		{"docx extension", "lease.docx", models.FormatDocx},
		{"txt extension", "notes.txt", models.FormatText},
		{"markdown falls back to text", "readme.md", models.FormatText},
		{"no extension", "LICENSE", models.FormatText},
		{"doc is not docx", "old.doc", models.FormatText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SniffFormat(tt.file); got != tt.want {
				t.Errorf("SniffFormat(%q) = %v, want %v", tt.file, got, tt.want)
			}
		})
	}
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want models.Format
	}{
		{"pdf magic", []byte("%PDF-1.7\n..."), models.FormatPDF},
		{"plain text", []byte("just some words"), models.FormatText},
		{"empty", nil, models.FormatText},
		{"zip without word dir", zipWith(t, "other/file.xml", "<x/>"), models.FormatText},
		{"docx container", zipWith(t, "word/document.xml", "<w:document/>"), models.FormatDocx},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DetectFormat(tt.data); got != tt.want {
				t.Errorf("DetectFormat() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestResolveFormat(t *testing.T) {
	tests := []struct {
		name string
		file string
		data []byte
		want models.Format
	}{
		{"extension decides", "a.pdf", []byte("not actually pdf"), models.FormatPDF},
		{"magic overrides text extension", "a.txt", []byte("%PDF-1.4"), models.FormatPDF},
		{"docx magic overrides missing extension", "upload", zipWith(t, "word/document.xml", "<w:document/>"), models.FormatDocx},
		{"plain text stays text", "a.txt", []byte("hello"), models.FormatText},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ResolveFormat(tt.file, tt.data); got != tt.want {
				t.Errorf("ResolveFormat(%q) = %v, want %v", tt.file, got, tt.want)
			}
		})
	}
}

// zipWith builds an in-memory ZIP holding a single named file.
func zipWith(t *testing.T, name, content string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	w, err := zw.Create(name)
	if err != nil {
		t.Fatalf("create zip entry: %v", err)
	}
	if _, err := w.Write([]byte(content)); err != nil {
		t.Fatalf("write zip entry: %v", err)
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}
