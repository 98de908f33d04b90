package extract

import (
	"bytes"
	"path/filepath"
	"strings"

	"github.com/sobiswriter/LegalLM/models"
)

// SniffFormat maps a filename to a document format by lowercased extension.
// Unrecognized extensions fall back to plain-text decoding. Pure function,
// no failure modes.
func SniffFormat(name string) models.Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".pdf":
		return models.FormatPDF
	case ".docx":
		return models.FormatDocx
	default:
		return models.FormatText
	}
}

// DetectFormat inspects raw bytes for magic headers. It is used as a
// second opinion when the extension points at plain text but the payload
// is clearly a binary container.
func DetectFormat(data []byte) models.Format {
	if bytes.HasPrefix(data, []byte("%PDF")) {
		return models.FormatPDF
	}
	// DOCX: ZIP container (PK header) holding a word/ directory.
	if len(data) >= 4 && data[0] == 0x50 && data[1] == 0x4B &&
		(data[2] == 0x03 || data[2] == 0x05 || data[2] == 0x07) {
		if bytes.Contains(data[:min(len(data), 4096)], []byte("word/")) {
			return models.FormatDocx
		}
	}
	return models.FormatText
}

// ResolveFormat combines extension sniffing with magic-byte detection.
// The extension decides; a binary magic header overrides a plain-text
// extension so a mislabeled PDF still reaches the right decoder.
func ResolveFormat(name string, data []byte) models.Format {
	format := SniffFormat(name)
	if format == models.FormatText {
		if detected := DetectFormat(data); detected != models.FormatText {
			return detected
		}
	}
	return format
}
