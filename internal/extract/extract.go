// Package extract normalizes heterogeneous document formats into a
// canonical plain-text representation suitable for prompting a language
// model and for citation matching.
//
// Supported formats:
//   - plain text — UTF-8 decode with whitespace normalization
//   - .docx     — archive/zip → word/document.xml, plus an HTML rendering
//   - .pdf      — text layer per page via pdfcpu, OCR fallback for
//     image-only pages
//
// Every extractor ends in the same validator: whitespace runs collapse to
// single spaces and results under the format's minimum length are rejected
// with a descriptive failure, so no empty or garbage text ever reaches the
// model-prompting boundary.
package extract

import (
	"context"

	"github.com/sobiswriter/LegalLM/internal/logger"
	"github.com/sobiswriter/LegalLM/models"
)

// Config configures the extraction pipeline.
type Config struct {
	// MaxPDFPages caps how many pages of a PDF are processed (default 5).
	MaxPDFPages int
	// OCRScale is the rasterization upscale factor for OCR (default 2.0).
	OCRScale float64
}

func (c *Config) defaults() {
	if c.MaxPDFPages <= 0 {
		c.MaxPDFPages = 5
	}
	if c.OCRScale <= 0 {
		c.OCRScale = 2.0
	}
}

// Pipeline is the document extraction engine. Rasterization and OCR are
// injectable dependencies.
type Pipeline struct {
	cfg    Config
	log    logger.Logger
	raster Rasterizer
	ocr    Recognizer
}

// Option customizes a Pipeline.
type Option func(*Pipeline)

// WithRasterizer overrides the page rasterizer.
func WithRasterizer(r Rasterizer) Option {
	return func(p *Pipeline) { p.raster = r }
}

// WithRecognizer overrides the OCR recognizer.
func WithRecognizer(r Recognizer) Option {
	return func(p *Pipeline) { p.ocr = r }
}

// New creates a Pipeline with the given configuration.
func New(cfg Config, log logger.Logger, opts ...Option) *Pipeline {
	cfg.defaults()
	p := &Pipeline{
		cfg:    cfg,
		log:    log,
		raster: ImageRasterizer{},
		ocr:    NoopRecognizer{},
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Extract produces canonical text (and, for DOCX, a display rendering)
// from raw file bytes. Deterministic: the same bytes always yield the
// same extraction.
func (p *Pipeline) Extract(ctx context.Context, name string, data []byte) (*models.Extraction, error) {
	format := ResolveFormat(name, data)
	p.log.Debug("extracting document %q as %s (%d bytes)", name, format, len(data))

	switch format {
	case models.FormatPDF:
		return p.extractPDF(ctx, data)

	case models.FormatDocx:
		text, err := extractDocxText(data)
		if err != nil {
			return nil, err
		}
		rendered, err := RenderDocxHTML(data)
		if err != nil {
			return nil, err
		}
		return &models.Extraction{
			Text:         text,
			Format:       models.FormatDocx,
			RenderedHTML: rendered,
		}, nil

	default:
		text, err := extractPlainText(data)
		if err != nil {
			return nil, err
		}
		return &models.Extraction{Text: text, Format: models.FormatText}, nil
	}
}
