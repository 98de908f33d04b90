package extract

import (
	"bytes"
	"context"
	"io"
	"regexp"
	"strings"
	"unicode"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/sobiswriter/LegalLM/models"
)

// extractPDF reads the text layer of the first MaxPDFPages pages, falling
// back to OCR for pages whose text layer is absent or too short. Documents
// are summarized from a prefix, not exhaustively, to bound latency and cost.
//
// Page content streams are read sequentially (the pdfcpu context is not
// safe for concurrent reads), then per-page parsing and OCR run
// concurrently and are awaited jointly. A page-local OCR failure never
// cancels sibling pages.
func (p *Pipeline) extractPDF(ctx context.Context, data []byte) (*models.Extraction, error) {
	conf := model.NewDefaultConfiguration()
	pdfCtx, err := api.ReadValidateAndOptimize(bytes.NewReader(data), conf)
	if err != nil {
		return nil, failedErr("cannot read PDF", err)
	}

	pageCount := pdfCtx.PageCount
	if pageCount > p.cfg.MaxPDFPages {
		pageCount = p.cfg.MaxPDFPages
	}
	if pageCount == 0 {
		return nil, tooShortErr("the PDF has no pages")
	}

	contents := make([][]byte, pageCount)
	for pageNr := 1; pageNr <= pageCount; pageNr++ {
		contents[pageNr-1] = readPageContent(pdfCtx, pageNr)
	}

	type pageResult struct {
		pageNr int
		text   string
		ocr    bool
	}
	results := make(chan pageResult, pageCount)

	for i, content := range contents {
		go func(pageNr int, content []byte) {
			text := parseContentStream(content)
			if len(strings.TrimSpace(text)) > pageTextThreshold {
				results <- pageResult{pageNr: pageNr, text: text}
				return
			}

			// Text layer insufficient: rasterize and recognize.
			ocrText, err := p.recognizePage(ctx, data, pageNr)
			if err != nil {
				p.log.Warn("OCR failed for page %d: %v", pageNr, err)
				results <- pageResult{pageNr: pageNr, text: text}
				return
			}
			results <- pageResult{pageNr: pageNr, text: ocrText, ocr: true}
		}(i+1, content)
	}

	pageTexts := make([]string, pageCount)
	ocrPages := 0
	for range pageCount {
		res := <-results
		pageTexts[res.pageNr-1] = res.text
		if res.ocr {
			ocrPages++
		}
	}

	combined, err := validate(strings.Join(pageTexts, " "), minPDFLength,
		"could not extract text from this PDF; it may be scanned, encrypted, or damaged")
	if err != nil {
		return nil, err
	}

	return &models.Extraction{
		Text:           combined,
		Format:         models.FormatPDF,
		PagesProcessed: pageCount,
		OCRPages:       ocrPages,
	}, nil
}

// recognizePage runs the rasterize → enhance → recognize chain for one page.
func (p *Pipeline) recognizePage(ctx context.Context, pdf []byte, pageNr int) (string, error) {
	img, err := p.raster.RenderPage(ctx, pdf, pageNr, p.cfg.OCRScale)
	if err != nil {
		return "", err
	}
	return p.ocr.Recognize(ctx, enhanceForOCR(img))
}

// readPageContent pulls the raw content stream for one page. Empty on any
// failure; the page then becomes an OCR candidate.
func readPageContent(pdfCtx *model.Context, pageNr int) []byte {
	r, err := pdfcpu.ExtractPageContent(pdfCtx, pageNr)
	if err != nil {
		return nil
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil
	}
	return data
}

// pdfStringRe matches PDF string literals in parentheses, allowing
// escaped characters inside: (text \(here\))
var pdfStringRe = regexp.MustCompile(`\(((?:\\.|[^\\)])*)\)`)

// parseContentStream walks PDF content stream operators and collects the
// embedded text items, skipping whitespace-only items and joining with
// single spaces.
func parseContentStream(data []byte) string {
	if len(data) == 0 {
		return ""
	}

	var items []string
	appendItems := func(line []byte) {
		for _, m := range pdfStringRe.FindAllSubmatch(line, -1) {
			text := decodePDFString(m[1])
			if strings.TrimSpace(text) != "" {
				items = append(items, text)
			}
		}
	}

	for _, line := range bytes.Split(data, []byte{'\n'}) {
		line = bytes.TrimSpace(line)
		if len(line) == 0 {
			continue
		}

		// Text-showing operators: (text) Tj, [(a) -10 (b)] TJ, (text) '
		switch {
		case bytes.HasSuffix(line, []byte("Tj")), bytes.HasSuffix(line, []byte("TJ")):
			appendItems(line)
		case bytes.HasSuffix(line, []byte("'")) && bytes.Contains(line, []byte("(")):
			appendItems(line)
		}
	}

	return cleanPDFText(strings.Join(items, " "))
}

// decodePDFString handles basic PDF escape sequences.
func decodePDFString(raw []byte) string {
	var sb strings.Builder
	for i := 0; i < len(raw); i++ {
		if raw[i] == '\\' && i+1 < len(raw) {
			i++
			switch raw[i] {
			case 'n':
				sb.WriteByte('\n')
			case 'r':
				sb.WriteByte('\r')
			case 't':
				sb.WriteByte('\t')
			case '\\', '(', ')':
				sb.WriteByte(raw[i])
			default:
				// Octal escape (e.g. \040 for space).
				if raw[i] >= '0' && raw[i] <= '7' {
					val := int(raw[i] - '0')
					for n := 0; n < 2 && i+1 < len(raw) && raw[i+1] >= '0' && raw[i+1] <= '7'; n++ {
						i++
						val = val*8 + int(raw[i]-'0')
					}
					sb.WriteByte(byte(val))
				} else {
					sb.WriteByte(raw[i])
				}
			}
		} else {
			sb.WriteByte(raw[i])
		}
	}
	return sb.String()
}

// cleanPDFText drops non-printable runes and collapses whitespace.
func cleanPDFText(text string) string {
	var sb strings.Builder
	prevSpace := false
	for _, r := range text {
		if unicode.IsSpace(r) {
			if !prevSpace && sb.Len() > 0 {
				sb.WriteByte(' ')
				prevSpace = true
			}
		} else if unicode.IsPrint(r) {
			sb.WriteRune(r)
			prevSpace = false
		}
	}
	return strings.TrimSpace(sb.String())
}
