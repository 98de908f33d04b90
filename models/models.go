package models

// Format identifies a supported document format, produced once by the
// format sniffer and threaded through the pipeline explicitly.
type Format string

const (
	FormatText Format = "text"
	FormatPDF  Format = "pdf"
	FormatDocx Format = "docx"
)

// Sender identifies the author of a conversation message.
type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "ai"
)

// Document is an uploaded file under analysis. Content keeps the original
// bytes base64-encoded so the viewer can re-render or re-parse the file at
// any point during the session. CanonicalText is the validated plain-text
// extraction, computed once per document and never mutated afterwards.
type Document struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	Format        Format `json:"format"`
	Content       string `json:"content"` // base64-encoded original bytes
	CanonicalText string `json:"canonical_text,omitempty"`
	RenderedHTML  string `json:"rendered_html,omitempty"` // DOCX display rendering only
}

// Message is one turn in the conversation thread for the active document.
type Message struct {
	ID      string `json:"id"`
	Sender  Sender `json:"sender"`
	Content string `json:"content"` // plain text (user) or HTML (assistant)
}

// Citation is a quoted substring carried by a numbered marker inside
// model-generated HTML. It is transient: extracted from the marker's
// data-quote attribute at click time, never stored on its own.
type Citation struct {
	Number int    `json:"number"`
	Quote  string `json:"quote"`
}

// Extraction is the result of running the extraction pipeline over a file.
type Extraction struct {
	Text           string `json:"text"`
	Format         Format `json:"format"`
	RenderedHTML   string `json:"rendered_html,omitempty"`
	PagesProcessed int    `json:"pages_processed,omitempty"` // PDF only
	OCRPages       int    `json:"ocr_pages,omitempty"`       // pages recovered via OCR
}

// DocumentInfo is the listing view of a stored document.
type DocumentInfo struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Format Format `json:"format"`
}
