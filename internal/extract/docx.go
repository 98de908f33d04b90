package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"html"
	"strings"
)

// docxParagraph is one paragraph from word/document.xml with its resolved
// heading level (0 for body text).
type docxParagraph struct {
	Text  string
	Level int
}

// parseDocx reads word/document.xml out of the DOCX ZIP container and
// streams it into paragraphs. Runs inside a paragraph are concatenated;
// heading levels come from the paragraph style (Heading1..6, Title).
func parseDocx(data []byte) ([]docxParagraph, error) {
	r, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, failedErr("the file is not a valid DOCX container", err)
	}

	var docFile *zip.File
	for _, f := range r.File {
		if f.Name == "word/document.xml" {
			docFile = f
			break
		}
	}
	if docFile == nil {
		return nil, failedErr("word/document.xml not found in archive", nil)
	}

	rc, err := docFile.Open()
	if err != nil {
		return nil, failedErr("cannot open document.xml", err)
	}
	defer rc.Close()

	decoder := xml.NewDecoder(rc)
	var paragraphs []docxParagraph
	var currentText strings.Builder
	var inParagraph bool
	var paragraphStyle string

	for {
		tok, err := decoder.Token()
		if err != nil {
			break
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch {
			case t.Name.Local == "p":
				inParagraph = true
				currentText.Reset()
				paragraphStyle = ""
			case t.Name.Local == "pStyle" && inParagraph:
				for _, attr := range t.Attr {
					if attr.Name.Local == "val" {
						paragraphStyle = attr.Value
					}
				}
			case (t.Name.Local == "tab" || t.Name.Local == "br") && inParagraph:
				currentText.WriteByte(' ')
			}

		case xml.CharData:
			if inParagraph {
				currentText.Write(t)
			}

		case xml.EndElement:
			if t.Name.Local == "p" && inParagraph {
				inParagraph = false
				text := NormalizeWhitespace(currentText.String())
				if text == "" {
					continue
				}
				paragraphs = append(paragraphs, docxParagraph{
					Text:  text,
					Level: docxHeadingLevel(paragraphStyle),
				})
			}
		}
	}

	return paragraphs, nil
}

// extractDocxText returns the document's text content with formatting
// stripped, validated against the DOCX minimum length. This is the
// canonical text used for prompting and citation matching.
func extractDocxText(data []byte) (string, error) {
	paragraphs, err := parseDocx(data)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	for i, p := range paragraphs {
		if i > 0 {
			sb.WriteByte('\n')
		}
		sb.WriteString(p.Text)
	}
	return validate(sb.String(), minDocxLength, "the document contains too little readable text")
}

// RenderDocxHTML converts a DOCX container to an HTML rendering that
// preserves paragraph and heading structure. Display only: citation
// matching always runs against the extracted plain text.
func RenderDocxHTML(data []byte) (string, error) {
	paragraphs, err := parseDocx(data)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	sb.WriteString("<div class=\"document\">")
	for _, p := range paragraphs {
		escaped := html.EscapeString(p.Text)
		if p.Level > 0 {
			fmt.Fprintf(&sb, "<h%d>%s</h%d>", p.Level, escaped, p.Level)
		} else {
			fmt.Fprintf(&sb, "<p>%s</p>", escaped)
		}
	}
	sb.WriteString("</div>")
	return sb.String(), nil
}

// docxHeadingLevel extracts the heading level from a paragraph style name.
// e.g. "Heading1" → 1, "Heading2" → 2, "Title" → 1.
func docxHeadingLevel(style string) int {
	lower := strings.ToLower(style)

	if lower == "title" {
		return 1
	}
	if lower == "subtitle" {
		return 2
	}

	if rest, ok := strings.CutPrefix(lower, "heading"); ok {
		if len(rest) == 1 && rest[0] >= '1' && rest[0] <= '6' {
			return int(rest[0] - '0')
		}
	}
	return 0
}
