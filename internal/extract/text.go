package extract

import (
	"strings"
	"unicode/utf8"
)

// extractPlainText decodes raw bytes as UTF-8 text. Invalid sequences are
// dropped rather than surfaced as replacement characters, matching what a
// viewer would render for a mostly-text file with stray binary bytes.
func extractPlainText(data []byte) (string, error) {
	text := string(data)
	if !utf8.ValidString(text) {
		text = strings.ToValidUTF8(text, "")
	}
	return validate(text, minTextLength, "the file contains too little readable text")
}
