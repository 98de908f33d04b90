package highlight

import (
	"strings"
	"unicode"
)

// Match is a located quote: segment-relative byte offsets into the
// original (non-normalized) rendering. EndOffset is exclusive and clamped
// to the end segment's length.
//
// Text is the covered rendering text. When a match spans nodes the
// pieces are joined with single spaces, so for multi-node matches Text
// equals the rendering up to whitespace normalization, not byte for
// byte; the offsets are what address the rendering exactly.
type Match struct {
	StartNode   int    `json:"start_node"`
	StartOffset int    `json:"start_offset"`
	EndNode     int    `json:"end_node"`
	EndOffset   int    `json:"end_offset"`
	Text        string `json:"text"`
}

// anchor records where a normalized rune came from in the original
// segments: segment index, byte offset, and byte size of the source rune.
type anchor struct {
	seg  int
	off  int
	size int
}

// Locate finds the first occurrence of quote within the segments,
// tolerant of whitespace and case divergence between the quote and the
// rendering. Both sides are normalized (whitespace runs → single space,
// trimmed, case-folded); the normalized match is then reconciled back to
// offsets in the original text. Whitespace collapsing is not
// length-preserving, so reusing normalized indices directly would
// desynchronize the highlight by the number of collapsed characters
// before the match.
//
// Returns nil when the quote is empty or absent. Absence is not an error:
// upstream paraphrasing is an accepted limitation.
func Locate(segments []Segment, quote string) *Match {
	normQuote := normalizeFold(quote)
	if len(normQuote) == 0 {
		return nil
	}

	buf, anchors := normalizeSegments(segments)
	idx := indexRunes(buf, normQuote)
	if idx < 0 {
		return nil
	}

	start := anchors[idx]
	end := anchors[idx+len(normQuote)-1]
	endOffset := end.off + end.size
	if endOffset > len(segments[end.seg].Text) {
		endOffset = len(segments[end.seg].Text)
	}

	return &Match{
		StartNode:   segments[start.seg].Node,
		StartOffset: start.off,
		EndNode:     segments[end.seg].Node,
		EndOffset:   endOffset,
		Text:        sliceSegments(segments, start.seg, start.off, end.seg, endOffset),
	}
}

// normalizeFold collapses whitespace runs to single spaces, trims, and
// lowercases, returning runes for offset-stable searching.
func normalizeFold(s string) []rune {
	var out []rune
	pendingSpace := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			pendingSpace = len(out) > 0
			continue
		}
		if pendingSpace {
			out = append(out, ' ')
			pendingSpace = false
		}
		out = append(out, unicode.ToLower(r))
	}
	return out
}

// normalizeSegments produces the normalized rune buffer for the whole
// rendering together with a per-rune anchor table. Segment boundaries
// count as whitespace. Synthetic spaces anchor to the non-space rune that
// follows them; match boundaries always land on non-space runes because
// the normalized quote is trimmed.
func normalizeSegments(segments []Segment) ([]rune, []anchor) {
	var buf []rune
	var anchors []anchor
	pendingSpace := false

	for segIdx, seg := range segments {
		if segIdx > 0 {
			pendingSpace = len(buf) > 0
		}
		off := 0
		for _, r := range seg.Text {
			size := len(string(r))
			if unicode.IsSpace(r) {
				pendingSpace = len(buf) > 0
			} else {
				a := anchor{seg: segIdx, off: off, size: size}
				if pendingSpace {
					buf = append(buf, ' ')
					anchors = append(anchors, a)
					pendingSpace = false
				}
				buf = append(buf, unicode.ToLower(r))
				anchors = append(anchors, a)
			}
			off += size
		}
	}
	return buf, anchors
}

// indexRunes returns the first occurrence of needle in haystack, or -1.
func indexRunes(haystack, needle []rune) int {
	if len(needle) == 0 || len(needle) > len(haystack) {
		return -1
	}
	for i := 0; i+len(needle) <= len(haystack); i++ {
		j := 0
		for ; j < len(needle); j++ {
			if haystack[i+j] != needle[j] {
				break
			}
		}
		if j == len(needle) {
			return i
		}
	}
	return -1
}

// sliceSegments reads the original text covered by a match, joining
// segment pieces with single spaces.
func sliceSegments(segments []Segment, startSeg, startOff, endSeg, endOff int) string {
	if startSeg == endSeg {
		return segments[startSeg].Text[startOff:endOff]
	}
	var parts []string
	parts = append(parts, segments[startSeg].Text[startOff:])
	for i := startSeg + 1; i < endSeg; i++ {
		parts = append(parts, segments[i].Text)
	}
	parts = append(parts, segments[endSeg].Text[:endOff])
	return strings.Join(parts, " ")
}
