package reportdoc

import "strings"

// paragraphSeparator is the blank line that ends a segment.
const paragraphSeparator = "\n\n"

// Segments splits text into paragraph segments.
//
// Line endings are normalised to "\n", the text is trimmed, and it is split
// on blank lines ("\n\n"). Every segment is trimmed and empty segments are
// dropped, so runs of extra blank lines never produce empty paragraphs.
// Single newlines inside a segment are kept.
func Segments(text string) []string {
	text = strings.TrimSpace(normalizeNewlines(text))
	if text == "" {
		return nil
	}

	parts := strings.Split(text, paragraphSeparator)
	segments := make([]string, 0, len(parts))
	for _, part := range parts {
		if s := strings.TrimSpace(part); s != "" {
			segments = append(segments, s)
		}
	}
	return segments
}

// normalizeNewlines converts CRLF and lone CR line endings to LF.
func normalizeNewlines(s string) string {
	if !strings.ContainsRune(s, '\r') {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}
