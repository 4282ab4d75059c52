package service

import (
	"strings"

	"line-edit-server/internal/textenc"
)

// document is a decoded file: its lines, the encoding the bytes carried and
// whether the content ended with a newline. The encoding is derived fresh
// from the bytes on every read, never cached across calls.
type document struct {
	lines           []string
	encoding        textenc.Encoding
	trailingNewline bool
	existed         bool
}

// splitLines converts decoded content into the line sequence. Newlines are
// normalized (\r\n and \r become \n) and a trailing newline produces no
// empty last element; whether one was present is reported so it can be
// reproduced on write.
func splitLines(content string) ([]string, bool) {
	if content == "" {
		return []string{}, false
	}
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	trailing := strings.HasSuffix(content, "\n")
	if trailing {
		content = strings.TrimSuffix(content, "\n")
	}
	return strings.Split(content, "\n"), trailing
}

// joinLines is the inverse of splitLines.
func joinLines(lines []string, trailingNewline bool) string {
	if len(lines) == 0 {
		return ""
	}
	joined := strings.Join(lines, "\n")
	if trailingNewline {
		joined += "\n"
	}
	return joined
}
