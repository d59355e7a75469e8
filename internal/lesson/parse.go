package lesson

import "strings"

// ParseLines splits model output into trimmed, non-blank lines.
// It never fails; short or empty output yields a short or empty slice.
func ParseLines(text string) []string {
	lines := splitLines(text)
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}

// splitLines splits text on line breaks, treating CRLF and CR as LF.
func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.Split(text, "\n")
}
