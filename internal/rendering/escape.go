package rendering

import "strings"

// EscapeMarkdown escapes characters that would change Markdown inline formatting or
// break a table cell: \ ` * _ [ ] < > |
func EscapeMarkdown(text string) string {
	if text == "" {
		return ""
	}

	var result strings.Builder
	result.Grow(len(text) + 8)

	for _, r := range text {
		switch r {
		case '\\', '`', '*', '_', '[', ']', '<', '>', '|':
			result.WriteByte('\\')
			result.WriteRune(r)
		case '\n', '\r':
			result.WriteByte(' ')
		default:
			result.WriteRune(r)
		}
	}

	return result.String()
}
