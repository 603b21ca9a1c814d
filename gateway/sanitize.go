package gateway

import (
	"strings"
	"unicode"
)

// CleanCode unwraps generated source that arrives inside a markdown code
// fence and drops control characters other than newlines, tabs and carriage
// returns. Unfenced text keeps its surrounding whitespace.
func CleanCode(text string) string {
	if trimmed := strings.TrimSpace(text); strings.HasPrefix(trimmed, "```") {
		// opening fence line, e.g. "```python"
		if idx := strings.Index(trimmed, "\n"); idx != -1 {
			trimmed = trimmed[idx+1:]
		} else {
			trimmed = strings.TrimPrefix(trimmed, "```")
		}
		trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
		text = strings.TrimSpace(trimmed) + "\n"
	}

	return removeControlCharacters(text)
}

func removeControlCharacters(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsControl(r) && r != '\n' && r != '\t' && r != '\r' {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
