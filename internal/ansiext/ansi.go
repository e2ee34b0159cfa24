// Package ansiext makes untrusted text, like file names, safe to print.
package ansiext

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// Escape replaces C0 and C1 control characters with visible stand-ins so a
// file name cannot move the cursor or start an escape sequence.
func Escape(content string) string {
	if !strings.ContainsFunc(content, isControl) {
		return content
	}
	var sb strings.Builder
	sb.Grow(len(content))
	for _, r := range content {
		switch {
		case r >= 0 && r <= 0x1f:
			sb.WriteRune('␀' + r)
		case r == ansi.DEL:
			sb.WriteRune('␡')
		case r >= 0x80 && r <= 0x9f:
			sb.WriteRune('�')
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}

func isControl(r rune) bool {
	return (r >= 0 && r <= 0x1f) || r == ansi.DEL || (r >= 0x80 && r <= 0x9f)
}
