// Package goldmark renders assistant replies, which are markdown, to
// ANSI-styled terminal output. Parsing is done by goldmark, styling by
// lipgloss, and links become OSC 8 hyperlinks where the terminal supports
// them.
package goldmark

import "github.com/fwojciec/murmur"

const defaultWidth = 80

// Render parses markdown source and returns ANSI-styled terminal output.
// Paragraphs, quotes and list items are word-wrapped to width. Code blocks
// are rendered verbatim.
func Render(source string, width int, theme murmur.Theme) string {
	if source == "" {
		return ""
	}
	if width <= 0 {
		width = defaultWidth
	}
	return newRenderer(theme).render([]byte(source), width)
}
