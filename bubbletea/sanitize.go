package bubbletea

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// sanitize removes terminal escape sequences and control bytes from message
// text before it reaches the screen. Tabs and newlines survive, CRLF becomes
// LF, and a lone CR rewinds to the start of its line the way a terminal
// would.
func sanitize(s string) string {
	s = strings.ReplaceAll(ansi.Strip(s), "\r\n", "\n")
	if !strings.ContainsFunc(s, isControl) {
		return s
	}

	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = overwrite(strings.Map(func(r rune) rune {
			if r != '\r' && isControl(r) {
				return -1
			}
			return r
		}, line))
	}
	return strings.Join(lines, "\n")
}

func isControl(r rune) bool {
	return (r < 0x20 && r != '\t' && r != '\n') || r == 0x7f
}

// overwrite applies carriage returns within a single line.
func overwrite(line string) string {
	segs := strings.Split(line, "\r")
	if len(segs) == 1 {
		return line
	}
	buf := []rune(segs[0])
	for _, seg := range segs[1:] {
		for j, r := range []rune(seg) {
			if j < len(buf) {
				buf[j] = r
				continue
			}
			buf = append(buf, r)
		}
	}
	return string(buf)
}
