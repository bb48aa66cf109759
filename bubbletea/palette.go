package bubbletea

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/murmur"
	"github.com/mattn/go-runewidth"
)

const paletteWidth = 40

// palette is the Ctrl+K command picker: a filter box over the command list.
type palette struct {
	open   bool
	filter textinput.Model
	cursor int
}

func newPalette() palette {
	ti := textinput.New()
	ti.Placeholder = "Type a command..."
	ti.Prompt = "/ "
	return palette{filter: ti}
}

func (p palette) show() (palette, tea.Cmd) {
	p.open = true
	p.cursor = 0
	p.filter.SetValue("")
	cmd := p.filter.Focus()
	return p, cmd
}

func (p palette) hide() palette {
	p.open = false
	p.filter.Blur()
	return p
}

func (p palette) entries() []murmur.PaletteEntry {
	return murmur.FilterCommands(p.filter.Value())
}

func (p palette) selected() (murmur.PaletteEntry, bool) {
	entries := p.entries()
	if p.cursor < 0 || p.cursor >= len(entries) {
		return murmur.PaletteEntry{}, false
	}
	return entries[p.cursor], true
}

// move shifts the highlight by delta, wrapping around the filtered list.
func (p palette) move(delta int) palette {
	n := len(p.entries())
	if n == 0 {
		p.cursor = 0
		return p
	}
	p.cursor = ((p.cursor+delta)%n + n) % n
	return p
}

func (p palette) update(msg tea.Msg) (palette, tea.Cmd) {
	before := p.filter.Value()
	var cmd tea.Cmd
	p.filter, cmd = p.filter.Update(msg)
	if p.filter.Value() != before {
		p.cursor = 0
	}
	return p, cmd
}

func (p palette) view(maxWidth int, styles Styles) string {
	width := min(paletteWidth, max(maxWidth-4, 10))
	rowWidth := width - 2

	var b strings.Builder
	b.WriteString(p.filter.View())
	entries := p.entries()
	if len(entries) == 0 {
		b.WriteString("\n" + styles.Muted.Render("No matching commands"))
	}
	for i, e := range entries {
		row := runewidth.Truncate(e.Label+"  /"+string(e.Command), rowWidth, "…")
		row = runewidth.FillRight(row, rowWidth)
		b.WriteString("\n")
		if i == p.cursor {
			b.WriteString(styles.Selected.Render(row))
		} else {
			b.WriteString(row)
		}
	}
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.Accent.GetForeground()).
		Width(width).
		Render(b.String())
}
