package bubbletea

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// search is the Ctrl+F transcript filter. The query stays applied after
// the box is dismissed with Enter until it is cleared with Esc.
type search struct {
	open  bool
	input textinput.Model
}

func newSearch() search {
	ti := textinput.New()
	ti.Placeholder = "Search messages..."
	ti.Prompt = "search: "
	return search{input: ti}
}

func (s search) query() string { return s.input.Value() }

func (s search) active() bool { return s.open || s.query() != "" }

func (s search) show() (search, tea.Cmd) {
	s.open = true
	cmd := s.input.Focus()
	return s, cmd
}

// dismiss hides the box and keeps the query applied.
func (s search) dismiss() search {
	s.open = false
	s.input.Blur()
	return s
}

func (s search) reset() search {
	s = s.dismiss()
	s.input.SetValue("")
	return s
}

func (s search) update(msg tea.Msg) (search, tea.Cmd) {
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s search) view() string { return s.input.View() }
