package bubbletea

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/murmur"
)

// Styles maps a Theme to lipgloss styles for TUI rendering.
type Styles struct {
	Base      lipgloss.Style
	UserMsg   lipgloss.Style
	UserBg    lipgloss.Style
	Assistant lipgloss.Style
	Error     lipgloss.Style
	Image     lipgloss.Style
	Muted     lipgloss.Style
	Accent    lipgloss.Style
	Selected  lipgloss.Style
}

// NewStyles creates Styles from a Theme.
func NewStyles(t murmur.Theme) Styles {
	return Styles{
		Base:      lipgloss.NewStyle().Foreground(ansiColor(t.Foreground)).Background(ansiColor(t.Background)),
		UserMsg:   lipgloss.NewStyle().Foreground(ansiColor(t.UserMsg)).Bold(true),
		UserBg:    lipgloss.NewStyle().Background(ansiColor(t.UserBg)).PaddingLeft(1),
		Assistant: lipgloss.NewStyle().Foreground(ansiColor(t.Assistant)).Bold(true),
		Error:     lipgloss.NewStyle().Foreground(ansiColor(t.Error)),
		Image:     lipgloss.NewStyle().Foreground(ansiColor(t.Image)).Underline(true),
		Muted:     lipgloss.NewStyle().Foreground(ansiColor(t.Muted)).Faint(true),
		Accent:    lipgloss.NewStyle().Foreground(ansiColor(t.Accent)).Bold(true),
		Selected:  lipgloss.NewStyle().Foreground(ansiColor(t.Accent)).Bold(true).Reverse(true),
	}
}

func ansiColor(index int) lipgloss.TerminalColor {
	if index < 0 {
		return lipgloss.NoColor{}
	}
	return lipgloss.Color(strconv.Itoa(index))
}
