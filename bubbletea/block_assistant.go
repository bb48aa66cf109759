package bubbletea

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/murmur"
	"github.com/fwojciec/murmur/goldmark"
)

var _ MessageBlock = (*AssistantTextBlock)(nil)

// AssistantTextBlock renders a reply as markdown. Rendering is cached per
// width since replies never change once appended.
type AssistantTextBlock struct {
	text    string
	theme   murmur.Theme
	styles  Styles
	byWidth map[int]string
}

// NewAssistantTextBlock creates an AssistantTextBlock.
func NewAssistantTextBlock(text string, theme murmur.Theme, styles Styles) *AssistantTextBlock {
	return &AssistantTextBlock{
		text:    text,
		theme:   theme,
		styles:  styles,
		byWidth: make(map[int]string),
	}
}

func (b *AssistantTextBlock) View(width int) string {
	if cached, ok := b.byWidth[width]; ok {
		return cached
	}
	label := b.styles.Assistant.Render("murmur")
	out := lipgloss.JoinVertical(lipgloss.Left, label, goldmark.Render(b.text, width, b.theme))
	b.byWidth[width] = out
	return out
}
