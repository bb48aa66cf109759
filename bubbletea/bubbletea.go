// Package bubbletea provides the Bubble Tea TUI for murmur.
package bubbletea

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/murmur"
)

// Run creates and runs the Bubble Tea TUI program. It blocks until the program
// exits. When ctx is cancelled the program quits.
func Run(ctx context.Context, m Model) error {
	defer m.transcript.close()
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseCellMotion())
	go func() {
		<-ctx.Done()
		p.Quit()
	}()
	_, err := p.Run()
	return err
}

// ReplyMsg delivers the outcome of a request made off the update goroutine.
type ReplyMsg struct {
	Turn *murmur.Turn
	Resp *murmur.ChatResponse
	Err  error
}
