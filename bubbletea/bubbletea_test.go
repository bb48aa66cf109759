package bubbletea_test

import (
	"context"
	"strconv"
	"sync/atomic"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fwojciec/murmur"
	bt "github.com/fwojciec/murmur/bubbletea"
	"github.com/fwojciec/murmur/mock"
	"github.com/stretchr/testify/require"
)

func sequentialIDs() *mock.IDGenerator {
	var n atomic.Int64
	return &mock.IDGenerator{
		NewIDFn: func() string { return "m" + strconv.FormatInt(n.Add(1), 10) },
	}
}

func replyWith(reply string) *mock.Client {
	return &mock.Client{
		ChatFn: func(context.Context, murmur.ChatRequest) (*murmur.ChatResponse, error) {
			return &murmur.ChatResponse{Reply: reply, ConversationID: "abc"}, nil
		},
	}
}

// memDraft is an in-memory draft store that records every save.
type memDraft struct {
	value string
	saves []string
}

func (s *memDraft) store() *mock.DraftStore {
	return &mock.DraftStore{
		LoadFn: func() (string, error) { return s.value, nil },
		SaveFn: func(v string) error {
			s.value = v
			s.saves = append(s.saves, v)
			return nil
		},
		ClearFn: func() error {
			s.value = ""
			return nil
		},
	}
}

func newDispatcher(client murmur.Client, opts ...murmur.DispatcherOption) *murmur.Dispatcher {
	return murmur.NewDispatcher(client, murmur.NewConversation(sequentialIDs()), opts...)
}

// initModel creates a model and sends a WindowSizeMsg to initialize the viewport.
func initModel(t *testing.T, d *murmur.Dispatcher) bt.Model {
	t.Helper()
	return initModelWithSize(t, d, 80, 24)
}

// initModelWithSize creates a model with a custom terminal size.
func initModelWithSize(t *testing.T, d *murmur.Dispatcher, width, height int) bt.Model {
	t.Helper()
	m := bt.New(d, murmur.DefaultTheme())
	return updateModel(t, m, tea.WindowSizeMsg{Width: width, Height: height})
}

// updateModel sends a message and returns the updated Model.
func updateModel(t *testing.T, m bt.Model, msg tea.Msg) bt.Model {
	t.Helper()
	model, _ := update(t, m, msg)
	return model
}

func update(t *testing.T, m bt.Model, msg tea.Msg) (bt.Model, tea.Cmd) {
	t.Helper()
	updated, cmd := m.Update(msg)
	model, ok := updated.(bt.Model)
	require.True(t, ok)
	return model, cmd
}

func typeText(t *testing.T, m bt.Model, text string) bt.Model {
	t.Helper()
	return updateModel(t, m, tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
}

func ctrl(r rune) tea.KeyMsg {
	switch r {
	case 'k':
		return tea.KeyMsg{Type: tea.KeyCtrlK}
	case 'f':
		return tea.KeyMsg{Type: tea.KeyCtrlF}
	}
	panic("unsupported ctrl key")
}

// findReply runs cmd, following batches, until it produces a ReplyMsg.
func findReply(t *testing.T, cmd tea.Cmd) bt.ReplyMsg {
	t.Helper()
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		c := queue[0]
		queue = queue[1:]
		if c == nil {
			continue
		}
		switch msg := c().(type) {
		case tea.BatchMsg:
			queue = append(queue, msg...)
		case bt.ReplyMsg:
			return msg
		}
	}
	t.Fatal("command produced no ReplyMsg")
	return bt.ReplyMsg{}
}

// send types text, presses Enter and delivers the reply.
func send(t *testing.T, m bt.Model, text string) bt.Model {
	t.Helper()
	m = typeText(t, m, text)
	m, cmd := update(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	return updateModel(t, m, findReply(t, cmd))
}
