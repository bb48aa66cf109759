package bubbletea

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/murmur"
	"github.com/rivo/uniseg"
)

var _ tea.Model = Model{}

const (
	inputHeight  = 1
	statusHeight = 1
	headerHeight = 1
	searchHeight = 1
)

// Model is the Bubble Tea model for the murmur TUI.
type Model struct {
	// Input is the message input. Exported for test access.
	Input textinput.Model
	// Viewport is the scrollable transcript. Exported for test access.
	Viewport viewport.Model
	// Spinner is the typing indicator shown while a request is in flight.
	Spinner spinner.Model

	dispatcher *murmur.Dispatcher
	transcript *transcript
	logger     *slog.Logger
	focus      murmur.FocusPolicy
	timeout    time.Duration

	theme   murmur.Theme
	display murmur.Display

	palette palette
	search  search

	width  int
	height int
	err    error
	ready  bool
}

// Option configures a [Model].
type Option func(*Model)

// WithLogger sets the logger. The default discards everything.
func WithLogger(l *slog.Logger) Option {
	return func(m *Model) { m.logger = l }
}

// WithRequestTimeout bounds each request to the remote API. By default
// requests run until the API answers.
func WithRequestTimeout(d time.Duration) Option {
	return func(m *Model) {
		if d > 0 {
			m.timeout = d
		}
	}
}

// New creates a Model that sends through d and renders with theme. The
// input starts with the saved draft, if any.
func New(d *murmur.Dispatcher, theme murmur.Theme, opts ...Option) Model {
	m := Model{
		dispatcher: d,
		logger:     slog.New(slog.DiscardHandler),
		theme:      theme,
		display:    d.Display(),
		palette:    newPalette(),
		search:     newSearch(),
	}
	for _, o := range opts {
		o(&m)
	}
	m.transcript = newTranscript(d.Conversation(), theme)

	ti := textinput.New()
	ti.Placeholder = "Type a message or /help..."
	ti.Prompt = "› "
	ti.CharLimit = 0
	ti.Focus()
	draft, err := d.Draft().Load()
	if err != nil {
		m.logger.Warn("load draft", "error", err)
	}
	if draft != "" {
		ti.SetValue(draft)
		ti.CursorEnd()
	}
	m.Input = ti

	m.Spinner = spinner.New(spinner.WithSpinner(spinner.Dot))
	m.Spinner.Style = m.styles().Accent
	return m
}

// Busy reports whether a request is in flight.
func (m Model) Busy() bool { return m.dispatcher.Busy() }

// Err returns the last unexpected error, if any.
func (m Model) Err() error { return m.err }

// Theme returns the active theme.
func (m Model) Theme() murmur.Theme { return m.theme }

// PaletteOpen reports whether the command palette is shown.
func (m Model) PaletteOpen() bool { return m.palette.open }

// SearchOpen reports whether the search box is shown.
func (m Model) SearchOpen() bool { return m.search.open }

// SearchQuery returns the applied transcript filter.
func (m Model) SearchQuery() string { return m.search.query() }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m = m.layout()
		return m.render(true), nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case ReplyMsg:
		return m.handleReply(msg)

	case spinner.TickMsg:
		if !m.Busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd
	}

	// Mouse wheel and cursor blink messages.
	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.Viewport, cmd = m.Viewport.Update(msg)
	cmds = append(cmds, cmd)
	switch {
	case m.palette.open:
		m.palette, cmd = m.palette.update(msg)
	case m.search.open:
		m.search, cmd = m.search.update(msg)
	default:
		m.Input, cmd = m.Input.Update(msg)
	}
	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}
	styles := m.styles()

	var sections []string
	if !m.display.Zen {
		sections = append(sections, m.header())
	}
	body := m.Viewport.View()
	if m.palette.open {
		body = lipgloss.Place(m.width, m.Viewport.Height, lipgloss.Center, lipgloss.Center,
			m.palette.view(m.width, styles))
	}
	sections = append(sections, body)
	if m.search.open {
		sections = append(sections, m.search.view())
	}
	sections = append(sections, m.statusLine(), m.Input.View())

	out := strings.Join(sections, "\n")
	if m.display.Inverted {
		out = styles.Base.Render(out)
	}
	return out
}

func (m Model) styles() Styles { return m.transcript.styles }

func (m Model) header() string {
	styles := m.styles()
	return styles.Accent.Render("murmur") +
		styles.Muted.Render(fmt.Sprintf(" • %d messages", m.dispatcher.Conversation().UserCount()))
}

func (m Model) statusLine() string {
	styles := m.styles()
	switch {
	case m.Busy():
		return m.Spinner.View() + " " + styles.Muted.Render("AI is thinking...")
	case m.err != nil:
		return styles.Error.Render(fmt.Sprintf("Error: %v", m.err))
	case m.search.query() != "" && !m.search.open:
		return styles.Muted.Render(fmt.Sprintf("filter: %q • Esc to clear", m.search.query()))
	}
	hints := "Enter to send • Ctrl+K commands • Ctrl+F search • Ctrl+C to quit"
	if n := uniseg.GraphemeClusterCount(m.Input.Value()); n > 0 {
		hints += fmt.Sprintf(" • %d chars", n)
	}
	return styles.Muted.Render(hints)
}

// layout sizes the viewport to whatever the header, search box, status
// line and input leave free.
func (m Model) layout() Model {
	h := m.height - inputHeight - statusHeight
	if !m.display.Zen {
		h -= headerHeight
	}
	if m.search.open {
		h -= searchHeight
	}
	h = max(h, 1)

	if !m.ready {
		m.Viewport = viewport.New(m.width, h)
		m.ready = true
	} else {
		m.Viewport.Width = m.width
		m.Viewport.Height = h
	}
	m.Input.Width = max(m.width-lipgloss.Width(m.Input.Prompt)-1, 1)
	return m
}

// render rebuilds the transcript when the conversation changed, or always
// when force is set (resize, theme or filter change).
func (m Model) render(force bool) Model {
	if !m.ready || (!force && !m.transcript.dirty) {
		return m
	}
	blocks := m.transcript.rebuild(m.search.query())
	m.Viewport.SetContent(joinBlocks(blocks, m.Viewport.Width))
	if m.search.query() == "" {
		m.Viewport.GotoBottom()
	} else {
		m.Viewport.GotoTop()
	}
	return m
}

func joinBlocks(blocks []MessageBlock, width int) string {
	views := make([]string, len(blocks))
	for i, b := range blocks {
		views[i] = b.View(width)
	}
	return strings.Join(views, "\n\n")
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	key := keyOf(msg)
	switch murmur.ResolveHotkey(key) {
	case murmur.HotkeyPalette:
		return m.togglePalette()
	case murmur.HotkeySearch:
		return m.toggleSearch()
	case murmur.HotkeyClose:
		return m.closeModal()
	case murmur.HotkeyEditLast:
		if m.canEditLast() {
			return m.editLast(), nil
		}
	}

	var cmd tea.Cmd
	state := murmur.FocusState{
		InputFocused: m.Input.Focused(),
		ModalOpen:    m.palette.open || m.search.open,
	}
	if !m.Busy() && m.focus.ShouldRefocus(key, state) {
		focusCmd := m.Input.Focus()
		m, cmd = m.updateInput(msg)
		return m, tea.Batch(focusCmd, cmd)
	}

	switch {
	case m.palette.open:
		return m.handlePaletteKey(msg)
	case m.search.open:
		return m.handleSearchKey(msg)
	}

	if m.Busy() {
		if msg.Type != tea.KeyRunes {
			m.Viewport, cmd = m.Viewport.Update(msg)
		}
		return m, cmd
	}

	if !m.Input.Focused() {
		if msg.Type == tea.KeyTab {
			cmd = m.Input.Focus()
			return m, cmd
		}
		m.Viewport, cmd = m.Viewport.Update(msg)
		return m, cmd
	}

	switch msg.Type {
	case tea.KeyEnter:
		return m.submit()
	case tea.KeyTab:
		m.Input.Blur()
		return m, nil
	case tea.KeyPgUp, tea.KeyPgDown:
		m.Viewport, cmd = m.Viewport.Update(msg)
		return m, cmd
	}
	m, cmd = m.updateInput(msg)
	return m, cmd
}

// keyOf converts a Bubble Tea key press into the toolkit-neutral form the
// focus policy works with.
func keyOf(msg tea.KeyMsg) murmur.Key {
	switch msg.Type {
	case tea.KeyRunes:
		return murmur.Key{Name: string(msg.Runes), Alt: msg.Alt}
	case tea.KeySpace:
		return murmur.Key{Name: " ", Alt: msg.Alt}
	}
	k := murmur.Key{Alt: msg.Alt}
	name := msg.Type.String()
	for {
		switch {
		case strings.HasPrefix(name, "ctrl+"):
			k.Ctrl, name = true, strings.TrimPrefix(name, "ctrl+")
		case strings.HasPrefix(name, "alt+"):
			k.Alt, name = true, strings.TrimPrefix(name, "alt+")
		case strings.HasPrefix(name, "shift+"):
			k.Shift, name = true, strings.TrimPrefix(name, "shift+")
		default:
			k.Name = name
			return k
		}
	}
}

func (m Model) updateInput(msg tea.Msg) (Model, tea.Cmd) {
	before := m.Input.Value()
	var cmd tea.Cmd
	m.Input, cmd = m.Input.Update(msg)
	if v := m.Input.Value(); v != before {
		m.saveDraft(v)
	}
	return m, cmd
}

func (m Model) saveDraft(text string) {
	if err := m.dispatcher.Draft().Save(text); err != nil {
		m.logger.Warn("save draft", "error", err)
	}
}

func (m Model) canEditLast() bool {
	return !m.palette.open && !m.search.open && !m.Busy() &&
		m.Input.Focused() && m.Input.Value() == ""
}

func (m Model) editLast() Model {
	last, ok := m.dispatcher.Conversation().Last(murmur.RoleUser)
	if !ok {
		return m
	}
	m.Input.SetValue(last.Text)
	m.Input.CursorEnd()
	m.saveDraft(last.Text)
	return m
}

func (m Model) submit() (tea.Model, tea.Cmd) {
	turn, res, err := m.dispatcher.Prepare(m.Input.Value())
	if err != nil {
		if !errors.Is(err, murmur.ErrBusy) {
			m.err = err
			m.logger.Error("prepare", "error", err)
		}
		return m, nil
	}
	m.err = nil

	switch res.Outcome {
	case murmur.OutcomeIgnored:
		return m, nil
	case murmur.OutcomeCommand:
		m.Input.SetValue("")
		m = m.applyDisplay()
		return m.render(false), nil
	}

	m.Input.SetValue("")
	m.Input.Blur()
	m = m.render(false)
	return m, tea.Batch(m.exchange(turn), m.Spinner.Tick)
}

// exchange runs the network part of a send off the update goroutine and
// reports back with a ReplyMsg.
func (m Model) exchange(turn *murmur.Turn) tea.Cmd {
	d, timeout := m.dispatcher, m.timeout
	return func() tea.Msg {
		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}
		resp, err := d.Exchange(ctx, turn)
		return ReplyMsg{Turn: turn, Resp: resp, Err: err}
	}
}

func (m Model) handleReply(msg ReplyMsg) (tea.Model, tea.Cmd) {
	if _, err := m.dispatcher.Complete(msg.Turn, msg.Resp, msg.Err); err != nil {
		m.err = err
		m.logger.Error("complete", "error", err)
	}
	var cmd tea.Cmd
	if !m.palette.open && !m.search.open {
		cmd = m.Input.Focus()
	}
	return m.render(false), cmd
}

// applyDisplay reconciles the view with the dispatcher's zen and invert
// toggles after a command ran.
func (m Model) applyDisplay() Model {
	d := m.dispatcher.Display()
	if d.Inverted != m.display.Inverted {
		m.theme = m.theme.Invert()
		m.transcript.setTheme(m.theme)
		m.Spinner.Style = m.styles().Accent
	}
	zenChanged := d.Zen != m.display.Zen
	m.display = d
	if zenChanged && m.ready {
		m = m.layout()
	}
	return m
}

func (m Model) togglePalette() (tea.Model, tea.Cmd) {
	if m.palette.open {
		return m.closeModal()
	}
	if m.search.open {
		m.search = m.search.dismiss()
		m = m.layout()
	}
	var cmd tea.Cmd
	m.palette, cmd = m.palette.show()
	m.Input.Blur()
	return m, cmd
}

func (m Model) toggleSearch() (tea.Model, tea.Cmd) {
	if m.search.open {
		return m.closeModal()
	}
	m.palette = m.palette.hide()
	var cmd tea.Cmd
	m.search, cmd = m.search.show()
	m.Input.Blur()
	m = m.layout()
	return m, cmd
}

// closeModal hides the palette, or else clears the search. Focus returns
// to the input unless a request is in flight.
func (m Model) closeModal() (tea.Model, tea.Cmd) {
	switch {
	case m.palette.open:
		m.palette = m.palette.hide()
	case m.search.active():
		m.search = m.search.reset()
		m = m.layout()
		m = m.render(true)
	default:
		return m, nil
	}
	cmd := m.focusIfIdle()
	return m, cmd
}

func (m Model) handlePaletteKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyUp:
		m.palette = m.palette.move(-1)
		return m, nil
	case tea.KeyDown, tea.KeyTab:
		m.palette = m.palette.move(1)
		return m, nil
	case tea.KeyEnter:
		entry, ok := m.palette.selected()
		m.palette = m.palette.hide()
		if !ok || m.Busy() {
			cmd := m.focusIfIdle()
			return m, cmd
		}
		m.dispatcher.Run(entry.Command)
		m = m.applyDisplay()
		cmd := m.Input.Focus()
		return m.render(false), cmd
	}
	var cmd tea.Cmd
	m.palette, cmd = m.palette.update(msg)
	return m, cmd
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyEnter {
		m.search = m.search.dismiss()
		m = m.layout()
		cmd := m.focusIfIdle()
		return m, cmd
	}
	before := m.search.query()
	var cmd tea.Cmd
	m.search, cmd = m.search.update(msg)
	if m.search.query() != before {
		m = m.render(true)
	}
	return m, cmd
}

func (m *Model) focusIfIdle() tea.Cmd {
	if m.Busy() {
		return nil
	}
	return m.Input.Focus()
}
