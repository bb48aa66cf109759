package bubbletea

import (
	"strings"

	"github.com/fwojciec/murmur"
)

// transcript turns the conversation into message blocks. It is held by
// pointer so the subscription callback and every copy of Model share the
// same dirty flag.
type transcript struct {
	conv   *murmur.Conversation
	theme  murmur.Theme
	styles Styles

	dirty bool
	cache map[string][]MessageBlock // by message ID

	unsubscribe func()
}

func newTranscript(conv *murmur.Conversation, theme murmur.Theme) *transcript {
	t := &transcript{
		conv:   conv,
		theme:  theme,
		styles: NewStyles(theme),
		dirty:  true,
		cache:  make(map[string][]MessageBlock),
	}
	t.unsubscribe = conv.Subscribe(func(murmur.Event) { t.dirty = true })
	return t
}

// setTheme switches colors and drops every cached block.
func (t *transcript) setTheme(theme murmur.Theme) {
	t.theme = theme
	t.styles = NewStyles(theme)
	clear(t.cache)
	t.dirty = true
}

// rebuild recreates the block list, reusing cached blocks for messages
// that were already rendered. Messages not matching query are skipped.
func (t *transcript) rebuild(query string) []MessageBlock {
	msgs := t.conv.Messages()
	seen := make(map[string]struct{}, len(msgs))
	q := strings.ToLower(strings.TrimSpace(query))

	blocks := make([]MessageBlock, 0, len(msgs))
	for _, m := range msgs {
		seen[m.ID] = struct{}{}
		if q != "" && !strings.Contains(strings.ToLower(m.Text), q) {
			continue
		}
		bs, ok := t.cache[m.ID]
		if !ok {
			bs = t.blocksFor(m)
			t.cache[m.ID] = bs
		}
		blocks = append(blocks, bs...)
	}
	for id := range t.cache {
		if _, ok := seen[id]; !ok {
			delete(t.cache, id)
		}
	}
	t.dirty = false
	return blocks
}

func (t *transcript) blocksFor(m murmur.Message) []MessageBlock {
	var bs []MessageBlock
	text := sanitize(m.Text)
	switch {
	case m.Role == murmur.RoleUser:
		bs = append(bs, NewUserMessageBlock(text, t.styles))
	case m.Status == murmur.StatusError:
		bs = append(bs, NewErrorBlock(text, t.styles))
	default:
		bs = append(bs, NewAssistantTextBlock(text, t.theme, t.styles))
	}
	if m.HasImage() {
		bs = append(bs, NewImageBlock(sanitize(m.ImageURL), t.styles))
	}
	return bs
}

func (t *transcript) close() {
	if t.unsubscribe != nil {
		t.unsubscribe()
	}
}
