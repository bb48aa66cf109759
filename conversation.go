package murmur

import (
	"fmt"
	"time"
)

// WelcomeText is the default seed message of a new conversation.
const WelcomeText = "Welcome to murmur ✨ I'm your AI assistant with image generation powers. " +
	"Try asking me to 'generate image of a sunset' or just chat naturally. Type /help for commands!"

// Conversation is the ordered, append-only message log plus the session
// identifier issued by the remote API.
//
// A Conversation is not safe for concurrent use. All mutations are expected
// to come from a single goroutine (the UI update loop); see Dispatcher for
// how the network call is kept off that path.
type Conversation struct {
	ids   IDGenerator
	now   func() time.Time
	seed  string
	msgs  []Message
	index map[string]struct{}

	sessionID string
	userCount int

	listeners map[int]func(Event)
	nextSub   int
}

// ConversationOption configures a [Conversation].
type ConversationOption func(*Conversation)

// WithSeed sets the text of the welcome message.
func WithSeed(text string) ConversationOption {
	return func(c *Conversation) { c.seed = text }
}

// WithClock sets the time source used for message timestamps.
func WithClock(now func() time.Time) ConversationOption {
	return func(c *Conversation) { c.now = now }
}

// NewConversation creates a Conversation holding a single seed message.
func NewConversation(ids IDGenerator, opts ...ConversationOption) *Conversation {
	c := &Conversation{
		ids:       ids,
		now:       time.Now,
		seed:      WelcomeText,
		listeners: make(map[int]func(Event)),
	}
	for _, o := range opts {
		o(c)
	}
	c.clear()
	return c
}

// Messages returns a copy of the ordered message log.
func (c *Conversation) Messages() []Message {
	out := make([]Message, len(c.msgs))
	copy(out, c.msgs)
	return out
}

// Len returns the number of messages.
func (c *Conversation) Len() int { return len(c.msgs) }

// Last returns the most recent message with the given role.
func (c *Conversation) Last(role Role) (Message, bool) {
	for i := len(c.msgs) - 1; i >= 0; i-- {
		if c.msgs[i].Role == role {
			return c.msgs[i], true
		}
	}
	return Message{}, false
}

// SessionID returns the session identifier, or "" before the first exchange.
func (c *Conversation) SessionID() string { return c.sessionID }

// UserCount returns the number of user-originated messages since the last reset.
func (c *Conversation) UserCount() int { return c.userCount }

// Append adds m to the end of the log. An empty ID or zero timestamp is
// filled in. The stored message is returned.
func (c *Conversation) Append(m Message) (Message, error) {
	if m.ID == "" {
		m.ID = c.ids.NewID()
	}
	if _, ok := c.index[m.ID]; ok {
		return Message{}, fmt.Errorf("append %s: %w", m.ID, ErrDuplicateID)
	}
	if m.Timestamp.IsZero() {
		m.Timestamp = c.now()
	}
	if m.Status == "" {
		m.Status = StatusSent
	}
	c.msgs = append(c.msgs, m)
	c.index[m.ID] = struct{}{}
	if m.Role == RoleUser {
		c.userCount++
	}
	c.notify(EventAppended{Message: m})
	return m, nil
}

// Reset discards every message and the session identifier, leaving a single
// fresh seed message.
func (c *Conversation) Reset() {
	c.clear()
	c.notify(EventReset{Seed: c.msgs[0]})
}

// SetSessionID adopts id as the session identifier. It reports whether the
// identifier changed. Once set, the identifier is kept until Reset.
func (c *Conversation) SetSessionID(id string) bool {
	if id == "" || c.sessionID != "" {
		return false
	}
	c.sessionID = id
	c.notify(EventSessionStarted{ID: id})
	return true
}

// Subscribe registers fn to receive every subsequent Event. The returned
// function removes the subscription.
func (c *Conversation) Subscribe(fn func(Event)) (unsubscribe func()) {
	id := c.nextSub
	c.nextSub++
	c.listeners[id] = fn
	return func() { delete(c.listeners, id) }
}

func (c *Conversation) clear() {
	seed := Message{
		ID:        c.ids.NewID(),
		Role:      RoleAssistant,
		Text:      c.seed,
		Timestamp: c.now(),
		Status:    StatusSent,
	}
	c.msgs = []Message{seed}
	c.index = map[string]struct{}{seed.ID: {}}
	c.sessionID = ""
	c.userCount = 0
}

func (c *Conversation) notify(e Event) {
	// Deliver in subscription order so listeners observe a stable sequence.
	for i := 0; i < c.nextSub; i++ {
		if fn, ok := c.listeners[i]; ok {
			fn(e)
		}
	}
}
