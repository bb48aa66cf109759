package murmur

// Event is a sealed interface describing a conversation mutation.
// Listeners registered with Conversation.Subscribe receive events
// synchronously, after the mutation is visible.
// The unexported marker method prevents external implementations.
type Event interface {
	event()
}

// EventAppended signals that a message was appended.
type EventAppended struct {
	Message Message
}

func (EventAppended) event() {}

// EventReset signals that the conversation was reset to its seed message.
type EventReset struct {
	Seed Message
}

func (EventReset) event() {}

// EventSessionStarted signals that the remote API issued a session identifier.
type EventSessionStarted struct {
	ID string
}

func (EventSessionStarted) event() {}

// Interface compliance checks.
var (
	_ Event = EventAppended{}
	_ Event = EventReset{}
	_ Event = EventSessionStarted{}
)
