package murmur

import (
	"fmt"
	"time"
)

// Message is one entry in the conversation log. Messages are values; the
// conversation hands out copies, so a Message never changes after creation
// except through WithStatus.
type Message struct {
	ID        string
	Role      Role
	Text      string
	Timestamp time.Time
	Status    Status
	ImageURL  string // empty when the message carries no image
}

// WithStatus returns a copy of m with its status changed to to.
func (m Message) WithStatus(to Status) (Message, error) {
	if !m.Status.CanTransition(to) {
		return m, fmt.Errorf("%s -> %s: %w", m.Status, to, ErrInvalidTransition)
	}
	m.Status = to
	return m, nil
}

// HasImage reports whether the message carries an image URL.
func (m Message) HasImage() bool { return m.ImageURL != "" }
