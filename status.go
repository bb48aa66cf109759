package murmur

// Status is the delivery state of a message.
type Status string

const (
	StatusSent    Status = "sent"
	StatusSending Status = "sending"
	StatusError   Status = "error"
)

// CanTransition reports whether a message in status s may move to status to.
// Only in-flight messages change state.
func (s Status) CanTransition(to Status) bool {
	return s == StatusSending && (to == StatusSent || to == StatusError)
}
