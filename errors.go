package murmur

import "errors"

// Sentinel errors for common failure modes.
var (
	// ErrBusy indicates a send was attempted while another is in flight.
	ErrBusy = errors.New("dispatcher busy: a request is already in flight")

	// ErrNoTurn indicates Complete was called for a turn that is not in flight.
	ErrNoTurn = errors.New("no matching turn in flight")

	// ErrDuplicateID indicates a message ID already exists in the conversation.
	ErrDuplicateID = errors.New("duplicate message id")

	// ErrInvalidTransition indicates a disallowed message status change.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrStatus indicates the remote API answered with a non-2xx status.
	ErrStatus = errors.New("unexpected HTTP status")
)
