package murmur

import "context"

// FallbackReply is shown when the remote API answers without any reply text.
const FallbackReply = "I received your message! How can I help you further?"

// FailureReply is shown when a request fails for any reason.
const FailureReply = "Sorry, I encountered an error. Please try again."

// Client is the remote conversational API. Chat returns an error for
// transport failures and non-success responses alike; callers do not
// distinguish between them.
type Client interface {
	Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error)
}

// ChatRequest is one outbound message.
type ChatRequest struct {
	Message        string
	ConversationID string // empty on the first exchange
	GenerateImage  bool
}

// ChatResponse is the decoded reply. Every field is optional.
type ChatResponse struct {
	Reply          string
	Response       string // legacy alias for Reply
	ConversationID string
	Image          string
}

// Text returns the reply text, preferring Reply over Response and falling
// back to FallbackReply when both are empty.
func (r *ChatResponse) Text() string {
	switch {
	case r == nil:
		return FallbackReply
	case r.Reply != "":
		return r.Reply
	case r.Response != "":
		return r.Response
	default:
		return FallbackReply
	}
}
