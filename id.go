package murmur

// IDGenerator issues message identifiers. Identifiers must be unique for the
// lifetime of a conversation.
type IDGenerator interface {
	NewID() string
}
