// Package converse implements [murmur.Client] for the Converse chat API.
//
// The API is a single JSON endpoint: POST a message with an optional
// conversation identifier, receive a reply and optionally an image URL.
package converse

const (
	defaultBaseURL = "https://converse-api-vb6x.onrender.com"
	askPath        = "/ask"
)

// apiRequest is the request body. ConversationID is a pointer so the first
// exchange sends an explicit null.
type apiRequest struct {
	Message        string  `json:"message"`
	ConversationID *string `json:"conversation_id"`
	GenerateImage  bool    `json:"generate_image"`
}

// apiResponse is the response body. Every field is optional.
type apiResponse struct {
	Reply          string `json:"reply,omitempty"`
	Response       string `json:"response,omitempty"`
	ConversationID string `json:"conversation_id,omitempty"`
	Image          string `json:"image,omitempty"`
}
