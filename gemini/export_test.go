package gemini

import (
	"context"

	"google.golang.org/genai"
)

// NewForTest creates a Client that calls generate instead of the Gemini API
// and issues identifiers from newID.
func NewForTest(
	generate func(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error),
	newID func() string,
	opts ...Option,
) *Client {
	c := newClient(generate, opts...)
	c.newID = newID
	return c
}
