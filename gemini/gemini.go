// Package gemini implements [murmur.Client] for the Google Gemini API.
//
// It wraps the google.golang.org/genai SDK. Gemini is stateless, so the
// client issues its own conversation identifiers and keeps each
// conversation's history in memory for the process lifetime.
package gemini

const (
	defaultModel     = "gemini-2.5-flash"
	defaultMaxTokens = 8192

	imageInstruction = "The user asked for an image. An image is generated separately " +
		"from their prompt; reply with a short caption describing it."
)
