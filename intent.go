package murmur

import (
	"net/url"
	"strconv"
	"strings"
	"unicode/utf8"
)

// imageTriggers are matched in order; ExtractPrompt uses the first hit.
var imageTriggers = []string{
	"generate image",
	"create image",
	"show me",
	"draw",
	"visualize",
	"picture of",
	"image of",
	"make an image",
	"create picture",
}

// ImageTriggers returns the phrases that mark a message as an image request.
func ImageTriggers() []string {
	out := make([]string, len(imageTriggers))
	copy(out, imageTriggers)
	return out
}

// IsImageRequest reports whether text asks for a generated image.
// Matching is a case-insensitive substring search.
func IsImageRequest(text string) bool {
	for _, t := range imageTriggers {
		if _, ok := indexFold(text, t); ok {
			return true
		}
	}
	return false
}

// ExtractPrompt returns the part of text following the first trigger phrase,
// trimmed. When nothing follows the trigger, or no trigger is present, text
// is returned unchanged.
func ExtractPrompt(text string) string {
	for _, t := range imageTriggers {
		end, ok := indexFold(text, t)
		if !ok {
			continue
		}
		if prompt := strings.TrimSpace(text[end:]); prompt != "" {
			return prompt
		}
		return text
	}
	return text
}

// indexFold finds the first case-insensitive occurrence of phrase in text
// and returns the byte offset in text just past it. Offsets always refer to
// text itself, whatever the byte length of its lowercase form.
func indexFold(text, phrase string) (end int, ok bool) {
	n := utf8.RuneCountInString(phrase)
	for start := range text {
		j := start
		for k := 0; k < n && j < len(text); k++ {
			_, size := utf8.DecodeRuneInString(text[j:])
			j += size
		}
		if strings.EqualFold(text[start:j], phrase) {
			return j, true
		}
	}
	return 0, false
}

// ImageEndpoint is a GET-style image generation URL template. The client
// never fetches it; the URL is only attached to messages.
type ImageEndpoint struct {
	BaseURL string // prompt is appended as the final path segment
	Width   int
	Height  int
	Model   string
	NoLogo  bool
}

// DefaultImageEndpoint returns the Pollinations endpoint used by default.
func DefaultImageEndpoint() ImageEndpoint {
	return ImageEndpoint{
		BaseURL: "https://image.pollinations.ai/prompt/",
		Width:   512,
		Height:  512,
		Model:   "flux",
		NoLogo:  true,
	}
}

// URL returns the image URL for prompt.
func (e ImageEndpoint) URL(prompt string) string {
	var b strings.Builder
	b.WriteString(e.BaseURL)
	b.WriteString(encodeComponent(prompt))
	b.WriteString("?width=")
	b.WriteString(strconv.Itoa(e.Width))
	b.WriteString("&height=")
	b.WriteString(strconv.Itoa(e.Height))
	b.WriteString("&model=")
	b.WriteString(url.QueryEscape(e.Model))
	b.WriteString("&nologo=")
	b.WriteString(strconv.FormatBool(e.NoLogo))
	return b.String()
}

// componentEscapes restores the characters encodeURIComponent leaves alone
// but url.QueryEscape encodes.
var componentEscapes = strings.NewReplacer(
	"+", "%20",
	"%21", "!",
	"%27", "'",
	"%28", "(",
	"%29", ")",
	"%2A", "*",
)

// encodeComponent escapes s for use as a single path segment the way
// encodeURIComponent does: spaces become %20 and !'()* are kept.
func encodeComponent(s string) string {
	return componentEscapes.Replace(url.QueryEscape(s))
}
