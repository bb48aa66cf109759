package bubbletea

import "github.com/charmbracelet/x/ansi"

var _ MessageBlock = (*ImageBlock)(nil)

const imageLabel = "🖼  image: "

// ImageBlock renders a generated image as a clickable link. Terminals
// cannot display the image inline, so the URL is shown truncated to the
// available width and the full URL is carried in an OSC 8 hyperlink.
type ImageBlock struct {
	url    string
	styles Styles
}

// NewImageBlock creates an ImageBlock.
func NewImageBlock(url string, styles Styles) *ImageBlock {
	return &ImageBlock{url: url, styles: styles}
}

func (b *ImageBlock) View(width int) string {
	room := width - ansi.StringWidth(imageLabel)
	shown := b.url
	if room > 0 {
		shown = ansi.Truncate(b.url, room, "…")
	}
	return b.styles.Muted.Render(imageLabel) +
		ansi.SetHyperlink(b.url) +
		b.styles.Image.Render(shown) +
		ansi.ResetHyperlink()
}
