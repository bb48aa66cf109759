package murmur

import "strings"

// Command is a local action triggered by slash-prefixed input or the command
// palette. Commands never reach the remote API.
type Command string

const (
	CommandClear  Command = "clear"
	CommandZen    Command = "zen"
	CommandHelp   Command = "help"
	CommandInvert Command = "invert"
)

// HelpText is the static help message inserted by the help command.
const HelpText = "Quick Commands:\n" +
	"• /clear - Clear chat\n" +
	"• /zen - Toggle zen mode\n" +
	"• /invert - Invert theme\n" +
	"• Ctrl+K - Command palette\n" +
	"• Ctrl+F - Search messages\n" +
	"• Just type to generate images: 'show me a cat', 'draw a sunset'"

// PaletteEntry is one row of the command palette.
type PaletteEntry struct {
	Command Command
	Label   string
}

var palette = []PaletteEntry{
	{Command: CommandClear, Label: "Clear Chat"},
	{Command: CommandZen, Label: "Zen Mode"},
	{Command: CommandHelp, Label: "Show Help"},
	{Command: CommandInvert, Label: "Invert Theme"},
}

// ParseCommand recognizes slash commands. Matching is case-insensitive and
// ignores surrounding whitespace, but the whole input must be the command:
// "/clear now" is not a command and is sent as a normal message.
func ParseCommand(text string) (Command, bool) {
	if !strings.HasPrefix(text, "/") {
		return "", false
	}
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "/clear":
		return CommandClear, true
	case "/zen":
		return CommandZen, true
	case "/help":
		return CommandHelp, true
	case "/invert":
		return CommandInvert, true
	}
	return "", false
}

// Commands returns every palette entry in display order.
func Commands() []PaletteEntry {
	out := make([]PaletteEntry, len(palette))
	copy(out, palette)
	return out
}

// FilterCommands returns the palette entries whose label contains query,
// case-insensitively. An empty query matches everything.
func FilterCommands(query string) []PaletteEntry {
	q := strings.ToLower(query)
	var out []PaletteEntry
	for _, e := range palette {
		if strings.Contains(strings.ToLower(e.Label), q) {
			out = append(out, e)
		}
	}
	return out
}
