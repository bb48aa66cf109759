package murmur

// Theme defines semantic color mappings using ANSI color indices (0-15).
// The user's terminal theme determines the actual RGB values, so the app
// automatically matches any color scheme. A negative index means the
// terminal default.
type Theme struct {
	Foreground int // Base text; -1 keeps the terminal default
	Background int // Base background; -1 keeps the terminal default
	UserMsg    int // User message accent
	Assistant  int // Assistant message accent
	Error      int // Error messages
	Image      int // Image links
	Muted      int // Status bar, placeholders, timestamps
	Accent     int // Headings, links, palette selection
	UserBg     int // User message background
	Inverted   bool
}

// DefaultTheme returns the default ANSI color mapping.
func DefaultTheme() Theme {
	return Theme{
		Foreground: -1,
		Background: -1,
		UserMsg:    4,
		Assistant:  6,
		Error:      1,
		Image:      2,
		Muted:      8,
		Accent:     5,
		UserBg:     -1,
	}
}

// Invert returns the light/dark counterpart of t. Inverting an inverted
// theme restores the terminal default colors.
func (t Theme) Invert() Theme {
	if t.Inverted {
		t.Foreground, t.Background = -1, -1
	} else {
		t.Foreground, t.Background = 0, 15
	}
	t.Inverted = !t.Inverted
	return t
}
