package murmur

import (
	"strings"
	"unicode/utf8"
)

// Key is a key press as seen by the view layer, independent of any UI toolkit.
// Name is the printable character for character keys, or a lowercase key
// name such as "escape", "up" or "enter".
type Key struct {
	Name  string
	Ctrl  bool
	Alt   bool
	Meta  bool
	Shift bool
}

// Printable reports whether k types a single character.
func (k Key) Printable() bool {
	return utf8.RuneCountInString(k.Name) == 1
}

// Hotkey is a global shortcut.
type Hotkey int

const (
	HotkeyNone     Hotkey = iota
	HotkeyPalette         // Ctrl/Cmd+K
	HotkeySearch          // Ctrl/Cmd+F
	HotkeyClose           // Escape
	HotkeyEditLast        // Up arrow without modifiers
)

// ResolveHotkey maps a key press to a global shortcut.
func ResolveHotkey(k Key) Hotkey {
	name := strings.ToLower(k.Name)
	ctrlOrCmd := k.Ctrl || k.Meta
	switch {
	case ctrlOrCmd && name == "k":
		return HotkeyPalette
	case ctrlOrCmd && name == "f":
		return HotkeySearch
	case name == "escape" || name == "esc":
		return HotkeyClose
	case name == "up" && !k.Shift && !ctrlOrCmd:
		return HotkeyEditLast
	}
	return HotkeyNone
}

// FocusState is the part of view state the focus policy needs.
type FocusState struct {
	InputFocused bool
	ModalOpen    bool // palette or search is open
}

// FocusPolicy decides when the view should move focus back to the message
// input. It holds no state.
type FocusPolicy struct{}

// ShouldRefocus reports whether k, pressed while the view is in state s,
// should return focus to the input. Only plain character keys do; modified
// keys and keys pressed while a modal is open never steal focus.
func (FocusPolicy) ShouldRefocus(k Key, s FocusState) bool {
	if k.Ctrl || k.Meta || k.Alt || s.ModalOpen {
		return false
	}
	return k.Printable() && !s.InputFocused
}
