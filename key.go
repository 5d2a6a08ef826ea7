package gui

import "strings"

// Key represents an editing key delivered to the focused text.
type Key uint8

const (
	// KeyNone represents no key (zero value).
	KeyNone Key = iota

	// Special keys
	KeyEscape
	KeyEnter
	KeyBackspace
	KeyDelete

	// Caret movement
	KeyLeft
	KeyRight
	KeyHome
	KeyEnd
)

var keyNames = map[Key]string{
	KeyNone:      "None",
	KeyEscape:    "Escape",
	KeyEnter:     "Enter",
	KeyBackspace: "Backspace",
	KeyDelete:    "Delete",
	KeyLeft:      "Left",
	KeyRight:     "Right",
	KeyHome:      "Home",
	KeyEnd:       "End",
}

// String returns a human-readable representation of the key.
func (k Key) String() string {
	if s, ok := keyNames[k]; ok {
		return s
	}
	return "Unknown"
}

// ParseKey returns the key with the given name, case-insensitively.
// "Esc" and "Return" are accepted as aliases.
func ParseKey(name string) (Key, bool) {
	switch strings.ToLower(name) {
	case "esc":
		return KeyEscape, true
	case "return":
		return KeyEnter, true
	}
	for k, s := range keyNames {
		if k != KeyNone && strings.EqualFold(s, name) {
			return k, true
		}
	}
	return KeyNone, false
}
