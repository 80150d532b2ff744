package chords

// selectableKeys is the order keys are offered in: naturals once, the five
// accidental pitch classes under both spellings.
var selectableKeys = []string{
	"Ab", "A", "A#", "Bb", "B", "C", "C#", "Db", "D",
	"D#", "Eb", "E", "F", "F#", "Gb", "G", "G#",
}

// KeyOption is one entry of the key selector.
type KeyOption struct {
	Name   string `json:"name"`
	Active bool   `json:"active"`
}

// SelectableKeys returns the key names a user can pick, in display order.
func SelectableKeys() []string {
	out := make([]string, len(selectableKeys))
	copy(out, selectableKeys)
	return out
}

// IsSelectableKey reports whether key is one of SelectableKeys.
func IsSelectableKey(key string) bool {
	for _, k := range selectableKeys {
		if k == key {
			return true
		}
	}
	return false
}

// KeyOptions returns the selector entries with current marked active.
func KeyOptions(current string) []KeyOption {
	opts := make([]KeyOption, len(selectableKeys))
	for i, k := range selectableKeys {
		opts[i] = KeyOption{Name: k, Active: k == current}
	}
	return opts
}
