package chords

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidNote is returned when a note or key spelling is not one of the
// recognized sharp or flat names.
var ErrInvalidNote = errors.New("invalid note")

// PitchClass is one of the 12 equal-tempered notes, 0 = C.
type PitchClass int

// NumPitchClasses is the size of the chromatic scale.
const NumPitchClasses = 12

// sharpNames is the canonical semitone order used for all index arithmetic.
var sharpNames = [NumPitchClasses]string{
	"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B",
}

var flatToSharp = map[string]string{
	"Db": "C#",
	"Eb": "D#",
	"Gb": "F#",
	"Ab": "G#",
	"Bb": "A#",
}

var sharpToFlat = map[string]string{
	"C#": "Db",
	"D#": "Eb",
	"F#": "Gb",
	"G#": "Ab",
	"A#": "Bb",
}

// Wrap reduces any integer to a pitch class in [0, 11].
func Wrap(n int) PitchClass {
	n %= NumPitchClasses
	if n < 0 {
		n += NumPitchClasses
	}
	return PitchClass(n)
}

// Normalize maps a sharp or flat spelling to its pitch class.
func Normalize(note string) (PitchClass, error) {
	if sharp, ok := flatToSharp[note]; ok {
		note = sharp
	}
	for i, name := range sharpNames {
		if name == note {
			return PitchClass(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidNote, note)
}

// Spell returns the written name of pc. Accidentals come out as flats when
// preferFlats is set; naturals are the same either way.
func Spell(pc PitchClass, preferFlats bool) string {
	name := sharpNames[Wrap(int(pc))]
	if preferFlats {
		if flat, ok := sharpToFlat[name]; ok {
			return flat
		}
	}
	return name
}

// PreferFlats reports whether chords shown in key should be written with
// flats. This only looks at the spelling of the key name: "Bb" and "Ebm"
// prefer flats, "F" does not.
func PreferFlats(key string) bool {
	return strings.Contains(key, "b")
}

// KeyIndex returns the pitch class of a key name such as "G", "Bb" or
// "F#m". Unrecognized keys are treated as C.
func KeyIndex(key string) PitchClass {
	root, _ := splitNote(strings.TrimSpace(key))
	if root == "" {
		return 0
	}
	pc, err := Normalize(root)
	if err != nil {
		return 0
	}
	return pc
}

// Interval is the directed semitone distance from one key to another,
// in the range -11..11.
func Interval(fromKey, toKey string) int {
	return int(KeyIndex(toKey)) - int(KeyIndex(fromKey))
}

// splitNote splits a leading note letter (A-G) and optional accidental from
// the rest of s. root is empty when s does not start with a note letter.
func splitNote(s string) (root, rest string) {
	if s == "" || s[0] < 'A' || s[0] > 'G' {
		return "", s
	}
	n := 1
	if len(s) > 1 && (s[1] == '#' || s[1] == 'b') {
		n = 2
	}
	return s[:n], s[n:]
}
