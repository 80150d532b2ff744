package chords

import "strings"

// Transposition holds the values derived from a (source key, target key)
// pair. Build it once per render and reuse it for every chord.
type Transposition struct {
	From        string
	To          string
	Interval    int
	PreferFlats bool
}

// NewTransposition derives the interval and spelling preference for
// rendering a song written in from as if it were in to.
func NewTransposition(from, to string) Transposition {
	return Transposition{
		From:        from,
		To:          to,
		Interval:    Interval(from, to),
		PreferFlats: PreferFlats(to),
	}
}

// Chord transposes a single chord symbol.
func (t Transposition) Chord(chord string) string {
	return Transpose(chord, t.Interval, t.PreferFlats)
}

// Transpose shifts the root (and slash bass, if any) of chord by interval
// semitones. The quality suffix is copied unchanged. Chords without a
// recognizable root are returned as-is.
func Transpose(chord string, interval int, preferFlats bool) string {
	if chord == "" {
		return chord
	}

	parts := strings.Split(chord, "/")
	rootPart := parts[0]

	root, suffix := splitNote(rootPart)
	newRoot, ok := shift(root, interval, preferFlats)
	if !ok {
		return chord
	}

	if len(parts) == 1 {
		return newRoot + suffix
	}

	// anything past a second slash is dropped
	bassPart := parts[1]
	bass, _ := splitNote(bassPart)
	newBass, ok := shift(bass, interval, preferFlats)
	if !ok {
		return newRoot + suffix + "/" + bassPart
	}
	// the bass is a single note; anything written after it is dropped
	return newRoot + suffix + "/" + newBass
}

// Progression returns every chord of the annotated content in order,
// transposed.
func (t Transposition) Progression(content string) []string {
	var out []string
	for _, line := range strings.Split(content, "\n") {
		for _, seg := range Parse(line) {
			if seg.IsChord() {
				out = append(out, t.Chord(seg.Text))
			}
		}
	}
	return out
}

// ChordRoot returns the pitch class of the root of chord.
func ChordRoot(chord string) (PitchClass, bool) {
	root, _ := splitNote(strings.SplitN(chord, "/", 2)[0])
	if root == "" {
		return 0, false
	}
	pc, err := Normalize(root)
	if err != nil {
		return 0, false
	}
	return pc, true
}

func shift(note string, interval int, preferFlats bool) (string, bool) {
	if note == "" {
		return "", false
	}
	pc, err := Normalize(note)
	if err != nil {
		return "", false
	}
	return Spell(Wrap(int(pc)+interval), preferFlats), true
}
