package chords

import "strings"

// SegmentKind tells chord annotations and lyric text apart.
type SegmentKind int

const (
	SegmentText SegmentKind = iota
	SegmentChord
)

func (k SegmentKind) String() string {
	switch k {
	case SegmentText:
		return "text"
	case SegmentChord:
		return "chord"
	default:
		return "unknown"
	}
}

// Segment is one piece of an annotated line: either the contents of a
// [bracketed] chord annotation or a run of lyric text.
type Segment struct {
	Kind SegmentKind `json:"kind"`
	Text string      `json:"text"`
}

// Chord returns a chord-annotation segment.
func Chord(text string) Segment {
	return Segment{Kind: SegmentChord, Text: text}
}

// Text returns a lyric-text segment.
func Text(text string) Segment {
	return Segment{Kind: SegmentText, Text: text}
}

// IsChord reports whether s is a chord annotation.
func (s Segment) IsChord() bool {
	return s.Kind == SegmentChord
}

// Parse splits one line of annotated text into segments, e.g.
// "[Am]Hello [F]world" becomes Am, "Hello ", F, "world".
//
// Brackets do not nest: an annotation ends at the first ']' after its '['.
// A '[' with no closing ']' turns the rest of the line into lyric text.
func Parse(line string) []Segment {
	var segs []Segment
	for len(line) > 0 {
		open := strings.IndexByte(line, '[')
		if open < 0 {
			segs = append(segs, Text(line))
			break
		}
		if open > 0 {
			segs = append(segs, Text(line[:open]))
			line = line[open:]
		}

		end := strings.IndexByte(line, ']')
		if end < 0 {
			if n := len(segs); n > 0 && !segs[n-1].IsChord() {
				segs[n-1].Text += line
			} else {
				segs = append(segs, Text(line))
			}
			break
		}
		segs = append(segs, Chord(line[1:end]))
		line = line[end+1:]
	}
	return segs
}

// Reconstruct joins segments back into the annotated line they came from.
func Reconstruct(segs []Segment) string {
	var b strings.Builder
	for _, s := range segs {
		switch s.Kind {
		case SegmentChord:
			b.WriteByte('[')
			b.WriteString(s.Text)
			b.WriteByte(']')
		case SegmentText:
			b.WriteString(s.Text)
		}
	}
	return b.String()
}
