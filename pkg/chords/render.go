package chords

import (
	"strings"
	"unicode/utf8"
)

// RenderedLine is one source line laid out for a fixed-width font: each
// chord glyph in Chords starts in the column of the lyric it annotates.
type RenderedLine struct {
	Chords    string `json:"chords"`
	Lyrics    string `json:"lyrics"`
	HasChords bool   `json:"has_chords"`
}

// RenderLine lays out parsed segments as a chord line and a lyric line.
//
// A chord is padded to the width of the lyric segment right after it, so the
// next chord starts over the next word. A chord wider than its word spills
// into the following columns; the lyric line is never padded or changed.
func RenderLine(segs []Segment, interval int, preferFlats bool) RenderedLine {
	var chordLine, lyricLine strings.Builder
	var out RenderedLine

	for i, seg := range segs {
		switch seg.Kind {
		case SegmentText:
			lyricLine.WriteString(seg.Text)
			if i > 0 && segs[i-1].IsChord() {
				continue
			}
			chordLine.WriteString(strings.Repeat(" ", width(seg.Text)))

		case SegmentChord:
			glyph := Transpose(seg.Text, interval, preferFlats)
			w := max(width(glyph), 1)
			if i+1 < len(segs) && !segs[i+1].IsChord() {
				w = max(w, width(segs[i+1].Text))
			}
			chordLine.WriteString(glyph)
			chordLine.WriteString(strings.Repeat(" ", w-width(glyph)))
			out.HasChords = true
		}
	}

	out.Chords = chordLine.String()
	out.Lyrics = lyricLine.String()
	return out
}

// Render parses and lays out a single annotated line.
func (t Transposition) Render(line string) RenderedLine {
	return RenderLine(Parse(line), t.Interval, t.PreferFlats)
}

// SplitColumns partitions lines for two-column display: the first half
// (rounded up) goes left, the rest right.
func SplitColumns(lines []string) (left, right []string) {
	mid := (len(lines) + 1) / 2
	return lines[:mid], lines[mid:]
}

// Sheet is a whole song rendered in a target key.
type Sheet struct {
	Key         string           `json:"key"`
	SourceKey   string           `json:"source_key"`
	Interval    int              `json:"interval"`
	PreferFlats bool             `json:"prefer_flats"`
	Columns     [][]RenderedLine `json:"columns"`
}

// RenderSong renders the annotated content of a song written in sourceKey
// as if played in targetKey, split into one or two columns. An empty
// targetKey keeps the song's own key.
func RenderSong(content, sourceKey, targetKey string, columns int) Sheet {
	if targetKey == "" {
		targetKey = sourceKey
	}
	t := NewTransposition(sourceKey, targetKey)

	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	groups := [][]string{lines}
	if columns >= 2 {
		left, right := SplitColumns(lines)
		groups = [][]string{left, right}
	}

	sheet := Sheet{
		Key:         targetKey,
		SourceKey:   sourceKey,
		Interval:    t.Interval,
		PreferFlats: t.PreferFlats,
		Columns:     make([][]RenderedLine, len(groups)),
	}
	for i, group := range groups {
		rendered := make([]RenderedLine, len(group))
		for j, line := range group {
			rendered[j] = t.Render(line)
		}
		sheet.Columns[i] = rendered
	}
	return sheet
}

// String lays the sheet out as plain text, columns one after another.
func (s Sheet) String() string {
	var b strings.Builder
	for i, col := range s.Columns {
		if i > 0 {
			b.WriteString("\n")
		}
		for _, line := range col {
			if line.HasChords {
				b.WriteString(strings.TrimRight(line.Chords, " "))
				b.WriteString("\n")
			}
			b.WriteString(line.Lyrics)
			b.WriteString("\n")
		}
	}
	return b.String()
}

func width(s string) int {
	return utf8.RuneCountInString(s)
}
