package chords

import (
	"reflect"
	"strings"
	"testing"
	"unicode/utf8"
)

func TestRenderLine(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		interval int
		flats    bool
		chords   string
		lyrics   string
	}{
		{
			name:   "aligned over words",
			line:   "[Am]Hello [F]world",
			chords: "Am    F    ",
			lyrics: "Hello world",
		},
		{
			name:     "transposed",
			line:     "[G]Sing [D]along",
			interval: 2,
			chords:   "A    E    ",
			lyrics:   "Sing along",
		},
		{
			name:   "leading lyric",
			line:   "Oh [C]my",
			chords: "   C ",
			lyrics: "Oh my",
		},
		{
			name:   "glyph longer than word",
			line:   "[Cmaj7]I [F]go",
			chords: "Cmaj7F ",
			lyrics: "I go",
		},
		{
			name:   "consecutive chords",
			line:   "[C][G]la",
			chords: "CG ",
			lyrics: "la",
		},
		{
			name:   "trailing chord",
			line:   "end[E7]",
			chords: "   E7",
			lyrics: "end",
		},
		{
			name:   "empty annotation keeps one column",
			line:   "[]x",
			chords: " ",
			lyrics: "x",
		},
		{
			name:   "no chords",
			line:   "plain",
			chords: "     ",
			lyrics: "plain",
		},
		{
			name:     "flat spelling",
			line:     "[A]la [E]la",
			interval: 1,
			flats:    true,
			chords:   "Bb F ",
			lyrics:   "la la",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RenderLine(Parse(tt.line), tt.interval, tt.flats)
			if got.Chords != tt.chords {
				t.Errorf("chords = %q, expected %q", got.Chords, tt.chords)
			}
			if got.Lyrics != tt.lyrics {
				t.Errorf("lyrics = %q, expected %q", got.Lyrics, tt.lyrics)
			}
		})
	}
}

func TestRenderLineKeepsLyricsIntact(t *testing.T) {
	line := "[C#m7add11]a [Gbmaj9/Bb]b [Esus4]c"
	got := RenderLine(Parse(line), 5, true)
	if got.Lyrics != "a b c" {
		t.Errorf("lyrics changed: %q", got.Lyrics)
	}
	if !strings.HasPrefix(got.Chords, "Gbm7add11") {
		t.Errorf("unexpected chord line %q", got.Chords)
	}
}

func TestRenderLineColumns(t *testing.T) {
	// each chord starts in the column of its word when glyphs fit
	line := "[G]Amazing [C]grace how [G]sweet"
	got := RenderLine(Parse(line), 0, false)

	for _, c := range []struct {
		chord string
		word  string
	}{{"G", "Amazing"}, {"C", "grace"}} {
		ci := strings.Index(got.Chords, c.chord)
		wi := strings.Index(got.Lyrics, c.word)
		if ci != wi {
			t.Errorf("chord %s at column %d, word %s at column %d", c.chord, ci, c.word, wi)
		}
	}
	if i := strings.LastIndex(got.Chords, "G"); i != strings.Index(got.Lyrics, "sweet") {
		t.Errorf("last chord at column %d, expected %d", i, strings.Index(got.Lyrics, "sweet"))
	}
}

func TestRenderLineRuneWidth(t *testing.T) {
	got := RenderLine(Parse("[Am]तुम [F]हो"), 0, false)
	if got.Lyrics != "तुम हो" {
		t.Fatalf("unexpected lyrics %q", got.Lyrics)
	}
	if utf8.RuneCountInString(got.Chords) != utf8.RuneCountInString(got.Lyrics) {
		t.Errorf("chord line %q should span the lyric runes", got.Chords)
	}
	if strings.IndexRune(got.Chords, 'F') != 4 {
		t.Errorf("F should sit over rune column 4, chord line %q", got.Chords)
	}
}

func TestRenderLineHasChords(t *testing.T) {
	if RenderLine(Parse("no chords here"), 0, false).HasChords {
		t.Error("HasChords should be false")
	}
	if !RenderLine(Parse("[A]"), 0, false).HasChords {
		t.Error("HasChords should be true")
	}
}

func TestSplitColumns(t *testing.T) {
	tests := []struct {
		lines       []string
		left, right []string
	}{
		{[]string{"1", "2", "3", "4", "5"}, []string{"1", "2", "3"}, []string{"4", "5"}},
		{[]string{"1", "2", "3", "4"}, []string{"1", "2"}, []string{"3", "4"}},
		{[]string{"1"}, []string{"1"}, []string{}},
		{[]string{}, []string{}, []string{}},
	}

	for _, tt := range tests {
		left, right := SplitColumns(tt.lines)
		if len(left) != len(tt.left) || len(right) != len(tt.right) {
			t.Errorf("SplitColumns(%v) = %v / %v, expected %v / %v", tt.lines, left, right, tt.left, tt.right)
			continue
		}
		if len(left) > 0 && !reflect.DeepEqual(left, tt.left) {
			t.Errorf("left = %v, expected %v", left, tt.left)
		}
		if len(right) > 0 && !reflect.DeepEqual(right, tt.right) {
			t.Errorf("right = %v, expected %v", right, tt.right)
		}
	}
}

func TestRenderSong(t *testing.T) {
	content := "[G]Line one\r\n[D]Line two\n[Em]Line three"

	sheet := RenderSong(content, "G", "A", 1)
	if sheet.Interval != 2 || sheet.Key != "A" || sheet.SourceKey != "G" {
		t.Fatalf("unexpected sheet header: %+v", sheet)
	}
	if len(sheet.Columns) != 1 || len(sheet.Columns[0]) != 3 {
		t.Fatalf("expected 1 column of 3 lines, got %+v", sheet.Columns)
	}
	if got := sheet.Columns[0][1].Chords; !strings.HasPrefix(got, "E ") {
		t.Errorf("expected D -> E, got %q", got)
	}
	if got := sheet.Columns[0][0].Lyrics; got != "Line one" {
		t.Errorf("carriage return should be dropped, got %q", got)
	}

	two := RenderSong(content, "G", "", 2)
	if two.Key != "G" || two.Interval != 0 {
		t.Errorf("empty target should keep the source key, got %+v", two)
	}
	if len(two.Columns) != 2 || len(two.Columns[0]) != 2 || len(two.Columns[1]) != 1 {
		t.Errorf("expected 2/1 split, got %d columns", len(two.Columns))
	}

	flat := RenderSong(content, "G", "Bb", 1)
	if !flat.PreferFlats {
		t.Error("Bb should prefer flats")
	}
	if got := flat.Columns[0][0].Chords; !strings.HasPrefix(got, "Bb") {
		t.Errorf("expected G -> Bb, got %q", got)
	}
}

func TestSheetString(t *testing.T) {
	sheet := RenderSong("[C]Hi\nplain", "C", "D", 1)
	expected := "D\nHi\nplain\n"
	if got := sheet.String(); got != expected {
		t.Errorf("String() = %q, expected %q", got, expected)
	}
}

func TestKeyOptions(t *testing.T) {
	keys := SelectableKeys()
	if len(keys) != 17 {
		t.Fatalf("expected 17 selectable keys, got %d", len(keys))
	}
	keys[0] = "mutated"
	if SelectableKeys()[0] != "Ab" {
		t.Error("SelectableKeys should return a copy")
	}

	active := 0
	for _, opt := range KeyOptions("Db") {
		if opt.Active {
			active++
			if opt.Name != "Db" {
				t.Errorf("wrong active key %s", opt.Name)
			}
		}
	}
	if active != 1 {
		t.Errorf("expected exactly one active key, got %d", active)
	}
	if !IsSelectableKey("G#") || IsSelectableKey("Cb") {
		t.Error("IsSelectableKey returned wrong result")
	}
}
