package chords

import (
	"errors"
	"testing"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		note     string
		expected PitchClass
	}{
		{"C", 0},
		{"C#", 1},
		{"Db", 1},
		{"D", 2},
		{"Eb", 3},
		{"E", 4},
		{"F", 5},
		{"Gb", 6},
		{"G", 7},
		{"Ab", 8},
		{"G#", 8},
		{"A", 9},
		{"Bb", 10},
		{"B", 11},
	}

	for _, tt := range tests {
		pc, err := Normalize(tt.note)
		if err != nil {
			t.Errorf("Normalize(%q) returned error: %v", tt.note, err)
			continue
		}
		if pc != tt.expected {
			t.Errorf("Normalize(%q) = %d, expected %d", tt.note, pc, tt.expected)
		}
	}
}

func TestNormalizeInvalid(t *testing.T) {
	for _, note := range []string{"", "H", "c", "Cb", "E#", "Fb", "B#", "C##", "Am"} {
		if _, err := Normalize(note); !errors.Is(err, ErrInvalidNote) {
			t.Errorf("Normalize(%q) error = %v, expected ErrInvalidNote", note, err)
		}
	}
}

func TestSpellRoundTrip(t *testing.T) {
	for i := 0; i < NumPitchClasses; i++ {
		for _, flats := range []bool{false, true} {
			name := Spell(PitchClass(i), flats)
			pc, err := Normalize(name)
			if err != nil {
				t.Fatalf("Normalize(Spell(%d, %v)) failed: %v", i, flats, err)
			}
			if int(pc) != i {
				t.Errorf("Normalize(Spell(%d, %v)) = %d", i, flats, pc)
			}
		}
	}
}

func TestSpellPreference(t *testing.T) {
	if got := Spell(1, false); got != "C#" {
		t.Errorf("Expected C#, got %s", got)
	}
	if got := Spell(1, true); got != "Db" {
		t.Errorf("Expected Db, got %s", got)
	}
	if got := Spell(7, true); got != "G" {
		t.Errorf("Naturals should ignore flat preference, got %s", got)
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		n        int
		expected PitchClass
	}{
		{0, 0},
		{11, 11},
		{12, 0},
		{-1, 11},
		{-13, 11},
		{25, 1},
	}

	for _, tt := range tests {
		if got := Wrap(tt.n); got != tt.expected {
			t.Errorf("Wrap(%d) = %d, expected %d", tt.n, got, tt.expected)
		}
	}
}

func TestPreferFlats(t *testing.T) {
	tests := []struct {
		key      string
		expected bool
	}{
		{"Bb", true},
		{"Eb", true},
		{"Ebm", true},
		{"F#", false},
		{"C", false},
		{"F", false}, // lexical only: F major is not written with a flat
		{"", false},
	}

	for _, tt := range tests {
		if got := PreferFlats(tt.key); got != tt.expected {
			t.Errorf("PreferFlats(%q) = %v, expected %v", tt.key, got, tt.expected)
		}
	}
}

func TestKeyIndex(t *testing.T) {
	tests := []struct {
		key      string
		expected PitchClass
	}{
		{"G", 7},
		{" Bb ", 10},
		{"F#m", 6},
		{"Am", 9},
		{"", 0},
		{"xyz", 0},
		{"Cb", 0}, // matched but unknown spelling falls back to C
	}

	for _, tt := range tests {
		if got := KeyIndex(tt.key); got != tt.expected {
			t.Errorf("KeyIndex(%q) = %d, expected %d", tt.key, got, tt.expected)
		}
	}
}

func TestInterval(t *testing.T) {
	tests := []struct {
		from, to string
		expected int
	}{
		{"G", "A", 2},
		{"A", "G", -2},
		{"C", "B", 11},
		{"B", "C", -11},
		{"Db", "C#", 0},
		{"bogus", "D", 2},
	}

	for _, tt := range tests {
		if got := Interval(tt.from, tt.to); got != tt.expected {
			t.Errorf("Interval(%q, %q) = %d, expected %d", tt.from, tt.to, got, tt.expected)
		}
	}
}
