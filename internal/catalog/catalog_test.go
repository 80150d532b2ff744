package catalog

import (
	"errors"
	"testing"

	"github.com/himanishpuri/ChordsOfSongs/pkg/models"
)

func testSongs() []models.Song {
	return []models.Song{
		{Slug: "zara", Title: "Zara Zara", Artist: "Bombay Jayashri", Language: "hindi", Speed: "slow"},
		{Slug: "hotel", Title: "hotel california", Artist: "Eagles", Language: "english", Speed: "slow"},
		{Slug: "ecole", Title: "École", Artist: "Someone", Language: "french", Speed: "fast"},
		{Slug: "badtameez", Title: "Badtameez Dil", Artist: "Benny Dayal", Language: "Hindi", Speed: "Fast"},
		{Slug: "africa", Title: "Africa", Artist: "Toto", Language: "english", Speed: "fast"},
	}
}

func slugs(songs []models.Song) []string {
	out := make([]string, len(songs))
	for i, s := range songs {
		out[i] = s.Slug
	}
	return out
}

func equalSlugs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestParseFilter(t *testing.T) {
	tests := []struct {
		in       string
		expected Filter
		wantErr  bool
	}{
		{"", FilterNone, false},
		{"alphabetical", FilterAlphabetical, false},
		{" Fast-English ", FilterFastEnglish, false},
		{"slow-hindi", FilterSlowHindi, false},
		{"medium-english", FilterNone, true},
	}

	for _, tt := range tests {
		f, err := ParseFilter(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseFilter(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err != nil && !errors.Is(err, ErrUnknownFilter) {
			t.Errorf("ParseFilter(%q) error should wrap ErrUnknownFilter, got %v", tt.in, err)
		}
		if f != tt.expected {
			t.Errorf("ParseFilter(%q) = %q, expected %q", tt.in, f, tt.expected)
		}
	}
}

func TestCriteria(t *testing.T) {
	tests := []struct {
		filter      Filter
		speed, lang string
	}{
		{FilterNone, "", ""},
		{FilterAlphabetical, "", ""},
		{FilterFastEnglish, "fast", "english"},
		{FilterSlowEnglish, "slow", "english"},
		{FilterFastHindi, "fast", "hindi"},
		{FilterSlowHindi, "slow", "hindi"},
	}

	for _, tt := range tests {
		speed, lang := tt.filter.Criteria()
		if speed != tt.speed || lang != tt.lang {
			t.Errorf("%q.Criteria() = %q, %q; expected %q, %q", tt.filter, speed, lang, tt.speed, tt.lang)
		}
	}
}

func TestSortByTitle(t *testing.T) {
	songs := testSongs()
	songs = append(songs, models.Song{Slug: "africa-live", Title: "AFRICA"})
	SortByTitle(songs)

	expected := []string{"africa", "africa-live", "badtameez", "ecole", "hotel", "zara"}
	if got := slugs(songs); !equalSlugs(got, expected) {
		t.Errorf("SortByTitle = %v, expected %v", got, expected)
	}
}

func TestFiltersOrder(t *testing.T) {
	fs := Filters()
	if len(fs) != 5 || fs[0] != FilterAlphabetical {
		t.Errorf("unexpected filter list %v", fs)
	}
	fs[0] = "mutated"
	if Filters()[0] != FilterAlphabetical {
		t.Error("Filters should return a copy")
	}
}

func TestSearch(t *testing.T) {
	tests := []struct {
		query    string
		limit    int
		expected []string
	}{
		{"", 5, nil},
		{"   ", 5, nil},
		{"HOTEL", 5, []string{"hotel"}},
		{"eagles", 5, []string{"hotel"}},
		{"ben", 5, []string{"badtameez"}},
		{"a", 2, []string{"zara", "hotel"}},
		{"a", 0, []string{"zara", "hotel", "badtameez", "africa"}},
		{"école", 5, []string{"ecole"}},
		{"nothing", 5, nil},
		{"hotel ", 5, []string{"hotel"}},
		{"africa ", 5, nil},
		{" toto", 5, nil},
	}

	for _, tt := range tests {
		got := slugs(Search(testSongs(), tt.query, tt.limit))
		if !equalSlugs(got, tt.expected) {
			t.Errorf("Search(%q, %d) = %v, expected %v", tt.query, tt.limit, got, tt.expected)
		}
	}
}
