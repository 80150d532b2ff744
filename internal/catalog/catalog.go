// Package catalog holds the list-page and header-search queries over songs.
package catalog

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/himanishpuri/ChordsOfSongs/pkg/models"
	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// HeaderSearchLimit caps the results shown while typing in the search box.
const HeaderSearchLimit = 5

var ErrUnknownFilter = errors.New("unknown filter")

type Filter string

const (
	FilterNone         Filter = ""
	FilterAlphabetical Filter = "alphabetical"
	FilterFastEnglish  Filter = "fast-english"
	FilterSlowEnglish  Filter = "slow-english"
	FilterFastHindi    Filter = "fast-hindi"
	FilterSlowHindi    Filter = "slow-hindi"
)

var filters = []Filter{
	FilterAlphabetical,
	FilterFastEnglish,
	FilterSlowEnglish,
	FilterFastHindi,
	FilterSlowHindi,
}

// Filters returns the named filters in menu order.
func Filters() []Filter {
	out := make([]Filter, len(filters))
	copy(out, filters)
	return out
}

func ParseFilter(name string) (Filter, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return FilterNone, nil
	}
	for _, f := range filters {
		if string(f) == name {
			return f, nil
		}
	}
	return FilterNone, fmt.Errorf("%w: %q", ErrUnknownFilter, name)
}

// Criteria reports the speed and language a filter selects on. Both are
// empty for FilterNone and FilterAlphabetical.
func (f Filter) Criteria() (speed, lang string) {
	if f == FilterNone || f == FilterAlphabetical {
		return "", ""
	}
	speed, lang, _ = strings.Cut(string(f), "-")
	return speed, lang
}

// SortByTitle orders songs by title using English collation, so case and
// accents do not split the alphabet. Ties fall back to slug.
func SortByTitle(songs []models.Song) {
	c := collate.New(language.English, collate.IgnoreCase, collate.IgnoreDiacritics)
	sort.SliceStable(songs, func(i, j int) bool {
		if r := c.CompareString(songs[i].Title, songs[j].Title); r != 0 {
			return r < 0
		}
		return songs[i].Slug < songs[j].Slug
	})
}

// Search matches query against title and artist, ignoring case. The query
// is matched as typed, surrounding spaces included. A blank query matches
// nothing. limit <= 0 means no limit.
func Search(songs []models.Song, query string, limit int) []models.Song {
	if strings.TrimSpace(query) == "" {
		return nil
	}

	fold := cases.Fold()
	needle := fold.String(query)

	var out []models.Song
	for _, s := range songs {
		if strings.Contains(fold.String(s.Title), needle) ||
			strings.Contains(fold.String(s.Artist), needle) {
			out = append(out, s)
			if limit > 0 && len(out) == limit {
				break
			}
		}
	}
	return out
}
