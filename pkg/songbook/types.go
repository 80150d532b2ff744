package songbook

import (
	"errors"

	"github.com/himanishpuri/ChordsOfSongs/pkg/chords"
	"github.com/himanishpuri/ChordsOfSongs/pkg/models"
)

var (
	ErrSongNotFound = errors.New("song not found")
	ErrInvalidSong  = errors.New("invalid song")
)

// SongView is a song prepared for display in a chosen key.
type SongView struct {
	Song    models.Song        `json:"song"`
	Heading string             `json:"heading"`
	Sheet   chords.Sheet       `json:"sheet"`
	Keys    []chords.KeyOption `json:"keys"`
}

// ImportResult summarises a bulk import.
type ImportResult struct {
	Created int      `json:"created"`
	Updated int      `json:"updated"`
	Skipped []string `json:"skipped,omitempty"`
}
