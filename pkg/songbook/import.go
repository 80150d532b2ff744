package songbook

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/himanishpuri/ChordsOfSongs/pkg/models"
	"github.com/himanishpuri/ChordsOfSongs/pkg/utils"
)

// DecodeRecords reads a songs.json document: either a JSON array of song
// records or an object with a "songs" array.
func DecodeRecords(r io.Reader) ([]models.Record, error) {
	var raw json.RawMessage
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decoding songs: %w", err)
	}

	var recs []models.Record
	if err := json.Unmarshal(raw, &recs); err == nil {
		return recs, nil
	}

	var doc struct {
		Songs []models.Record `json:"songs"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decoding songs: %w", err)
	}
	return doc.Songs, nil
}

// NormalizeRecord trims rec, derives a missing slug from the title and
// checks the required fields.
func NormalizeRecord(rec models.Record) (models.Record, error) {
	rec.Title = strings.TrimSpace(rec.Title)
	rec.Artist = strings.TrimSpace(rec.Artist)
	rec.Key = strings.TrimSpace(rec.Key)
	rec.Language = strings.ToLower(strings.TrimSpace(rec.Language))
	rec.Speed = strings.ToLower(strings.TrimSpace(rec.Speed))
	rec.Content = strings.ReplaceAll(rec.Content, "\r\n", "\n")

	if rec.Title == "" {
		return rec, fmt.Errorf("%w: title is required", ErrInvalidSong)
	}
	if strings.TrimSpace(rec.Content) == "" {
		return rec, fmt.Errorf("%w: %q has no content", ErrInvalidSong, rec.Title)
	}

	rec.Slug = utils.Slugify(rec.Slug)
	if rec.Slug == "" {
		rec.Slug = utils.Slugify(rec.Title)
	}
	if rec.Slug == "" {
		return rec, fmt.Errorf("%w: cannot derive a slug from %q", ErrInvalidSong, rec.Title)
	}

	if rec.Key == "" {
		rec.Key = "C"
	}
	return rec, nil
}
