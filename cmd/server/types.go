package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/himanishpuri/ChordsOfSongs/pkg/chords"
	"github.com/himanishpuri/ChordsOfSongs/pkg/models"
	"github.com/himanishpuri/ChordsOfSongs/pkg/songbook"
)

// MaxSearchLimit caps the limit query parameter of GET /api/search
const MaxSearchLimit = 50

// AddSongRequest is the request body for POST /api/songs
type AddSongRequest struct {
	// Slug is optional - derived from the title when empty
	Slug     string `json:"slug,omitempty"`
	Title    string `json:"title"`
	Artist   string `json:"artist,omitempty"`
	Key      string `json:"key,omitempty"`
	Language string `json:"language,omitempty"`
	Speed    string `json:"speed,omitempty"`
	Content  string `json:"content"`
}

// Validate checks if the request is valid
func (r *AddSongRequest) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return fmt.Errorf("title is required")
	}
	if strings.TrimSpace(r.Content) == "" {
		return fmt.Errorf("content is required")
	}
	return nil
}

func (r *AddSongRequest) ToRecord() models.Record {
	return models.Record{
		Slug:     r.Slug,
		Title:    r.Title,
		Artist:   r.Artist,
		Key:      r.Key,
		Language: r.Language,
		Speed:    r.Speed,
		Content:  r.Content,
	}
}

// AddSongResponse is the response for a stored song
type AddSongResponse struct {
	Message string  `json:"message"`
	Created bool    `json:"created"`
	Song    SongDTO `json:"song"`
}

// SongDTO represents a song card in list and search responses
type SongDTO struct {
	ID        string    `json:"id"`
	Slug      string    `json:"slug"`
	Title     string    `json:"title"`
	Artist    string    `json:"artist"`
	Key       string    `json:"key"`
	Language  string    `json:"language,omitempty"`
	Speed     string    `json:"speed,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func toSongDTO(song models.Song) SongDTO {
	return SongDTO{
		ID:        song.ID,
		Slug:      song.Slug,
		Title:     song.Title,
		Artist:    song.Artist,
		Key:       song.Key,
		Language:  song.Language,
		Speed:     song.Speed,
		CreatedAt: song.CreatedAt,
	}
}

func toSongDTOs(songs []models.Song) []SongDTO {
	dtos := make([]SongDTO, len(songs))
	for i, song := range songs {
		dtos[i] = toSongDTO(song)
	}
	return dtos
}

// ListSongsResponse is the response for GET /api/songs
type ListSongsResponse struct {
	Songs  []SongDTO `json:"songs"`
	Count  int       `json:"count"`
	Filter string    `json:"filter,omitempty"`
}

// SearchResponse is the response for GET /api/search
type SearchResponse struct {
	Query string    `json:"query"`
	Songs []SongDTO `json:"songs"`
	Count int       `json:"count"`
}

// SongViewResponse is the response for GET /api/songs/{slug}
type SongViewResponse struct {
	Song      SongDTO                 `json:"song"`
	Heading   string                  `json:"heading"`
	Key       string                  `json:"key"`
	SourceKey string                  `json:"source_key"`
	Interval  int                     `json:"interval"`
	Columns   [][]chords.RenderedLine `json:"columns"`
	Keys      []chords.KeyOption      `json:"keys"`
	Content   string                  `json:"content"`
}

func toSongViewResponse(view *songbook.SongView) SongViewResponse {
	return SongViewResponse{
		Song:      toSongDTO(view.Song),
		Heading:   view.Heading,
		Key:       view.Sheet.Key,
		SourceKey: view.Sheet.SourceKey,
		Interval:  view.Sheet.Interval,
		Columns:   view.Sheet.Columns,
		Keys:      view.Keys,
		Content:   view.Song.Content,
	}
}

// KeysResponse is the response for GET /api/keys
type KeysResponse struct {
	Current string             `json:"current,omitempty"`
	Keys    []chords.KeyOption `json:"keys"`
}

// DeleteSongResponse is the response for DELETE /api/songs/{slug}
type DeleteSongResponse struct {
	Message string `json:"message"`
	Slug    string `json:"slug"`
}

// MetricsResponse provides server health and database metrics
type MetricsResponse struct {
	Status       string    `json:"status"`
	DatabasePath string    `json:"database_path"`
	SongCount    int64     `json:"song_count"`
	StartedAt    time.Time `json:"started_at"`
	Uptime       string    `json:"uptime"`
}

// ErrorResponse is the standard error response format
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
	Code    int    `json:"code,omitempty"`
}
