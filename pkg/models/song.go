package models

import "time"

// Song is a catalog entry whose Content uses the inline chord format,
// e.g. "[Am]Hello [F]darkness".
type Song struct {
	ID        string    `json:"id"`       // UUID
	Slug      string    `json:"slug"`     // unique, used in URLs
	Title     string    `json:"title"`    // Song title
	Artist    string    `json:"artist"`   // Artist name
	Key       string    `json:"key"`      // Key the content is written in
	Language  string    `json:"language"` // e.g. "english", "hindi"
	Speed     string    `json:"speed"`    // "fast" or "slow"
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Record is the shape of one entry of a songs.json data file.
type Record struct {
	Slug     string `json:"slug"`
	Title    string `json:"title"`
	Artist   string `json:"artist"`
	Key      string `json:"key"`
	Language string `json:"language,omitempty"`
	Speed    string `json:"speed,omitempty"`
	Content  string `json:"content"`
}
