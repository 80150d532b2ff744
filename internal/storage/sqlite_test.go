package storage

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/himanishpuri/ChordsOfSongs/pkg/models"
	"gorm.io/gorm"
)

// Helper function to create a temporary test database
func setupTestDB(t *testing.T) (*DBClient, string) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test_chords.sqlite3")
	t.Setenv("CHORDS_DB_PATH", dbPath)

	client, err := NewDBClient()
	if err != nil {
		t.Fatalf("Failed to create test DB client: %v", err)
	}
	t.Cleanup(func() {
		client.Close()
	})

	return client, dbPath
}

func sampleRecord(slug string) models.Record {
	return models.Record{
		Slug:     slug,
		Title:    "Title " + slug,
		Artist:   "Artist",
		Key:      "G",
		Language: "english",
		Speed:    "fast",
		Content:  "[G]Hello [D]world",
	}
}

func TestNewDBClient(t *testing.T) {
	client, dbPath := setupTestDB(t)

	if client.DB == nil {
		t.Fatal("Expected non-nil GORM DB handle")
	}
	if client.db == nil {
		t.Fatal("Expected non-nil sql.DB handle")
	}
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Errorf("Database file was not created at %s", dbPath)
	}
}

func TestNewDBClientWithCustomPath(t *testing.T) {
	customPath := filepath.Join(t.TempDir(), "subdir", "custom.db")

	client, err := NewDBClientWithPath(customPath)
	if err != nil {
		t.Fatalf("Failed to create DB with custom path: %v", err)
	}
	defer client.Close()

	if _, err := os.Stat(customPath); os.IsNotExist(err) {
		t.Errorf("Database file was not created at custom path %s", customPath)
	}
}

func TestInMemoryDB(t *testing.T) {
	client, err := NewDBClientWithPath(MemoryDB)
	if err != nil {
		t.Fatalf("Failed to open in-memory DB: %v", err)
	}
	defer client.Close()

	if _, _, err := client.UpsertSong(sampleRecord("mem")); err != nil {
		t.Fatalf("UpsertSong failed: %v", err)
	}
	n, err := client.CountSongs()
	if err != nil {
		t.Fatalf("CountSongs failed: %v", err)
	}
	if n != 1 {
		t.Errorf("Expected 1 song, got %d", n)
	}
}

func TestUpsertSongCreates(t *testing.T) {
	client, _ := setupTestDB(t)

	id, created, err := client.UpsertSong(sampleRecord("hello"))
	if err != nil {
		t.Fatalf("Failed to upsert song: %v", err)
	}
	if !created {
		t.Error("Expected first upsert to create a row")
	}
	if len(id) != 36 {
		t.Errorf("Expected UUID song ID, got %q", id)
	}

	song, err := client.GetSongBySlug("hello")
	if err != nil {
		t.Fatalf("Failed to retrieve song: %v", err)
	}
	if song.ID != id {
		t.Errorf("Expected ID %s, got %s", id, song.ID)
	}
	if song.Key != "G" || song.Content != "[G]Hello [D]world" {
		t.Errorf("Unexpected stored song: %+v", song)
	}
}

func TestUpsertSongUpdatesExisting(t *testing.T) {
	client, _ := setupTestDB(t)

	id1, _, err := client.UpsertSong(sampleRecord("same"))
	if err != nil {
		t.Fatalf("Failed to upsert song: %v", err)
	}

	rec := sampleRecord("same")
	rec.Key = "Bb"
	rec.Content = "[Bb]Changed"
	id2, created, err := client.UpsertSong(rec)
	if err != nil {
		t.Fatalf("Failed to upsert song second time: %v", err)
	}
	if created {
		t.Error("Expected second upsert to update, not create")
	}
	if id1 != id2 {
		t.Errorf("Expected same song ID, got %s and %s", id1, id2)
	}

	song, _ := client.GetSongBySlug("same")
	if song.Key != "Bb" || song.Content != "[Bb]Changed" {
		t.Errorf("Expected updated key and content, got %q %q", song.Key, song.Content)
	}

	count, _ := client.CountSongs()
	if count != 1 {
		t.Errorf("Expected 1 song in database, found %d", count)
	}
}

func TestGetSongBySlugNotFound(t *testing.T) {
	client, _ := setupTestDB(t)

	_, err := client.GetSongBySlug("missing")
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("Expected ErrRecordNotFound, got %v", err)
	}
}

func TestListAndFilterSongs(t *testing.T) {
	client, _ := setupTestDB(t)

	recs := []models.Record{
		{Slug: "a", Title: "A", Language: "english", Speed: "fast"},
		{Slug: "b", Title: "B", Language: "English", Speed: "slow"},
		{Slug: "c", Title: "C", Language: "hindi", Speed: "slow"},
		{Slug: "d", Title: "D", Language: "hindi", Speed: "fast"},
	}
	for _, r := range recs {
		if _, _, err := client.UpsertSong(r); err != nil {
			t.Fatalf("UpsertSong(%s) failed: %v", r.Slug, err)
		}
	}

	all, err := client.ListSongs()
	if err != nil {
		t.Fatalf("ListSongs failed: %v", err)
	}
	if len(all) != 4 {
		t.Errorf("Expected 4 songs, got %d", len(all))
	}

	tests := []struct {
		language, speed string
		expected        int
	}{
		{"english", "", 2},
		{"ENGLISH", "slow", 1},
		{"hindi", "fast", 1},
		{"", "slow", 2},
		{"", "", 4},
		{"tamil", "", 0},
	}
	for _, tt := range tests {
		songs, err := client.FilterSongs(tt.language, tt.speed)
		if err != nil {
			t.Fatalf("FilterSongs(%q, %q) failed: %v", tt.language, tt.speed, err)
		}
		if len(songs) != tt.expected {
			t.Errorf("FilterSongs(%q, %q) returned %d songs, expected %d", tt.language, tt.speed, len(songs), tt.expected)
		}
	}
}

func TestDeleteSongBySlug(t *testing.T) {
	client, _ := setupTestDB(t)

	if _, _, err := client.UpsertSong(sampleRecord("gone")); err != nil {
		t.Fatalf("Failed to upsert song: %v", err)
	}
	if err := client.DeleteSongBySlug("gone"); err != nil {
		t.Fatalf("Failed to delete song: %v", err)
	}
	if _, err := client.GetSongBySlug("gone"); err == nil {
		t.Error("Expected song to be deleted, but it still exists")
	}

	err := client.DeleteSongBySlug("gone")
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Errorf("Expected ErrRecordNotFound deleting twice, got %v", err)
	}
}

func TestToModel(t *testing.T) {
	client, _ := setupTestDB(t)

	id, _, _ := client.UpsertSong(sampleRecord("model"))
	song, err := client.GetSongBySlug("model")
	if err != nil {
		t.Fatalf("GetSongBySlug failed: %v", err)
	}

	m := song.ToModel()
	if m.ID != id || m.Slug != "model" || m.Title != "Title model" || m.Speed != "fast" {
		t.Errorf("Unexpected model conversion: %+v", m)
	}
	if m.CreatedAt.IsZero() {
		t.Error("Expected CreatedAt to be set")
	}
}

func TestNilClient(t *testing.T) {
	var client *DBClient

	if err := client.Close(); err != nil {
		t.Errorf("Close on nil client should be a no-op, got %v", err)
	}
	if _, _, err := client.UpsertSong(sampleRecord("x")); err == nil {
		t.Error("Expected error from nil client")
	}
	if _, err := client.ListSongs(); err == nil {
		t.Error("Expected error from nil client")
	}
}

func TestClose(t *testing.T) {
	client, err := NewDBClientWithPath(filepath.Join(t.TempDir(), "close_test.sqlite3"))
	if err != nil {
		t.Fatalf("Failed to create DB client: %v", err)
	}

	if err := client.Close(); err != nil {
		t.Errorf("Failed to close DB client: %v", err)
	}
	if err := client.db.Ping(); err == nil {
		t.Error("Expected error when pinging closed database")
	}
}
