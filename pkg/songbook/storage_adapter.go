package songbook

import (
	"errors"
	"fmt"

	"github.com/himanishpuri/ChordsOfSongs/internal/storage"
	"github.com/himanishpuri/ChordsOfSongs/pkg/models"
	"gorm.io/gorm"
)

// storageAdapter adapts the storage.DBClient to implement the Storage interface.
type storageAdapter struct {
	db *storage.DBClient
}

// NewSQLiteStorage creates a new SQLite storage backend.
func NewSQLiteStorage(dbPath string) (Storage, error) {
	db, err := storage.NewDBClientWithPath(dbPath)
	if err != nil {
		return nil, err
	}
	return &storageAdapter{db: db}, nil
}

func notFound(slug string, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%w: %s: %w", ErrSongNotFound, slug, err)
	}
	return err
}

func (s *storageAdapter) UpsertSong(rec models.Record) (string, bool, error) {
	return s.db.UpsertSong(rec)
}

func (s *storageAdapter) GetSongBySlug(slug string) (*models.Song, error) {
	dbSong, err := s.db.GetSongBySlug(slug)
	if err != nil {
		return nil, notFound(slug, err)
	}
	song := dbSong.ToModel()
	return &song, nil
}

func (s *storageAdapter) ListSongs() ([]models.Song, error) {
	dbSongs, err := s.db.ListSongs()
	if err != nil {
		return nil, err
	}
	return toModels(dbSongs), nil
}

func (s *storageAdapter) FilterSongs(language, speed string) ([]models.Song, error) {
	dbSongs, err := s.db.FilterSongs(language, speed)
	if err != nil {
		return nil, err
	}
	return toModels(dbSongs), nil
}

func (s *storageAdapter) DeleteSongBySlug(slug string) error {
	return notFound(slug, s.db.DeleteSongBySlug(slug))
}

func (s *storageAdapter) CountSongs() (int64, error) {
	return s.db.CountSongs()
}

func (s *storageAdapter) Close() error {
	return s.db.Close()
}

func toModels(dbSongs []storage.Song) []models.Song {
	songs := make([]models.Song, len(dbSongs))
	for i, dbSong := range dbSongs {
		songs[i] = dbSong.ToModel()
	}
	return songs
}
