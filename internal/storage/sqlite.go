//go:build !js && !wasm
// +build !js,!wasm

package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/himanishpuri/ChordsOfSongs/pkg/models"
	"github.com/himanishpuri/ChordsOfSongs/pkg/utils"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const DefaultDBFile = "chordsofsongs.sqlite3"
const MemoryDB = ":memory:"
const errDBClientNil = "db client is nil"

type DBClient struct {
	DB *gorm.DB
	db *sql.DB
}

type Song struct {
	ID        string `gorm:"primaryKey;type:varchar(36)"`
	Slug      string `gorm:"uniqueIndex:idx_song_slug;not null"`
	Title     string `gorm:"index:idx_song_meta,priority:1"`
	Artist    string `gorm:"index:idx_song_meta,priority:2"`
	Key       string `gorm:"column:song_key"`
	Language  string `gorm:"index:idx_song_filter,priority:1"`
	Speed     string `gorm:"index:idx_song_filter,priority:2"`
	Content   string `gorm:"type:text"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ToModel converts the row to the public song record.
func (s Song) ToModel() models.Song {
	return models.Song{
		ID:        s.ID,
		Slug:      s.Slug,
		Title:     s.Title,
		Artist:    s.Artist,
		Key:       s.Key,
		Language:  s.Language,
		Speed:     s.Speed,
		Content:   s.Content,
		CreatedAt: s.CreatedAt,
	}
}

func NewDBClient() (*DBClient, error) {
	dbPath := os.Getenv("CHORDS_DB_PATH")
	if dbPath == "" {
		dbPath = DefaultDBFile
	}
	return NewDBClientWithPath(dbPath)
}

func NewDBClientWithPath(dbPath string) (*DBClient, error) {
	inMemory := dbPath == MemoryDB
	if !inMemory {
		if err := utils.EnsureParentDir(dbPath); err != nil {
			return nil, fmt.Errorf("creating db dir: %w", err)
		}
	}

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}

	db, err := gorm.Open(sqlite.Open(dbPath+"?_pragma=foreign_keys(1)"), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("getting sql.DB from gorm: %w", err)
	}

	if inMemory {
		// every connection would otherwise get its own empty database
		sqlDB.SetMaxOpenConns(1)
	} else {
		sqlDB.SetMaxOpenConns(25)
		sqlDB.SetMaxIdleConns(5)
	}
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := db.AutoMigrate(&Song{}); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("auto migrate: %w", err)
	}

	return &DBClient{DB: db, db: sqlDB}, nil
}

func (c *DBClient) Close() error {
	if c == nil || c.db == nil {
		return nil
	}
	return c.db.Close()
}

// UpsertSong inserts rec, or updates the song that already has its slug.
// It returns the song ID and whether a new row was created.
func (c *DBClient) UpsertSong(rec models.Record) (string, bool, error) {
	if c == nil || c.DB == nil {
		return "", false, errors.New(errDBClientNil)
	}

	fields := map[string]any{
		"title":    rec.Title,
		"artist":   rec.Artist,
		"song_key": rec.Key,
		"language": rec.Language,
		"speed":    rec.Speed,
		"content":  rec.Content,
	}

	var song Song
	err := c.DB.Where("slug = ?", rec.Slug).First(&song).Error
	if err == nil {
		if err := c.DB.Model(&song).Updates(fields).Error; err != nil {
			return "", false, fmt.Errorf("updating song %q: %w", rec.Slug, err)
		}
		return song.ID, false, nil
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, fmt.Errorf("querying existing song: %w", err)
	}

	song = Song{
		ID:       utils.GenerateUUID(),
		Slug:     rec.Slug,
		Title:    rec.Title,
		Artist:   rec.Artist,
		Key:      rec.Key,
		Language: rec.Language,
		Speed:    rec.Speed,
		Content:  rec.Content,
	}
	err = c.DB.Create(&song).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) ||
			strings.Contains(err.Error(), "UNIQUE constraint failed") {
			// another writer inserted the slug first
			var existing Song
			if fetchErr := c.DB.Where("slug = ?", rec.Slug).First(&existing).Error; fetchErr != nil {
				return "", false, fmt.Errorf("fetching song after constraint violation: %w", fetchErr)
			}
			if err := c.DB.Model(&existing).Updates(fields).Error; err != nil {
				return "", false, fmt.Errorf("updating song %q: %w", rec.Slug, err)
			}
			return existing.ID, false, nil
		}
		return "", false, fmt.Errorf("creating song: %w", err)
	}

	return song.ID, true, nil
}

// GetSongBySlug returns gorm.ErrRecordNotFound (wrapped) when no song has
// the slug.
func (c *DBClient) GetSongBySlug(slug string) (*Song, error) {
	if c == nil || c.DB == nil {
		return nil, errors.New(errDBClientNil)
	}
	var song Song
	if err := c.DB.Where("slug = ?", slug).First(&song).Error; err != nil {
		return nil, fmt.Errorf("getting song %q: %w", slug, err)
	}
	return &song, nil
}

func (c *DBClient) ListSongs() ([]Song, error) {
	if c == nil || c.DB == nil {
		return nil, errors.New(errDBClientNil)
	}
	var songs []Song
	if err := c.DB.Order("created_at, slug").Find(&songs).Error; err != nil {
		return nil, fmt.Errorf("listing songs: %w", err)
	}
	return songs, nil
}

// FilterSongs returns songs matching language and speed. An empty value
// matches anything.
func (c *DBClient) FilterSongs(language, speed string) ([]Song, error) {
	if c == nil || c.DB == nil {
		return nil, errors.New(errDBClientNil)
	}
	q := c.DB.Model(&Song{})
	if language != "" {
		q = q.Where("LOWER(language) = LOWER(?)", language)
	}
	if speed != "" {
		q = q.Where("LOWER(speed) = LOWER(?)", speed)
	}
	var songs []Song
	if err := q.Order("created_at, slug").Find(&songs).Error; err != nil {
		return nil, fmt.Errorf("filtering songs: %w", err)
	}
	return songs, nil
}

func (c *DBClient) CountSongs() (int64, error) {
	if c == nil || c.DB == nil {
		return 0, errors.New(errDBClientNil)
	}
	var count int64
	if err := c.DB.Model(&Song{}).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("counting songs: %w", err)
	}
	return count, nil
}

func (c *DBClient) DeleteSongBySlug(slug string) error {
	if c == nil || c.DB == nil {
		return errors.New(errDBClientNil)
	}
	res := c.DB.Where("slug = ?", slug).Delete(&Song{})
	if res.Error != nil {
		return fmt.Errorf("deleting song %q: %w", slug, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("deleting song %q: %w", slug, gorm.ErrRecordNotFound)
	}
	return nil
}
