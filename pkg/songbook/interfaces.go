package songbook

import (
	"context"
	"io"

	"github.com/himanishpuri/ChordsOfSongs/pkg/models"
)

type Service interface {
	AddSong(ctx context.Context, rec models.Record) (*models.Song, bool, error)
	ImportSongs(ctx context.Context, r io.Reader) (*ImportResult, error)
	ImportFile(ctx context.Context, path string) (*ImportResult, error)
	GetSong(ctx context.Context, slug string) (*models.Song, error)
	ListSongs(ctx context.Context, filter string) ([]models.Song, error)
	Search(ctx context.Context, query string, limit int) ([]models.Song, error)
	ViewSong(ctx context.Context, slug, key string, columns int) (*SongView, error)
	WritePDF(ctx context.Context, w io.Writer, slug, key string, columns int) error
	WriteMIDI(ctx context.Context, w io.Writer, slug, key string) error
	DeleteSong(ctx context.Context, slug string) error
	CountSongs(ctx context.Context) (int64, error)
	Close() error
}

type Storage interface {
	UpsertSong(rec models.Record) (string, bool, error)
	GetSongBySlug(slug string) (*models.Song, error)
	ListSongs() ([]models.Song, error)
	FilterSongs(language, speed string) ([]models.Song, error)
	DeleteSongBySlug(slug string) error
	CountSongs() (int64, error)
	Close() error
}

type Logger interface {
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
	Errorf(format string, args ...any)
	Debugf(format string, args ...any)
}
