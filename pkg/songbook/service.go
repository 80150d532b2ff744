package songbook

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/himanishpuri/ChordsOfSongs/internal/catalog"
	"github.com/himanishpuri/ChordsOfSongs/internal/export"
	"github.com/himanishpuri/ChordsOfSongs/pkg/chords"
	"github.com/himanishpuri/ChordsOfSongs/pkg/logger"
	"github.com/himanishpuri/ChordsOfSongs/pkg/models"
)

// songbookService is the default implementation of the Service interface.
type songbookService struct {
	storage Storage
	log     Logger
	config  *Config
}

func NewService(opts ...Option) (Service, error) {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.Logger == nil {
		cfg.Logger = logger.GetLogger()
	}
	if cfg.DefaultSearchLimit <= 0 {
		cfg.DefaultSearchLimit = catalog.HeaderSearchLimit
	}

	var stor Storage
	var err error
	if cfg.Storage != nil {
		stor = cfg.Storage
	} else {
		stor, err = NewSQLiteStorage(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("failed to create storage: %w", err)
		}
	}

	return &songbookService{
		storage: stor,
		log:     cfg.Logger,
		config:  cfg,
	}, nil
}

// AddSong validates rec and stores it, replacing any song with the same
// slug. The bool reports whether a new song was created.
func (s *songbookService) AddSong(ctx context.Context, rec models.Record) (*models.Song, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	rec, err := NormalizeRecord(rec)
	if err != nil {
		return nil, false, err
	}

	_, created, err := s.storage.UpsertSong(rec)
	if err != nil {
		return nil, false, fmt.Errorf("failed to store song: %w", err)
	}

	song, err := s.storage.GetSongBySlug(rec.Slug)
	if err != nil {
		return nil, false, err
	}

	if created {
		s.log.Infof("Added song %q (%s)", song.Title, song.Slug)
	} else {
		s.log.Debugf("Updated song %q (%s)", song.Title, song.Slug)
	}
	return song, created, nil
}

// ImportSongs adds every record of a songs.json document. Invalid records
// are skipped and reported; storage failures abort the import.
func (s *songbookService) ImportSongs(ctx context.Context, r io.Reader) (*ImportResult, error) {
	recs, err := DecodeRecords(r)
	if err != nil {
		return nil, err
	}

	res := &ImportResult{}
	for i, rec := range recs {
		_, created, err := s.AddSong(ctx, rec)
		switch {
		case errors.Is(err, ErrInvalidSong):
			s.log.Warnf("Skipping record %d: %v", i, err)
			res.Skipped = append(res.Skipped, err.Error())
		case err != nil:
			return res, fmt.Errorf("importing record %d: %w", i, err)
		case created:
			res.Created++
		default:
			res.Updated++
		}
	}

	s.log.Infof("Imported %d songs (%d new, %d updated, %d skipped)",
		len(recs), res.Created, res.Updated, len(res.Skipped))
	return res, nil
}

func (s *songbookService) ImportFile(ctx context.Context, path string) (*ImportResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()
	return s.ImportSongs(ctx, f)
}

func (s *songbookService) GetSong(ctx context.Context, slug string) (*models.Song, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.storage.GetSongBySlug(slug)
}

// ListSongs returns the catalog narrowed by a named filter; see
// catalog.Filters. An empty name lists everything.
func (s *songbookService) ListSongs(ctx context.Context, filter string) ([]models.Song, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := catalog.ParseFilter(filter)
	if err != nil {
		return nil, err
	}

	speed, lang := f.Criteria()
	songs, err := s.storage.FilterSongs(lang, speed)
	if err != nil {
		return nil, fmt.Errorf("failed to list songs: %w", err)
	}
	if f == catalog.FilterAlphabetical {
		catalog.SortByTitle(songs)
	}
	return songs, nil
}

// Search matches query against titles and artists. limit <= 0 uses the
// configured default.
func (s *songbookService) Search(ctx context.Context, query string, limit int) ([]models.Song, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if strings.TrimSpace(query) == "" {
		return nil, nil
	}
	if limit <= 0 {
		limit = s.config.DefaultSearchLimit
	}

	songs, err := s.storage.ListSongs()
	if err != nil {
		return nil, fmt.Errorf("failed to search songs: %w", err)
	}
	return catalog.Search(songs, query, limit), nil
}

// ViewSong renders a song in key (the song's own key when empty) laid out
// in the given number of columns.
func (s *songbookService) ViewSong(ctx context.Context, slug, key string, columns int) (*SongView, error) {
	song, err := s.GetSong(ctx, slug)
	if err != nil {
		return nil, err
	}

	key = strings.TrimSpace(key)
	if key == "" {
		key = song.Key
	}
	sheet := chords.RenderSong(song.Content, song.Key, key, columns)

	heading := song.Title
	if song.Artist != "" {
		heading += " — " + song.Artist
	}

	return &SongView{
		Song:    *song,
		Heading: heading,
		Sheet:   sheet,
		Keys:    chords.KeyOptions(key),
	}, nil
}

func (s *songbookService) WritePDF(ctx context.Context, w io.Writer, slug, key string, columns int) error {
	view, err := s.ViewSong(ctx, slug, key, columns)
	if err != nil {
		return err
	}
	if err := export.WritePDF(w, view.Song, view.Sheet); err != nil {
		return fmt.Errorf("failed to export pdf: %w", err)
	}
	s.log.Debugf("Exported PDF for %s in %s", slug, view.Sheet.Key)
	return nil
}

func (s *songbookService) WriteMIDI(ctx context.Context, w io.Writer, slug, key string) error {
	song, err := s.GetSong(ctx, slug)
	if err != nil {
		return err
	}

	key = strings.TrimSpace(key)
	if key == "" {
		key = song.Key
	}
	progression := chords.NewTransposition(song.Key, key).Progression(song.Content)

	if err := export.WriteMIDI(w, song.Title, export.TempoForSpeed(song.Speed), progression); err != nil {
		return fmt.Errorf("failed to export midi: %w", err)
	}
	s.log.Debugf("Exported MIDI for %s in %s (%d chords)", slug, key, len(progression))
	return nil
}

func (s *songbookService) DeleteSong(ctx context.Context, slug string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := s.storage.DeleteSongBySlug(slug); err != nil {
		return err
	}
	s.log.Infof("Deleted song %s", slug)
	return nil
}

func (s *songbookService) CountSongs(ctx context.Context) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return s.storage.CountSongs()
}

// Close releases all resources held by the service.
func (s *songbookService) Close() error {
	return s.storage.Close()
}
