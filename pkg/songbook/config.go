package songbook

import "github.com/himanishpuri/ChordsOfSongs/internal/catalog"

type Config struct {
	DBPath             string
	DefaultSearchLimit int
	Logger             Logger
	Storage            Storage
}

type Option func(*Config)

func WithDBPath(path string) Option {
	return func(c *Config) {
		c.DBPath = path
	}
}

// WithDefaultSearchLimit sets the result cap used when Search is called
// with limit <= 0.
func WithDefaultSearchLimit(limit int) Option {
	return func(c *Config) {
		c.DefaultSearchLimit = limit
	}
}

func WithLogger(log Logger) Option {
	return func(c *Config) {
		c.Logger = log
	}
}

func WithStorage(storage Storage) Option {
	return func(c *Config) {
		c.Storage = storage
	}
}

func defaultConfig() *Config {
	return &Config{
		DBPath:             "chordsofsongs.sqlite3",
		DefaultSearchLimit: catalog.HeaderSearchLimit,
		Logger:             nil,
	}
}
