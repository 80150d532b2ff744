package main

import (
	"fmt"
	"os"

	"github.com/himanishpuri/ChordsOfSongs/pkg/logger"
	"github.com/himanishpuri/ChordsOfSongs/pkg/songbook"
	"github.com/spf13/cobra"
)

// Global flags
var (
	dbPath   string
	logLevel string
)

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// createService creates a new songbook service with configured options
func createService() (songbook.Service, error) {
	return songbook.NewService(
		songbook.WithDBPath(dbPath),
		songbook.WithLogger(logger.GetLogger().WithPrefix("[songbook]")),
	)
}

// withService opens the catalog for the duration of fn
func withService(fn func(svc songbook.Service) error) error {
	svc, err := createService()
	if err != nil {
		return fmt.Errorf("failed to create service: %w", err)
	}
	defer svc.Close()
	return fn(svc)
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "chords",
		Short:         "chords, a songbook of lyrics with transposable chords",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			lvl, ok := logger.ParseLevel(logLevel)
			if !ok {
				return fmt.Errorf("unknown log level %q", logLevel)
			}
			logger.SetLevel(lvl)
			return nil
		},
	}

	root.PersistentFlags().StringVar(&dbPath, "db",
		getEnvOrDefault("CHORDS_DB_PATH", "chordsofsongs.sqlite3"),
		"path to the SQLite database file")
	root.PersistentFlags().StringVar(&logLevel, "log-level",
		getEnvOrDefault("LOG_LEVEL", "warn"),
		"log level: debug, info, warn, error")

	root.AddCommand(
		newImportCmd(),
		newListCmd(),
		newSearchCmd(),
		newShowCmd(),
		newPDFCmd(),
		newMIDICmd(),
		newKeysCmd(),
		newDeleteCmd(),
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
