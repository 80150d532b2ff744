//go:build !js && !wasm
// +build !js,!wasm

package main

import (
	"context"
	"flag"
	"log"
	"os"
	"strings"

	"github.com/himanishpuri/ChordsOfSongs/pkg/logger"
	"github.com/himanishpuri/ChordsOfSongs/pkg/songbook"
)

var (
	port           int
	dbPath         string
	seedFile       string
	allowedOrigins string
)

func init() {
	flag.IntVar(&port, "port", 8080, "HTTP server port")
	flag.StringVar(&dbPath, "db", getEnvOrDefault("CHORDS_DB_PATH", "chordsofsongs.sqlite3"), "Path to SQLite database")
	flag.StringVar(&seedFile, "seed", getEnvOrDefault("CHORDS_SEED_FILE", ""), "Optional songs.json imported at start-up")
	flag.StringVar(&allowedOrigins, "origins", "*", "Comma-separated list of allowed CORS origins (use * for all)")
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseOrigins(raw string) []string {
	if raw == "*" {
		return []string{"*"}
	}
	var origins []string
	for _, o := range strings.Split(raw, ",") {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

func main() {
	flag.Parse()

	service, err := songbook.NewService(
		songbook.WithDBPath(dbPath),
		songbook.WithLogger(logger.GetLogger().WithPrefix("[songbook]")),
	)
	if err != nil {
		log.Fatalf("Failed to create service: %v", err)
	}
	defer service.Close()

	if seedFile != "" {
		res, err := service.ImportFile(context.Background(), seedFile)
		if err != nil {
			log.Fatalf("Failed to seed catalog from %s: %v", seedFile, err)
		}
		logger.Infof("Seeded catalog from %s: %d new, %d updated", seedFile, res.Created, res.Updated)
	}

	config := &ServerConfig{
		Port:           port,
		DBPath:         dbPath,
		SeedFile:       seedFile,
		AllowedOrigins: parseOrigins(allowedOrigins),
	}

	server := NewServer(service, config)
	if err := server.Start(); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
