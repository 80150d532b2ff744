package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/himanishpuri/ChordsOfSongs/internal/catalog"
	"github.com/himanishpuri/ChordsOfSongs/pkg/chords"
	"github.com/himanishpuri/ChordsOfSongs/pkg/logger"
	"github.com/himanishpuri/ChordsOfSongs/pkg/songbook"
)

// maxSongBody limits the size of a POST /api/songs body
const maxSongBody = 1 << 20

// Server encapsulates the HTTP server and its dependencies
type Server struct {
	service   songbook.Service
	config    *ServerConfig
	log       songbook.Logger
	startedAt time.Time
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Port           int
	DBPath         string
	SeedFile       string
	AllowedOrigins []string
}

// NewServer creates a new server instance
func NewServer(service songbook.Service, config *ServerConfig) *Server {
	return &Server{
		service:   service,
		config:    config,
		log:       logger.GetLogger().WithPrefix("[http]"),
		startedAt: time.Now(),
	}
}

// respondJSON writes a JSON response
func (s *Server) respondJSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.log.Errorf("Failed to encode JSON response: %v", err)
	}
}

// respondError writes an error response
func (s *Server) respondError(w http.ResponseWriter, statusCode int, message string) {
	s.respondJSON(w, statusCode, ErrorResponse{
		Error:   http.StatusText(statusCode),
		Message: message,
		Code:    statusCode,
	})
}

// respondServiceError maps songbook errors to HTTP status codes
func (s *Server) respondServiceError(w http.ResponseWriter, err error, action string) {
	switch {
	case errors.Is(err, songbook.ErrSongNotFound):
		s.respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, songbook.ErrInvalidSong), errors.Is(err, catalog.ErrUnknownFilter):
		s.respondError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		s.log.Warnf("Timed out: %s", action)
		s.respondError(w, http.StatusGatewayTimeout, "Request timed out")
	default:
		s.log.Errorf("Failed to %s: %v", action, err)
		s.respondError(w, http.StatusInternalServerError, fmt.Sprintf("Failed to %s", action))
	}
}

// handleRoot handles GET /
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]any{
		"service": "ChordsOfSongs API",
		"version": "1.0.0",
		"endpoints": map[string]string{
			"health":     "GET /health",
			"metrics":    "GET /api/health/metrics",
			"songs":      "GET /api/songs?filter=",
			"addSong":    "POST /api/songs",
			"getSong":    "GET /api/songs/{slug}?key=&columns=",
			"songPDF":    "GET /api/songs/{slug}/pdf?key=&columns=",
			"songMIDI":   "GET /api/songs/{slug}/midi?key=",
			"deleteSong": "DELETE /api/songs/{slug}",
			"search":     "GET /api/search?q=&limit=",
			"keys":       "GET /api/keys?current=",
		},
	})
}

// handleHealth handles GET /health
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().Format(time.RFC3339),
	})
}

// handleMetrics handles GET /api/health/metrics
func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	count, err := s.service.CountSongs(r.Context())
	if err != nil {
		s.log.Errorf("Failed to get song count: %v", err)
		s.respondError(w, http.StatusInternalServerError, "Failed to retrieve metrics")
		return
	}

	s.respondJSON(w, http.StatusOK, MetricsResponse{
		Status:       "healthy",
		DatabasePath: s.config.DBPath,
		SongCount:    count,
		StartedAt:    s.startedAt,
		Uptime:       strings.TrimSuffix(humanize.Time(s.startedAt), " ago"),
	})
}

// handleListSongs handles GET /api/songs
func (s *Server) handleListSongs(w http.ResponseWriter, r *http.Request) {
	filter := r.URL.Query().Get("filter")
	songs, err := s.service.ListSongs(r.Context(), filter)
	if err != nil {
		s.respondServiceError(w, err, "list songs")
		return
	}

	dtos := toSongDTOs(songs)
	s.respondJSON(w, http.StatusOK, ListSongsResponse{
		Songs:  dtos,
		Count:  len(dtos),
		Filter: filter,
	})
}

// handleAddSong handles POST /api/songs (JSON body, upsert by slug)
func (s *Server) handleAddSong(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var req AddSongRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxSongBody)).Decode(&req); err != nil {
		s.log.Warnf("Failed to decode request: %v", err)
		s.respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := req.Validate(); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	song, created, err := s.service.AddSong(ctx, req.ToRecord())
	if err != nil {
		s.respondServiceError(w, err, "add song")
		return
	}

	status, message := http.StatusOK, "Song updated successfully"
	if created {
		status, message = http.StatusCreated, "Song added successfully"
	}
	s.respondJSON(w, status, AddSongResponse{
		Message: message,
		Created: created,
		Song:    toSongDTO(*song),
	})
}

// handleGetSong handles GET /api/songs/{slug}
func (s *Server) handleGetSong(w http.ResponseWriter, r *http.Request, slug string) {
	columns, err := parseColumns(r.URL.Query().Get("columns"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	view, err := s.service.ViewSong(r.Context(), slug, r.URL.Query().Get("key"), columns)
	if err != nil {
		s.respondServiceError(w, err, "render song")
		return
	}

	s.respondJSON(w, http.StatusOK, toSongViewResponse(view))
}

// handleSongPDF handles GET /api/songs/{slug}/pdf
func (s *Server) handleSongPDF(w http.ResponseWriter, r *http.Request, slug string) {
	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	columns, err := parseColumns(r.URL.Query().Get("columns"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	// buffer so a failed render can still produce a JSON error
	var buf bytes.Buffer
	if err := s.service.WritePDF(ctx, &buf, slug, r.URL.Query().Get("key"), columns); err != nil {
		s.respondServiceError(w, err, "export pdf")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("inline; filename=%q", slug+".pdf"))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		s.log.Errorf("Failed to write PDF response: %v", err)
	}
}

// handleSongMIDI handles GET /api/songs/{slug}/midi
func (s *Server) handleSongMIDI(w http.ResponseWriter, r *http.Request, slug string) {
	var buf bytes.Buffer
	if err := s.service.WriteMIDI(r.Context(), &buf, slug, r.URL.Query().Get("key")); err != nil {
		s.respondServiceError(w, err, "export midi")
		return
	}

	w.Header().Set("Content-Type", "audio/midi")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", slug+".mid"))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		s.log.Errorf("Failed to write MIDI response: %v", err)
	}
}

// handleDeleteSong handles DELETE /api/songs/{slug}
func (s *Server) handleDeleteSong(w http.ResponseWriter, r *http.Request, slug string) {
	if err := s.service.DeleteSong(r.Context(), slug); err != nil {
		s.respondServiceError(w, err, "delete song")
		return
	}

	s.respondJSON(w, http.StatusOK, DeleteSongResponse{
		Message: "Song deleted successfully",
		Slug:    slug,
	})
}

// handleSearch handles GET /api/search
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	query := r.URL.Query().Get("q")
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > MaxSearchLimit {
			s.respondError(w, http.StatusBadRequest, fmt.Sprintf("limit must be between 1 and %d", MaxSearchLimit))
			return
		}
		limit = n
	}

	songs, err := s.service.Search(r.Context(), query, limit)
	if err != nil {
		s.respondServiceError(w, err, "search songs")
		return
	}

	dtos := toSongDTOs(songs)
	s.respondJSON(w, http.StatusOK, SearchResponse{
		Query: query,
		Songs: dtos,
		Count: len(dtos),
	})
}

// handleKeys handles GET /api/keys
func (s *Server) handleKeys(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
		return
	}

	current := r.URL.Query().Get("current")
	s.respondJSON(w, http.StatusOK, KeysResponse{
		Current: current,
		Keys:    chords.KeyOptions(current),
	})
}

// handleSongs routes requests to /api/songs
func (s *Server) handleSongs(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.handleListSongs(w, r)
	case http.MethodPost:
		s.handleAddSong(w, r)
	default:
		s.respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// handleSong routes requests to /api/songs/{slug} and its exports
func (s *Server) handleSong(w http.ResponseWriter, r *http.Request) {
	rest := strings.Trim(r.URL.Path[len("/api/songs/"):], "/")
	if rest == "" {
		s.respondError(w, http.StatusBadRequest, "Song slug required")
		return
	}

	slug, export, _ := strings.Cut(rest, "/")
	switch {
	case export == "" && r.Method == http.MethodGet:
		s.handleGetSong(w, r, slug)
	case export == "" && r.Method == http.MethodDelete:
		s.handleDeleteSong(w, r, slug)
	case export == "pdf" && r.Method == http.MethodGet:
		s.handleSongPDF(w, r, slug)
	case export == "midi" && r.Method == http.MethodGet:
		s.handleSongMIDI(w, r, slug)
	case export != "" && export != "pdf" && export != "midi":
		s.respondError(w, http.StatusNotFound, fmt.Sprintf("Unknown song resource %q", export))
	default:
		s.respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}
}

// parseColumns reads the columns query parameter; empty means one column
func parseColumns(raw string) (int, error) {
	switch raw {
	case "", "1":
		return 1, nil
	case "2":
		return 2, nil
	default:
		return 0, fmt.Errorf("columns must be 1 or 2")
	}
}
