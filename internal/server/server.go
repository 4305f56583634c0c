// Package server exposes the ranking pipeline over HTTP
package server

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/uberswe/domainRadar/pkg/domain"
	"github.com/uberswe/domainRadar/pkg/export"
	"github.com/uberswe/domainRadar/pkg/radar"
)

// PageSize is the number of items returned by /api/domains when no limit is given
const PageSize = 200

// LoadFunc returns a fresh candidate list
type LoadFunc func(ctx context.Context, refresh bool) ([]string, error)

// Server holds the current candidate list and answers filter requests against it
type Server struct {
	load     LoadFunc
	defaults domain.FilterConfig

	refreshMu sync.Mutex

	mu         sync.RWMutex
	candidates []string
	loadedAt   time.Time
	loadErr    error
}

// New creates a server. Call Refresh to populate the list.
func New(load LoadFunc, defaults domain.FilterConfig) *Server {
	return &Server{load: load, defaults: defaults}
}

// Refresh replaces the candidate list. On failure the previous list is kept.
func (s *Server) Refresh(ctx context.Context, force bool) error {
	s.refreshMu.Lock()
	defer s.refreshMu.Unlock()

	candidates, err := s.load(ctx, force)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadErr = err
	if err != nil {
		log.Error().Err(err).Int("kept", len(s.candidates)).Msg("Failed to refresh domain list")
		return err
	}
	s.candidates = candidates
	s.loadedAt = time.Now()
	log.Info().Int("total", len(candidates)).Msg("Domain list loaded")
	return nil
}

func (s *Server) snapshot() ([]string, time.Time, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.candidates, s.loadedAt, s.loadErr
}

// Routes returns a chi.Router with all endpoints mounted.
func (s *Server) Routes() chi.Router {
	r := chi.NewRouter()
	r.Get("/healthz", s.handleHealthz)
	r.Route("/api", func(r chi.Router) {
		r.Get("/domains", s.handleDomains)
		r.Get("/domains.csv", s.handleDomainsCSV)
		r.Post("/refresh", s.handleRefresh)
	})
	return r
}

type domainsResponse struct {
	Total        int             `json:"total"`
	Count        int             `json:"count"`
	Offset       int             `json:"offset"`
	NextOffset   int             `json:"next_offset,omitempty"` // 0 on the last page
	LoadedAt     *time.Time      `json:"loaded_at,omitempty"`
	LoadError    string          `json:"load_error,omitempty"`
	PatternError string          `json:"pattern_error,omitempty"`
	Highlights   []string        `json:"highlights"`
	Items        []domain.Result `json:"items"`
}

func (s *Server) handleHealthz(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleDomains(w http.ResponseWriter, r *http.Request) {
	candidates, loadedAt, loadErr := s.snapshot()
	q := r.URL.Query()

	report := radar.Rank(candidates, ParseFilter(q, s.defaults))
	offset, limit := parsePage(q)
	items := report.Page(offset, limit)

	resp := domainsResponse{
		Total:      report.Total,
		Count:      len(report.Items),
		Offset:     offset,
		Highlights: report.Highlights(),
		Items:      items,
	}
	if next := offset + len(items); len(items) > 0 && next < len(report.Items) {
		resp.NextOffset = next
	}
	if !loadedAt.IsZero() {
		resp.LoadedAt = &loadedAt
	}
	if loadErr != nil {
		resp.LoadError = loadErr.Error()
	}
	if report.PatternErr != nil {
		resp.PatternError = report.PatternErr.Error()
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDomainsCSV(w http.ResponseWriter, r *http.Request) {
	candidates, _, _ := s.snapshot()
	report := radar.Rank(candidates, ParseFilter(r.URL.Query(), s.defaults))

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.DefaultFileName+`"`)
	if err := export.WriteCSV(w, report.Items); err != nil {
		log.Error().Err(err).Msg("Failed to write csv response")
	}
}

func (s *Server) handleRefresh(w http.ResponseWriter, r *http.Request) {
	if err := s.Refresh(r.Context(), true); err != nil {
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
		return
	}
	candidates, loadedAt, _ := s.snapshot()
	writeJSON(w, http.StatusOK, map[string]any{"total": len(candidates), "loaded_at": loadedAt})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}
