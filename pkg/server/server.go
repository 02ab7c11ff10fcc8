package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/influence-iq/influenceiq/internal/store"
	"github.com/influence-iq/influenceiq/pkg/analyze"
	"github.com/influence-iq/influenceiq/pkg/score"
)

// Server provides the HTTP API.
type Server struct {
	store    store.Store
	analyzer *analyze.Analyzer
	port     int
}

// New creates a new HTTP server.
func New(s store.Store, analyzer *analyze.Analyzer, port int) *Server {
	if port == 0 {
		port = 8080
	}
	return &Server{
		store:    s,
		analyzer: analyzer,
		port:     port,
	}
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	mux := http.NewServeMux()
	mux.HandleFunc("/health", s.handleHealth)
	mux.HandleFunc("/api/v1/analyze", s.handleAnalyze)
	mux.HandleFunc("/api/v1/analyses", s.handleAnalyses)
	mux.HandleFunc("/api/v1/watchlist", s.handleWatchlist)

	addr := fmt.Sprintf(":%d", s.port)
	fmt.Printf("influenceiq server listening on %s\n", addr)
	return http.ListenAndServe(addr, mux)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type analyzeResponse struct {
	Person          string       `json:"person"`
	Overall         int          `json:"overall"`
	Grade           string       `json:"grade"`
	Report          score.Report `json:"report"`
	NewsSentiment   float64      `json:"news_sentiment"`
	NewsCredibility float64      `json:"news_credibility"`
	NewsLabel       string       `json:"news_label"`
	NewsNature      string       `json:"news_nature"`
	PortraitURL     string       `json:"portrait_url,omitempty"`
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	name := strings.TrimSpace(r.URL.Query().Get("name"))
	if name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}

	result, err := s.analyzer.Analyze(r.Context(), name)
	if err != nil {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": err.Error()})
		return
	}

	if err := s.store.SaveAnalysis(r.Context(), result.Record(time.Now())); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, analyzeResponse{
		Person:          result.Person,
		Overall:         result.Breakdown.Overall,
		Grade:           result.Breakdown.Grade,
		Report:          result.Breakdown.Report(),
		NewsSentiment:   result.NewsSentiment,
		NewsCredibility: result.NewsCredibility,
		NewsLabel:       result.NewsBand.Credibility,
		NewsNature:      result.NewsBand.Nature,
		PortraitURL:     result.PortraitURL,
	})
}

func (s *Server) handleAnalyses(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
		return
	}

	opts := store.ListOpts{Limit: 50}
	opts.Person = r.URL.Query().Get("person")
	if limit := r.URL.Query().Get("limit"); limit != "" {
		if n, err := strconv.Atoi(limit); err == nil {
			opts.Limit = n
		}
	}

	analyses, err := s.store.ListAnalyses(r.Context(), opts)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"data":  analyses,
		"count": len(analyses),
	})
}

func (s *Server) handleWatchlist(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		watches, err := s.store.ListWatches(r.Context())
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"data":  watches,
			"count": len(watches),
		})

	case http.MethodPost, http.MethodDelete:
		name := strings.TrimSpace(r.URL.Query().Get("name"))
		if name == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
			return
		}

		var err error
		if r.Method == http.MethodPost {
			err = s.store.AddWatch(r.Context(), name)
		} else {
			err = s.store.RemoveWatch(r.Context(), name)
		}
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})

	default:
		writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
