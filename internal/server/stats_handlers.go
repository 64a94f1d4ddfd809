package server

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// writeJSON encodes v as the response body. Encoding failures after the
// header is out can only be logged.
func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode stats response", "error", err)
	}
}

// requireGet enforces GET on a read endpoint.
func requireGet(w http.ResponseWriter, r *http.Request) bool {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return false
	}
	return true
}

// recentPathsHandler returns the recent canonical request URLs.
func (s *Server) recentPathsHandler(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	s.writeJSON(w, s.store.RecentPaths())
}

// recentSizesHandler returns the recent requested sizes.
func (s *Server) recentSizesHandler(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	s.writeJSON(w, s.store.RecentSizes())
}

// recentTextsHandler returns the recent custom texts.
func (s *Server) recentTextsHandler(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	s.writeJSON(w, s.store.RecentTexts())
}

// topSizesHandler returns the most requested sizes by descending count.
func (s *Server) topSizesHandler(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	s.writeJSON(w, s.store.TopSizes(s.topCount))
}

// topReferrersHandler returns the most frequent referrers by descending count.
func (s *Server) topReferrersHandler(w http.ResponseWriter, r *http.Request) {
	if !requireGet(w, r) {
		return
	}
	s.writeJSON(w, s.store.TopReferrers(s.topCount))
}

// resetStatsHandler clears all stats collections. Cannot fail under normal
// operation; always answers 200 with an empty body.
func (s *Server) resetStatsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	s.store.Reset()
	statsResetsTotal.Inc()
	w.WriteHeader(http.StatusOK)
}
