// internal/httpserver/routes_results.go
//
// HTTP routes for the results ledger.
//   - GET /results/leaderboard → top winning scores for today (or ?date=YYYY-MM-DD)
//
// Rounds are written by handleGuess when they produce a winner.

package httpserver

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/fortune/internal/daily"
)

// mountResults registers all /results routes.
func (s *Server) mountResults(r chi.Router) {
	r.Route("/results", func(r chi.Router) {
		r.Get("/leaderboard", s.handleLeaderboard)
	})
}

// handleLeaderboard returns up to ?limit= (default 20, max 100) rows.
func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	if s.results == nil {
		http.Error(w, `{"error":"results_disabled"}`, http.StatusServiceUnavailable)
		return
	}
	date := strings.TrimSpace(r.URL.Query().Get("date"))
	if date == "" {
		date = daily.DateKey(s.now())
	}
	limit := queryInt(r, "limit", 20)
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	rows, err := s.results.Leaderboard(r.Context(), date, limit)
	if err != nil {
		log.Error().Err(err).Str("date", date).Msg("leaderboard")
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]any{"date": date, "rows": rows})
}
