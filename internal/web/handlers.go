package web

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"protocol-zero/internal/ai"
)

func respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("encoding response")
	}
}

func respondStorageError(w http.ResponseWriter, err error) {
	log.Error().Err(err).Msg("storage failure")
	respondJSON(w, http.StatusInternalServerError, map[string]string{"error": "storage unavailable"})
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "Protocol Zero API is Online"})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	count, err := s.store.CountEvents(r.Context())
	if err != nil {
		respondStorageError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int{"total_punishments_served": count})
}

type historyItem struct {
	Time    string `json:"time"`
	User    string `json:"user"`
	Verdict string `json:"verdict"`
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	events, err := s.store.RecentEvents(r.Context(), 5)
	if err != nil {
		respondStorageError(w, err)
		return
	}

	items := make([]historyItem, 0, len(events))
	for _, e := range events {
		items = append(items, historyItem{Time: e.OccurredAt, User: e.DisplayName, Verdict: e.OutcomeText})
	}
	respondJSON(w, http.StatusOK, map[string][]historyItem{"recent_punishments": items})
}

type leaderboardItem struct {
	Username string `json:"username"`
	Level    int    `json:"level"`
	XP       int    `json:"xp"`
}

func (s *Server) handleLeaderboard(w http.ResponseWriter, r *http.Request) {
	board, err := s.store.Leaderboard(r.Context(), 5)
	if err != nil {
		respondStorageError(w, err)
		return
	}

	items := make([]leaderboardItem, 0, len(board))
	for _, e := range board {
		items = append(items, leaderboardItem{Username: e.DisplayName, Level: e.Level, XP: e.XP})
	}
	respondJSON(w, http.StatusOK, map[string][]leaderboardItem{"leaderboard": items})
}

type summonRequest struct {
	SubjectID string `json:"subject_id"`
	Name      string `json:"name"`
}

// handleSummon runs one full consultation: verdict selection, event append,
// pity-XP grant, roast. Anonymous visitors get a throwaway subject id.
func (s *Server) handleSummon(w http.ResponseWriter, r *http.Request) {
	var req summonRequest
	if r.Body != nil {
		// An empty or malformed body just means an anonymous summon.
		_ = json.NewDecoder(r.Body).Decode(&req)
	}

	name := strings.TrimSpace(req.Name)
	subjectID := req.SubjectID
	if subjectID == "" {
		if name != "" {
			subjectID = "web:" + strings.ToLower(name)
		} else {
			subjectID = "web:" + uuid.NewString()
		}
	}
	if name == "" {
		name = "Anonymous"
	}

	verdict := s.oracle.Consult()
	if _, err := s.store.RegisterFailure(r.Context(), subjectID, name, verdict.String(), s.pityXP); err != nil {
		respondStorageError(w, err)
		return
	}

	roast := ai.Roast(r.Context(), s.ai, name, verdict.String())
	respondJSON(w, http.StatusOK, map[string]string{
		"verdict": verdict.String(),
		"roast":   roast,
	})
}
