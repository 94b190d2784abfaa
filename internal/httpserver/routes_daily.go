// internal/httpserver/routes_daily.go
//
// HTTP routes for the "Daily Challenge" mode.
//   - POST /daily/new         → start today's daily round (one attempt per day)
//   - POST /daily/result      → finalize a finished daily round
//   - GET  /daily/leaderboard → top scores for today (or a given date)
//
// Every player gets the same deterministic pair set for a date. The round is
// then played through the regular /round endpoints; its result is persisted
// when the round ends.

package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/nagare-games/wordstrike/internal/daily"
	"github.com/nagare-games/wordstrike/internal/game"
	"github.com/nagare-games/wordstrike/internal/store"
)

// mountDaily registers all /daily routes.
func (s *Server) mountDaily(r chi.Router) {
	r.Route("/daily", func(r chi.Router) {
		r.Post("/new", s.handleDailyNew)
		r.Post("/result", s.handleDailyResult)
		r.Get("/leaderboard", s.handleDailyLeaderboard)
	})
}

func (s *Server) dailySalt() string { return getEnv("DAILY_SALT", "local_dev_salt") }

// dailyNewRes is returned by /daily/new.
type dailyNewRes struct {
	RoundID  string        `json:"roundId,omitempty"`
	Date     string        `json:"date"`
	Played   bool          `json:"played"`
	Snapshot game.Snapshot `json:"snapshot,omitempty"`
}

// handleDailyNew creates today's daily session for the caller, or reports
// Played=true if a result is already persisted for this date.
func (s *Server) handleDailyNew(w http.ResponseWriter, r *http.Request) {
	ownerID, userID := s.ownerOf(w, r)
	now := time.Now()
	date := daily.DateKey(now)

	dstore := daily.NewStore(s.db)
	if played, err := dstore.AlreadyPlayed(r.Context(), ownerID, date); err == nil && played {
		_ = json.NewEncoder(w).Encode(dailyNewRes{Date: date, Played: true})
		return
	}

	cfg := game.DefaultConfig()
	n := envInt("DAILY_PAIRS", cfg.InitialBlocks)
	deck := daily.Deck{Base: s.dict, Set: daily.Pairs(s.dict, now, s.dailySalt(), n)}

	sess := &store.Session{
		ID:        store.NewID(),
		OwnerID:   ownerID,
		UserID:    userID,
		Daily:     date,
		Round:     game.NewRound(cfg, deck, nil),
		StartedAt: now,
	}
	sess.Round.Start()

	if err := s.store.Save(r.Context(), sess); err != nil {
		log.Error().Err(err).Msg("save daily session")
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(dailyNewRes{
		RoundID:  sess.ID,
		Date:     date,
		Snapshot: sess.Round.Snapshot(),
	})
}

type dailyResultReq struct {
	RoundID string `json:"roundId"`
}
type dailyResultRes struct {
	Date    string `json:"date"`
	Score   int    `json:"score"`
	Cleared bool   `json:"cleared"`
}

// handleDailyResult finalizes a caller's finished daily round. Persisting is
// idempotent: frame and websocket drivers already record on round end, and
// duplicate (owner, date) rows are ignored, so calling this after either path
// only echoes what was stored.
func (s *Server) handleDailyResult(w http.ResponseWriter, r *http.Request) {
	var req dailyResultReq
	_ = json.NewDecoder(r.Body).Decode(&req)

	sess, err := s.store.Get(r.Context(), req.RoundID)
	if err != nil {
		http.Error(w, `{"error":"round_not_found"}`, http.StatusNotFound)
		return
	}
	ownerID, _ := s.ownerOf(w, r)

	sess.Mu.Lock()
	defer sess.Mu.Unlock()
	if sess.OwnerID != ownerID || sess.Daily == "" {
		http.Error(w, `{"error":"round_not_found"}`, http.StatusNotFound)
		return
	}
	if !sess.Round.State().Ended() {
		http.Error(w, `{"error":"round_not_finished"}`, http.StatusConflict)
		return
	}
	s.persistIfFinished(sess)

	_ = json.NewEncoder(w).Encode(dailyResultRes{
		Date:    sess.Daily,
		Score:   sess.Round.Score(),
		Cleared: sess.Round.State() == game.Cleared,
	})
}

// handleDailyLeaderboard returns the top results for ?date= (default today).
func (s *Server) handleDailyLeaderboard(w http.ResponseWriter, r *http.Request) {
	date := strings.TrimSpace(r.URL.Query().Get("date"))
	if date == "" {
		date = daily.DateKey(time.Now())
	}
	rows, err := daily.NewStore(s.db).Leaderboard(r.Context(), date, 20)
	if err != nil {
		log.Warn().Err(err).Str("date", date).Msg("daily leaderboard")
		http.Error(w, `{"error":"db_error"}`, http.StatusInternalServerError)
		return
	}
	if rows == nil {
		rows = []daily.LBRow{}
	}
	_ = json.NewEncoder(w).Encode(map[string]any{"date": date, "rows": rows})
}

// persistDailyResult records a finished daily round; duplicates for the same
// (owner, date) are ignored by the store.
func (s *Server) persistDailyResult(sess *store.Session, cleared bool, score, elapsedMs int) {
	err := daily.NewStore(s.db).InsertResult(context.Background(), daily.Result{
		UserID:    sess.OwnerID,
		Date:      sess.Daily,
		Score:     score,
		Cleared:   cleared,
		ElapsedMs: elapsedMs,
	})
	if err != nil {
		log.Warn().Err(err).Str("roundId", sess.ID).Msg("insert daily result")
	}
}
