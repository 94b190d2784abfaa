// internal/httpserver/routes_rounds.go
//
// HTTP routes for hosted rounds.
//   - POST /round/new          → create a session, start the round
//   - GET  /round/{id}         → current snapshot
//   - POST /round/{id}/frame   → advance one frame with an input sample
//   - POST /round/{id}/restart → tear down and restart the same session
//
// The engine is single-owner: every handler locks the session before
// touching its round, and a finished round is persisted exactly once.

package httpserver

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/nagare-games/wordstrike/internal/game"
	"github.com/nagare-games/wordstrike/internal/store"
)

// Frame stepping limits. dt is client-reported elapsed time; clamping keeps a
// stalled or hostile client from teleporting the probe across the field.
const (
	defaultFrameDT = 1.0 / 60.0
	maxFrameDT     = 0.25
)

// mountRounds registers all /round routes.
func (s *Server) mountRounds(r chi.Router) {
	r.Route("/round", func(r chi.Router) {
		r.Post("/new", s.handleNewRound)
		r.Get("/{id}", s.handleRoundState)
		r.Post("/{id}/frame", s.handleFrame)
		r.Post("/{id}/restart", s.handleRestart)
		r.Get("/{id}/ws", s.handleRoundWS)
	})
}

// newRoundReq allows optional config overrides; zero fields keep defaults.
type newRoundReq struct {
	Config game.Config `json:"config"`
}
type newRoundRes struct {
	RoundID  string        `json:"roundId"`
	Snapshot game.Snapshot `json:"snapshot"`
}

// handleNewRound creates a session, starts its round, and returns the first
// snapshot.
func (s *Server) handleNewRound(w http.ResponseWriter, r *http.Request) {
	var req newRoundReq
	_ = json.NewDecoder(r.Body).Decode(&req)

	cfg := req.Config.Normalize()
	if err := cfg.Validate(); err != nil {
		http.Error(w, `{"error":"`+err.Error()+`"}`, http.StatusBadRequest)
		return
	}

	sess := &store.Session{
		ID:        store.NewID(),
		Round:     game.NewRound(cfg, s.dict, nil),
		StartedAt: time.Now(),
	}
	sess.OwnerID, sess.UserID = s.ownerOf(w, r)
	sess.Round.Start()

	if err := s.store.Save(r.Context(), sess); err != nil {
		log.Error().Err(err).Msg("save session")
		http.Error(w, `{"error":"save_failed"}`, http.StatusInternalServerError)
		return
	}
	_ = json.NewEncoder(w).Encode(newRoundRes{RoundID: sess.ID, Snapshot: sess.Round.Snapshot()})
}

// handleRoundState returns the current snapshot without advancing time.
func (s *Server) handleRoundState(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookupSession(w, r)
	if !ok {
		return
	}
	sess.Mu.Lock()
	snap := sess.Round.Snapshot()
	sess.Mu.Unlock()
	_ = json.NewEncoder(w).Encode(snap)
}

// frameReq carries one frame's elapsed time and input sample.
type frameReq struct {
	DT    float64    `json:"dt"`
	Input game.Input `json:"input"`
}

// handleFrame merges the input sample, advances the round by one frame, and
// returns the resulting snapshot. Finished rounds are persisted on the frame
// that ended them.
func (s *Server) handleFrame(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookupSession(w, r)
	if !ok {
		return
	}
	var req frameReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":"bad_json"}`, http.StatusBadRequest)
		return
	}
	dt := req.DT
	if dt <= 0 {
		dt = defaultFrameDT
	}
	if dt > maxFrameDT {
		dt = maxFrameDT
	}

	sess.Mu.Lock()
	sess.Pending.Up = sess.Pending.Up || req.Input.Up
	sess.Pending.Down = sess.Pending.Down || req.Input.Down
	sess.Pending.Accelerate = req.Input.Accelerate
	in := sess.TakeInput()
	sess.Round.Step(in, dt)
	snap := sess.Round.Snapshot()
	s.persistIfFinished(sess)
	sess.Mu.Unlock()

	_ = json.NewEncoder(w).Encode(snap)
}

// handleRestart restarts the session's round. Any deferred spawn from the
// prior round dies with it; the persisted history of finished rounds is
// unaffected.
func (s *Server) handleRestart(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookupSession(w, r)
	if !ok {
		return
	}
	sess.Mu.Lock()
	sess.Round.Restart()
	sess.Pending = game.Input{}
	sess.StartedAt = time.Now()
	sess.Recorded = false
	snap := sess.Round.Snapshot()
	sess.Mu.Unlock()
	_ = json.NewEncoder(w).Encode(snap)
}

// lookupSession resolves {id} to a live session or writes a 404.
func (s *Server) lookupSession(w http.ResponseWriter, r *http.Request) (*store.Session, bool) {
	id := chi.URLParam(r, "id")
	sess, err := s.store.Get(r.Context(), id)
	if err != nil {
		http.Error(w, `{"error":"not_found"}`, http.StatusNotFound)
		return nil, false
	}
	return sess, true
}

// ownerOf returns the stable owner identifier for result rows: the user ID
// when authenticated (second return non-empty), otherwise the anon cookie ID.
func (s *Server) ownerOf(w http.ResponseWriter, r *http.Request) (ownerID, userID string) {
	if me, _ := r.Context().Value(ctxUserKey{}).(*authUser); me != nil {
		return me.ID, me.ID
	}
	return s.ensureAnonID(w, r), ""
}

// persistIfFinished writes the round-history row, user stats, and daily
// result for a freshly ended round. Best effort: failures are logged, never
// surfaced to the player. Callers hold the session lock.
func (s *Server) persistIfFinished(sess *store.Session) {
	st := sess.Round.State()
	if !st.Ended() || sess.Recorded {
		return
	}
	sess.Recorded = true

	now := time.Now()
	cleared := st == game.Cleared
	score := sess.Round.Score()

	tx, err := s.db.Begin()
	if err != nil {
		log.Warn().Err(err).Str("roundId", sess.ID).Msg("begin round persist")
		return
	}
	defer func() { _ = tx.Rollback() }()

	userID, anonID := sess.UserID, sess.OwnerID
	if userID != "" {
		anonID = ""
	}
	if _, err := tx.Exec(`INSERT INTO rounds (id, user_id, anonymous_id, started_at, finished_at, outcome, score)
	                      VALUES (?,?,?,?,?,?,?)`,
		sess.ID, nullable(userID), nullable(anonID),
		sess.StartedAt.UTC().Format(time.RFC3339), now.UTC().Format(time.RFC3339),
		st.String(), score); err != nil {
		log.Warn().Err(err).Str("roundId", sess.ID).Msg("insert round row")
	}
	if userID != "" {
		if err := s.bumpStats(tx, userID, cleared, score); err != nil {
			log.Warn().Err(err).Str("user", userID).Msg("bump stats")
		}
	}
	if err := tx.Commit(); err != nil {
		log.Warn().Err(err).Str("roundId", sess.ID).Msg("commit round persist")
		return
	}

	if sess.Daily != "" {
		s.persistDailyResult(sess, cleared, score, int(now.Sub(sess.StartedAt).Milliseconds()))
	}
}

// nullable maps "" to NULL for optional owner columns.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
