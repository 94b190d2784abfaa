// internal/httpserver/ws.go
//
// Realtime transport for a round: the server owns the frame loop. A read
// pump queues input commands as they arrive; a fixed-rate ticker samples the
// queued input once per frame, steps the engine by the real elapsed time,
// and pushes a state snapshot. Exactly one goroutine (the ticker loop)
// drives the engine, so the single-owner contract holds.

package httpserver

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/nagare-games/wordstrike/internal/game"
	"github.com/nagare-games/wordstrike/internal/store"
)

const (
	writeWait       = 10 * time.Second
	defaultTickRate = 30 // frames per second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		return origin == getEnv("CLIENT_ORIGIN", "http://localhost:5173")
	},
}

// wsCommand is a client→server message.
type wsCommand struct {
	Type       string `json:"type"` // "input" | "restart"
	Up         bool   `json:"up"`
	Down       bool   `json:"down"`
	Accelerate bool   `json:"accelerate"`
}

// wsState is a server→client frame update.
type wsState struct {
	Type       string        `json:"type"` // "state"
	Snapshot   game.Snapshot `json:"snapshot"`
	ServerTime int64         `json:"serverTime"`
}

// handleRoundWS upgrades the connection and runs the session's frame loop
// until the client disconnects.
func (s *Server) handleRoundWS(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookupSession(w, r)
	if !ok {
		return
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Str("roundId", sess.ID).Msg("ws upgrade")
		return
	}
	defer conn.Close()

	done := make(chan struct{})
	go s.readPump(conn, sess, done)
	s.tickLoop(conn, sess, done)
}

// readPump decodes client commands and merges them into the session's
// pending input. Row-change edges accumulate until the next frame samples
// them; accelerate tracks the most recent level.
func (s *Server) readPump(conn *websocket.Conn, sess *store.Session, done chan<- struct{}) {
	defer close(done)
	for {
		var cmd wsCommand
		if err := conn.ReadJSON(&cmd); err != nil {
			return
		}
		switch cmd.Type {
		case "input":
			sess.Mu.Lock()
			sess.Pending.Up = sess.Pending.Up || cmd.Up
			sess.Pending.Down = sess.Pending.Down || cmd.Down
			sess.Pending.Accelerate = cmd.Accelerate
			sess.Mu.Unlock()
		case "restart":
			sess.Mu.Lock()
			sess.Round.Restart()
			sess.Pending = game.Input{}
			sess.StartedAt = time.Now()
			sess.Recorded = false
			sess.Mu.Unlock()
		default:
			// Unknown commands are ignored; old clients should not kill the loop.
		}
	}
}

// tickLoop drives the engine at a fixed rate and broadcasts snapshots.
// Elapsed time is measured per tick, clamped like the HTTP frame endpoint.
func (s *Server) tickLoop(conn *websocket.Conn, sess *store.Session, done <-chan struct{}) {
	rate := envInt("WS_TICK_RATE", defaultTickRate)
	if rate <= 0 {
		rate = defaultTickRate
	}
	ticker := time.NewTicker(time.Second / time.Duration(rate))
	defer ticker.Stop()

	last := time.Now()
	for {
		select {
		case <-done:
			return
		case now := <-ticker.C:
			dt := now.Sub(last).Seconds()
			last = now
			if dt <= 0 {
				continue
			}
			if dt > maxFrameDT {
				dt = maxFrameDT
			}

			sess.Mu.Lock()
			in := sess.TakeInput()
			sess.Round.Step(in, dt)
			snap := sess.Round.Snapshot()
			s.persistIfFinished(sess)
			sess.Mu.Unlock()

			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteJSON(wsState{
				Type:       "state",
				Snapshot:   snap,
				ServerTime: now.UnixMilli(),
			}); err != nil {
				return
			}
		}
	}
}
