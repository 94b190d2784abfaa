// internal/game/snapshot.go
//
// Wire-friendly view of a round, consumed by the HTTP handlers and the
// websocket broadcaster. Per-frame movement reaches clients through these
// snapshots rather than through individual move events.

package game

// TokenView is one token's renderable state.
type TokenView struct {
	Word     string  `json:"word"`
	Row      int     `json:"row"`
	LeftEdge float64 `json:"leftEdge"`
	Width    float64 `json:"width"`
	Fixed    bool    `json:"fixed,omitempty"` // probes only
}

// Snapshot is the full observable round state after a frame.
type Snapshot struct {
	State      string      `json:"state"`
	Score      int         `json:"score"`
	Generation uint64      `json:"generation"`
	Remaining  int         `json:"remaining"`
	Config     Config      `json:"config"`
	Targets    []TokenView `json:"targets"`
	Probes     []TokenView `json:"probes"`
}

// Snapshot captures the current round state.
func (r *Round) Snapshot() Snapshot {
	s := Snapshot{
		State:      r.state.String(),
		Score:      r.score,
		Generation: r.generation,
		Remaining:  len(r.queue),
		Config:     r.cfg,
		Targets:    []TokenView{},
		Probes:     []TokenView{},
	}
	for _, t := range r.reg.Targets() {
		s.Targets = append(s.Targets, TokenView{
			Word:     t.Word(),
			Row:      t.Row(),
			LeftEdge: t.LeftEdge(),
			Width:    t.Width(),
		})
	}
	for _, p := range r.reg.Probes() {
		s.Probes = append(s.Probes, TokenView{
			Word:     p.Word(),
			Row:      p.Row(),
			LeftEdge: p.LeftEdge(),
			Width:    p.Width(),
			Fixed:    p.State() == ProbeFixed,
		})
	}
	return s
}
