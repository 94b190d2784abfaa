// internal/game/probe.go
//
// Per-frame state machine for the moving probe.
// Each tick while Moving: sample input, advance leftward scaled by elapsed
// time, then resolve collisions in fixed priority order — target contact,
// fixed-probe contact, left boundary — first match wins. Target contacts are
// the only source of score and removal, so they are checked before treating
// a tie as an obstacle hit; the boundary is the fallback that guarantees the
// probe always eventually stops.

package game

// Input is the player signal sample for one frame. Up and Down are
// edge-triggered row changes; Accelerate is level-triggered.
type Input struct {
	Up         bool `json:"up"`
	Down       bool `json:"down"`
	Accelerate bool `json:"accelerate"`
}

// ContactKind classifies what the probe ran into this frame, if anything.
type ContactKind int

const (
	ContactNone ContactKind = iota
	ContactTarget
	ContactObstacle
	ContactBoundary
)

// Contact reports the result of one frame's collision resolution.
// Target is set only for ContactTarget.
type Contact struct {
	Kind   ContactKind
	Target *Target
}

// Tick advances the probe by one frame. The probe snaps itself against
// whatever it hit; the round controller decides the consequences. No-op
// unless the probe is Moving.
func (p *Probe) Tick(dt float64, in Input, reg *Registry, cfg Config) Contact {
	if p.state != ProbeMoving {
		return Contact{}
	}

	// Row changes take effect immediately; no diagonal or partial-row state.
	if in.Up {
		p.row = cfg.ClampRow(p.row - 1)
	}
	if in.Down {
		p.row = cfg.ClampRow(p.row + 1)
	}
	p.accelerating = in.Accelerate

	speed := cfg.MoveSpeed
	if p.accelerating {
		speed = cfg.AcceleratedSpeed
	}

	// Advance in sub-steps of at most one cell. Every token's contact window
	// spans at least two cells (one-rune width plus the lookahead margin), so
	// a cell-sized step cannot cross a window without landing inside it.
	for remaining := speed * dt; remaining > 0; {
		step := remaining
		if step > cfg.CellSize {
			step = cfg.CellSize
		}
		remaining -= step
		p.pos -= step

		if t := reg.CollidingTarget(p.row, p.LeftEdge()); t != nil {
			p.SetLeftEdge(RightEdge(t))
			return Contact{Kind: ContactTarget, Target: t}
		}
		if obst := reg.CollidingFixedProbe(p.row, p.LeftEdge(), p); obst != nil {
			p.SetLeftEdge(RightEdge(obst))
			return Contact{Kind: ContactObstacle}
		}
		if p.LeftEdge() <= cfg.LeftBoundary() {
			p.SetLeftEdge(cfg.LeftBoundary())
			return Contact{Kind: ContactBoundary}
		}
	}
	return Contact{}
}

// fix transitions the probe to its terminal obstacle state.
// No transition leaves Fixed.
func (p *Probe) fix() {
	if p.state == ProbeMoving {
		p.state = ProbeFixed
		p.accelerating = false
	}
}

// remove transitions the probe to Removed after a successful match.
func (p *Probe) remove() {
	if p.state == ProbeMoving {
		p.state = ProbeRemoved
	}
}
