// internal/game/registry.go
//
// Occupancy registry: tracks every stationary and moving token on the field,
// answers the collision queries the probe state machine runs each frame, and
// re-packs rows after a removal.
//
// Single-owner structure: mutated only by the one active probe's frame update
// and the round controller it reports to, so it carries no locking.

package game

import "sort"

// Registry tracks all live tokens, per kind.
type Registry struct {
	cfg     Config
	targets []*Target
	probes  []*Probe // moving and fixed
}

// NewRegistry creates an empty registry for the given field.
func NewRegistry(cfg Config) *Registry {
	return &Registry{cfg: cfg}
}

// RegisterTarget adds a target. No-op if already present.
func (r *Registry) RegisterTarget(t *Target) {
	for _, have := range r.targets {
		if have == t {
			return
		}
	}
	r.targets = append(r.targets, t)
}

// RegisterProbe adds a probe. No-op if already present.
func (r *Registry) RegisterProbe(p *Probe) {
	for _, have := range r.probes {
		if have == p {
			return
		}
	}
	r.probes = append(r.probes, p)
}

// UnregisterTarget removes a target; idempotent no-op if absent.
func (r *Registry) UnregisterTarget(t *Target) {
	for i, have := range r.targets {
		if have == t {
			r.targets = append(r.targets[:i], r.targets[i+1:]...)
			return
		}
	}
}

// UnregisterProbe removes a probe; idempotent no-op if absent.
func (r *Registry) UnregisterProbe(p *Probe) {
	for i, have := range r.probes {
		if have == p {
			r.probes = append(r.probes[:i], r.probes[i+1:]...)
			return
		}
	}
}

// withinSpan is the shared contact rule: a probe whose leading edge is at x
// touches a token spanning [left, right] when left ≤ x ≤ right+cell. The
// one-cell lookahead makes contact land one frame before visual overlap.
func (r *Registry) withinSpan(t Token, x float64) bool {
	return t.LeftEdge() <= x && x <= RightEdge(t)+r.cfg.CellSize
}

// CollidingTarget returns the target in row the probe's leading edge at x is
// touching, or nil. With non-overlapping spans at most one can match; the
// first found wins.
func (r *Registry) CollidingTarget(row int, x float64) *Target {
	for _, t := range r.targets {
		if t.Row() == row && r.withinSpan(t, x) {
			return t
		}
	}
	return nil
}

// CollidingFixedProbe returns the fixed probe in row touched by a leading
// edge at x, excluding the querying probe itself, or nil.
func (r *Registry) CollidingFixedProbe(row int, x float64, self *Probe) *Probe {
	for _, p := range r.probes {
		if p == self || p.State() != ProbeFixed || p.Row() != row {
			continue
		}
		if r.withinSpan(p, x) {
			return p
		}
	}
	return nil
}

// NextTargetSlot returns the left edge for the next target spawned into row:
// packed immediately after the targets already there, starting at the field's
// left boundary.
func (r *Registry) NextTargetSlot(row int) float64 {
	x := r.cfg.LeftBoundary()
	for _, t := range r.targets {
		if t.Row() == row {
			x += t.Width()
		}
	}
	return x
}

// ShiftLeft re-packs row with zero gaps from the left boundary: targets first
// in their current left-to-right order, then fixed probes immediately after
// the last target, preserving relative order.
func (r *Registry) ShiftLeft(row int) {
	var targets []Token
	var fixed []Token
	for _, t := range r.targets {
		if t.Row() == row {
			targets = append(targets, t)
		}
	}
	for _, p := range r.probes {
		if p.Row() == row && p.State() == ProbeFixed {
			fixed = append(fixed, p)
		}
	}
	byLeft := func(list []Token) {
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].LeftEdge() < list[j].LeftEdge()
		})
	}
	byLeft(targets)
	byLeft(fixed)

	x := r.cfg.LeftBoundary()
	for _, t := range targets {
		t.SetLeftEdge(x)
		x += t.Width()
	}
	for _, p := range fixed {
		p.SetLeftEdge(x)
		x += p.Width()
	}
}

// IsOverflowed reports whether any fixed probe's right edge has reached or
// passed the field's right boundary. This is the loss condition.
func (r *Registry) IsOverflowed() bool {
	for _, p := range r.probes {
		if p.State() == ProbeFixed && RightEdge(p) >= r.cfg.RightBoundary() {
			return true
		}
	}
	return false
}

// Targets returns all registered targets. Callers must not mutate the slice.
func (r *Registry) Targets() []*Target { return r.targets }

// Probes returns all registered probes, moving and fixed.
// Callers must not mutate the slice.
func (r *Registry) Probes() []*Probe { return r.probes }

// Clear drops every registered token and resets internal storage.
func (r *Registry) Clear() {
	r.targets = nil
	r.probes = nil
}
