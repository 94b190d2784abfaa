// internal/game/round.go
//
// Round controller: owns the score, the round lifecycle
// (NotStarted → Playing → Ended(Cleared|Lost)), the spawn schedule — the
// initial target layout, then a shuffled queue of probe pairs consumed one
// per spawn — and the end conditions (queue exhausted vs. overflow).
//
// Step drives one frame. Every transition, including resolver side effects
// (score, removal, compaction, next-probe spawn), completes synchronously
// inside the frame that triggered it. The controller is single-owner and
// lock-free; callers serialize access.

package game

import (
	"math/rand"
	"time"

	"github.com/nagare-games/wordstrike/internal/words"
)

// State is the round lifecycle state.
type State int

const (
	NotStarted State = iota
	Playing
	Cleared
	Lost
)

func (s State) String() string {
	switch s {
	case NotStarted:
		return "not_started"
	case Playing:
		return "playing"
	case Cleared:
		return "cleared"
	case Lost:
		return "lost"
	default:
		return "unknown"
	}
}

// Ended reports whether the round reached a terminal state.
func (s State) Ended() bool { return s == Cleared || s == Lost }

// Round is one game round: registry, resolver, spawn queue, and score.
type Round struct {
	cfg      Config
	dict     Dictionary
	reg      *Registry
	resolver *Resolver
	events   Events
	rng      *rand.Rand

	state State
	score int
	queue []words.Pair
	probe *Probe // the live moving probe, nil between spawns

	// Deferred first-probe spawn, counted down in game time within Step.
	// generation is bumped on every start/end so anything scheduled against
	// a prior round is provably inert.
	spawnPending bool
	spawnDelay   float64
	generation   uint64
}

// NewRound builds a round over cfg and dict, reporting to ev.
// dict and ev may be nil: a nil dictionary degrades every encounter to a
// mismatch, a nil sink becomes a no-op.
func NewRound(cfg Config, dict Dictionary, ev Events) *Round {
	cfg = cfg.Normalize()
	if ev == nil {
		ev = nopEvents{}
	}
	return &Round{
		cfg:      cfg,
		dict:     dict,
		reg:      NewRegistry(cfg),
		resolver: NewResolver(dict),
		events:   ev,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (r *Round) Config() Config      { return r.cfg }
func (r *Round) State() State        { return r.state }
func (r *Round) Score() int          { return r.score }
func (r *Round) Registry() *Registry { return r.reg }
func (r *Round) Generation() uint64  { return r.generation }

// Probe returns the live moving probe, or nil.
func (r *Round) Probe() *Probe { return r.probe }

// Remaining reports how many probe pairs are still queued.
func (r *Round) Remaining() int { return len(r.queue) }

// Start resets the score, clears the registry, lays out the initial targets
// one per row, shuffles the same pair set into the probe queue, and schedules
// the first probe spawn after the configured delay.
func (r *Round) Start() {
	r.generation++
	r.score = 0
	r.reg.Clear()
	r.probe = nil
	r.state = Playing

	var pairs []words.Pair
	if r.dict != nil {
		n := r.cfg.InitialBlocks
		if n > r.cfg.Rows {
			n = r.cfg.Rows
		}
		pairs = r.dict.RandomPairs(n)
	}
	for i, pair := range pairs {
		t := NewTarget(pair.Source, i, r.reg.NextTargetSlot(i), r.cfg.CellSize)
		r.reg.RegisterTarget(t)
		r.events.TargetSpawned(t)
	}

	r.queue = append([]words.Pair(nil), pairs...)
	r.rng.Shuffle(len(r.queue), func(i, j int) {
		r.queue[i], r.queue[j] = r.queue[j], r.queue[i]
	})

	r.spawnPending = true
	r.spawnDelay = r.cfg.FirstSpawnDelay
}

// Restart tears the current round down and starts a fresh one. The pending
// spawn countdown lives in round state, so restarting cannot leak a stale
// spawn from the prior round.
func (r *Round) Restart() {
	r.reg.Clear()
	r.probe = nil
	r.spawnPending = false
	r.state = NotStarted
	r.Start()
}

// Step advances the round by one frame of dt seconds with the given input
// sample. No-op unless Playing.
func (r *Round) Step(in Input, dt float64) {
	if r.state != Playing {
		return
	}

	tickDT := dt
	if r.spawnPending {
		r.spawnDelay -= dt
		if r.spawnDelay > 0 {
			return
		}
		r.spawnPending = false
		// The probe appears partway through the frame; it only gets the
		// slice of dt left after the countdown ran out.
		tickDT = -r.spawnDelay
		r.SpawnNextProbe()
	}

	p := r.probe
	if p == nil || p.State() != ProbeMoving {
		return
	}
	contact := p.Tick(tickDT, in, r.reg, r.cfg)
	switch contact.Kind {
	case ContactTarget:
		r.resolveContact(p, contact.Target)
	case ContactObstacle, ContactBoundary:
		r.fixProbe(p)
	}
}

// SpawnNextProbe draws the next queued pair and spawns its probe at the right
// boundary in a random row. An exhausted queue ends the round as Cleared.
// No-op unless Playing.
func (r *Round) SpawnNextProbe() {
	if r.state != Playing {
		return
	}
	if len(r.queue) == 0 {
		r.end(Cleared)
		return
	}
	pair := r.queue[0]
	r.queue = r.queue[1:]

	row := 0
	if r.cfg.Rows > 1 {
		row = r.rng.Intn(r.cfg.Rows)
	}
	p := NewProbe(pair, row, r.cfg)
	r.reg.RegisterProbe(p)
	r.probe = p
	r.events.ProbeSpawned(p)
}

// AddScore increments the score. No-op unless Playing.
func (r *Round) AddScore(points int) {
	if r.state != Playing {
		return
	}
	r.score += points
	r.events.ScoreChanged(r.score)
}

// ReportOverflow ends the round as Lost. No-op unless Playing.
func (r *Round) ReportOverflow() {
	if r.state != Playing {
		return
	}
	r.end(Lost)
}

// resolveContact applies the resolver verdict for a probe/target encounter.
// Match: award points, destroy both tokens, compact the row, spawn the next
// probe. Mismatch: the probe fixes in place through the normal fixing path.
func (r *Round) resolveContact(p *Probe, t *Target) {
	if r.resolver.Judge(p, t) == Match {
		r.AddScore(MatchPoints(t))
		r.reg.UnregisterTarget(t)
		r.reg.UnregisterProbe(p)
		p.remove()
		r.probe = nil
		r.reg.ShiftLeft(t.Row())
		r.events.MatchRemoved(p, t)
		r.SpawnNextProbe()
		return
	}
	r.fixProbe(p)
}

// fixProbe turns the live probe into a permanent obstacle, then either ends
// the round on overflow or requests the next spawn, within the same frame.
func (r *Round) fixProbe(p *Probe) {
	p.fix()
	r.probe = nil
	r.events.ProbeFixed(p)
	if r.reg.IsOverflowed() {
		r.ReportOverflow()
		return
	}
	r.SpawnNextProbe()
}

// end performs the single Playing→Ended transition.
func (r *Round) end(s State) {
	if r.state != Playing {
		return
	}
	r.state = s
	r.spawnPending = false
	r.generation++
	r.events.RoundEnded(r.score, s == Cleared)
}
