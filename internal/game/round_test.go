package game

import (
	"testing"

	"github.com/nagare-games/wordstrike/internal/words"
)

// recordingEvents captures sink notifications for assertions.
type recordingEvents struct {
	targetsSpawned int
	probesSpawned  int
	probesFixed    int
	matchesRemoved int
	scores         []int
	ended          int
	endedScore     int
	endedCleared   bool
}

func (e *recordingEvents) TargetSpawned(*Target)        { e.targetsSpawned++ }
func (e *recordingEvents) ProbeSpawned(*Probe)          { e.probesSpawned++ }
func (e *recordingEvents) ProbeFixed(*Probe)            { e.probesFixed++ }
func (e *recordingEvents) MatchRemoved(*Probe, *Target) { e.matchesRemoved++ }
func (e *recordingEvents) ScoreChanged(score int)       { e.scores = append(e.scores, score) }
func (e *recordingEvents) RoundEnded(score int, cleared bool) {
	e.ended++
	e.endedScore = score
	e.endedCleared = cleared
}

// assertNoOverlap checks the core occupancy invariant: within a row, no two
// tokens' spans overlap. Moving probes are included.
func assertNoOverlap(t *testing.T, reg *Registry) {
	t.Helper()
	var tokens []Token
	for _, tgt := range reg.Targets() {
		tokens = append(tokens, tgt)
	}
	for _, p := range reg.Probes() {
		if p.State() != ProbeRemoved {
			tokens = append(tokens, p)
		}
	}
	for i := 0; i < len(tokens); i++ {
		for j := i + 1; j < len(tokens); j++ {
			a, b := tokens[i], tokens[j]
			if a.Row() != b.Row() {
				continue
			}
			if a.LeftEdge() < RightEdge(b) && b.LeftEdge() < RightEdge(a) {
				t.Fatalf("overlapping spans in row %d: [%g,%g] and [%g,%g]",
					a.Row(), a.LeftEdge(), RightEdge(a), b.LeftEdge(), RightEdge(b))
			}
		}
	}
}

func TestMatchScenarioClearsRound(t *testing.T) {
	// 4×1 field: target "cat" fills cells 1–3, probe "ねこ" enters from the
	// right boundary and matches on first contact.
	cfg := testConfig(4, 1)
	dict := testDict(t, words.Pair{Source: "cat", Target: "ねこ"})
	ev := &recordingEvents{}
	r := NewRound(cfg, dict, ev)

	r.Start()
	if r.State() != Playing {
		t.Fatalf("state after start: %v", r.State())
	}
	if ev.targetsSpawned != 1 {
		t.Fatalf("expected 1 initial target, got %d", ev.targetsSpawned)
	}

	r.Step(Input{}, 0.01) // fires the deferred spawn, then resolves the contact

	if r.State() != Cleared {
		t.Fatalf("state: %v, want cleared", r.State())
	}
	if r.Score() != 30 {
		t.Fatalf("score: %d, want 30", r.Score())
	}
	if len(r.Registry().Targets()) != 0 || len(r.Registry().Probes()) != 0 {
		t.Fatal("matched probe and target must both leave the registry")
	}
	if ev.matchesRemoved != 1 || ev.ended != 1 || !ev.endedCleared || ev.endedScore != 30 {
		t.Fatalf("events: %+v", ev)
	}
}

func TestMismatchScenarioFixesAndOverflows(t *testing.T) {
	// Same cramped 4×1 field, but the probe's pair does not match "cat":
	// it fixes at the target's right edge, which already crosses the right
	// boundary, so the round is lost.
	cfg := testConfig(4, 1)
	dict := testDict(t,
		words.Pair{Source: "cat", Target: "ねこ"},
		words.Pair{Source: "dog", Target: "いぬ"},
	)
	ev := &recordingEvents{}
	r := NewRound(cfg, dict, ev)

	r.state = Playing
	r.generation++
	tgt := NewTarget("cat", 0, r.reg.NextTargetSlot(0), cfg.CellSize)
	r.reg.RegisterTarget(tgt)
	r.queue = []words.Pair{{Source: "dog", Target: "いぬ"}}
	r.SpawnNextProbe()
	p := r.Probe()

	r.Step(Input{}, 0.01)

	if p.State() != ProbeFixed {
		t.Fatalf("probe state: %v, want fixed", p.State())
	}
	if p.LeftEdge() != RightEdge(tgt) {
		t.Fatalf("fixed at %g, want the target's right edge %g", p.LeftEdge(), RightEdge(tgt))
	}
	if r.Score() != 0 {
		t.Fatalf("mismatch must not score, got %d", r.Score())
	}
	if r.State() != Lost {
		t.Fatalf("fixed span crosses the right boundary, round must be lost, got %v", r.State())
	}
	if ev.probesFixed != 1 || ev.ended != 1 || ev.endedCleared {
		t.Fatalf("events: %+v", ev)
	}
}

func TestMismatchOnWideFieldKeepsPlaying(t *testing.T) {
	cfg := testConfig(14, 1)
	dict := testDict(t,
		words.Pair{Source: "cat", Target: "ねこ"},
		words.Pair{Source: "dog", Target: "いぬ"},
	)
	r := NewRound(cfg, dict, nil)

	r.state = Playing
	tgt := NewTarget("cat", 0, r.reg.NextTargetSlot(0), cfg.CellSize)
	r.reg.RegisterTarget(tgt)
	r.queue = []words.Pair{
		{Source: "dog", Target: "いぬ"}, // mismatch against "cat"
		{Source: "cat", Target: "ねこ"},
	}
	r.SpawnNextProbe()
	first := r.Probe()

	r.Step(Input{}, 12) // well past the contact range; continuous motion, snapped back

	if first.State() != ProbeFixed {
		t.Fatalf("first probe: %v, want fixed", first.State())
	}
	if r.State() != Playing {
		t.Fatalf("state: %v, want playing", r.State())
	}
	if r.Probe() == nil || r.Probe() == first {
		t.Fatal("next probe must spawn within the same frame the first one fixed")
	}
}

func TestScoreAccumulatesAcrossMatches(t *testing.T) {
	cfg := testConfig(20, 1)
	dict := testDict(t,
		words.Pair{Source: "cat", Target: "ねこ"},
		words.Pair{Source: "dog", Target: "いぬ"},
	)
	r := NewRound(cfg, dict, nil)

	r.state = Playing
	cat := NewTarget("cat", 0, r.reg.NextTargetSlot(0), cfg.CellSize)
	r.reg.RegisterTarget(cat)
	dog := NewTarget("dog", 0, r.reg.NextTargetSlot(0), cfg.CellSize)
	r.reg.RegisterTarget(dog)
	// The rightmost target is "dog", so its probe must come first.
	r.queue = []words.Pair{
		{Source: "dog", Target: "いぬ"},
		{Source: "cat", Target: "ねこ"},
	}
	r.SpawnNextProbe()

	for i := 0; r.State() == Playing && i < 2000; i++ {
		r.Step(Input{Accelerate: true}, 0.05)
		assertNoOverlap(t, r.Registry())
	}

	if r.State() != Cleared {
		t.Fatalf("state: %v, want cleared", r.State())
	}
	if got, want := r.Score(), 10*(3+3); got != want {
		t.Fatalf("score: %d, want %d", got, want)
	}
}

func TestFirstProbeSpawnIsDeferred(t *testing.T) {
	cfg := testConfig(40, 1)
	cfg.FirstSpawnDelay = 1.0
	dict := testDict(t, words.Pair{Source: "cat", Target: "ねこ"})
	r := NewRound(cfg, dict, nil)

	r.Start()
	r.Step(Input{}, 0.4)
	r.Step(Input{}, 0.4)
	if r.Probe() != nil {
		t.Fatal("probe must not spawn before the configured delay elapses")
	}
	r.Step(Input{}, 0.4)
	if r.Probe() == nil {
		t.Fatal("probe must spawn once the delay has elapsed")
	}
}

func TestSpawnFrameGrantsOnlyTheRemainder(t *testing.T) {
	cfg := testConfig(40, 1)
	cfg.FirstSpawnDelay = 0.75
	dict := testDict(t, words.Pair{Source: "cat", Target: "ねこ"})
	r := NewRound(cfg, dict, nil)

	r.Start()
	r.Step(Input{}, 0.5)
	if r.Probe() != nil {
		t.Fatal("probe must not spawn before the delay elapses")
	}
	r.Step(Input{}, 0.5) // the delay runs out 0.25s into this frame
	p := r.Probe()
	if p == nil {
		t.Fatal("probe must spawn once the delay has elapsed")
	}
	if got, want := p.LeftEdge(), cfg.RightBoundary()-0.25*cfg.MoveSpeed; got != want {
		t.Fatalf("first tick must cover only the post-delay remainder: leftEdge %g, want %g", got, want)
	}
}

func TestRestartMidRoundLeavesNoStaleState(t *testing.T) {
	cfg := testConfig(40, 2)
	cfg.InitialBlocks = 2
	dict := testDict(t,
		words.Pair{Source: "cat", Target: "ねこ"},
		words.Pair{Source: "dog", Target: "いぬ"},
	)
	r := NewRound(cfg, dict, nil)

	r.Start()
	r.Step(Input{}, 0.01) // fire the spawn
	if r.Probe() == nil {
		t.Fatal("setup: expected a live probe")
	}
	oldProbe := r.Probe()
	oldGen := r.Generation()

	r.Restart()

	if r.State() != Playing || r.Score() != 0 {
		t.Fatalf("after restart: state=%v score=%d", r.State(), r.Score())
	}
	if r.Generation() <= oldGen {
		t.Fatal("restart must advance the generation counter")
	}
	if got := len(r.Registry().Targets()); got != 2 {
		t.Fatalf("expected a fresh target layout, got %d targets", got)
	}
	for _, p := range r.Registry().Probes() {
		if p == oldProbe {
			t.Fatal("no token from the prior round may survive a restart")
		}
	}
	if r.Probe() != nil {
		t.Fatal("the first probe of the new round is deferred, not inherited")
	}
}

func TestNoSideEffectsAfterRoundEnds(t *testing.T) {
	cfg := testConfig(40, 1)
	dict := testDict(t, words.Pair{Source: "cat", Target: "ねこ"})
	ev := &recordingEvents{}
	r := NewRound(cfg, dict, ev)

	r.state = Lost
	r.AddScore(100)
	r.SpawnNextProbe()
	r.ReportOverflow()
	r.Step(Input{}, 1.0)

	if r.Score() != 0 {
		t.Fatalf("score after ended round: %d, want 0", r.Score())
	}
	if r.Probe() != nil || ev.probesSpawned != 0 {
		t.Fatal("no spawns may be honored once the round has ended")
	}
	if ev.ended != 0 {
		t.Fatal("the playing→ended transition happens at most once per round")
	}
}

func TestSnapshotReflectsRoundState(t *testing.T) {
	cfg := testConfig(4, 1)
	dict := testDict(t, words.Pair{Source: "cat", Target: "ねこ"})
	r := NewRound(cfg, dict, nil)
	r.Start()

	s := r.Snapshot()
	if s.State != "playing" || s.Score != 0 {
		t.Fatalf("snapshot header: %+v", s)
	}
	if len(s.Targets) != 1 || s.Targets[0].Word != "cat" || s.Targets[0].Width != 3 {
		t.Fatalf("snapshot targets: %+v", s.Targets)
	}
	if s.Remaining != 1 {
		t.Fatalf("snapshot remaining: %d, want 1", s.Remaining)
	}
}
