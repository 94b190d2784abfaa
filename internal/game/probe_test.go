package game

import (
	"testing"

	"github.com/nagare-games/wordstrike/internal/words"
)

func TestProbeAdvancesLeftScaledByElapsedTime(t *testing.T) {
	cfg := testConfig(40, 1)
	reg := NewRegistry(cfg)
	p := NewProbe(words.Pair{Source: "cat", Target: "ねこ"}, 0, cfg)

	start := p.Pos()
	if c := p.Tick(0.5, Input{}, reg, cfg); c.Kind != ContactNone {
		t.Fatalf("unexpected contact %v on open field", c.Kind)
	}
	if got, want := p.Pos(), start-cfg.MoveSpeed*0.5; got != want {
		t.Fatalf("position %g, want %g", got, want)
	}

	before := p.Pos()
	p.Tick(0.5, Input{Accelerate: true}, reg, cfg)
	if got, want := p.Pos(), before-cfg.AcceleratedSpeed*0.5; got != want {
		t.Fatalf("accelerated position %g, want %g", got, want)
	}
	if !p.Accelerating() {
		t.Fatal("accelerate flag should track the held signal")
	}
}

func TestProbeRowChangesAreClampedAndImmediate(t *testing.T) {
	cfg := testConfig(40, 3)
	reg := NewRegistry(cfg)
	p := NewProbe(words.Pair{Source: "cat", Target: "ねこ"}, 0, cfg)

	p.Tick(0.01, Input{Up: true}, reg, cfg)
	if p.Row() != 0 {
		t.Fatalf("row above the top must clamp to 0, got %d", p.Row())
	}
	p.Tick(0.01, Input{Down: true}, reg, cfg)
	if p.Row() != 1 {
		t.Fatalf("row after one down, got %d want 1", p.Row())
	}
	p.Tick(0.01, Input{Down: true}, reg, cfg)
	p.Tick(0.01, Input{Down: true}, reg, cfg)
	if p.Row() != 2 {
		t.Fatalf("row below the bottom must clamp to %d, got %d", cfg.Rows-1, p.Row())
	}
}

func TestProbeSnapsToTargetTrailingEdge(t *testing.T) {
	cfg := testConfig(20, 1)
	reg := NewRegistry(cfg)
	tgt := NewTarget("cat", 0, cfg.LeftBoundary(), cfg.CellSize) // span [-10,-7]
	reg.RegisterTarget(tgt)

	p := NewProbe(words.Pair{Source: "cat", Target: "ねこ"}, 0, cfg)
	p.SetLeftEdge(-5.95)

	c := p.Tick(0.1, Input{}, reg, cfg) // moves to -6.05, inside the +1 lookahead of the -7 edge
	if c.Kind != ContactTarget || c.Target != tgt {
		t.Fatalf("expected target contact, got kind=%v", c.Kind)
	}
	if p.LeftEdge() != RightEdge(tgt) {
		t.Fatalf("leading edge must snap to the target's trailing edge: %g, want %g", p.LeftEdge(), RightEdge(tgt))
	}
	if p.State() != ProbeMoving {
		t.Fatal("the probe itself must not change state on target contact; the resolver decides")
	}
}

func TestProbeCollisionPriorityTargetOverObstacle(t *testing.T) {
	cfg := testConfig(20, 1)
	reg := NewRegistry(cfg)
	// A target and a fixed probe sharing a trailing-edge neighborhood: the
	// target must win even though both are in contact range.
	tgt := NewTarget("cat", 0, -10, cfg.CellSize) // span [-10,-7]
	reg.RegisterTarget(tgt)
	obst := fixedProbe(t, "いぬ", 0, -7, cfg) // span [-7,-5]
	reg.RegisterProbe(obst)

	p := NewProbe(words.Pair{Source: "cat", Target: "ねこ"}, 0, cfg)
	p.SetLeftEdge(-5.9)
	c := p.Tick(0.1, Input{}, reg, cfg) // lands at -6: in range of both
	if c.Kind != ContactTarget {
		t.Fatalf("target contact must take priority, got kind=%v", c.Kind)
	}
}

func TestProbeStopsAtObstacleWithoutRematch(t *testing.T) {
	cfg := testConfig(20, 1)
	reg := NewRegistry(cfg)
	obst := fixedProbe(t, "いぬ", 0, -10, cfg) // span [-10,-8]
	reg.RegisterProbe(obst)

	p := NewProbe(words.Pair{Source: "dog", Target: "いぬ"}, 0, cfg)
	reg.RegisterProbe(p)
	p.SetLeftEdge(-6.9)

	c := p.Tick(0.1, Input{}, reg, cfg)
	if c.Kind != ContactObstacle {
		t.Fatalf("expected obstacle contact, got kind=%v", c.Kind)
	}
	if p.LeftEdge() != RightEdge(obst) {
		t.Fatalf("must snap to the obstacle's trailing edge: %g, want %g", p.LeftEdge(), RightEdge(obst))
	}
}

func TestProbeFastFrameCannotSkipPastObstacle(t *testing.T) {
	cfg := testConfig(20, 1)
	cfg.AcceleratedSpeed = 12
	reg := NewRegistry(cfg)
	obst := fixedProbe(t, "ね", 0, 0, cfg) // span [0,1]
	reg.RegisterProbe(obst)

	p := NewProbe(words.Pair{Source: "cat", Target: "ねこ"}, 0, cfg)
	reg.RegisterProbe(p)
	p.SetLeftEdge(2.5)

	// One delayed accelerated frame moves 3 units, wider than the obstacle's
	// whole contact window.
	c := p.Tick(0.25, Input{Accelerate: true}, reg, cfg)
	if c.Kind != ContactObstacle {
		t.Fatalf("expected obstacle contact, got kind=%v", c.Kind)
	}
	if p.LeftEdge() != RightEdge(obst) {
		t.Fatalf("must stop at the obstacle's trailing edge: %g, want %g", p.LeftEdge(), RightEdge(obst))
	}
}

func TestProbeStopsAtLeftBoundary(t *testing.T) {
	cfg := testConfig(10, 1)
	reg := NewRegistry(cfg)
	p := NewProbe(words.Pair{Source: "cat", Target: "ねこ"}, 0, cfg)
	p.SetLeftEdge(cfg.LeftBoundary() + 0.05)

	c := p.Tick(1.0, Input{}, reg, cfg)
	if c.Kind != ContactBoundary {
		t.Fatalf("expected boundary contact, got kind=%v", c.Kind)
	}
	if p.LeftEdge() != cfg.LeftBoundary() {
		t.Fatalf("must snap to the boundary: %g, want %g", p.LeftEdge(), cfg.LeftBoundary())
	}
}

func TestTerminalProbeStatesDoNotTick(t *testing.T) {
	cfg := testConfig(10, 1)
	reg := NewRegistry(cfg)
	p := NewProbe(words.Pair{Source: "cat", Target: "ねこ"}, 0, cfg)
	p.fix()

	pos := p.Pos()
	if c := p.Tick(1.0, Input{Down: true, Accelerate: true}, reg, cfg); c.Kind != ContactNone {
		t.Fatal("fixed probes must not report contacts")
	}
	if p.Pos() != pos || p.Row() != 0 {
		t.Fatal("fixed probes must not move")
	}

	p.remove() // Fixed is terminal
	if p.State() != ProbeFixed {
		t.Fatalf("no transition may leave Fixed, got %v", p.State())
	}
}
