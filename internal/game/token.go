// internal/game/token.go
//
// Token kinds occupying the play-field.
// Defines:
//   - Token: the shared occupies-a-span capability the registry collides on.
//   - Target: a stationary word token awaiting a matching probe.
//   - Probe: the single player-steered moving token, with its lifecycle state.
//
// Widths are rune counts × cell size; the dictionary is not ASCII-only.

package game

import (
	"unicode/utf8"

	"github.com/nagare-games/wordstrike/internal/words"
)

// Token is the uniform collision surface the registry operates over.
// A token occupies the horizontal span [LeftEdge, LeftEdge+Width] in one row.
type Token interface {
	Row() int
	LeftEdge() float64
	Width() float64
	// SetLeftEdge repositions the token; used only by row compaction.
	SetLeftEdge(x float64)
}

// RightEdge returns the right end of a token's span.
func RightEdge(t Token) float64 {
	return t.LeftEdge() + t.Width()
}

// Target is a stationary token. Word and row are immutable after spawn;
// position mutates only via compaction.
type Target struct {
	word  string
	row   int
	left  float64
	width float64
}

// NewTarget spawns a target for word in row with its left edge at x.
func NewTarget(word string, row int, x, cellSize float64) *Target {
	return &Target{
		word:  word,
		row:   row,
		left:  x,
		width: float64(utf8.RuneCountInString(word)) * cellSize,
	}
}

func (t *Target) Word() string          { return t.word }
func (t *Target) Row() int              { return t.row }
func (t *Target) LeftEdge() float64     { return t.left }
func (t *Target) Width() float64        { return t.width }
func (t *Target) SetLeftEdge(x float64) { t.left = x }

// ProbeState is the probe lifecycle state.
// Moving is initial; Fixed and Removed are terminal.
type ProbeState int

const (
	ProbeMoving ProbeState = iota
	ProbeFixed
	ProbeRemoved
)

func (s ProbeState) String() string {
	switch s {
	case ProbeMoving:
		return "moving"
	case ProbeFixed:
		return "fixed"
	case ProbeRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// Probe is the moving token. It displays its pair's target-language word and
// matches against stationary targets showing the pair's source word.
type Probe struct {
	pair         words.Pair
	word         string // displayed label, pair.Target
	row          int
	pos          float64 // center x
	width        float64
	state        ProbeState
	accelerating bool
}

// NewProbe spawns a moving probe for pair in row, its leading (left) edge
// placed exactly at the field's right boundary.
func NewProbe(pair words.Pair, row int, cfg Config) *Probe {
	width := float64(utf8.RuneCountInString(pair.Target)) * cfg.CellSize
	return &Probe{
		pair:  pair,
		word:  pair.Target,
		row:   row,
		pos:   cfg.RightBoundary() + width/2,
		width: width,
		state: ProbeMoving,
	}
}

func (p *Probe) Pair() words.Pair   { return p.pair }
func (p *Probe) Word() string       { return p.word }
func (p *Probe) Row() int           { return p.row }
func (p *Probe) State() ProbeState  { return p.state }
func (p *Probe) Accelerating() bool { return p.accelerating }

// Pos returns the probe's center-x position.
func (p *Probe) Pos() float64 { return p.pos }

func (p *Probe) LeftEdge() float64 { return p.pos - p.width/2 }
func (p *Probe) Width() float64    { return p.width }

func (p *Probe) SetLeftEdge(x float64) { p.pos = x + p.width/2 }
