// internal/game/events.go
//
// Presentation sink. The engine pushes coarse notifications here; per-frame
// movement reaches clients through snapshots instead, so there is no moved
// event. A nil sink is replaced by a no-op so a missing presentation
// collaborator never faults the round.

package game

// Events receives gameplay notifications for UI/transport layers.
type Events interface {
	TargetSpawned(t *Target)
	ProbeSpawned(p *Probe)
	// ProbeFixed fires when a probe becomes a permanent obstacle.
	ProbeFixed(p *Probe)
	// MatchRemoved fires when a probe and its matched target are destroyed.
	MatchRemoved(p *Probe, t *Target)
	ScoreChanged(score int)
	RoundEnded(score int, cleared bool)
}

type nopEvents struct{}

func (nopEvents) TargetSpawned(*Target)        {}
func (nopEvents) ProbeSpawned(*Probe)          {}
func (nopEvents) ProbeFixed(*Probe)            {}
func (nopEvents) MatchRemoved(*Probe, *Target) {}
func (nopEvents) ScoreChanged(int)             {}
func (nopEvents) RoundEnded(int, bool)         {}
