// internal/game/resolver.go
//
// Match resolver: the stateless judge for a probe/target encounter. The
// verdict is pure; the round controller applies the consequences (scoring,
// removal, compaction, next spawn, fixing).

package game

import "github.com/nagare-games/wordstrike/internal/words"

// Dictionary is the narrow slice of the word-pair dictionary the engine
// consumes. *words.Dict satisfies it.
type Dictionary interface {
	// IsMatch reports whether source and target form a pair:
	// case-insensitive on source, exact on target.
	IsMatch(source, target string) bool
	// RandomPairs samples n distinct pairs without replacement,
	// clamped to the available count.
	RandomPairs(n int) []words.Pair
}

// Outcome is the resolver's verdict.
type Outcome int

const (
	Mismatch Outcome = iota
	Match
)

func (o Outcome) String() string {
	if o == Match {
		return "match"
	}
	return "mismatch"
}

// Resolver judges probe/target encounters against a dictionary.
type Resolver struct {
	dict Dictionary
}

// NewResolver constructs a resolver. dict may be nil; every encounter then
// resolves as Mismatch rather than faulting the round.
func NewResolver(dict Dictionary) *Resolver {
	return &Resolver{dict: dict}
}

// Judge returns Match iff the target's word and the probe's paired word
// satisfy the dictionary rule. A missing dictionary fails safe as Mismatch.
func (rs *Resolver) Judge(p *Probe, t *Target) Outcome {
	if rs == nil || rs.dict == nil || p == nil || t == nil {
		return Mismatch
	}
	if rs.dict.IsMatch(t.Word(), p.Pair().Target) {
		return Match
	}
	return Mismatch
}

// MatchPoints is the score awarded for removing a target: ten points per
// letter of the matched word.
func MatchPoints(t *Target) int {
	return 10 * runeLen(t.Word())
}

func runeLen(s string) int {
	n := 0
	for range s {
		n++
	}
	return n
}
