package game

import (
	"testing"

	"github.com/nagare-games/wordstrike/internal/words"
)

func testDict(t *testing.T, pairs ...words.Pair) *words.Dict {
	t.Helper()
	return words.NewDict(pairs)
}

func TestJudgeMatchRule(t *testing.T) {
	cfg := testConfig(20, 1)
	dict := testDict(t,
		words.Pair{Source: "cat", Target: "ねこ"},
		words.Pair{Source: "dog", Target: "いぬ"},
	)
	rs := NewResolver(dict)

	probeFor := func(pair words.Pair) *Probe { return NewProbe(pair, 0, cfg) }
	tgt := func(word string) *Target { return NewTarget(word, 0, 0, cfg.CellSize) }

	cases := []struct {
		name   string
		target string
		pair   words.Pair
		want   Outcome
	}{
		{"exact pair", "cat", words.Pair{Source: "cat", Target: "ねこ"}, Match},
		{"source is case-insensitive", "CAT", words.Pair{Source: "cat", Target: "ねこ"}, Match},
		{"wrong pair", "cat", words.Pair{Source: "dog", Target: "いぬ"}, Mismatch},
		{"unknown word", "bird", words.Pair{Source: "cat", Target: "ねこ"}, Mismatch},
	}
	for _, tc := range cases {
		if got := rs.Judge(probeFor(tc.pair), tgt(tc.target)); got != tc.want {
			t.Fatalf("%s: got %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestJudgeFailsSafeWithoutDictionary(t *testing.T) {
	cfg := testConfig(20, 1)
	p := NewProbe(words.Pair{Source: "cat", Target: "ねこ"}, 0, cfg)
	tgt := NewTarget("cat", 0, 0, cfg.CellSize)

	if got := NewResolver(nil).Judge(p, tgt); got != Mismatch {
		t.Fatalf("missing dictionary must resolve as mismatch, got %v", got)
	}
	var rs *Resolver
	if got := rs.Judge(p, tgt); got != Mismatch {
		t.Fatalf("nil resolver must resolve as mismatch, got %v", got)
	}
}

func TestMatchPointsCountRunes(t *testing.T) {
	cfg := testConfig(20, 1)
	cases := []struct {
		word string
		want int
	}{
		{"cat", 30},
		{"rabbit", 60},
		{"ねこ", 20}, // rune count, not byte count
	}
	for _, tc := range cases {
		if got := MatchPoints(NewTarget(tc.word, 0, 0, cfg.CellSize)); got != tc.want {
			t.Fatalf("MatchPoints(%q) = %d, want %d", tc.word, got, tc.want)
		}
	}
}
