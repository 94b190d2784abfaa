// internal/words/pairs.go
//
// Word-pair dictionary for the wordstrike engine.
//
// Responsibilities:
//   - Load source→target vocabulary pairs from an environment-provided file
//     or fall back to the embedded default list.
//   - Maintain lookup maps for quick source/target queries.
//   - Supply matching and random-sampling utilities (IsMatch, RandomPair,
//     RandomPairs, Stats).
//
// Pair format:
//   - One pair per line, "source<TAB>target"; # comments and blanks skipped.
//   - Source words are matched case-insensitively; target words exactly.
//   - The dictionary is assumed duplicate-free on the source side.
//
// Initialization behavior (Init):
//   1. If WORDS_PAIRS_FILE is set, load pairs from that file.
//   2. Otherwise fall back to the embedded assets list.
//
// Environment variables:
//   WORDS_PAIRS_FILE=/path/to/pairs.tsv
//
// Initialization is run once (sync.Once). An empty dictionary is not a load
// error for callers: lookups return zero values and sampling returns nothing,
// per the fail-safe contract the engine relies on.

package words

import (
	"bufio"
	"crypto/rand"
	"errors"
	"math/big"
	"os"
	"strings"
	"sync"

	"github.com/nagare-games/wordstrike/assets"
)

// Pair is an immutable association of a source word and its target-language
// translation. Matching is case-insensitive on Source and exact on Target.
type Pair struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// Dict is a loaded word-pair dictionary.
type Dict struct {
	pairs    []Pair
	bySource map[string]Pair // keyed by lowercased source
	byTarget map[string]Pair // keyed by exact target
}

var (
	initOnce    sync.Once
	defaultDict *Dict
	initialErr  error
)

// Init loads the default dictionary exactly once.
// Returns an error only if a configured file cannot be read.
func Init() error {
	initOnce.Do(func() {
		var lines []string

		if path := os.Getenv("WORDS_PAIRS_FILE"); path != "" {
			var err error
			lines, err = readPairFile(path)
			if err != nil {
				initialErr = err
				return
			}
		} else {
			var err error
			lines, err = assets.PairLines()
			if err != nil {
				initialErr = err
				return
			}
		}

		defaultDict = NewDict(ParseLines(lines))
		if len(defaultDict.pairs) == 0 {
			initialErr = errors.New("words: pair list is empty")
		}
	})
	return initialErr
}

// Default returns the process-wide dictionary loaded by Init.
// Returns an empty dictionary if Init failed or was never called.
func Default() *Dict {
	if defaultDict == nil {
		return NewDict(nil)
	}
	return defaultDict
}

// NewDict builds a dictionary from an explicit pair list.
// Later duplicates of a source or target are dropped.
func NewDict(pairs []Pair) *Dict {
	d := &Dict{
		bySource: make(map[string]Pair, len(pairs)),
		byTarget: make(map[string]Pair, len(pairs)),
	}
	for _, p := range pairs {
		key := strings.ToLower(p.Source)
		if _, dup := d.bySource[key]; dup {
			continue
		}
		if _, dup := d.byTarget[p.Target]; dup {
			continue
		}
		d.pairs = append(d.pairs, p)
		d.bySource[key] = p
		d.byTarget[p.Target] = p
	}
	return d
}

// ParseLines converts raw "source<TAB>target" lines into pairs,
// skipping malformed or empty entries.
func ParseLines(lines []string) []Pair {
	var out []Pair
	for _, line := range lines {
		src, tgt, ok := strings.Cut(line, "\t")
		src = strings.TrimSpace(src)
		tgt = strings.TrimSpace(tgt)
		if !ok || src == "" || tgt == "" {
			continue
		}
		out = append(out, Pair{Source: src, Target: tgt})
	}
	return out
}

// readPairFile loads raw pair lines from a file, one per line,
// skipping blanks and # comments.
func readPairFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, s)
	}
	return out, sc.Err()
}

// LookupBySource returns the target for a source word (case-insensitive),
// or "" and false if absent.
func (d *Dict) LookupBySource(source string) (string, bool) {
	p, ok := d.bySource[strings.ToLower(source)]
	return p.Target, ok
}

// LookupByTarget returns the source for a target word (exact match),
// or "" and false if absent.
func (d *Dict) LookupByTarget(target string) (string, bool) {
	p, ok := d.byTarget[target]
	return p.Source, ok
}

// IsMatch reports whether source and target form a dictionary pair:
// case-insensitive on source, exact on target.
func (d *Dict) IsMatch(source, target string) bool {
	p, ok := d.bySource[strings.ToLower(source)]
	return ok && p.Target == target
}

// RandomPair returns a cryptographically random pair,
// or the zero Pair and false if the dictionary is empty.
func (d *Dict) RandomPair() (Pair, bool) {
	if len(d.pairs) == 0 {
		return Pair{}, false
	}
	nBig, _ := rand.Int(rand.Reader, big.NewInt(int64(len(d.pairs))))
	return d.pairs[nBig.Int64()], true
}

// RandomPairs returns n distinct pairs sampled without replacement.
// n is clamped to the available count; an empty dictionary yields nil.
func (d *Dict) RandomPairs(n int) []Pair {
	if n <= 0 || len(d.pairs) == 0 {
		return nil
	}
	if n > len(d.pairs) {
		n = len(d.pairs)
	}
	// Partial Fisher-Yates over a copy.
	idx := make([]int, len(d.pairs))
	for i := range idx {
		idx[i] = i
	}
	out := make([]Pair, 0, n)
	for i := 0; i < n; i++ {
		span := int64(len(idx) - i)
		jBig, _ := rand.Int(rand.Reader, big.NewInt(span))
		j := i + int(jBig.Int64())
		idx[i], idx[j] = idx[j], idx[i]
		out = append(out, d.pairs[idx[i]])
	}
	return out
}

// Pairs returns the full pair list in load order.
// Callers must not mutate the returned slice.
func (d *Dict) Pairs() []Pair {
	return d.pairs
}

// Stats returns the number of loaded pairs.
func (d *Dict) Stats() int {
	return len(d.pairs)
}
