// internal/daily/daily.go
//
// Daily challenge: every player gets the same round on a given date. The
// pair set is selected deterministically from HMAC(salt, YYYY-MM-DD), so
// the schedule is stable per deployment but not guessable from the date.

package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/binary"
	"math/rand"
	"time"

	"github.com/nagare-games/wordstrike/internal/words"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Seed derives a deterministic RNG seed for a date using HMAC-SHA256(salt, date).
func Seed(date time.Time, salt string) int64 {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)
	return int64(binary.BigEndian.Uint64(sum[:8]))
}

// Deck is a fixed pair set over a base dictionary. It satisfies the engine's
// Dictionary interface so a daily round draws exactly the day's pairs while
// matching against the full vocabulary.
type Deck struct {
	Base *words.Dict
	Set  []words.Pair
}

// IsMatch delegates to the base dictionary.
func (d Deck) IsMatch(source, target string) bool {
	return d.Base.IsMatch(source, target)
}

// RandomPairs returns the fixed set, clamped to n. Not random: every player
// gets the same daily layout.
func (d Deck) RandomPairs(n int) []words.Pair {
	if n <= 0 || len(d.Set) == 0 {
		return nil
	}
	if n > len(d.Set) {
		n = len(d.Set)
	}
	return append([]words.Pair(nil), d.Set[:n]...)
}

// Pairs selects the day's n pairs from the dictionary, deterministically for
// (date, salt). n is clamped to the available count; an empty dictionary
// yields nil.
func Pairs(dict *words.Dict, date time.Time, salt string, n int) []words.Pair {
	all := dict.Pairs()
	if n <= 0 || len(all) == 0 {
		return nil
	}
	if n > len(all) {
		n = len(all)
	}
	idx := make([]int, len(all))
	for i := range idx {
		idx[i] = i
	}
	rng := rand.New(rand.NewSource(Seed(date, salt)))
	rng.Shuffle(len(idx), func(i, j int) { idx[i], idx[j] = idx[j], idx[i] })

	out := make([]words.Pair, 0, n)
	for _, i := range idx[:n] {
		out = append(out, all[i])
	}
	return out
}
