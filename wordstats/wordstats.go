// Package wordstats provides word-frequency estimates and frequency-driven
// word segmentation over an embedded rank-ordered English word list. The
// canonicalizer uses the frequency side to keep common words from being
// accepted as canonical names; the extractor uses the segmentation side to
// re-split names the NER stage received with word boundaries missing.
package wordstats

import (
	_ "embed"
	"math"
	"strings"
	"sync"
)

//go:embed words.txt
var wordData string

var (
	loadOnce sync.Once
	rank     map[string]int
	cost     map[string]float64
)

func load() {
	loadOnce.Do(func() {
		words := strings.Fields(wordData)
		rank = make(map[string]int, len(words))
		cost = make(map[string]float64, len(words))
		logN := math.Log(float64(len(words)))
		for i, w := range words {
			w = strings.ToLower(w)
			if _, ok := rank[w]; ok {
				continue
			}
			rank[w] = i + 1
			cost[w] = math.Log(float64(i+1) * logN)
		}
	})
}

// Zipf returns a Zipf-style frequency score for a word: roughly the base-10
// log of occurrences per billion words. Scores are derived from the word's
// rank in the embedded list; a word that is not listed scores 0, i.e. it is
// treated as very rare.
func Zipf(word string) float64 {
	load()
	r, ok := rank[strings.ToLower(strings.TrimSpace(word))]
	if !ok {
		return 0
	}
	z := 7.7 - 1.175*math.Log10(float64(r))
	if z < 0 {
		return 0
	}
	return z
}

// Known reports whether the word appears in the embedded list.
func Known(word string) bool {
	load()
	_, ok := rank[strings.ToLower(strings.TrimSpace(word))]
	return ok
}

// Segment splits a run of letters with missing word boundaries into its
// most probable word sequence using dynamic programming over word costs
// (cheaper = more frequent). Unknown spans are kept as single chunks.
// Non-letter characters act as hard boundaries and are dropped.
func Segment(s string) []string {
	load()
	var out []string
	for _, chunk := range splitLetters(s) {
		out = append(out, segmentChunk(strings.ToLower(chunk))...)
	}
	return out
}

// segmentChunk finds the minimal-cost split of a lowercase letter run.
func segmentChunk(s string) []string {
	n := len(s)
	if n == 0 {
		return nil
	}
	// Unknown spans are dominated by a large per-chunk penalty so the
	// optimizer first minimizes the number of unknown chunks, then their
	// covered length, and only then prefers frequent words. One-letter
	// list words ("a", "i") are priced as unknown: letting them count
	// would shave single letters off unknown surnames ("grijalv" + "a").
	const (
		unknownChunk   = 1e6
		unknownPerChar = 10
	)
	best := make([]float64, n+1)
	split := make([]int, n+1)
	for i := 1; i <= n; i++ {
		best[i] = math.Inf(1)
		for j := 0; j < i; j++ {
			w := s[j:i]
			c, ok := cost[w]
			if !ok || len(w) < 2 {
				c = unknownChunk + unknownPerChar*float64(i-j)
			}
			if best[j]+c < best[i] {
				best[i] = best[j] + c
				split[i] = j
			}
		}
	}
	var parts []string
	for i := n; i > 0; i = split[i] {
		parts = append(parts, s[split[i]:i])
	}
	for l, r := 0, len(parts)-1; l < r; l, r = l+1, r-1 {
		parts[l], parts[r] = parts[r], parts[l]
	}
	return parts
}

func splitLetters(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return !((r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'))
	})
}
