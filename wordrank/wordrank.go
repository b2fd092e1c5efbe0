// Package wordrank tells how common a word is. A rank of 0 is the most
// frequent word in the corpus; larger ranks are rarer.
package wordrank

import (
	"math"
	"strings"
)

// CommonThreshold is the rank below which a word counts as common.
const CommonThreshold = 100_000

// Unranked is returned for words not in the corpus at all.
const Unranked = math.MaxInt32

// Ranker maps a word to its frequency rank. Lookups are case-insensitive.
type Ranker interface {
	Rank(word string) int
}

// IsCommon reports whether word ranks below CommonThreshold. A nil Ranker
// treats every word as rare.
func IsCommon(r Ranker, word string) bool {
	if r == nil {
		return false
	}
	return r.Rank(word) < CommonThreshold
}

// MapRanker is an in-memory Ranker.
type MapRanker map[string]int

// NewMapRanker ranks words by their position in the list, most common
// first. Later duplicates are ignored.
func NewMapRanker(mostCommonFirst []string) MapRanker {
	m := make(MapRanker, len(mostCommonFirst))
	for _, w := range mostCommonFirst {
		w = strings.ToLower(w)
		if _, ok := m[w]; !ok {
			m[w] = len(m)
		}
	}
	return m
}

func (m MapRanker) Rank(word string) int {
	if r, ok := m[strings.ToLower(word)]; ok {
		return r
	}
	return Unranked
}
