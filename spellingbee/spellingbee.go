// Package spellingbee judges guesses for a seven letter honeycomb puzzle:
// words of four or more letters that use the center letter and any of the
// six outer letters. A pangram uses all seven.
package spellingbee

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/domino14/wordpuzzles/letters"
	"github.com/domino14/wordpuzzles/trie"
	"github.com/domino14/wordpuzzles/wordrank"
)

const (
	MinWordLength = 4
	NumOuter      = 6
)

var ErrInvalidPuzzle = errors.New("invalid spelling bee puzzle")

// Judgement is a set of flags describing a guess.
type Judgement uint8

const (
	WrongWord Judgement = 1 << iota
	GoodWord
	Pangram
	AlreadyGotten
)

func (j Judgement) Has(flag Judgement) bool {
	return j&flag != 0
}

func (j Judgement) String() string {
	var parts []string
	for _, f := range []struct {
		flag Judgement
		name string
	}{{WrongWord, "wrong"}, {GoodWord, "good"}, {Pangram, "pangram"}, {AlreadyGotten, "already-gotten"}} {
		if j.Has(f.flag) {
			parts = append(parts, f.name)
		}
	}
	return strings.Join(parts, ",")
}

// Puzzle holds the letters, the official answers, and the answers guessed
// so far. Words are kept lowercase.
type Puzzle struct {
	center   byte
	outer    []byte
	letters  letters.Set
	answers  map[string]struct{}
	pangrams map[string]struct{}
	gotten   map[string]struct{}
}

// NewPuzzle checks that center and outer make seven distinct letters.
// Pangrams are counted as answers even if answers leaves them out.
func NewPuzzle(center string, outer []string, pangrams, answers []string) (*Puzzle, error) {
	center = strings.ToLower(center)
	all, err := letters.FromString(center + strings.Join(outer, ""))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPuzzle, err)
	}
	oneEach := lo.EveryBy(outer, func(o string) bool { return len(o) == 1 })
	if len(center) != 1 || len(outer) != NumOuter || !oneEach || all.Count() != NumOuter+1 {
		return nil, fmt.Errorf("%w: need one center and six distinct outer letters", ErrInvalidPuzzle)
	}
	p := &Puzzle{
		center:   center[0],
		letters:  all,
		answers:  make(map[string]struct{}),
		pangrams: make(map[string]struct{}),
		gotten:   make(map[string]struct{}),
	}
	for _, o := range outer {
		p.outer = append(p.outer, strings.ToLower(o)[0])
	}
	for _, a := range answers {
		p.answers[strings.ToLower(a)] = struct{}{}
	}
	for _, pg := range pangrams {
		pg = strings.ToLower(pg)
		p.pangrams[pg] = struct{}{}
		p.answers[pg] = struct{}{}
	}
	return p, nil
}

// Center returns the required letter, uppercase.
func (p *Puzzle) Center() string {
	return strings.ToUpper(string(p.center))
}

// Outer returns the six outer letters, uppercase.
func (p *Puzzle) Outer() []string {
	return lo.Map(p.outer, func(b byte, _ int) string { return strings.ToUpper(string(b)) })
}

func (p *Puzzle) NumAnswers() int {
	return len(p.answers)
}

// Guess judges a word and, if it is an answer, records it as gotten.
func (p *Puzzle) Guess(word string) Judgement {
	w := strings.ToLower(word)
	if _, ok := p.answers[w]; !ok {
		return WrongWord
	}
	j := GoodWord
	if _, ok := p.pangrams[w]; ok {
		j |= Pangram
	}
	if _, ok := p.gotten[w]; ok {
		j |= AlreadyGotten
	}
	p.gotten[w] = struct{}{}
	return j
}

// GottenWords returns the answers guessed so far, sorted.
func (p *Puzzle) GottenWords() []string {
	words := lo.Keys(p.gotten)
	sort.Strings(words)
	return words
}

// PercentComplete is the share of answers gotten, rounded to one decimal.
func (p *Puzzle) PercentComplete() float64 {
	if len(p.answers) == 0 {
		return 0
	}
	return math.Round(float64(len(p.gotten))/float64(len(p.answers))*1000) / 10
}

// UnguessedWords returns the answers not yet gotten, rarest first.
func (p *Puzzle) UnguessedWords(r wordrank.Ranker) []string {
	unguessed := lo.Filter(lo.Keys(p.answers), func(w string, _ int) bool {
		_, ok := p.gotten[w]
		return !ok
	})
	sort.Strings(unguessed)
	if r != nil {
		sort.SliceStable(unguessed, func(i, j int) bool {
			return r.Rank(unguessed[i]) > r.Rank(unguessed[j])
		})
	}
	return unguessed
}

// AlternativeAnswers finds dictionary words that would fit the puzzle but
// are not official answers, most common first.
func (p *Puzzle) AlternativeAnswers(s trie.Searcher, r wordrank.Ranker) ([]string, error) {
	candidates, err := s.SearchByLetters(p.letters)
	if err != nil {
		return nil, err
	}
	alternatives := lo.Filter(candidates, func(w string, _ int) bool {
		if len(w) < MinWordLength || strings.IndexByte(w, p.center) < 0 {
			return false
		}
		_, official := p.answers[w]
		return !official
	})
	if r != nil {
		sort.SliceStable(alternatives, func(i, j int) bool {
			return r.Rank(alternatives[i]) < r.Rank(alternatives[j])
		})
	}
	log.Debug().Int("num-candidates", len(candidates)).Int("num-alternatives", len(alternatives)).
		Msg("found-alternative-answers")
	return alternatives, nil
}
