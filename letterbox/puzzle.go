// Package letterbox solves letter-boxed puzzles: twelve letters arranged
// three to a side around a square, where players chain words together (each
// word starting with the previous word's last letter) until every letter has
// been used.
package letterbox

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/domino14/wordpuzzles/letters"
	"github.com/domino14/wordpuzzles/wordrank"
)

var (
	ErrInvalidPuzzle   = errors.New("invalid puzzle definition")
	ErrInvalidSolution = errors.New("invalid solution")
)

const (
	NumSides       = 4
	LettersPerSide = 3
)

// Definition is a puzzle as published: four sides of three letters, the
// official word list, and par (the suggested number of words, which the
// solver does not use).
type Definition struct {
	Sides      []string `json:"sides"`
	Dictionary []string `json:"dictionary"`
	Par        int      `json:"par"`
}

// Puzzle is an immutable loaded puzzle plus its solver caches. A Puzzle is
// not safe for concurrent use; callers that share one must serialize access.
type Puzzle struct {
	sides    []string
	par      int
	alphabet letters.Set
	// sideOf maps a letter index to its side plus one; zero means absent.
	sideOf [letters.NumLetters]int
	ranker wordrank.Ranker

	validWords []Word
	valid      map[Word]struct{}
	common     map[Word]bool
	// index[first letter][unique letter count] lists words with that shape.
	index    [letters.NumLetters][NeededLetters + 1][]Word
	minScore int
	maxScore int

	solutionSets map[int]*SolutionSet
	userFound    map[Word]struct{}
	hintsGiven   map[Word]struct{}

	// OnSolved, if set, is called each time a solution set is computed (not
	// when it is served from cache), so that it can be persisted.
	OnSolved func(length int, set *SolutionSet)
}

// NewPuzzle validates def and builds the solver index. ranker classifies
// words as common or rare; it may be nil, in which case every word is rare.
func NewPuzzle(def Definition, ranker wordrank.Ranker) (*Puzzle, error) {
	if len(def.Sides) != NumSides {
		return nil, fmt.Errorf("%w: need %d sides, got %d", ErrInvalidPuzzle, NumSides, len(def.Sides))
	}
	p := &Puzzle{
		par:          def.Par,
		ranker:       ranker,
		valid:        make(map[Word]struct{}),
		common:       make(map[Word]bool),
		solutionSets: make(map[int]*SolutionSet),
		userFound:    make(map[Word]struct{}),
		hintsGiven:   make(map[Word]struct{}),
		minScore:     NeededLetters,
	}
	for _, side := range def.Sides {
		side = strings.ToUpper(side)
		if len(side) != LettersPerSide {
			return nil, fmt.Errorf("%w: side %q must have %d letters", ErrInvalidPuzzle, side, LettersPerSide)
		}
		sideLetters, err := letters.FromString(side)
		if err != nil {
			return nil, fmt.Errorf("%w: side %q: %v", ErrInvalidPuzzle, side, err)
		}
		if sideLetters.Count() != LettersPerSide || sideLetters&p.alphabet != 0 {
			return nil, fmt.Errorf("%w: letters of side %q repeat", ErrInvalidPuzzle, side)
		}
		p.alphabet |= sideLetters
		for i := range side {
			p.sideOf[side[i]-'A'] = len(p.sides) + 1
		}
		p.sides = append(p.sides, side)
	}

	for _, raw := range def.Dictionary {
		w := NewWord(raw)
		if w.text == "" {
			return nil, fmt.Errorf("%w: empty word in dictionary", ErrInvalidPuzzle)
		}
		if _, err := letters.FromString(w.text); err != nil || !w.letters.SubsetOf(p.alphabet) {
			return nil, fmt.Errorf("%w: word %q uses letters outside %s", ErrInvalidPuzzle, w.text, p.alphabet)
		}
		if _, ok := p.valid[w]; ok {
			continue
		}
		p.valid[w] = struct{}{}
		p.validWords = append(p.validWords, w)
		p.common[w] = wordrank.IsCommon(ranker, w.text)
		score := w.UniqueLetters()
		p.minScore = min(p.minScore, score)
		p.maxScore = max(p.maxScore, score)
		first := int(w.First() - 'A')
		p.index[first][score] = append(p.index[first][score], w)
	}
	if len(p.validWords) == 0 {
		p.minScore = 0
	}
	sort.Slice(p.validWords, func(i, j int) bool { return p.validWords[i].text < p.validWords[j].text })
	log.Debug().Strs("sides", p.sides).Int("num-words", len(p.validWords)).
		Int("min-score", p.minScore).Int("max-score", p.maxScore).Msg("built-letterbox-index")
	return p, nil
}

// Sides returns the four sides, uppercase.
func (p *Puzzle) Sides() []string {
	return p.sides
}

// Par is passed through from the definition.
func (p *Puzzle) Par() int {
	return p.par
}

// Alphabet returns the twelve puzzle letters.
func (p *Puzzle) Alphabet() letters.Set {
	return p.alphabet
}

// ValidWords returns the official word list, sorted and de-duplicated.
func (p *Puzzle) ValidWords() []Word {
	return p.validWords
}

// IsValid reports whether w is in the official word list.
func (p *Puzzle) IsValid(w Word) bool {
	_, ok := p.valid[w]
	return ok
}

// Playable reports whether word can be traced on the box: every letter is
// a puzzle letter and no two consecutive letters share a side.
func (p *Puzzle) Playable(word string) bool {
	prev := 0
	for _, r := range word {
		idx, ok := letters.Index(r)
		if !ok || p.sideOf[idx] == 0 || p.sideOf[idx] == prev {
			return false
		}
		prev = p.sideOf[idx]
	}
	return word != ""
}

func (p *Puzzle) isCommon(w Word) bool {
	return p.common[w]
}

// ValidContinuations returns the words that may follow antecedent: those
// starting with its last letter whose unique letter count is within
// [minScore, maxScore]. Passing -1 for either bound uses the smallest or
// largest count seen in the word list. A word never follows itself.
func (p *Puzzle) ValidContinuations(antecedent Word, minScore, maxScore int) []Word {
	if minScore == -1 {
		minScore = p.minScore
	}
	if maxScore == -1 {
		maxScore = p.maxScore
	}
	minScore = max(minScore, 0)
	maxScore = min(maxScore, NeededLetters)
	first, ok := letters.Index(rune(antecedent.Last()))
	if !ok {
		return nil
	}
	var result []Word
	for score := minScore; score <= maxScore; score++ {
		for _, w := range p.index[first][score] {
			if w != antecedent {
				result = append(result, w)
			}
		}
	}
	return result
}

func (p *Puzzle) String() string {
	return fmt.Sprintf("<LetterBoxed sides=%v par=%d words=%d>", p.sides, p.par, len(p.validWords))
}
