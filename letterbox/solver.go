package letterbox

import (
	"fmt"
	"slices"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
)

// SolutionsByLength returns every chain of exactly length words that covers
// all twelve letters. Results are memoized per length; OnSolved fires only
// when a set is actually computed. Lengths below 1 give an empty set.
func (p *Puzzle) SolutionsByLength(length int) *SolutionSet {
	if set, ok := p.solutionSets[length]; ok {
		return set
	}
	var found []Solution
	st := time.Now()
	if length >= 1 {
		found = p.search(length)
	}
	set := newSolutionSet(found, p.isCommon)
	p.solutionSets[length] = set
	log.Debug().Int("length", length).Int("num-solutions", set.Len()).
		Dur("elapsed", time.Since(st)).Msg("solved-letterbox")
	if p.OnSolved != nil {
		p.OnSolved(length, set)
	}
	return set
}

func (p *Puzzle) search(length int) []Solution {
	if length == 1 {
		var solutions []Solution
		for _, w := range p.validWords {
			if w.UniqueLetters() >= NeededLetters {
				solutions = append(solutions, Solution{w})
			}
		}
		return solutions
	}
	var solutions []Solution
	for _, w := range p.validWords {
		for _, s := range p.extend(length, Solution{w}, w.letters.Count()) {
			if !s.padded() {
				solutions = append(solutions, s)
			}
		}
	}
	return solutions
}

// extend grows sofar toward length words. A chain that already covers
// every letter before reaching length is a dead end.
func (p *Puzzle) extend(length int, sofar Solution, covered int) []Solution {
	if covered >= NeededLetters {
		return nil
	}
	last := sofar[len(sofar)-1]
	need := NeededLetters - covered
	if len(sofar) == length-1 {
		var solutions []Solution
		for _, next := range p.ValidContinuations(last, need, -1) {
			final := sofar.with(next)
			if final.IsComplete() {
				solutions = append(solutions, final)
			}
		}
		return solutions
	}
	var solutions []Solution
	for _, next := range p.ValidContinuations(last, 0, need) {
		chain := sofar.with(next)
		solutions = append(solutions, p.extend(length, chain, chain.UniqueLetters())...)
	}
	return solutions
}

// LoadSolutions installs a previously computed solution set, typically one
// restored from storage. Every chain must be linked, complete, of the right
// length, and made of official words. OnSolved is not called.
func (p *Puzzle) LoadSolutions(length int, lists [][]string) error {
	solutions := make([]Solution, 0, len(lists))
	for _, l := range lists {
		s := NewSolution(l...)
		if len(s) != length || !s.Valid(p.valid) {
			return fmt.Errorf("%w: %s is not a %d-word solution", ErrInvalidSolution, s, length)
		}
		solutions = append(solutions, s)
	}
	p.solutionSets[length] = newSolutionSet(solutions, p.isCommon)
	return nil
}

// SolvedLengths returns the lengths with a cached solution set, ascending.
func (p *Puzzle) SolvedLengths() []int {
	lengths := lo.Keys(p.solutionSets)
	slices.Sort(lengths)
	return lengths
}
