package letterbox

import (
	"sort"
	"strings"

	"github.com/samber/lo"
)

// SolutionSet holds the solutions of one length for one puzzle, along with
// views derived from them.
type SolutionSet struct {
	solutions       []Solution
	words           map[Word]struct{}
	commonWords     map[Word]struct{}
	commonSolutions []Solution
}

// newSolutionSet de-duplicates and sorts the solutions, and classifies
// their words with isCommon.
func newSolutionSet(solutions []Solution, isCommon func(Word) bool) *SolutionSet {
	set := &SolutionSet{
		words:       make(map[Word]struct{}),
		commonWords: make(map[Word]struct{}),
	}
	seen := make(map[string]struct{}, len(solutions))
	for _, s := range solutions {
		key := s.String()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		set.solutions = append(set.solutions, s)
	}
	sort.Slice(set.solutions, func(i, j int) bool {
		return set.solutions[i].String() < set.solutions[j].String()
	})
	for _, s := range set.solutions {
		allCommon := true
		for _, w := range s {
			set.words[w] = struct{}{}
			if isCommon(w) {
				set.commonWords[w] = struct{}{}
			} else {
				allCommon = false
			}
		}
		if allCommon {
			set.commonSolutions = append(set.commonSolutions, s)
		}
	}
	return set
}

// Len returns the number of solutions.
func (ss *SolutionSet) Len() int {
	return len(ss.solutions)
}

// Solutions returns the solutions in lexicographic order.
func (ss *SolutionSet) Solutions() []Solution {
	return ss.solutions
}

// HasWord reports whether w appears in any solution.
func (ss *SolutionSet) HasWord(w Word) bool {
	_, ok := ss.words[w]
	return ok
}

// IsCommonWord reports whether w appears in a solution and is common.
func (ss *SolutionSet) IsCommonWord(w Word) bool {
	_, ok := ss.commonWords[w]
	return ok
}

// Words returns every word used in any solution, sorted.
func (ss *SolutionSet) Words() []Word {
	return sortedWords(ss.words)
}

// CommonWords returns the common words used in any solution, sorted.
func (ss *SolutionSet) CommonWords() []Word {
	return sortedWords(ss.commonWords)
}

// CommonWordSolutions returns the solutions made only of common words.
func (ss *SolutionSet) CommonWordSolutions() []Solution {
	return ss.commonSolutions
}

// ToLists returns the solutions as plain strings, for persistence.
func (ss *SolutionSet) ToLists() [][]string {
	lists := make([][]string, len(ss.solutions))
	for i, s := range ss.solutions {
		lists[i] = s.Strings()
	}
	return lists
}

func (ss *SolutionSet) String() string {
	parts := make([]string, len(ss.solutions))
	for i, s := range ss.solutions {
		parts[i] = s.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

func sortedWords(m map[Word]struct{}) []Word {
	words := lo.Keys(m)
	sort.Slice(words, func(i, j int) bool { return words[i].text < words[j].text })
	return words
}
