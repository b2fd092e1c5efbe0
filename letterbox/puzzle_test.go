package letterbox

import (
	"errors"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/stretchr/testify/assert"

	"github.com/domino14/wordpuzzles/wordrank"
)

var testSides = []string{"ABC", "DEF", "GHI", "JKL"}

// chainPuzzle has exactly one two-word and one three-word solution:
// ABCDEF->FGHIJKL and FGHIJKL->LA->ABCDEF. LA->ABCDEF->FGHIJKL is
// padding, since its last two words already solve the puzzle.
func chainPuzzle(t *testing.T) *Puzzle {
	t.Helper()
	ranker := wordrank.NewMapRanker([]string{"abcdef", "la", "lead", "gel"})
	p, err := NewPuzzle(Definition{
		Sides:      testSides,
		Dictionary: []string{"abcdef", "FGHIJKL", "la", "LA"},
		Par:        3,
	}, ranker)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestSingleWordPangram(t *testing.T) {
	is := is.New(t)
	p, err := NewPuzzle(Definition{Sides: testSides, Dictionary: []string{"ABCDEFGHIJKL"}}, nil)
	is.NoErr(err)

	one := p.SolutionsByLength(1)
	is.Equal(one.Len(), 1)
	is.Equal(one.Solutions()[0].String(), "ABCDEFGHIJKL")

	two := p.SolutionsByLength(2)
	is.Equal(two.Len(), 0)
	is.Equal(len(two.Words()), 0)
}

func TestNewPuzzleValidation(t *testing.T) {
	cases := []struct {
		name string
		def  Definition
	}{
		{"three sides", Definition{Sides: []string{"ABC", "DEF", "GHI"}, Dictionary: []string{"ABC"}}},
		{"short side", Definition{Sides: []string{"AB", "DEF", "GHI", "JKL"}, Dictionary: []string{"ABC"}}},
		{"repeated letter", Definition{Sides: []string{"ABC", "DEF", "GHI", "JKA"}, Dictionary: []string{"ABC"}}},
		{"letter repeated within side", Definition{Sides: []string{"AAC", "DEF", "GHI", "JKL"}, Dictionary: []string{"AC"}}},
		{"non-letter side", Definition{Sides: []string{"AB1", "DEF", "GHI", "JKL"}, Dictionary: []string{"AB"}}},
		{"foreign letter", Definition{Sides: testSides, Dictionary: []string{"ABZ"}}},
		{"punctuation", Definition{Sides: testSides, Dictionary: []string{"AB-C"}}},
		{"empty word", Definition{Sides: testSides, Dictionary: []string{"ABC", ""}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			is := is.New(t)
			_, err := NewPuzzle(tc.def, nil)
			is.True(errors.Is(err, ErrInvalidPuzzle))
		})
	}
}

func TestLowercaseDefinition(t *testing.T) {
	is := is.New(t)
	p, err := NewPuzzle(Definition{Sides: []string{"abc", "def", "ghi", "jkl"}, Dictionary: []string{"abcdefghijkl"}}, nil)
	is.NoErr(err)
	is.Equal(p.Sides(), testSides)
	is.Equal(p.Alphabet().String(), "ABCDEFGHIJKL")
	is.Equal(p.SolutionsByLength(1).Len(), 1)
}

func TestDictionaryIsDeduplicated(t *testing.T) {
	is := is.New(t)
	p := chainPuzzle(t)
	is.Equal(len(p.ValidWords()), 3)
	is.True(p.IsValid(NewWord("la")))
	is.True(!p.IsValid(NewWord("lead")))
}

func TestValidContinuations(t *testing.T) {
	is := is.New(t)
	p, err := NewPuzzle(Definition{
		Sides:      testSides,
		Dictionary: []string{"ABA", "ACE", "ALL", "ABCDEF", "BAD"},
	}, nil)
	is.NoErr(err)

	texts := func(ws []Word) []string {
		out := make([]string, len(ws))
		for i, w := range ws {
			out[i] = w.String()
		}
		return out
	}
	// ABA ends in A but never follows itself.
	assert.ElementsMatch(t, []string{"ACE", "ALL", "ABCDEF"}, texts(p.ValidContinuations(NewWord("ABA"), -1, -1)))
	assert.ElementsMatch(t, []string{"ABA", "ACE", "ALL", "ABCDEF"}, texts(p.ValidContinuations(NewWord("KA"), -1, -1)))
	assert.ElementsMatch(t, []string{"ABA", "ALL"}, texts(p.ValidContinuations(NewWord("KA"), 0, 2)))
	assert.ElementsMatch(t, []string{"ABCDEF"}, texts(p.ValidContinuations(NewWord("KA"), 4, -1)))
	is.Equal(len(p.ValidContinuations(NewWord("ACE"), -1, -1)), 0)
	is.Equal(len(p.ValidContinuations(Word{}, -1, -1)), 0)
}

func TestChainScenario(t *testing.T) {
	is := is.New(t)
	p := chainPuzzle(t)

	is.Equal(p.SolutionsByLength(1).Len(), 0)
	is.Equal(p.SolutionsByLength(2).String(), "{ABCDEF->FGHIJKL}")
	is.Equal(p.SolutionsByLength(3).String(), "{FGHIJKL->LA->ABCDEF}")
	is.Equal(p.SolutionsByLength(4).Len(), 0)
	is.Equal(p.SolutionsByLength(0).Len(), 0)
	is.Equal(p.SolutionsByLength(-2).Len(), 0)

	three := p.SolutionsByLength(3)
	is.Equal(len(three.Words()), 3)
	is.Equal(wordStrings(three.CommonWords()), []string{"ABCDEF", "LA"})
	is.Equal(len(three.CommonWordSolutions()), 0)
}

func TestCommonWordSolutions(t *testing.T) {
	is := is.New(t)
	ranker := wordrank.NewMapRanker([]string{"abcdef", "fghijkl"})
	p, err := NewPuzzle(Definition{Sides: testSides, Dictionary: []string{"ABCDEF", "FGHIJKL", "LA"}}, ranker)
	is.NoErr(err)
	two := p.SolutionsByLength(2)
	is.Equal(len(two.CommonWordSolutions()), 1)
	is.True(two.IsCommonWord(NewWord("FGHIJKL")))
	is.True(!two.IsCommonWord(NewWord("LA")))
}

func TestSolutionsAreCached(t *testing.T) {
	is := is.New(t)
	p := chainPuzzle(t)
	calls := map[int]int{}
	p.OnSolved = func(length int, _ *SolutionSet) {
		calls[length]++
	}
	first := p.SolutionsByLength(2)
	second := p.SolutionsByLength(2)
	is.True(first == second)
	is.Equal(calls[2], 1)

	p.SolutionsByLength(3)
	p.SolutionsByLength(3)
	is.Equal(calls, map[int]int{2: 1, 3: 1})
	is.Equal(p.SolvedLengths(), []int{2, 3})
}

func TestLoadSolutions(t *testing.T) {
	is := is.New(t)
	p := chainPuzzle(t)
	fired := false
	p.OnSolved = func(int, *SolutionSet) { fired = true }

	is.NoErr(p.LoadSolutions(2, [][]string{{"ABCDEF", "FGHIJKL"}}))
	is.Equal(p.SolutionsByLength(2).ToLists(), [][]string{{"ABCDEF", "FGHIJKL"}})
	is.True(!fired)

	for _, bad := range [][][]string{
		{{"ABCDEF", "LA"}},
		{{"ABCDEF"}},
		{{"ABCDEF", "FGHIJKLX"}},
		{{"FGHIJKL", "ABCDEF"}},
	} {
		err := p.LoadSolutions(2, bad)
		is.True(errors.Is(err, ErrInvalidSolution))
	}
}

// randomPuzzle builds a puzzle over A-L with a reproducible word list.
func randomPuzzle(t *testing.T, n int, seed uint64) *Puzzle {
	t.Helper()
	r := rand.New(rand.NewPCG(seed, seed+1))
	alphabet := strings.Join(testSides, "")
	words := make([]string, n)
	for i := range words {
		var sb strings.Builder
		length := 3 + r.IntN(7)
		for j := 0; j < length; j++ {
			sb.WriteByte(alphabet[r.IntN(len(alphabet))])
		}
		words[i] = sb.String()
	}
	p, err := NewPuzzle(Definition{Sides: testSides, Dictionary: words}, nil)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestChainInvariants(t *testing.T) {
	p := randomPuzzle(t, 250, 7)
	for length := 1; length <= 3; length++ {
		set := p.SolutionsByLength(length)
		for _, s := range set.Solutions() {
			if len(s) != length {
				t.Errorf("%s has %d words, want %d", s, len(s), length)
			}
			if !s.Linked() {
				t.Errorf("%s is not linked", s)
			}
			if !s.IsComplete() {
				t.Errorf("%s does not cover every letter", s)
			}
			if s.padded() {
				t.Errorf("%s is padded", s)
			}
			for i := 1; i < len(s); i++ {
				if s[i] == s[i-1] {
					t.Errorf("%s repeats a word back to back", s)
				}
			}
			if !s.Valid(p.valid) {
				t.Errorf("%s is not valid", s)
			}
		}
	}
}

func TestPlayable(t *testing.T) {
	is := is.New(t)
	p := chainPuzzle(t)
	is.True(p.Playable("LEAD"))
	is.True(p.Playable("gel"))
	is.True(!p.Playable("BAD"))
	is.True(!p.Playable("LEX"))
	is.True(!p.Playable(""))
}
