package spellingbee

import (
	"errors"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/wordpuzzles/trie"
	"github.com/domino14/wordpuzzles/wordrank"
)

var outer = []string{"b", "c", "d", "e", "l", "t"}

func testPuzzle(t *testing.T) *Puzzle {
	t.Helper()
	p, err := NewPuzzle("A", outer, []string{"BLACTED"}, []string{"able", "bale", "table", "cable"})
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestNewPuzzleValidation(t *testing.T) {
	cases := []struct {
		name   string
		center string
		outer  []string
	}{
		{"two centers", "ab", []string{"c", "d", "e", "f", "g", "h"}},
		{"five outer", "a", []string{"c", "d", "e", "f", "g"}},
		{"repeat", "a", []string{"a", "d", "e", "f", "g", "h"}},
		{"digit", "a", []string{"1", "d", "e", "f", "g", "h"}},
		{"doubled up", "a", []string{"bc", "", "d", "e", "f", "g"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			is := is.New(t)
			_, err := NewPuzzle(tc.center, tc.outer, nil, nil)
			is.True(errors.Is(err, ErrInvalidPuzzle))
		})
	}
}

func TestGuess(t *testing.T) {
	is := is.New(t)
	p := testPuzzle(t)
	is.Equal(p.Center(), "A")
	is.Equal(p.Outer(), []string{"B", "C", "D", "E", "L", "T"})
	is.Equal(p.NumAnswers(), 5)

	is.Equal(p.Guess("ABLE"), GoodWord)
	is.Equal(p.Guess("able"), GoodWord|AlreadyGotten)
	is.Equal(p.Guess("blacted"), GoodWord|Pangram)
	is.Equal(p.Guess("xyzzy"), WrongWord)
	is.Equal((GoodWord | Pangram).String(), "good,pangram")
	is.Equal(p.GottenWords(), []string{"able", "blacted"})
	is.Equal(p.PercentComplete(), 40.0)
}

func TestHints(t *testing.T) {
	is := is.New(t)
	p := testPuzzle(t)
	p.Guess("able")
	p.Guess("blacted")

	h := p.Hints()
	is.Equal(h.Table(), "   4  5  Σ\n"+
		"B  1  -  1\n"+
		"C  -  1  1\n"+
		"T  -  1  1\n"+
		"Σ  1  2  3")
	is.Equal(h.TwoLetters(), "Ba: 1, Ca: 1, Ta: 1")
	is.Equal(h.PangramCount(), "There are 0 remaining pangrams.")

	for _, w := range []string{"bale", "table", "cable"} {
		p.Guess(w)
	}
	is.True(p.Hints().Empty())
	is.Equal(p.Hints().Table(), "There are no remaining words.")
	is.Equal(p.PercentComplete(), 100.0)
}

func TestUnguessedWords(t *testing.T) {
	is := is.New(t)
	p := testPuzzle(t)
	p.Guess("able")
	p.Guess("blacted")
	ranker := wordrank.NewMapRanker([]string{"table", "bale"})
	is.Equal(p.UnguessedWords(ranker), []string{"cable", "bale", "table"})
	is.Equal(p.UnguessedWords(nil), []string{"bale", "cable", "table"})
}

func TestAlternativeAnswers(t *testing.T) {
	is := is.New(t)
	p := testPuzzle(t)
	tr := trie.New()
	for _, w := range []string{"tale", "late", "ace", "beat", "bead", "cat", "cable", "dab", "bleat", "zeal"} {
		is.NoErr(tr.Insert(w))
	}
	ranker := wordrank.NewMapRanker([]string{"late", "bleat"})
	for _, s := range []trie.Searcher{tr, trie.NewBuffer(tr.Serialize(), 0)} {
		alts, err := p.AlternativeAnswers(s, ranker)
		is.NoErr(err)
		is.Equal(alts, []string{"late", "bleat", "bead", "beat", "tale"})
	}
}
