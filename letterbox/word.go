package letterbox

import (
	"strings"

	"github.com/domino14/wordpuzzles/letters"
)

// NeededLetters is how many distinct letters a solution must cover.
const NeededLetters = 12

// Word is an uppercase word. Two Words are equal iff their letters are.
type Word struct {
	text    string
	letters letters.Set
}

// NewWord normalizes s to uppercase.
func NewWord(s string) Word {
	up := strings.ToUpper(s)
	return Word{text: up, letters: letters.Of(up)}
}

func (w Word) String() string {
	return w.text
}

// Letters returns the set of distinct letters in the word.
func (w Word) Letters() letters.Set {
	return w.letters
}

// UniqueLetters is the word's score for indexing purposes.
func (w Word) UniqueLetters() int {
	return w.letters.Count()
}

// First returns the first letter, or 0 for an empty word.
func (w Word) First() byte {
	if w.text == "" {
		return 0
	}
	return w.text[0]
}

// Last returns the last letter, or 0 for an empty word.
func (w Word) Last() byte {
	if w.text == "" {
		return 0
	}
	return w.text[len(w.text)-1]
}

// Solution is a chain of words where each word starts with the letter the
// previous one ended with.
type Solution []Word

// NewSolution builds a solution from plain strings.
func NewSolution(words ...string) Solution {
	s := make(Solution, len(words))
	for i, w := range words {
		s[i] = NewWord(w)
	}
	return s
}

// Letters returns every letter used anywhere in the chain.
func (s Solution) Letters() letters.Set {
	var set letters.Set
	for _, w := range s {
		set |= w.letters
	}
	return set
}

func (s Solution) UniqueLetters() int {
	return s.Letters().Count()
}

// IsComplete reports whether the chain covers every puzzle letter. It does
// not check linking or word legality; see Valid for that.
func (s Solution) IsComplete() bool {
	return s.UniqueLetters() >= NeededLetters
}

// Linked reports whether each word starts with the previous word's last
// letter.
func (s Solution) Linked() bool {
	for i := 0; i+1 < len(s); i++ {
		if s[i].Last() != s[i+1].First() {
			return false
		}
	}
	return true
}

// Valid is the full check for untrusted input: linked, complete, and made
// only of words in legal.
func (s Solution) Valid(legal map[Word]struct{}) bool {
	if len(s) == 0 || !s.Linked() {
		return false
	}
	for _, w := range s {
		if _, ok := legal[w]; !ok {
			return false
		}
	}
	return s.IsComplete()
}

// padded reports whether a strict prefix or strict suffix of the chain is
// already complete on its own.
func (s Solution) padded() bool {
	if len(s) < 2 {
		return false
	}
	return s[1:].IsComplete() || s[:len(s)-1].IsComplete()
}

// with returns a copy of the chain with w appended.
func (s Solution) with(w Word) Solution {
	next := make(Solution, len(s)+1)
	copy(next, s)
	next[len(s)] = w
	return next
}

func (s Solution) Strings() []string {
	out := make([]string, len(s))
	for i, w := range s {
		out[i] = w.text
	}
	return out
}

func (s Solution) String() string {
	return strings.Join(s.Strings(), "->")
}
