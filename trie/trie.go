// Package trie stores large word lists in a prefix tree that can be written
// to, and searched directly from, a flat binary buffer.
//
// A Trie is built by inserting lowercase a-z words. Nodes live in an arena
// and refer to their children by index, so the whole tree is freed at once
// with the Trie. Once built, a Trie can be serialized; the resulting bytes
// can either be parsed back into a Trie or wrapped in a Buffer and queried
// in place, which is much faster to load for dictionaries with hundreds of
// thousands of words.
package trie

import (
	"errors"
	"fmt"
	"sort"

	"github.com/domino14/wordpuzzles/letters"
)

var (
	ErrInvalidCharacter = errors.New("invalid character; only a-z may be inserted")
	ErrMalformedBuffer  = errors.New("malformed trie buffer")
)

// Searcher answers letter-restricted word queries. Both the in-memory Trie
// and the serialized Buffer implement it with identical results.
type Searcher interface {
	// SearchByLetters returns every word that can be spelled using only the
	// eligible letters (repeats allowed), in lexicographic order.
	SearchByLetters(eligible letters.Set) ([]string, error)
}

type link struct {
	letter byte
	child  uint32
}

type node struct {
	completesWord bool
	// links are kept sorted by letter.
	links []link
}

// Trie is an arena-backed prefix tree. The root is always node 0.
// A Trie must not be mutated concurrently; searching it concurrently is fine.
type Trie struct {
	nodes    []node
	numWords int

	serialized []byte
}

// New creates an empty trie.
func New() *Trie {
	return &Trie{nodes: []node{{}}}
}

// Insert adds a word made up only of the letters a-z. The trie is left
// untouched if the word contains anything else.
func (t *Trie) Insert(word string) error {
	for i := 0; i < len(word); i++ {
		if word[i] < 'a' || word[i] > 'z' {
			return fmt.Errorf("%w: %q in %q", ErrInvalidCharacter, rune(word[i]), word)
		}
	}
	cur := uint32(0)
	for i := 0; i < len(word); i++ {
		cur = t.childOrCreate(cur, word[i])
	}
	if !t.nodes[cur].completesWord {
		t.nodes[cur].completesWord = true
		t.numWords++
		t.serialized = nil
	}
	return nil
}

func (t *Trie) childOrCreate(parent uint32, letter byte) uint32 {
	links := t.nodes[parent].links
	i := sort.Search(len(links), func(i int) bool { return links[i].letter >= letter })
	if i < len(links) && links[i].letter == letter {
		return links[i].child
	}
	child := uint32(len(t.nodes))
	t.nodes = append(t.nodes, node{})
	links = append(links, link{})
	copy(links[i+1:], links[i:])
	links[i] = link{letter: letter, child: child}
	t.nodes[parent].links = links
	t.serialized = nil
	return child
}

// NumWords returns how many distinct words are stored.
func (t *Trie) NumWords() int {
	return t.numWords
}

// NumNodes returns the size of the arena.
func (t *Trie) NumNodes() int {
	return len(t.nodes)
}

// Contains reports whether the exact word is stored.
func (t *Trie) Contains(word string) bool {
	cur := uint32(0)
	for i := 0; i < len(word); i++ {
		next, ok := t.child(cur, word[i])
		if !ok {
			return false
		}
		cur = next
	}
	return t.nodes[cur].completesWord
}

func (t *Trie) child(parent uint32, letter byte) (uint32, bool) {
	links := t.nodes[parent].links
	i := sort.Search(len(links), func(i int) bool { return links[i].letter >= letter })
	if i < len(links) && links[i].letter == letter {
		return links[i].child, true
	}
	return 0, false
}

// SearchByLetters walks the tree depth-first, only following edges labeled
// with an eligible letter, and returns the words found in lexicographic
// order. It never returns an error.
func (t *Trie) SearchByLetters(eligible letters.Set) ([]string, error) {
	results := []string{}
	word := make([]byte, 0, 32)
	var walk func(idx uint32)
	walk = func(idx uint32) {
		n := &t.nodes[idx]
		if n.completesWord {
			results = append(results, string(word))
		}
		for _, l := range n.links {
			if !eligible.ContainsIndex(int(l.letter - 'a')) {
				continue
			}
			word = append(word, l.letter)
			walk(l.child)
			word = word[:len(word)-1]
		}
	}
	walk(0)
	return results, nil
}

func sortLinks(links []link) {
	sort.Slice(links, func(i, j int) bool { return links[i].letter < links[j].letter })
}
