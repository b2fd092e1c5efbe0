package trie

import (
	"fmt"

	"github.com/domino14/wordpuzzles/letters"
)

// Buffer answers queries directly against a serialized trie, decoding node
// headers and link tables as it goes instead of building nodes. A Buffer is
// immutable and may be searched from many goroutines at once.
type Buffer struct {
	data []byte
	root uint32
}

// NewBuffer wraps serialized trie data whose root node is at rootOffset.
// The data is validated lazily, by the queries.
func NewBuffer(data []byte, rootOffset uint32) *Buffer {
	return &Buffer{data: data, root: rootOffset}
}

// Bytes returns the underlying serialized data.
func (b *Buffer) Bytes() []byte {
	return b.data
}

// Root returns the offset of the root node.
func (b *Buffer) Root() uint32 {
	return b.root
}

// SearchByLetters behaves exactly like (*Trie).SearchByLetters but reads
// the flat buffer. A malformed buffer fails the whole call.
func (b *Buffer) SearchByLetters(eligible letters.Set) ([]string, error) {
	results := []string{}
	word := make([]byte, 0, 32)
	var walk func(offset uint32) error
	walk = func(offset uint32) error {
		if len(word) > MaxDepth {
			return fmt.Errorf("%w: deeper than %d nodes", ErrMalformedBuffer, MaxDepth)
		}
		completesWord, numLinks, err := readHeader(b.data, offset)
		if err != nil {
			return err
		}
		if completesWord {
			results = append(results, string(word))
		}
		var seen uint32
		for i := uint32(0); i < numLinks; i++ {
			letter, childOffset, err := readLink(b.data, offset, i)
			if err != nil {
				return err
			}
			bit := uint32(1) << (letter - 'a')
			if seen&bit != 0 {
				return fmt.Errorf("%w: duplicate link %q at offset %d", ErrMalformedBuffer, letter, offset)
			}
			seen |= bit
			if !eligible.ContainsIndex(int(letter - 'a')) {
				continue
			}
			word = append(word, letter)
			if err := walk(childOffset); err != nil {
				return err
			}
			word = word[:len(word)-1]
		}
		return nil
	}
	if err := walk(b.root); err != nil {
		return nil, err
	}
	return results, nil
}

// Contains reports whether the exact word is stored in the buffer.
func (b *Buffer) Contains(word string) (bool, error) {
	offset := b.root
	for i := 0; i < len(word); i++ {
		_, numLinks, err := readHeader(b.data, offset)
		if err != nil {
			return false, err
		}
		found := false
		for j := uint32(0); j < numLinks; j++ {
			letter, childOffset, err := readLink(b.data, offset, j)
			if err != nil {
				return false, err
			}
			if letter == word[i] {
				offset = childOffset
				found = true
				break
			}
		}
		if !found {
			return false, nil
		}
	}
	completesWord, _, err := readHeader(b.data, offset)
	if err != nil {
		return false, err
	}
	return completesWord, nil
}
