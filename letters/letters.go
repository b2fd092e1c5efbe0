// Package letters provides a compact set of the 26 Latin letters. It is
// shared by the trie search, the letter-boxed solver, and the spelling bee.
package letters

import (
	"fmt"
	"math/bits"
	"strings"
)

// NumLetters is the size of the supported alphabet (a-z).
const NumLetters = 26

// Set is a bit mask of letters; bit 0 is A, bit 25 is Z. Case is ignored
// when building a Set.
type Set uint32

// All contains every letter a-z.
const All Set = 1<<NumLetters - 1

// Index returns the 0-25 position of an ASCII letter of either case, and
// false for anything else.
func Index(r rune) (int, bool) {
	switch {
	case r >= 'a' && r <= 'z':
		return int(r - 'a'), true
	case r >= 'A' && r <= 'Z':
		return int(r - 'A'), true
	}
	return 0, false
}

// FromString builds a set from the letters of s. Any rune outside a-z/A-Z
// is an error.
func FromString(s string) (Set, error) {
	var set Set
	for _, r := range s {
		idx, ok := Index(r)
		if !ok {
			return 0, fmt.Errorf("letter %q is not in a-z", r)
		}
		set |= 1 << idx
	}
	return set, nil
}

// Of builds a set from the letters of s, skipping runes outside a-z/A-Z.
func Of(s string) Set {
	var set Set
	for _, r := range s {
		if idx, ok := Index(r); ok {
			set |= 1 << idx
		}
	}
	return set
}

// Contains reports whether the letter is in the set.
func (s Set) Contains(r rune) bool {
	idx, ok := Index(r)
	return ok && s&(1<<idx) != 0
}

// ContainsIndex reports whether the letter at position idx (0 = a) is in the set.
func (s Set) ContainsIndex(idx int) bool {
	return idx >= 0 && idx < NumLetters && s&(1<<idx) != 0
}

// Count returns the number of distinct letters in the set.
func (s Set) Count() int {
	return bits.OnesCount32(uint32(s))
}

// Union returns the letters in either set.
func (s Set) Union(o Set) Set {
	return s | o
}

// SubsetOf reports whether every letter in s is also in o.
func (s Set) SubsetOf(o Set) bool {
	return s&^o == 0
}

// Lower returns the letters in ascending order, lowercase.
func (s Set) Lower() string {
	var sb strings.Builder
	for i := 0; i < NumLetters; i++ {
		if s&(1<<i) != 0 {
			sb.WriteByte(byte('a' + i))
		}
	}
	return sb.String()
}

// String returns the letters in ascending order, uppercase.
func (s Set) String() string {
	return strings.ToUpper(s.Lower())
}
