package trie

import (
	"encoding/binary"
	"fmt"
	"math"

	"github.com/rs/zerolog/log"
)

// Serialized node layout, packed, little-endian:
//
//	[1 byte completes-word flag][uint32 link count]
//	link count × [1 byte ascii letter][uint32 byte offset of child]
const (
	HeaderSize = 5
	LinkSize   = 5
	// MaxDepth bounds how deep a buffer is followed. Real words are much
	// shorter; anything deeper is treated as a cycle in a corrupt buffer.
	MaxDepth = 1024
)

var byteOrder = binary.LittleEndian

// serializer writes nodes into buf. pos is where the next write lands and
// end is the high-water mark, so the writer can seek back to patch link
// tables and then resume at the end.
type serializer struct {
	t       *Trie
	buf     []byte
	pos     int
	end     int
	offsets []int64
}

func (s *serializer) seek(pos int) {
	s.pos = pos
}

func (s *serializer) write(p []byte) {
	if need := s.pos + len(p); need > len(s.buf) {
		s.buf = append(s.buf, make([]byte, need-len(s.buf))...)
	}
	copy(s.buf[s.pos:], p)
	s.pos += len(p)
	if s.pos > s.end {
		s.end = s.pos
	}
}

func (s *serializer) writeHeader(completesWord bool, numLinks int) {
	var hdr [HeaderSize]byte
	if completesWord {
		hdr[0] = 1
	}
	byteOrder.PutUint32(hdr[1:], uint32(numLinks))
	s.write(hdr[:])
}

func (s *serializer) writeLink(letter byte, offset uint32) {
	var l [LinkSize]byte
	l[0] = letter
	byteOrder.PutUint32(l[1:], offset)
	s.write(l[:])
}

// serializeNode appends the node and everything under it, returning the
// node's offset. Space for the link table is reserved with zeroed entries
// before the children are written, because the children's offsets are only
// known once they have been written further along the buffer.
func (s *serializer) serializeNode(idx uint32) uint32 {
	if s.offsets[idx] >= 0 {
		return uint32(s.offsets[idx])
	}
	n := &s.t.nodes[idx]
	offset := s.end
	if uint64(offset) > math.MaxUint32 {
		panic("serialized trie exceeds 4GB")
	}
	s.seek(offset)
	s.writeHeader(n.completesWord, len(n.links))
	for range n.links {
		s.writeLink(0, 0)
	}
	s.offsets[idx] = int64(offset)

	childOffsets := make([]uint32, len(n.links))
	for i, l := range n.links {
		childOffsets[i] = s.serializeNode(l.child)
	}

	resume := s.end
	s.seek(offset + HeaderSize)
	for i, l := range n.links {
		s.writeLink(l.letter, childOffsets[i])
	}
	s.seek(resume)
	return uint32(offset)
}

// Serialize returns the trie as a flat buffer with the root at offset 0.
// The result is cached until the next Insert that changes the trie, so
// repeated calls are cheap. The returned slice must not be modified.
func (t *Trie) Serialize() []byte {
	if t.serialized != nil {
		return t.serialized
	}
	s := &serializer{
		t:       t,
		buf:     make([]byte, 0, len(t.nodes)*(HeaderSize+LinkSize)),
		offsets: make([]int64, len(t.nodes)),
	}
	for i := range s.offsets {
		s.offsets[i] = -1
	}
	s.serializeNode(0)
	t.serialized = s.buf[:s.end]
	log.Debug().Int("num-nodes", len(t.nodes)).Int("num-bytes", s.end).Msg("serialized-trie")
	return t.serialized
}

// readHeader decodes the node header at offset and checks that the whole
// link table fits in buf.
func readHeader(buf []byte, offset uint32) (bool, uint32, error) {
	if uint64(offset)+HeaderSize > uint64(len(buf)) {
		return false, 0, fmt.Errorf("%w: header at offset %d past end (%d bytes)",
			ErrMalformedBuffer, offset, len(buf))
	}
	completesWord := buf[offset] != 0
	numLinks := byteOrder.Uint32(buf[offset+1:])
	if uint64(offset)+HeaderSize+uint64(numLinks)*LinkSize > uint64(len(buf)) {
		return false, 0, fmt.Errorf("%w: %d links at offset %d past end (%d bytes)",
			ErrMalformedBuffer, numLinks, offset, len(buf))
	}
	return completesWord, numLinks, nil
}

// readLink decodes the i-th link of the node at offset. The caller must have
// validated the header.
func readLink(buf []byte, offset uint32, i uint32) (byte, uint32, error) {
	pos := offset + HeaderSize + i*LinkSize
	letter := buf[pos]
	if letter < 'a' || letter > 'z' {
		return 0, 0, fmt.Errorf("%w: link letter %q at offset %d", ErrMalformedBuffer, letter, pos)
	}
	return letter, byteOrder.Uint32(buf[pos+1:]), nil
}

// Deserialize parses the node at offset, and everything it links to, back
// into an in-memory Trie.
func Deserialize(buf []byte, offset uint32) (*Trie, error) {
	t := &Trie{}
	if _, err := t.parseNode(buf, offset, 0); err != nil {
		return nil, err
	}
	log.Debug().Int("num-nodes", len(t.nodes)).Int("num-words", t.numWords).Msg("deserialized-trie")
	return t, nil
}

func (t *Trie) parseNode(buf []byte, offset uint32, depth int) (uint32, error) {
	if depth > MaxDepth {
		return 0, fmt.Errorf("%w: deeper than %d nodes", ErrMalformedBuffer, MaxDepth)
	}
	completesWord, numLinks, err := readHeader(buf, offset)
	if err != nil {
		return 0, err
	}
	idx := uint32(len(t.nodes))
	t.nodes = append(t.nodes, node{completesWord: completesWord})
	if completesWord {
		t.numWords++
	}
	links := make([]link, 0, numLinks)
	var seen uint32
	for i := uint32(0); i < numLinks; i++ {
		letter, childOffset, err := readLink(buf, offset, i)
		if err != nil {
			return 0, err
		}
		bit := uint32(1) << (letter - 'a')
		if seen&bit != 0 {
			return 0, fmt.Errorf("%w: duplicate link %q at offset %d", ErrMalformedBuffer, letter, offset)
		}
		seen |= bit
		child, err := t.parseNode(buf, childOffset, depth+1)
		if err != nil {
			return 0, err
		}
		links = append(links, link{letter: letter, child: child})
	}
	sortLinks(links)
	t.nodes[idx].links = links
	return idx, nil
}
