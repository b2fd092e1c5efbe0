package trie

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cespare/xxhash"
	"github.com/rs/zerolog/log"
)

// FileMagicNumber starts every trie file. It is followed by the little-endian
// xxhash64 of the payload and then the serialized trie itself.
const FileMagicNumber = "wtri"

const fileHeaderSize = len(FileMagicNumber) + 8

// WriteFile saves serialized trie data to path.
func WriteFile(path string, data []byte) error {
	var hdr [fileHeaderSize]byte
	copy(hdr[:], FileMagicNumber)
	byteOrder.PutUint64(hdr[len(FileMagicNumber):], xxhash.Sum64(data))

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err = f.Write(hdr[:]); err == nil {
		_, err = f.Write(data)
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("could not write trie file %s: %w", path, err)
	}
	log.Debug().Str("path", path).Int("num-bytes", len(data)).Msg("wrote-trie-file")
	return nil
}

// ReadFile loads serialized trie data written by WriteFile, verifying its
// magic number and checksum.
func ReadFile(path string) ([]byte, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if len(raw) < fileHeaderSize || !bytes.Equal(raw[:len(FileMagicNumber)], []byte(FileMagicNumber)) {
		return nil, fmt.Errorf("%w: %s is not a trie file", ErrMalformedBuffer, path)
	}
	payload := raw[fileHeaderSize:]
	want := byteOrder.Uint64(raw[len(FileMagicNumber):])
	if got := xxhash.Sum64(payload); got != want {
		return nil, fmt.Errorf("%w: checksum mismatch in %s (%x != %x)", ErrMalformedBuffer, path, got, want)
	}
	return payload, nil
}

// BuildFromWordList inserts one word per line from r. Lines are trimmed;
// empty lines and words with anything other than a-z are skipped and
// counted in the second return value.
func BuildFromWordList(r io.Reader) (*Trie, int, error) {
	t := New()
	skipped := 0
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())
		if word == "" {
			skipped++
			continue
		}
		if err := t.Insert(word); err != nil {
			skipped++
			continue
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, skipped, err
	}
	log.Debug().Int("num-words", t.NumWords()).Int("skipped", skipped).
		Int("num-nodes", t.NumNodes()).Msg("built-trie")
	return t, skipped, nil
}
