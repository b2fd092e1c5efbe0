package trie

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/wordpuzzles/cache"
	"github.com/domino14/wordpuzzles/config"
	"github.com/domino14/wordpuzzles/letters"
)

func TestWriteReadFile(t *testing.T) {
	is := is.New(t)
	data := buildTrie(t, smallList).Serialize()
	path := filepath.Join(t.TempDir(), "small.trie")
	is.NoErr(WriteFile(path, data))
	got, err := ReadFile(path)
	is.NoErr(err)
	is.Equal(got, data)
}

func TestReadFileDetectsCorruption(t *testing.T) {
	is := is.New(t)
	data := buildTrie(t, smallList).Serialize()
	path := filepath.Join(t.TempDir(), "small.trie")
	is.NoErr(WriteFile(path, data))

	raw, err := os.ReadFile(path)
	is.NoErr(err)
	raw[len(raw)-1] ^= 0xff
	is.NoErr(os.WriteFile(path, raw, 0o644))
	_, err = ReadFile(path)
	is.True(errors.Is(err, ErrMalformedBuffer))

	is.NoErr(os.WriteFile(path, []byte("nope, not a trie"), 0o644))
	_, err = ReadFile(path)
	is.True(errors.Is(err, ErrMalformedBuffer))
}

func TestBuildFromWordList(t *testing.T) {
	is := is.New(t)
	list := "apple\n  banana \n\nCherry\ndon't\ndate\n"
	tr, skipped, err := BuildFromWordList(strings.NewReader(list))
	is.NoErr(err)
	is.Equal(skipped, 3) // blank, Cherry, don't
	words, err := tr.SearchByLetters(letters.All)
	is.NoErr(err)
	is.Equal(words, []string{"apple", "banana", "date"})
}

func testConfig(t *testing.T) *config.Config {
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.Set(config.ConfigTriePath, filepath.Join(dir, "tries"))
	cfg.Set(config.ConfigWordListPath, filepath.Join(dir, "lists"))
	if err := os.MkdirAll(filepath.Join(dir, "lists"), 0o755); err != nil {
		t.Fatal(err)
	}
	return cfg
}

func TestLoadRebuildsAndCaches(t *testing.T) {
	is := is.New(t)
	cfg := testConfig(t)
	listPath := filepath.Join(cfg.GetString(config.ConfigWordListPath), "tiny.txt")
	is.NoErr(os.WriteFile(listPath, []byte(strings.Join(smallList, "\n")), 0o644))

	objCache := cache.New()
	buf, err := Load(cfg, objCache, "tiny")
	is.NoErr(err)
	words, err := buf.SearchByLetters(letters.All)
	is.NoErr(err)
	is.Equal(words, sorted(smallList))

	// The rebuilt trie was written back.
	triePath := filepath.Join(cfg.GetString(config.ConfigTriePath), "tiny.trie")
	saved, err := ReadFile(triePath)
	is.NoErr(err)
	is.Equal(saved, buf.Bytes())

	again, err := Load(cfg, objCache, "tiny")
	is.NoErr(err)
	is.True(again == buf)

	// A fresh cache reads the saved file even without the word list.
	is.NoErr(os.Remove(listPath))
	fresh, err := Load(cfg, cache.New(), "tiny")
	is.NoErr(err)
	is.Equal(fresh.Bytes(), buf.Bytes())
}

func TestLoadMissingEverything(t *testing.T) {
	is := is.New(t)
	cfg := testConfig(t)
	_, err := Load(cfg, cache.New(), "nothing")
	is.True(errors.Is(err, os.ErrNotExist))
}
