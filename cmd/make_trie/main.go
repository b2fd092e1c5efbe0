package main

import (
	"flag"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/domino14/wordpuzzles/trie"
)

func main() {
	filename := flag.String("filename", "", "filename of the word list, one word per line")
	output := flag.String("output", "", "where to write the trie (defaults to the word list name with a .trie extension)")
	flag.Parse()

	if *filename == "" {
		log.Fatal().Msg("a word list -filename is required")
	}
	out := *output
	if out == "" {
		out = strings.TrimSuffix(*filename, filepath.Ext(*filename)) + ".trie"
	}
	f, err := os.Open(*filename)
	if err != nil {
		log.Fatal().Err(err).Msg("could-not-open-word-list")
	}
	defer f.Close()

	t, skipped, err := trie.BuildFromWordList(f)
	if err != nil {
		log.Fatal().Err(err).Msg("could-not-build-trie")
	}
	if err := trie.WriteFile(out, t.Serialize()); err != nil {
		log.Fatal().Err(err).Msg("could-not-write-trie")
	}
	log.Info().Int("num-words", t.NumWords()).Int("num-nodes", t.NumNodes()).
		Int("skipped", skipped).Str("output", out).Msg("wrote-trie")
}
