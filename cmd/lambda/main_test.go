package main

import (
	"context"
	"strings"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/wordpuzzles/bot"
	"github.com/domino14/wordpuzzles/config"
	"github.com/domino14/wordpuzzles/letterbox"
	"github.com/domino14/wordpuzzles/wordrank"
)

func TestHandleRequest(t *testing.T) {
	is := is.New(t)
	cfg = config.DefaultConfig()
	ranker = wordrank.NewMapRanker([]string{"abcdef", "fghijkl", "la"})
	evt := bot.LambdaEvent{
		PuzzleID: "foo",
		Definition: letterbox.Definition{
			Sides:      []string{"ABC", "DEF", "GHI", "JKL"},
			Dictionary: []string{"ABCDEF", "FGHIJKL", "LA"},
			Par:        2,
		},
	}
	ret, err := HandleRequest(context.Background(), evt)
	is.NoErr(err)
	is.True(strings.HasPrefix(ret, "There is one two-word solution and one three-word solution."))
}

func TestHandleRequestBadPuzzle(t *testing.T) {
	is := is.New(t)
	cfg = config.DefaultConfig()
	ranker = nil
	evt := bot.LambdaEvent{
		Definition: letterbox.Definition{Sides: []string{"ABC"}},
	}
	_, err := HandleRequest(context.Background(), evt)
	is.True(err != nil)
}
