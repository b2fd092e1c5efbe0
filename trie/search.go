package trie

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/domino14/wordpuzzles/letters"
)

// SearchAll runs one query per letter set concurrently against s and
// returns the results in the same order as sets. s must be safe for
// concurrent reads, which both Buffer and a fully built Trie are.
func SearchAll(ctx context.Context, s Searcher, sets []letters.Set) ([][]string, error) {
	results := make([][]string, len(sets))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, set := range sets {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			words, err := s.SearchByLetters(set)
			if err != nil {
				return err
			}
			results[i] = words
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
