// Package randpool picks items from named pools so that no item comes up
// twice in a row and every item is used before any is used again.
package randpool

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"gopkg.in/yaml.v3"
	"lukechampine.com/frand"
)

// Never is the LastSelection of an item that has not been picked.
const Never int64 = -1

var ErrInvalidPool = errors.New("a pool needs at least two distinct items")

// Record is the durable state of one item in a pool.
type Record struct {
	Item          string
	Uses          int64
	LastSelection int64
}

// Store persists pools. NextOrdinal is shared by every pool in the store;
// it returns the current value of a durable counter and advances it.
type Store interface {
	Records(pool string) ([]Record, error)
	Upsert(pool string, r Record) error
	Delete(pool string, item string) error
	NextOrdinal() (int64, error)
}

// Selector picks items from one named pool.
type Selector struct {
	store Store
	name  string
}

// NewSelector makes the stored pool match items: new items are added
// unused, and stored items missing from items are dropped.
func NewSelector(store Store, name string, items []string) (*Selector, error) {
	items = lo.Uniq(items)
	if len(items) < 2 {
		return nil, fmt.Errorf("%w: pool %q has %d", ErrInvalidPool, name, len(items))
	}
	records, err := store.Records(name)
	if err != nil {
		return nil, err
	}
	stored := lo.SliceToMap(records, func(r Record) (string, struct{}) { return r.Item, struct{}{} })
	wanted := lo.SliceToMap(items, func(i string) (string, struct{}) { return i, struct{}{} })
	for _, item := range items {
		if _, ok := stored[item]; ok {
			continue
		}
		if err := store.Upsert(name, Record{Item: item, LastSelection: Never}); err != nil {
			return nil, err
		}
	}
	for _, r := range records {
		if _, ok := wanted[r.Item]; ok {
			continue
		}
		if err := store.Delete(name, r.Item); err != nil {
			return nil, err
		}
	}
	log.Debug().Str("pool", name).Int("num-items", len(items)).Msg("reconciled-pool")
	return &Selector{store: store, name: name}, nil
}

// Name returns the pool name.
func (s *Selector) Name() string {
	return s.name
}

// Item picks a least-used item other than the one picked last, uniformly
// at random. The picked item's use count jumps to the pool's highest count,
// or one past it if every count was equal.
func (s *Selector) Item() (string, error) {
	records, err := s.store.Records(s.name)
	if err != nil {
		return "", err
	}
	if len(records) < 2 {
		return "", fmt.Errorf("%w: pool %q has %d", ErrInvalidPool, s.name, len(records))
	}
	least, most, last := records[0].Uses, records[0].Uses, records[0].LastSelection
	for _, r := range records[1:] {
		least = min(least, r.Uses)
		most = max(most, r.Uses)
		last = max(last, r.LastSelection)
	}
	notLast := func(r Record, _ int) bool {
		return last == Never || r.LastSelection != last
	}
	candidates := lo.Filter(records, func(r Record, i int) bool {
		return r.Uses == least && notLast(r, i)
	})
	if len(candidates) == 0 {
		// Only the last pick is least used; take the least used of the rest.
		rest := lo.Filter(records, notLast)
		fewest := lo.MinBy(rest, func(a, b Record) bool { return a.Uses < b.Uses }).Uses
		candidates = lo.Filter(rest, func(r Record, _ int) bool { return r.Uses == fewest })
	}
	chosen := candidates[frand.Intn(len(candidates))]

	if chosen.Uses < most {
		chosen.Uses = most
	} else {
		chosen.Uses = most + 1
	}
	ordinal, err := s.store.NextOrdinal()
	if err != nil {
		return "", err
	}
	chosen.LastSelection = ordinal
	if err := s.store.Upsert(s.name, chosen); err != nil {
		return "", err
	}
	log.Debug().Str("pool", s.name).Str("item", chosen.Item).Int64("uses", chosen.Uses).
		Int64("ordinal", ordinal).Msg("picked-item")
	return chosen.Item, nil
}

// ReadPoolFile reads a YAML mapping of pool names to their items.
func ReadPoolFile(path string) (map[string][]string, error) {
	bts, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	pools := map[string][]string{}
	if err := yaml.Unmarshal(bts, &pools); err != nil {
		return nil, fmt.Errorf("could not parse pool file %s: %w", path, err)
	}
	return pools, nil
}
