package trie

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/domino14/wordpuzzles/cache"
	"github.com/domino14/wordpuzzles/config"
)

const (
	CacheKeyPrefix = "trie:"
)

// CacheLoadFunc loads a named dictionary trie for the object cache. The
// serialized file is preferred; if it is missing or corrupt the trie is
// rebuilt from the raw word list and the file is written back so the next
// load is fast.
func CacheLoadFunc(cfg *config.Config, key string) (any, error) {
	name := strings.TrimPrefix(key, CacheKeyPrefix)
	triePath := filepath.Join(cfg.GetString(config.ConfigTriePath), name+".trie")

	data, err := ReadFile(triePath)
	if err == nil {
		log.Debug().Str("path", triePath).Msg("loaded-trie-file")
		return NewBuffer(data, 0), nil
	}
	log.Warn().Err(err).Str("path", triePath).Msg("could-not-load-trie-rebuilding-from-word-list")

	listPath := filepath.Join(cfg.GetString(config.ConfigWordListPath), name+".txt")
	f, err := os.Open(listPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	t, skipped, err := BuildFromWordList(f)
	if err != nil {
		return nil, err
	}
	data = t.Serialize()
	log.Info().Int("num-words", t.NumWords()).Int("skipped", skipped).
		Int("num-nodes", t.NumNodes()).Msg("rebuilt-trie")
	if err := os.MkdirAll(filepath.Dir(triePath), 0o755); err != nil {
		log.Err(err).Msg("could-not-create-trie-dir")
	} else if err := WriteFile(triePath, data); err != nil {
		log.Err(err).Msg("could-not-save-rebuilt-trie")
	}
	return NewBuffer(data, 0), nil
}

// Load returns the named dictionary as a searchable Buffer, loading it
// through objCache so that it is only read once per cache.
func Load(cfg *config.Config, objCache *cache.ObjectCache, name string) (*Buffer, error) {
	obj, err := objCache.Load(cfg, CacheKeyPrefix+name, CacheLoadFunc)
	if err != nil {
		return nil, err
	}
	ret, ok := obj.(*Buffer)
	if !ok {
		return nil, errors.New("cached object is not a trie buffer")
	}
	return ret, nil
}
