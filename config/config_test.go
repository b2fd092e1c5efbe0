package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matryer/is"
)

func TestDefaults(t *testing.T) {
	is := is.New(t)
	cfg := DefaultConfig()
	is.Equal(cfg.GetString(ConfigTriePath), "./data/tries")
	is.Equal(cfg.GetBool(ConfigDebug), false)
	is.Equal(cfg.GetString(ConfigDefaultDictionary), "wiktionary")
}

func TestLoadFlagsAndEnv(t *testing.T) {
	is := is.New(t)
	t.Setenv("WORDPUZZLES_NATS_URL", "nats://example:4222")
	cfg := &Config{}
	err := cfg.Load([]string{"--debug", "--trie-path", "/tmp/tries"})
	is.NoErr(err)
	is.True(cfg.GetBool(ConfigDebug))
	is.Equal(cfg.GetString(ConfigTriePath), "/tmp/tries")
	is.Equal(cfg.GetString(ConfigNatsURL), "nats://example:4222")
}

func TestAdjustRelativePaths(t *testing.T) {
	is := is.New(t)
	base := t.TempDir()
	is.NoErr(os.Mkdir(filepath.Join(base, "data"), 0o755))
	cfg := DefaultConfig()
	cfg.Set(ConfigRankDBPath, "/abs/words.db")
	cfg.AdjustRelativePaths(base)
	is.Equal(cfg.GetString(ConfigTriePath), filepath.Join(base, "data", "tries"))
	is.Equal(cfg.GetString(ConfigRankDBPath), "/abs/words.db")
}
