package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	ConfigDataPath          = "data-path"
	ConfigTriePath          = "trie-path"
	ConfigWordListPath      = "wordlist-path"
	ConfigRankDBPath        = "rank-db-path"
	ConfigRandomDBPath      = "random-db-path"
	ConfigPuzzleDBPath      = "puzzle-db-path"
	ConfigPoolsPath         = "pools-path"
	ConfigNatsURL           = "nats-url"
	ConfigDebug             = "debug"
	ConfigDefaultDictionary = "default-dictionary"
	ConfigCPUProfile        = "cpu-profile"
)

// Config wraps a viper instance. Values come from, in increasing priority:
// defaults, an optional config file, WORDPUZZLES_* environment variables,
// and command-line flags.
type Config struct {
	*viper.Viper
	sync.Mutex
}

// pathKeys are adjusted by AdjustRelativePaths.
var pathKeys = []string{
	ConfigDataPath, ConfigTriePath, ConfigWordListPath, ConfigRankDBPath,
	ConfigRandomDBPath, ConfigPuzzleDBPath, ConfigPoolsPath,
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(ConfigDataPath, "./data")
	v.SetDefault(ConfigTriePath, "./data/tries")
	v.SetDefault(ConfigWordListPath, "./data/wordlists")
	v.SetDefault(ConfigRankDBPath, "./data/words.db")
	v.SetDefault(ConfigRandomDBPath, "./data/random.db")
	v.SetDefault(ConfigPuzzleDBPath, "./data/puzzles.db")
	v.SetDefault(ConfigPoolsPath, "./data/pools.yaml")
	v.SetDefault(ConfigNatsURL, "nats://localhost:4222")
	v.SetDefault(ConfigDebug, false)
	v.SetDefault(ConfigDefaultDictionary, "wiktionary")
	v.SetDefault(ConfigCPUProfile, "")
}

// DefaultConfig returns a config with only the default values set. It is
// mostly useful for tests.
func DefaultConfig() *Config {
	c := &Config{Viper: viper.New()}
	setDefaults(c.Viper)
	return c
}

// Load parses command-line arguments and the environment into the config.
// A config file is read if --config is given.
func (c *Config) Load(args []string) error {
	c.Viper = viper.New()
	setDefaults(c.Viper)

	fs := pflag.NewFlagSet("wordpuzzles", pflag.ContinueOnError)
	fs.String("config", "", "path to a config file (yaml, toml or json)")
	fs.String(ConfigDataPath, c.GetString(ConfigDataPath), "directory holding data files")
	fs.String(ConfigTriePath, c.GetString(ConfigTriePath), "directory holding serialized tries")
	fs.String(ConfigWordListPath, c.GetString(ConfigWordListPath), "directory holding raw word lists")
	fs.String(ConfigRankDBPath, c.GetString(ConfigRankDBPath), "sqlite database of word frequencies")
	fs.String(ConfigRandomDBPath, c.GetString(ConfigRandomDBPath), "sqlite database for random pools")
	fs.String(ConfigPuzzleDBPath, c.GetString(ConfigPuzzleDBPath), "sqlite database of letter boxed puzzles")
	fs.String(ConfigPoolsPath, c.GetString(ConfigPoolsPath), "yaml file describing random pools")
	fs.String(ConfigNatsURL, c.GetString(ConfigNatsURL), "NATS server URL")
	fs.Bool(ConfigDebug, false, "debug logging on")
	fs.String(ConfigDefaultDictionary, c.GetString(ConfigDefaultDictionary), "name of the default dictionary trie")
	fs.String(ConfigCPUProfile, "", "write a CPU profile to this path")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := c.BindPFlags(fs); err != nil {
		return err
	}

	c.SetEnvPrefix("wordpuzzles")
	c.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	c.AutomaticEnv()

	if cfgFile, _ := fs.GetString("config"); cfgFile != "" {
		c.SetConfigFile(cfgFile)
		if err := c.ReadInConfig(); err != nil {
			return fmt.Errorf("could not read config file: %w", err)
		}
	}
	return nil
}

// AdjustRelativePaths makes every relative ./ path setting relative to
// basePath instead of the working directory.
func (c *Config) AdjustRelativePaths(basePath string) {
	c.Lock()
	defer c.Unlock()
	basePath = FindBasePath(basePath)
	for _, key := range pathKeys {
		p := c.GetString(key)
		if strings.HasPrefix(p, "./") {
			np := filepath.Join(basePath, p)
			log.Debug().Str("key", key).Str("path", np).Msg("adjusted-relative-path")
			c.Set(key, np)
		}
	}
}

// FindBasePath walks up from path looking for a data directory, falling back
// to path itself.
func FindBasePath(path string) string {
	p := path
	for {
		if _, err := os.Stat(filepath.Join(p, "data")); err == nil {
			return p
		}
		parent := filepath.Dir(p)
		if parent == p {
			return path
		}
		p = parent
	}
}

// SanitizedSettings returns all settings for logging.
func (c *Config) SanitizedSettings() map[string]any {
	return c.AllSettings()
}
