package main

import (
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/wordpuzzles/bot"
	"github.com/domino14/wordpuzzles/config"
	"github.com/domino14/wordpuzzles/letterbox"
	"github.com/domino14/wordpuzzles/randpool"
	"github.com/domino14/wordpuzzles/wordrank"
)

const (
	Channel = "wordpuzzles.bot"
)

func main() {
	// Determine the directory of the executable. We will use this
	// directory to find the data files if an absolute path is not
	// provided for these!
	ex, err := os.Executable()
	if err != nil {
		panic(err)
	}
	exPath := filepath.Dir(ex)

	cfg := &config.Config{}
	if err := cfg.Load(os.Args[1:]); err != nil {
		panic(err)
	}
	cfg.AdjustRelativePaths(exPath)

	output := zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	output.FormatLevel = func(i interface{}) string {
		return strings.ToUpper(fmt.Sprintf("| %-6s|", i))
	}
	log.Logger = zerolog.New(output).With().Timestamp().Logger()
	if cfg.GetBool(config.ConfigDebug) {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	log.Info().Interface("config", cfg.SanitizedSettings()).Str("exPath", exPath).Msg("loaded-config")

	var ranker wordrank.Ranker
	rankPath := cfg.GetString(config.ConfigRankDBPath)
	if _, err := os.Stat(rankPath); err == nil {
		r, err := wordrank.OpenSQLiteRanker(rankPath)
		if err != nil {
			log.Fatal().Err(err).Msg("could-not-open-rank-database")
		}
		defer r.Close()
		ranker = r
	} else {
		log.Warn().Str("path", rankPath).Msg("no-rank-database-every-word-is-rare")
	}

	archive, err := letterbox.OpenArchive(cfg.GetString(config.ConfigPuzzleDBPath))
	if err != nil {
		log.Fatal().Err(err).Msg("could-not-open-puzzle-archive")
	}
	defer archive.Close()

	store, err := randpool.OpenSQLiteStore(cfg.GetString(config.ConfigRandomDBPath))
	if err != nil {
		log.Fatal().Err(err).Msg("could-not-open-random-database")
	}
	defer store.Close()

	pools, err := randpool.ReadPoolFile(cfg.GetString(config.ConfigPoolsPath))
	if err != nil {
		log.Warn().Err(err).Msg("no-pools-loaded")
	}

	idleConnsClosed := make(chan struct{})
	sig := make(chan os.Signal, 1)
	go func() {
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		// We received an interrupt signal, shut down.
		log.Info().Msg("got quit signal...")
		close(idleConnsClosed)
	}()

	b := bot.NewBot(cfg, ranker, archive, store, pools)
	if err := b.Restore(); err != nil {
		log.Err(err).Msg("could-not-restore-puzzle")
	}
	go bot.Main(Channel, b)

	<-idleConnsClosed
	log.Info().Msg("server gracefully shutting down")
}
