package main

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/domino14/wordpuzzles/bot"
	"github.com/domino14/wordpuzzles/config"
	"github.com/domino14/wordpuzzles/letterbox"
	"github.com/domino14/wordpuzzles/wordrank"
)

var cfg *config.Config
var nc *nats.Conn
var ranker wordrank.Ranker

func HandleRequest(ctx context.Context, evt bot.LambdaEvent) (string, error) {
	// Return something but we have to block till we're done.

	logger := log.With().
		Str("puzzleID", evt.PuzzleID).
		Logger()

	p, err := letterbox.NewPuzzle(evt.Definition, ranker)
	if err != nil {
		return "", err
	}
	length := evt.Length
	if length == 0 {
		length = 2
	}
	sols := p.SolutionsByLength(length)
	logger.Info().Int("length", length).Int("num-solutions", sols.Len()).Msg("solved")

	// The return value is informational. The reply channel is what the
	// requester listens to.
	resp := &bot.Response{
		Sides:     p.Sides(),
		Par:       p.Par(),
		Solutions: sols.ToLists(),
		Statement: p.QuantityStatement(),
	}
	data, err := json.Marshal(resp)
	if err != nil {
		return "", err
	}
	if evt.ReplyChannel != "" && nc != nil {
		logger.Info().Msg("solve-success-sending-via-nats")
		err = retry.Do(
			func() error {
				// We're just waiting for an acknowledgement. The actual
				// data doesn't matter.
				_, err := nc.Request(evt.ReplyChannel, data, 3*time.Second)
				return err
			},
			retry.Context(ctx),
			retry.DelayType(retry.BackOffDelay),
			retry.OnRetry(func(n uint, err error) {
				logger.Err(err).Uint("n", n).
					Msg("did-not-receive-ack-try-again")
			}),
		)
		if err != nil {
			logger.Err(err).Msg("solve-reply-failed")
		}
	}
	logger.Info().Msg("exiting-fn")
	return resp.Statement, nil
}

func main() {
	ex, err := os.Executable()
	if err != nil {
		panic(err)
	}
	exPath := filepath.Dir(ex)

	cfg = &config.Config{}
	if err := cfg.Load(os.Args[1:]); err != nil {
		panic(err)
	}
	log.Info().Msgf("Loaded config: %v", cfg.SanitizedSettings())
	cfg.AdjustRelativePaths(exPath)
	if cfg.GetBool(config.ConfigDebug) {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	if _, err := os.Stat(cfg.GetString(config.ConfigRankDBPath)); err == nil {
		r, err := wordrank.OpenSQLiteRanker(cfg.GetString(config.ConfigRankDBPath))
		if err != nil {
			log.Fatal().Err(err).Msg("could-not-open-rank-database")
		}
		ranker = r
	}

	nc, err = nats.Connect(cfg.GetString(config.ConfigNatsURL))
	if err != nil {
		log.Fatal().AnErr("natsConnectErr", err).Msg(":(")
	}

	lambda.Start(HandleRequest)
}
