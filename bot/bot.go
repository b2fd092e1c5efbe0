// Package bot serves letter boxed puzzles and fair random picks over NATS
// request/reply. Requests and responses are JSON.
package bot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"runtime"
	"sync"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/rs/zerolog/log"

	"github.com/domino14/wordpuzzles/cache"
	"github.com/domino14/wordpuzzles/config"
	"github.com/domino14/wordpuzzles/letterbox"
	"github.com/domino14/wordpuzzles/letters"
	"github.com/domino14/wordpuzzles/randpool"
	"github.com/domino14/wordpuzzles/trie"
	"github.com/domino14/wordpuzzles/wordrank"
)

const (
	OpLoad      = "load"
	OpSolve     = "solve"
	OpStatement = "statement"
	OpReact     = "react"
	OpHint      = "hint"
	OpExtra     = "extra"
	OpSearch    = "search"
	OpPick      = "pick"

	searchTimeout = 10 * time.Second
)

var errNoPuzzle = errors.New("no puzzle loaded")

type Request struct {
	Op         string                `json:"op"`
	Definition *letterbox.Definition `json:"definition,omitempty"`
	// Page is a puzzle page or game data JSON, used when Definition is nil.
	Page       string   `json:"page,omitempty"`
	Length     int      `json:"length,omitempty"`
	Message    string   `json:"message,omitempty"`
	LetterSets []string `json:"letter_sets,omitempty"`
	Dictionary string   `json:"dictionary,omitempty"`
	Pool       string   `json:"pool,omitempty"`
}

type Response struct {
	Error     string     `json:"error,omitempty"`
	Sides     []string   `json:"sides,omitempty"`
	Par       int        `json:"par,omitempty"`
	Solutions [][]string `json:"solutions,omitempty"`
	Statement string     `json:"statement,omitempty"`
	Reactions []string   `json:"reactions,omitempty"`
	Words     []string   `json:"words,omitempty"`
	WordLists [][]string `json:"word_lists,omitempty"`
	Item      string     `json:"item,omitempty"`
}

func errorResponse(message string, err error) *Response {
	msg := message
	if err != nil {
		msg = fmt.Sprintf("%s: %s", msg, err.Error())
	}
	return &Response{Error: msg}
}

// Bot owns the current puzzle. Requests arrive on NATS goroutines, so the
// puzzle is only touched with the lock held.
type Bot struct {
	sync.Mutex
	config  *config.Config
	cache   *cache.ObjectCache
	ranker  wordrank.Ranker
	archive *letterbox.Archive
	store   randpool.Store
	pools   map[string][]string

	puzzle   *letterbox.Puzzle
	loadedAt int64
}

// NewBot wires the bot's collaborators. archive may be nil, in which case
// puzzles are not persisted; store and pools may be nil if picking is not
// needed.
func NewBot(cfg *config.Config, ranker wordrank.Ranker, archive *letterbox.Archive,
	store randpool.Store, pools map[string][]string) *Bot {
	return &Bot{
		config:  cfg,
		cache:   cache.New(),
		ranker:  ranker,
		archive: archive,
		store:   store,
		pools:   pools,
	}
}

// Restore picks up the most recently saved puzzle, if any.
func (bot *Bot) Restore() error {
	if bot.archive == nil {
		return nil
	}
	snap, err := bot.archive.Latest()
	if err != nil || snap == nil {
		return err
	}
	p, err := letterbox.Restore(*snap, bot.ranker)
	if err != nil {
		return err
	}
	bot.Lock()
	defer bot.Unlock()
	bot.setPuzzle(p, snap.Timestamp)
	log.Info().Int64("timestamp", snap.Timestamp).Msg("restored-puzzle")
	return nil
}

func (bot *Bot) setPuzzle(p *letterbox.Puzzle, ts int64) {
	bot.puzzle = p
	bot.loadedAt = ts
	p.OnSolved = func(int, *letterbox.SolutionSet) {
		bot.save()
	}
}

func (bot *Bot) save() {
	if bot.archive == nil || bot.puzzle == nil {
		return
	}
	if err := bot.archive.Save(bot.puzzle.Snapshot(bot.loadedAt)); err != nil {
		log.Err(err).Msg("could-not-save-puzzle")
	}
}

func (bot *Bot) load(req *Request) *Response {
	var def letterbox.Definition
	if req.Definition != nil {
		def = *req.Definition
	} else {
		var err error
		def, err = letterbox.ParseGameData([]byte(req.Page))
		if err != nil {
			return errorResponse("Could not parse puzzle", err)
		}
	}
	p, err := letterbox.NewPuzzle(def, bot.ranker)
	if err != nil {
		return errorResponse("Could not load puzzle", err)
	}
	bot.setPuzzle(p, time.Now().Unix())
	bot.save()
	return &Response{Sides: p.Sides(), Par: p.Par()}
}

func (bot *Bot) dictionary(name string) (*trie.Buffer, error) {
	if name == "" {
		name = bot.config.GetString(config.ConfigDefaultDictionary)
	}
	return trie.Load(bot.config, bot.cache, name)
}

func (bot *Bot) search(req *Request) *Response {
	sets := make([]letters.Set, len(req.LetterSets))
	for i, ls := range req.LetterSets {
		s, err := letters.FromString(ls)
		if err != nil {
			return errorResponse("Bad letters", err)
		}
		sets[i] = s
	}
	dict, err := bot.dictionary(req.Dictionary)
	if err != nil {
		return errorResponse("Could not load dictionary", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), searchTimeout)
	defer cancel()
	lists, err := trie.SearchAll(ctx, dict, sets)
	if err != nil {
		return errorResponse("Search failed", err)
	}
	return &Response{WordLists: lists}
}

func (bot *Bot) pick(req *Request) *Response {
	if bot.store == nil {
		return errorResponse("Picking is not configured", nil)
	}
	items, ok := bot.pools[req.Pool]
	if !ok {
		return errorResponse("No such pool "+req.Pool, nil)
	}
	sel, err := randpool.NewSelector(bot.store, req.Pool, items)
	if err != nil {
		return errorResponse("Bad pool", err)
	}
	item, err := sel.Item()
	if err != nil {
		return errorResponse("Could not pick", err)
	}
	return &Response{Item: item}
}

// handlePuzzle runs the requests that need a loaded puzzle. The caller
// holds the lock.
func (bot *Bot) handlePuzzle(req *Request) *Response {
	if bot.puzzle == nil {
		return errorResponse("Cannot "+req.Op, errNoPuzzle)
	}
	p := bot.puzzle
	switch req.Op {
	case OpSolve:
		length := req.Length
		if length == 0 {
			length = 2
		}
		return &Response{Solutions: p.SolutionsByLength(length).ToLists()}
	case OpStatement:
		return &Response{Statement: p.QuantityStatement()}
	case OpReact:
		before := len(p.UserFoundWords())
		reactions := p.ReactToWords(letterbox.Tokenize(req.Message))
		if len(p.UserFoundWords()) != before {
			bot.save()
		}
		resp := &Response{Reactions: make([]string, len(reactions))}
		for i, r := range reactions {
			resp.Reactions[i] = string(r)
		}
		return resp
	case OpHint:
		w, ok := p.HintWord()
		if !ok {
			return &Response{}
		}
		bot.save()
		return &Response{Words: []string{w.String()}}
	case OpExtra:
		dict, err := bot.dictionary(req.Dictionary)
		if err != nil {
			return errorResponse("Could not load dictionary", err)
		}
		words, err := p.ExtraWords(dict)
		if err != nil {
			return errorResponse("Could not search dictionary", err)
		}
		return &Response{Words: words}
	}
	return errorResponse("Unknown op "+req.Op, nil)
}

func (bot *Bot) handle(data []byte) *Response {
	req := &Request{}
	if err := json.Unmarshal(data, req); err != nil {
		return errorResponse("Could not parse request", err)
	}
	log.Debug().Str("op", req.Op).Msg("handling-request")
	switch req.Op {
	case OpSearch:
		return bot.search(req)
	case OpPick:
		return bot.pick(req)
	}
	bot.Lock()
	defer bot.Unlock()
	if req.Op == OpLoad {
		return bot.load(req)
	}
	return bot.handlePuzzle(req)
}

func Main(channel string, bot *Bot) {
	nc, err := nats.Connect(bot.config.GetString(config.ConfigNatsURL))
	if err != nil {
		log.Fatal().Err(err).Msg("could-not-connect-to-nats")
	}
	nc.Subscribe(channel, func(m *nats.Msg) {
		log.Info().Msgf("RECV: %d bytes", len(m.Data))
		resp := bot.handle(m.Data)
		data, err := json.Marshal(resp)
		if err != nil {
			// Should never happen, ideally, but we need to do something sensible here.
			m.Respond([]byte(err.Error()))
		} else {
			m.Respond(data)
		}
	})
	nc.Flush()

	if err := nc.LastError(); err != nil {
		log.Fatal().Err(err).Msg("nats-error")
	}

	log.Info().Msgf("Listening on [%s]", channel)

	runtime.Goexit()
}
