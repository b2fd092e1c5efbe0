package shell

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/domino14/wordpuzzles/config"
	"github.com/domino14/wordpuzzles/letterbox"
	"github.com/domino14/wordpuzzles/letters"
	"github.com/domino14/wordpuzzles/randpool"
	"github.com/domino14/wordpuzzles/spellingbee"
	"github.com/domino14/wordpuzzles/trie"
	"github.com/domino14/wordpuzzles/wordrank"
)

const defaultShownSolutions = 50

type Response struct {
	message string
}

type CmdOptions map[string][]string

func (c CmdOptions) String(key string) string {
	v := c[key]
	if len(v) > 0 {
		return v[0]
	}
	return ""
}

func (c CmdOptions) IntDefault(key string, defaultI int) (int, error) {
	v := c[key]
	if len(v) == 0 {
		return defaultI, nil
	}
	return strconv.Atoi(v[0])
}

func msg(message string) *Response {
	return &Response{message: message}
}

// rankDB opens the word frequency database on first use. A missing
// database means every word is rare.
func (sc *ShellController) rankDB() wordrank.Ranker {
	if sc.ranker != nil {
		return sc.ranker
	}
	path := sc.config.GetString(config.ConfigRankDBPath)
	if _, err := os.Stat(path); err != nil {
		log.Warn().Str("path", path).Msg("no-rank-database")
		return nil
	}
	r, err := wordrank.OpenSQLiteRanker(path)
	if err != nil {
		log.Err(err).Str("path", path).Msg("could-not-open-rank-database")
		return nil
	}
	sc.ranker = r
	return sc.ranker
}

func (sc *ShellController) dictionary(opts CmdOptions) (*trie.Buffer, error) {
	name := opts.String("dict")
	if name == "" {
		name = sc.config.GetString(config.ConfigDefaultDictionary)
	}
	return trie.Load(sc.config, sc.cache, name)
}

func (sc *ShellController) load(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) != 1 {
		return nil, errors.New("usage: load <file> or load last")
	}
	var (
		p   *letterbox.Puzzle
		err error
	)
	if cmd.args[0] == "last" {
		p, err = sc.loadLast()
	} else {
		var page []byte
		page, err = os.ReadFile(cmd.args[0])
		if err != nil {
			return nil, err
		}
		var def letterbox.Definition
		def, err = letterbox.ParseGameData(page)
		if err != nil {
			return nil, err
		}
		p, err = letterbox.NewPuzzle(def, sc.rankDB())
	}
	if err != nil {
		return nil, err
	}
	sc.puzzle = p
	return sc.show()
}

func (sc *ShellController) loadLast() (*letterbox.Puzzle, error) {
	archive, err := letterbox.OpenArchive(sc.config.GetString(config.ConfigPuzzleDBPath))
	if err != nil {
		return nil, err
	}
	defer archive.Close()
	snap, err := archive.Latest()
	if err != nil {
		return nil, err
	}
	if snap == nil {
		return nil, errors.New("no saved puzzles")
	}
	return letterbox.Restore(*snap, sc.rankDB())
}

func (sc *ShellController) show() (*Response, error) {
	if sc.puzzle == nil {
		return nil, errNoPuzzle
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Sides: %s\n", strings.Join(sc.puzzle.Sides(), " "))
	fmt.Fprintf(&sb, "Par: %d\n", sc.puzzle.Par())
	fmt.Fprintf(&sb, "Official words: %d", len(sc.puzzle.ValidWords()))
	return msg(sb.String()), nil
}

func (sc *ShellController) solve(cmd *shellcmd) (*Response, error) {
	if sc.puzzle == nil {
		return nil, errNoPuzzle
	}
	length := 2
	if len(cmd.args) > 0 {
		var err error
		if length, err = strconv.Atoi(cmd.args[0]); err != nil {
			return nil, err
		}
	}
	shown, err := cmd.options.IntDefault("max", defaultShownSolutions)
	if err != nil {
		return nil, err
	}
	st := time.Now()
	set := sc.puzzle.SolutionsByLength(length)
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d %d-word solutions (%d using only common words), found in %s\n",
		set.Len(), length, len(set.CommonWordSolutions()), time.Since(st).Round(time.Millisecond))
	for i, s := range set.Solutions() {
		if i >= shown {
			fmt.Fprintf(&sb, "... and %d more\n", set.Len()-shown)
			break
		}
		sb.WriteString(s.String() + "\n")
	}
	return msg(strings.TrimRight(sb.String(), "\n")), nil
}

func (sc *ShellController) statement() (*Response, error) {
	if sc.puzzle == nil {
		return nil, errNoPuzzle
	}
	return msg(sc.puzzle.QuantityStatement()), nil
}

func (sc *ShellController) react(cmd *shellcmd) (*Response, error) {
	if sc.puzzle == nil {
		return nil, errNoPuzzle
	}
	reactions := sc.puzzle.ReactToWords(letterbox.Tokenize(strings.Join(cmd.args, " ")))
	if len(reactions) == 0 {
		return msg("(no reaction)"), nil
	}
	parts := make([]string, len(reactions))
	for i, r := range reactions {
		parts[i] = string(r)
	}
	return msg(strings.Join(parts, " ")), nil
}

func (sc *ShellController) hint() (*Response, error) {
	if sc.puzzle == nil {
		return nil, errNoPuzzle
	}
	w, ok := sc.puzzle.HintWord()
	if !ok {
		return msg("No hints left - all out of hints."), nil
	}
	return msg(fmt.Sprintf("Try a %d letter word starting with %c and ending with %c.",
		len(w.String()), w.First(), w.Last())), nil
}

func (sc *ShellController) extra(cmd *shellcmd) (*Response, error) {
	if sc.puzzle == nil {
		return nil, errNoPuzzle
	}
	dict, err := sc.dictionary(cmd.options)
	if err != nil {
		return nil, err
	}
	words, err := sc.puzzle.ExtraWords(dict)
	if err != nil {
		return nil, err
	}
	return msg(fmt.Sprintf("%d extra words: %s", len(words), strings.Join(words, " "))), nil
}

func (sc *ShellController) search(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) != 1 {
		return nil, errors.New("usage: search <letters> [-dict name]")
	}
	eligible, err := letters.FromString(cmd.args[0])
	if err != nil {
		return nil, err
	}
	dict, err := sc.dictionary(cmd.options)
	if err != nil {
		return nil, err
	}
	words, err := dict.SearchByLetters(eligible)
	if err != nil {
		return nil, err
	}
	return msg(fmt.Sprintf("%d words: %s", len(words), strings.Join(words, " "))), nil
}

// loadBee reads a spelling bee from a center letter, the six outer letters,
// and a file with one answer per line. Answers using all seven letters are
// the pangrams.
func (sc *ShellController) loadBee(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) != 3 {
		return nil, errors.New("usage: bee <center> <outer letters> <answers file>")
	}
	f, err := os.Open(cmd.args[2])
	if err != nil {
		return nil, err
	}
	defer f.Close()
	all := letters.Of(cmd.args[0] + cmd.args[1])
	var answers, pangrams []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		w := strings.TrimSpace(scanner.Text())
		if w == "" {
			continue
		}
		answers = append(answers, w)
		if letters.Of(w) == all {
			pangrams = append(pangrams, w)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	outer := strings.Split(cmd.args[1], "")
	bee, err := spellingbee.NewPuzzle(cmd.args[0], outer, pangrams, answers)
	if err != nil {
		return nil, err
	}
	sc.bee = bee
	return msg(fmt.Sprintf("Loaded spelling bee %s/%s with %d answers and %d pangrams.",
		bee.Center(), strings.Join(bee.Outer(), ""), bee.NumAnswers(), len(pangrams))), nil
}

func (sc *ShellController) guess(cmd *shellcmd) (*Response, error) {
	if sc.bee == nil {
		return nil, errNoBee
	}
	if len(cmd.args) == 0 {
		return nil, errors.New("usage: guess <word> ...")
	}
	var sb strings.Builder
	for _, w := range cmd.args {
		fmt.Fprintf(&sb, "%s: %s\n", w, sc.bee.Guess(w))
	}
	fmt.Fprintf(&sb, "%.1f%% complete", sc.bee.PercentComplete())
	return msg(sb.String()), nil
}

func (sc *ShellController) beeHints() (*Response, error) {
	if sc.bee == nil {
		return nil, errNoBee
	}
	return msg(sc.bee.Hints().String()), nil
}

func (sc *ShellController) alternatives(cmd *shellcmd) (*Response, error) {
	if sc.bee == nil {
		return nil, errNoBee
	}
	dict, err := sc.dictionary(cmd.options)
	if err != nil {
		return nil, err
	}
	words, err := sc.bee.AlternativeAnswers(dict, sc.rankDB())
	if err != nil {
		return nil, err
	}
	return msg(fmt.Sprintf("%d alternative answers: %s", len(words), strings.Join(words, " "))), nil
}

func (sc *ShellController) pick(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) != 1 {
		return nil, errors.New("usage: pick <pool>")
	}
	pools, err := randpool.ReadPoolFile(sc.config.GetString(config.ConfigPoolsPath))
	if err != nil {
		return nil, err
	}
	items, ok := pools[cmd.args[0]]
	if !ok {
		return nil, fmt.Errorf("no pool named %q", cmd.args[0])
	}
	if sc.store == nil {
		sc.store, err = randpool.OpenSQLiteStore(sc.config.GetString(config.ConfigRandomDBPath))
		if err != nil {
			return nil, err
		}
	}
	sel, err := randpool.NewSelector(sc.store, cmd.args[0], items)
	if err != nil {
		return nil, err
	}
	item, err := sel.Item()
	if err != nil {
		return nil, err
	}
	return msg(item), nil
}
