package shell

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"

	"github.com/domino14/wordpuzzles/cache"
	"github.com/domino14/wordpuzzles/config"
	"github.com/domino14/wordpuzzles/letterbox"
	"github.com/domino14/wordpuzzles/randpool"
	"github.com/domino14/wordpuzzles/spellingbee"
	"github.com/domino14/wordpuzzles/wordrank"
)

var (
	errNoData            = errors.New("no data in this line")
	errWrongOptionSyntax = errors.New("wrong format; all options need arguments")
	errNoPuzzle          = errors.New("please load a letter boxed puzzle first with the `load` command")
	errNoBee             = errors.New("please load a spelling bee first with the `bee` command")
)

type shellcmd struct {
	cmd     string
	args    []string
	options CmdOptions
}

type ShellController struct {
	l        *readline.Instance
	config   *config.Config
	execPath string
	cache    *cache.ObjectCache

	ranker wordrank.Ranker
	store  randpool.Store

	puzzle *letterbox.Puzzle
	bee    *spellingbee.Puzzle
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func writeln(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}

func (sc *ShellController) showMessage(msg string) {
	writeln(msg, sc.l.Stderr())
}

func (sc *ShellController) showError(err error) {
	sc.showMessage("Error: " + err.Error())
}

func NewShellController(cfg *config.Config, execPath string) *ShellController {
	sc := newController(cfg, config.FindBasePath(execPath))
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[32mwordpuzzles>\033[0m ",
		HistoryFile:     "/tmp/wordpuzzles_readline.tmp",
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",
		AutoComplete:    NewShellCompleter(sc),

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		panic(err)
	}
	sc.l = l
	return sc
}

func newController(cfg *config.Config, execPath string) *ShellController {
	return &ShellController{
		config:   cfg,
		execPath: execPath,
		cache:    cache.New(),
	}
}

// extractFields splits a line into a command, positional arguments, and
// -key value options. Quoting follows shell rules.
func extractFields(line string) (*shellcmd, error) {
	fields, err := shellquote.Split(line)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, errNoData
	}
	cmd := &shellcmd{cmd: fields[0], options: CmdOptions{}}
	for i := 1; i < len(fields); i++ {
		f := fields[i]
		if len(f) > 1 && strings.HasPrefix(f, "-") {
			if i+1 >= len(fields) {
				return nil, errWrongOptionSyntax
			}
			key := f[1:]
			cmd.options[key] = append(cmd.options[key], fields[i+1])
			i++
			continue
		}
		cmd.args = append(cmd.args, f)
	}
	return cmd, nil
}

func (sc *ShellController) handle(line string) (*Response, error) {
	cmd, err := extractFields(line)
	if err != nil {
		return nil, err
	}
	switch cmd.cmd {
	case "help":
		return sc.help(cmd)
	case "load":
		return sc.load(cmd)
	case "show", "s":
		return sc.show()
	case "solve":
		return sc.solve(cmd)
	case "statement":
		return sc.statement()
	case "react":
		return sc.react(cmd)
	case "hint":
		return sc.hint()
	case "extra":
		return sc.extra(cmd)
	case "search":
		return sc.search(cmd)
	case "bee":
		return sc.loadBee(cmd)
	case "guess", "g":
		return sc.guess(cmd)
	case "beehints":
		return sc.beeHints()
	case "alts":
		return sc.alternatives(cmd)
	case "pick":
		return sc.pick(cmd)
	default:
		msg := fmt.Sprintf("command %v not found", strconv.Quote(cmd.cmd))
		log.Info().Msg(msg)
		return nil, errors.New(msg)
	}
}

func (sc *ShellController) Loop(sig chan os.Signal) {
	defer sc.l.Close()
	defer sc.close()

	for {
		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				sig <- syscall.SIGINT
				break
			} else {
				continue
			}
		} else if err == io.EOF {
			sig <- syscall.SIGINT
			break
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == "exit" || line == "bye" {
			sig <- syscall.SIGINT
			break
		}
		resp, err := sc.handle(line)
		if err != nil {
			sc.showError(err)
		} else if resp != nil {
			sc.showMessage(resp.message)
		}
	}
	log.Debug().Msgf("Exiting readline loop...")
}

// Execute runs a single command line without entering the interactive loop.
func (sc *ShellController) Execute(line string) {
	resp, err := sc.handle(line)
	if err != nil {
		sc.showError(err)
	} else if resp != nil {
		sc.showMessage(resp.message)
	}
}

// Cleanup releases the databases the shell opened.
func (sc *ShellController) Cleanup() {
	sc.close()
}

func (sc *ShellController) close() {
	if c, ok := sc.ranker.(io.Closer); ok {
		c.Close()
	}
	if c, ok := sc.store.(io.Closer); ok {
		c.Close()
	}
}
