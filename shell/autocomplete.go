package shell

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/kballard/go-shellquote"
	"github.com/samber/lo"

	"github.com/domino14/wordpuzzles/config"
	"github.com/domino14/wordpuzzles/randpool"
)

// ShellCompleter provides context-aware autocomplete for shell commands
type ShellCompleter struct {
	sc *ShellController
}

func NewShellCompleter(sc *ShellController) *ShellCompleter {
	return &ShellCompleter{sc: sc}
}

// CommandMetadata holds autocomplete information for a command
type CommandMetadata struct {
	Options []string // Available options for this command (e.g., "-dict")
	Args    []string // Possible argument values (for non-option arguments)
}

var commandMetadata = map[string]CommandMetadata{
	"load":   {Args: []string{"last"}},
	"solve":  {Args: []string{"1", "2", "3", "4"}, Options: []string{"-max"}},
	"extra":  {Options: []string{"-dict"}},
	"search": {Options: []string{"-dict"}},
	"alts":   {Options: []string{"-dict"}},
	"help":   {Args: []string{"solve", "react", "pick"}},
}

var commandNames = []string{
	"help", "load", "show", "solve", "statement", "react", "hint", "extra",
	"search", "bee", "guess", "beehints", "alts", "pick", "exit",
}

// dictionaryNames lists the tries and word lists available to -dict.
func (c *ShellCompleter) dictionaryNames() []string {
	var names []string
	for _, dir := range []struct{ key, ext string }{
		{config.ConfigTriePath, ".trie"},
		{config.ConfigWordListPath, ".txt"},
	} {
		entries, err := os.ReadDir(c.sc.config.GetString(dir.key))
		if err != nil {
			continue
		}
		for _, e := range entries {
			if filepath.Ext(e.Name()) == dir.ext {
				names = append(names, strings.TrimSuffix(e.Name(), dir.ext))
			}
		}
	}
	return lo.Uniq(names)
}

func (c *ShellCompleter) poolNames() []string {
	pools, err := randpool.ReadPoolFile(c.sc.config.GetString(config.ConfigPoolsPath))
	if err != nil {
		return nil
	}
	return lo.Keys(pools)
}

// Do implements the readline.AutoComplete interface
// It provides context-aware autocomplete based on what's been typed
func (c *ShellCompleter) Do(line []rune, pos int) ([][]rune, int) {
	text := string(line[:pos])

	// Parse the line using shellquote to handle quoted strings properly
	fields, err := shellquote.Split(text)
	if err != nil {
		fields = strings.Fields(text)
	}
	endsWithSpace := len(text) > 0 && text[len(text)-1] == ' '

	var prefix string
	var completions []string

	if len(fields) == 0 || (len(fields) == 1 && !endsWithSpace) {
		if len(fields) == 1 {
			prefix = fields[0]
		}
		completions = commandNames
	} else {
		cmdName := fields[0]
		if !endsWithSpace {
			prefix = fields[len(fields)-1]
		}

		var lastCompleteField string
		if endsWithSpace {
			lastCompleteField = fields[len(fields)-1]
		} else if len(fields) > 1 {
			lastCompleteField = fields[len(fields)-2]
		}

		if lastCompleteField == "-dict" {
			completions = c.dictionaryNames()
		} else if cmdName == "pick" {
			completions = c.poolNames()
		} else if metadata, exists := commandMetadata[cmdName]; exists {
			if strings.HasPrefix(prefix, "-") || len(metadata.Args) == 0 {
				completions = metadata.Options
			} else {
				completions = metadata.Args
			}
		}
	}

	var matches [][]rune
	for _, completion := range completions {
		if strings.HasPrefix(completion, prefix) {
			// Return only the part that needs to be added
			matches = append(matches, []rune(completion[len(prefix):]))
		}
	}
	return matches, len(prefix)
}
