package shell

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/matryer/is"

	"github.com/domino14/wordpuzzles/config"
)

func TestExtractFields(t *testing.T) {
	is := is.New(t)
	type testdata struct {
		line   string
		expCmd *shellcmd
		expErr error
	}
	cases := []testdata{
		{"", nil, errNoData},
		{"extra -dict /path/to/dict",
			&shellcmd{"extra", nil, CmdOptions{"dict": {"/path/to/dict"}}},
			nil},
		{"solve 3",
			&shellcmd{"solve", []string{"3"}, CmdOptions{}},
			nil},
		{"react 'abcdef fghijkl' la -dict wiktionary ",
			&shellcmd{"react",
				[]string{"abcdef fghijkl", "la"},
				CmdOptions{"dict": {"wiktionary"}}},
			nil,
		},
		{"solve 3 -max",
			nil, errWrongOptionSyntax},
	}
	for _, t := range cases {
		cmd, err := extractFields(t.line)
		is.Equal(cmd, t.expCmd)
		is.Equal(err, t.expErr)
	}
}

// testController points every data path into a temporary directory.
func testController(t *testing.T) (*ShellController, string) {
	t.Helper()
	dir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.Set(config.ConfigTriePath, filepath.Join(dir, "tries"))
	cfg.Set(config.ConfigWordListPath, filepath.Join(dir, "wordlists"))
	cfg.Set(config.ConfigRankDBPath, filepath.Join(dir, "words.db"))
	cfg.Set(config.ConfigRandomDBPath, filepath.Join(dir, "random.db"))
	cfg.Set(config.ConfigPuzzleDBPath, filepath.Join(dir, "puzzles.db"))
	cfg.Set(config.ConfigPoolsPath, filepath.Join(dir, "pools.yaml"))
	cfg.Set(config.ConfigDefaultDictionary, "tiny")
	if err := os.MkdirAll(filepath.Join(dir, "wordlists"), 0o755); err != nil {
		t.Fatal(err)
	}
	sc := newController(cfg, dir)
	t.Cleanup(sc.close)
	return sc, dir
}

func writeFile(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLetterBoxedCommands(t *testing.T) {
	is := is.New(t)
	sc, dir := testController(t)

	_, err := sc.handle("solve")
	is.Equal(err, errNoPuzzle)

	game := filepath.Join(dir, "game.json")
	writeFile(t, game, `{"sides":["ABC","DEF","GHI","JKL"],"par":3,"dictionary":["ABCDEF","FGHIJKL","LA"]}`)
	resp, err := sc.handle("load " + game)
	is.NoErr(err)
	is.Equal(resp.message, "Sides: ABC DEF GHI JKL\nPar: 3\nOfficial words: 3")

	resp, err = sc.handle("solve 2")
	is.NoErr(err)
	is.True(strings.HasPrefix(resp.message, "1 2-word solutions (0 using only common words)"))
	is.True(strings.HasSuffix(resp.message, "\nABCDEF->FGHIJKL"))

	resp, err = sc.handle("hint")
	is.NoErr(err)
	is.Equal(resp.message, "Try a 7 letter word starting with F and ending with L.")

	resp, err = sc.handle("react fghijkl, la, abcdef!")
	is.NoErr(err)
	is.Equal(resp.message, "👀 🥶 🥲")

	// Every two-word solution word has now been hinted or mentioned.
	resp, err = sc.handle("hint")
	is.NoErr(err)
	is.Equal(resp.message, "No hints left - all out of hints.")

	writeFile(t, filepath.Join(dir, "wordlists", "tiny.txt"), "abcdef\nlead\ngel\nbad\n")
	resp, err = sc.handle("extra")
	is.NoErr(err)
	is.Equal(resp.message, "2 extra words: GEL LEAD")

	resp, err = sc.handle("search dab")
	is.NoErr(err)
	is.Equal(resp.message, "1 words: bad")
}

func TestSpellingBeeCommands(t *testing.T) {
	is := is.New(t)
	sc, dir := testController(t)

	answers := filepath.Join(dir, "answers.txt")
	writeFile(t, answers, "able\nbale\nblacted\n")
	resp, err := sc.handle("bee a bcdelt " + answers)
	is.NoErr(err)
	is.Equal(resp.message, "Loaded spelling bee A/BCDELT with 3 answers and 1 pangrams.")

	resp, err = sc.handle("guess able blacted nope")
	is.NoErr(err)
	is.Equal(resp.message, "able: good\nblacted: good,pangram\nnope: wrong\n66.7% complete")
}

func TestPick(t *testing.T) {
	is := is.New(t)
	sc, dir := testController(t)
	writeFile(t, filepath.Join(dir, "pools.yaml"), "coin:\n  - heads\n  - tails\n")

	var last string
	for i := 0; i < 6; i++ {
		resp, err := sc.handle("pick coin")
		is.NoErr(err)
		is.True(resp.message != last)
		last = resp.message
	}
	_, err := sc.handle("pick dice")
	is.True(err != nil)
}

func TestCompleter(t *testing.T) {
	is := is.New(t)
	sc, _ := testController(t)
	c := NewShellCompleter(sc)

	matches, n := c.Do([]rune("sta"), 3)
	is.Equal(n, 3)
	is.Equal(matches, [][]rune{[]rune("tement")})

	matches, n = c.Do([]rune("solve 3 -m"), 10)
	is.Equal(n, 2)
	is.Equal(matches, [][]rune{[]rune("ax")})
}

func TestUnknownCommand(t *testing.T) {
	is := is.New(t)
	sc, _ := testController(t)
	_, err := sc.handle("frobnicate")
	is.True(err != nil)
}
