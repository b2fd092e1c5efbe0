package letterbox

import (
	"path/filepath"
	"testing"

	"github.com/matryer/is"
)

func TestArchiveRoundTrip(t *testing.T) {
	is := is.New(t)
	a, err := OpenArchive(filepath.Join(t.TempDir(), "puzzles.db"))
	is.NoErr(err)
	defer a.Close()

	latest, err := a.Latest()
	is.NoErr(err)
	is.True(latest == nil)

	p := chainPuzzle(t)
	p.OnSolved = func(int, *SolutionSet) {
		is.NoErr(a.Save(p.Snapshot(100)))
	}
	p.SolutionsByLength(2)
	p.SolutionsByLength(3)
	p.ReactToWords([]string{"abcdef"})
	p.HintWord()
	is.NoErr(a.Save(p.Snapshot(100)))

	older := chainPuzzle(t)
	is.NoErr(a.Save(older.Snapshot(50)))

	latest, err = a.Latest()
	is.NoErr(err)
	is.Equal(latest.Timestamp, int64(100))

	restored, err := Restore(*latest, nil)
	is.NoErr(err)
	is.Equal(restored.Sides(), p.Sides())
	is.Equal(restored.Par(), 3)
	is.Equal(restored.SolvedLengths(), []int{2, 3})
	is.Equal(restored.SolutionsByLength(3).String(), "{FGHIJKL->LA->ABCDEF}")
	is.Equal(wordStrings(restored.UserFoundWords()), []string{"ABCDEF"})
	is.Equal(wordStrings(restored.HintsGiven()), []string{"FGHIJKL"})
}
