package wordrank

import (
	"path/filepath"
	"testing"

	"github.com/matryer/is"
)

func TestMapRanker(t *testing.T) {
	is := is.New(t)
	r := NewMapRanker([]string{"the", "of", "The", "puzzle"})
	is.Equal(r.Rank("the"), 0)
	is.Equal(r.Rank("OF"), 1)
	is.Equal(r.Rank("puzzle"), 2)
	is.Equal(r.Rank("xyzzy"), Unranked)
	is.True(IsCommon(r, "puzzle"))
	is.True(!IsCommon(r, "xyzzy"))
	is.True(!IsCommon(nil, "the"))
}

func TestSQLiteRanker(t *testing.T) {
	is := is.New(t)
	r, err := OpenSQLiteRanker(filepath.Join(t.TempDir(), "words.db"))
	is.NoErr(err)
	defer r.Close()

	is.NoErr(r.Add("the", 1000))
	is.NoErr(r.Add("of", 900))
	is.NoErr(r.Add("puzzle", 20))
	is.NoErr(r.Add("zymurgy", 1))

	is.Equal(r.Rank("the"), 0)
	is.Equal(r.Rank("Of"), 1)
	is.Equal(r.Rank("puzzle"), 2)
	is.Equal(r.Rank("zymurgy"), 3)
	is.Equal(r.Rank("missing"), Unranked)

	is.NoErr(r.Add("zymurgy", 5000))
	is.Equal(r.Rank("zymurgy"), 0)
	is.Equal(r.Rank("the"), 1)
}
