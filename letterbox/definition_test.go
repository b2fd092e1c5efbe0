package letterbox

import (
	"errors"
	"testing"

	"github.com/matryer/is"
)

func TestParseGameData(t *testing.T) {
	is := is.New(t)
	want := Definition{
		Sides:      []string{"ABC", "DEF", "GHI", "JKL"},
		Dictionary: []string{"ABCDEF", "FGHIJKL"},
		Par:        5,
	}
	js := `{"id":1,"sides":["ABC","DEF","GHI","JKL"],"par":5,"dictionary":["ABCDEF","FGHIJKL"]}`

	def, err := ParseGameData([]byte(js))
	is.NoErr(err)
	is.Equal(def, want)

	page := `<html><head><script type="text/javascript">window.gameData = ` + js + `</script></head></html>`
	def, err = ParseGameData([]byte(page))
	is.NoErr(err)
	is.Equal(def, want)
}

func TestParseGameDataErrors(t *testing.T) {
	for _, page := range []string{
		"",
		"<html>nothing here</html>",
		`<script>window.gameData = {"sides":["ABC"]}`,
		`{"dictionary":["ABC"]}`,
		`window.gameData = {"sides": [</script>`,
	} {
		t.Run(page, func(t *testing.T) {
			is := is.New(t)
			_, err := ParseGameData([]byte(page))
			is.True(errors.Is(err, ErrNoGameData))
		})
	}
}
