package letterbox

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

var ErrNoGameData = errors.New("no game data found")

var (
	gameDataStart = []byte("window.gameData = ")
	gameDataEnd   = []byte("</script>")
)

// ParseGameData reads a puzzle definition out of either a bare JSON object
// or the HTML of a puzzle page that assigns it to window.gameData.
func ParseGameData(page []byte) (Definition, error) {
	js := bytes.TrimSpace(page)
	if i := bytes.Index(js, gameDataStart); i >= 0 {
		js = js[i+len(gameDataStart):]
		end := bytes.Index(js, gameDataEnd)
		if end < 0 {
			return Definition{}, fmt.Errorf("%w: unterminated script", ErrNoGameData)
		}
		js = bytes.TrimRight(bytes.TrimSpace(js[:end]), ";")
	}
	if !gjson.ValidBytes(js) {
		return Definition{}, fmt.Errorf("%w: not valid json", ErrNoGameData)
	}
	data := gjson.ParseBytes(js)
	if !data.IsObject() || !data.Get("sides").IsArray() {
		return Definition{}, fmt.Errorf("%w: missing sides", ErrNoGameData)
	}
	var def Definition
	data.Get("sides").ForEach(func(_, v gjson.Result) bool {
		def.Sides = append(def.Sides, v.String())
		return true
	})
	data.Get("dictionary").ForEach(func(_, v gjson.Result) bool {
		def.Dictionary = append(def.Dictionary, v.String())
		return true
	})
	def.Par = int(data.Get("par").Int())
	return def, nil
}
