package bot

import "github.com/domino14/wordpuzzles/letterbox"

// LambdaEvent asks a short-lived worker to solve a puzzle. The solutions are
// sent to ReplyChannel as a JSON Response when it is set.
type LambdaEvent struct {
	PuzzleID     string               `json:"puzzle_id"`
	Definition   letterbox.Definition `json:"definition"`
	Length       int                  `json:"length"`
	ReplyChannel string               `json:"reply_channel"`
}
