package letterbox

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"

	"github.com/domino14/wordpuzzles/wordrank"
)

// Snapshot is everything needed to bring a puzzle back after a restart:
// its definition, the solution sets computed so far, and the words users
// found or were hinted.
type Snapshot struct {
	Timestamp  int64
	Definition Definition
	Solutions  map[int][][]string
	UserFound  []string
	HintsGiven []string
}

// Snapshot captures the puzzle's current state.
func (p *Puzzle) Snapshot(timestamp int64) Snapshot {
	snap := Snapshot{
		Timestamp: timestamp,
		Definition: Definition{
			Sides:      p.sides,
			Dictionary: wordStrings(p.validWords),
			Par:        p.par,
		},
		Solutions:  make(map[int][][]string, len(p.solutionSets)),
		UserFound:  wordStrings(p.UserFoundWords()),
		HintsGiven: wordStrings(p.HintsGiven()),
	}
	for l, set := range p.solutionSets {
		snap.Solutions[l] = set.ToLists()
	}
	return snap
}

// Restore rebuilds a puzzle from a snapshot. Saved solution sets are
// validated as they are loaded.
func Restore(snap Snapshot, ranker wordrank.Ranker) (*Puzzle, error) {
	p, err := NewPuzzle(snap.Definition, ranker)
	if err != nil {
		return nil, err
	}
	for l, lists := range snap.Solutions {
		if err := p.LoadSolutions(l, lists); err != nil {
			return nil, err
		}
	}
	for _, w := range snap.UserFound {
		p.userFound[NewWord(w)] = struct{}{}
	}
	for _, w := range snap.HintsGiven {
		p.hintsGiven[NewWord(w)] = struct{}{}
	}
	return p, nil
}

func wordStrings(words []Word) []string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = w.text
	}
	return out
}

// Archive keeps puzzle snapshots in SQLite, one row per puzzle timestamp.
type Archive struct {
	db *sql.DB
}

// OpenArchive opens (and if needed creates) the archive at path.
func OpenArchive(path string) (*Archive, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`create table if not exists letterboxed
		(timestamp integer primary key, par integer, sides text, valid_words text,
		found_solutions text, user_found_words text, hints_given text)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("could not create letterboxed table: %w", err)
	}
	return &Archive{db: db}, nil
}

// Save inserts or replaces the snapshot's row.
func (a *Archive) Save(snap Snapshot) error {
	var encoded [4][]byte
	for i, v := range []any{snap.Definition.Dictionary, snap.Solutions, snap.UserFound, snap.HintsGiven} {
		bts, err := json.Marshal(v)
		if err != nil {
			return err
		}
		encoded[i] = bts
	}
	_, err := a.db.Exec(`insert or replace into letterboxed
		(timestamp, par, sides, valid_words, found_solutions, user_found_words, hints_given)
		values (?, ?, ?, ?, ?, ?, ?)`,
		snap.Timestamp, snap.Definition.Par, strings.Join(snap.Definition.Sides, ","),
		string(encoded[0]), string(encoded[1]), string(encoded[2]), string(encoded[3]))
	if err != nil {
		return err
	}
	log.Debug().Int64("timestamp", snap.Timestamp).Msg("saved-letterboxed")
	return nil
}

// Latest returns the most recent snapshot, or nil if the archive is empty.
func (a *Archive) Latest() (*Snapshot, error) {
	var (
		snap                                  Snapshot
		sides, words, solutions, found, hints string
	)
	err := a.db.QueryRow(`select timestamp, par, sides, valid_words, found_solutions,
		user_found_words, hints_given from letterboxed order by timestamp desc limit 1`).
		Scan(&snap.Timestamp, &snap.Definition.Par, &sides, &words, &solutions, &found, &hints)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	} else if err != nil {
		return nil, err
	}
	snap.Definition.Sides = strings.Split(sides, ",")
	for _, f := range []struct {
		src string
		dst any
	}{
		{words, &snap.Definition.Dictionary},
		{solutions, &snap.Solutions},
		{found, &snap.UserFound},
		{hints, &snap.HintsGiven},
	} {
		if err := json.Unmarshal([]byte(f.src), f.dst); err != nil {
			return nil, fmt.Errorf("corrupt letterboxed row %d: %w", snap.Timestamp, err)
		}
	}
	return &snap, nil
}

func (a *Archive) Close() error {
	return a.db.Close()
}
