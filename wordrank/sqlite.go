package wordrank

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"
)

// SQLiteRanker reads ranks from a word frequency table:
//
//	create table words (word text primary key, frequency integer)
//
// A word's rank is the number of words with a strictly higher frequency.
type SQLiteRanker struct {
	db   *sql.DB
	rank *sql.Stmt
}

// OpenSQLiteRanker opens the frequency database at path.
func OpenSQLiteRanker(path string) (*SQLiteRanker, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	return NewSQLiteRanker(db)
}

// NewSQLiteRanker uses an already-open database, creating the table if it
// does not exist.
func NewSQLiteRanker(db *sql.DB) (*SQLiteRanker, error) {
	if _, err := db.Exec(`create table if not exists words
		(word text primary key, frequency integer not null)`); err != nil {
		return nil, fmt.Errorf("could not create words table: %w", err)
	}
	if _, err := db.Exec(`create index if not exists words_by_frequency on words(frequency)`); err != nil {
		return nil, fmt.Errorf("could not create frequency index: %w", err)
	}
	stmt, err := db.Prepare(`select count(*) from words
		where frequency > (select frequency from words where word = ?)`)
	if err != nil {
		return nil, err
	}
	return &SQLiteRanker{db: db, rank: stmt}, nil
}

// Add stores or replaces the frequency of a word.
func (s *SQLiteRanker) Add(word string, frequency int64) error {
	_, err := s.db.Exec(`insert into words (word, frequency) values (?, ?)
		on conflict(word) do update set frequency = excluded.frequency`,
		strings.ToLower(word), frequency)
	return err
}

// Rank implements Ranker. Database errors are logged and the word is
// treated as unranked.
func (s *SQLiteRanker) Rank(word string) int {
	word = strings.ToLower(word)
	var exists int
	err := s.db.QueryRow(`select 1 from words where word = ?`, word).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return Unranked
	} else if err != nil {
		log.Err(err).Str("word", word).Msg("rank-lookup-failed")
		return Unranked
	}
	var rank int
	if err := s.rank.QueryRow(word).Scan(&rank); err != nil {
		log.Err(err).Str("word", word).Msg("rank-lookup-failed")
		return Unranked
	}
	return rank
}

// Close releases the database.
func (s *SQLiteRanker) Close() error {
	s.rank.Close()
	return s.db.Close()
}
