package randpool

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/avast/retry-go/v4"
	"github.com/rs/zerolog/log"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

const busyAttempts = 8

// SQLiteStore persists pools in a SQLite database. Several processes may
// share the file; writes that find the database locked are retried with
// backoff.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLiteStore opens (and if needed creates) the pool tables at path.
func OpenSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	s := &SQLiteStore{db: db}
	err = s.withRetry(func() error {
		_, err := db.Exec(`create table if not exists random_pools
			(name text not null, item text not null, uses integer not null,
			last_selection integer not null, primary key (name, item))`)
		if err != nil {
			return err
		}
		_, err = db.Exec(`create table if not exists random_counter
			(id integer primary key check (id = 0), next integer not null)`)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("could not create pool tables: %w", err)
	}
	return s, nil
}

func isBusy(err error) bool {
	var se *sqlite.Error
	if errors.As(err, &se) {
		code := se.Code() & 0xff
		return code == sqlite3.SQLITE_BUSY || code == sqlite3.SQLITE_LOCKED
	}
	return false
}

func (s *SQLiteStore) withRetry(fn func() error) error {
	return retry.Do(fn,
		retry.Attempts(busyAttempts),
		retry.Delay(10*time.Millisecond),
		retry.RetryIf(isBusy),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			log.Debug().Err(err).Uint("n", n).Msg("database-busy-retrying")
		}),
	)
}

func (s *SQLiteStore) Records(pool string) ([]Record, error) {
	var records []Record
	err := s.withRetry(func() error {
		records = records[:0]
		rows, err := s.db.Query(`select item, uses, last_selection from random_pools
			where name = ? order by item`, pool)
		if err != nil {
			return err
		}
		defer rows.Close()
		for rows.Next() {
			var r Record
			if err := rows.Scan(&r.Item, &r.Uses, &r.LastSelection); err != nil {
				return err
			}
			records = append(records, r)
		}
		return rows.Err()
	})
	return records, err
}

func (s *SQLiteStore) Upsert(pool string, r Record) error {
	return s.withRetry(func() error {
		_, err := s.db.Exec(`insert into random_pools (name, item, uses, last_selection)
			values (?, ?, ?, ?)
			on conflict (name, item) do update set
			uses = excluded.uses, last_selection = excluded.last_selection`,
			pool, r.Item, r.Uses, r.LastSelection)
		return err
	})
}

func (s *SQLiteStore) Delete(pool string, item string) error {
	return s.withRetry(func() error {
		_, err := s.db.Exec(`delete from random_pools where name = ? and item = ?`, pool, item)
		return err
	})
}

// NextOrdinal reads and advances the counter in a single statement.
func (s *SQLiteStore) NextOrdinal() (int64, error) {
	var next int64
	err := s.withRetry(func() error {
		return s.db.QueryRow(`insert into random_counter (id, next) values (0, 1)
			on conflict (id) do update set next = next + 1
			returning next - 1`).Scan(&next)
	})
	return next, err
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
