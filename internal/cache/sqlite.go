package cache

import (
	"database/sql"
	"errors"
	"time"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS pages (
	url        TEXT PRIMARY KEY,
	fetched_at INTEGER NOT NULL,
	body       BLOB NOT NULL
);`

// SQLite is a Store backed by a single SQLite file, so cached pages survive
// process restarts. The file is created on first use.
type SQLite struct {
	db  *sql.DB
	ttl time.Duration
	now func() time.Time
}

// OpenSQLite opens (or creates) the cache file at path with the given TTL.
func OpenSQLite(path string, ttl time.Duration) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, err
	}
	return &SQLite{db: db, ttl: ttl, now: time.Now}, nil
}

// Get implements Store.
func (s *SQLite) Get(url string) ([]byte, bool, error) {
	var fetchedAt int64
	var body []byte
	err := s.db.QueryRow(
		`SELECT fetched_at, body FROM pages WHERE url = ?`, url,
	).Scan(&fetchedAt, &body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if s.now().Sub(time.Unix(0, fetchedAt)) >= s.ttl {
		return nil, false, nil
	}
	return body, true, nil
}

// Put implements Store.
func (s *SQLite) Put(url string, body []byte) error {
	_, err := s.db.Exec(
		`INSERT INTO pages (url, fetched_at, body) VALUES (?, ?, ?)
		 ON CONFLICT(url) DO UPDATE SET fetched_at = excluded.fetched_at, body = excluded.body`,
		url, s.now().UnixNano(), body,
	)
	return err
}

// Expire implements Store. It deletes every entry past the TTL.
func (s *SQLite) Expire() error {
	cutoff := s.now().Add(-s.ttl).UnixNano()
	_, err := s.db.Exec(`DELETE FROM pages WHERE fetched_at <= ?`, cutoff)
	return err
}

// Close implements Store.
func (s *SQLite) Close() error {
	return s.db.Close()
}
