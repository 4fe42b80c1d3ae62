// Package viminfo keeps command-line history and the unnamed register
// between editing sessions in a SQLite database.
package viminfo

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/slzatz/vix/core/log"
	"github.com/slzatz/vix/vim/govim"
)

// History kinds
const (
	Commands = "cmd"
	Searches = "search"
)

// DefaultLimit is the number of lines kept per history kind
const DefaultLimit = 200

const schema = `
CREATE TABLE IF NOT EXISTS session (
	uuid TEXT PRIMARY KEY,
	file TEXT NOT NULL DEFAULT '',
	started TEXT NOT NULL
);
CREATE TABLE IF NOT EXISTS history (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	kind TEXT NOT NULL,
	line TEXT NOT NULL,
	session_uuid TEXT NOT NULL,
	FOREIGN KEY(session_uuid) REFERENCES session (uuid)
);
CREATE INDEX IF NOT EXISTS history_kind ON history (kind, id);
CREATE TABLE IF NOT EXISTS register (
	id INTEGER PRIMARY KEY CHECK (id = 1),
	text TEXT NOT NULL,
	linewise INTEGER NOT NULL,
	session_uuid TEXT NOT NULL
);
`

// Store is a viminfo database opened for one editing session
type Store struct {
	db      *sql.DB
	session string
	limit   int
}

// Open opens (creating if needed) the database at path with the named
// database/sql driver and starts a new session
func Open(driver, path, file string) (*Store, error) {
	db, err := sql.Open(driver, path)
	if err != nil {
		return nil, fmt.Errorf("failed to open viminfo: %w", err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create viminfo schema: %w", err)
	}
	s := &Store{db: db, session: uuid.NewString(), limit: DefaultLimit}
	_, err = db.Exec("INSERT INTO session (uuid, file, started) VALUES (?, ?, ?);",
		s.session, file, time.Now().Format(time.RFC3339))
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to start viminfo session: %w", err)
	}
	log.Debug("viminfo opened", "path", path, "driver", driver, "session", s.session)
	return s, nil
}

// Session returns the uuid of this editing session
func (s *Store) Session() string { return s.session }

// SetLimit sets the number of lines kept per kind
func (s *Store) SetLimit(n int) {
	if n > 0 {
		s.limit = n
	}
}

// AddHistory appends line to the kind history. An earlier copy of the same
// line is dropped so each line appears once, at its latest use.
func (s *Store) AddHistory(kind, line string) error {
	if line == "" {
		return nil
	}
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM history WHERE kind=? AND line=?;", kind, line); err != nil {
		return fmt.Errorf("failed to add history: %w", err)
	}
	if _, err := tx.Exec("INSERT INTO history (kind, line, session_uuid) VALUES (?, ?, ?);", kind, line, s.session); err != nil {
		return fmt.Errorf("failed to add history: %w", err)
	}
	_, err = tx.Exec(`DELETE FROM history WHERE kind=? AND id NOT IN
		(SELECT id FROM history WHERE kind=? ORDER BY id DESC LIMIT ?);`, kind, kind, s.limit)
	if err != nil {
		return fmt.Errorf("failed to trim history: %w", err)
	}
	return tx.Commit()
}

// History returns the kind history, oldest first
func (s *Store) History(kind string) ([]string, error) {
	rows, err := s.db.Query("SELECT line FROM history WHERE kind=? ORDER BY id;", kind)
	if err != nil {
		return nil, fmt.Errorf("failed to read history: %w", err)
	}
	defer rows.Close()

	var lines []string
	for rows.Next() {
		var line string
		if err := rows.Scan(&line); err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}
	return lines, rows.Err()
}

// SaveRegister stores the unnamed register
func (s *Store) SaveRegister(r govim.Register) error {
	_, err := s.db.Exec(`INSERT INTO register (id, text, linewise, session_uuid) VALUES (1, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET text=excluded.text, linewise=excluded.linewise, session_uuid=excluded.session_uuid;`,
		r.Text, r.Linewise, s.session)
	if err != nil {
		return fmt.Errorf("failed to save register: %w", err)
	}
	return nil
}

// LoadRegister returns the stored register; false when none was saved
func (s *Store) LoadRegister() (govim.Register, bool, error) {
	var r govim.Register
	err := s.db.QueryRow("SELECT text, linewise FROM register WHERE id=1;").Scan(&r.Text, &r.Linewise)
	switch {
	case errors.Is(err, sql.ErrNoRows):
		return r, false, nil
	case err != nil:
		return r, false, fmt.Errorf("failed to load register: %w", err)
	}
	return r, true, nil
}

// Sessions returns the number of sessions recorded
func (s *Store) Sessions() (int, error) {
	var n int
	err := s.db.QueryRow("SELECT COUNT(*) FROM session;").Scan(&n)
	return n, err
}

// SessionInfo describes one recorded editing session
type SessionInfo struct {
	UUID    string
	File    string
	Started string
}

// RecentSessions returns up to n sessions, newest first
func (s *Store) RecentSessions(n int) ([]SessionInfo, error) {
	rows, err := s.db.Query("SELECT uuid, file, started FROM session ORDER BY started DESC, rowid DESC LIMIT ?;", n)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []SessionInfo
	for rows.Next() {
		var si SessionInfo
		if err := rows.Scan(&si.UUID, &si.File, &si.Started); err != nil {
			return nil, err
		}
		sessions = append(sessions, si)
	}
	return sessions, rows.Err()
}

// Clear removes all history, the saved register and every session but the
// current one
func (s *Store) Clear() error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, stmt := range []string{
		"DELETE FROM history;",
		"DELETE FROM register;",
	} {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("failed to clear viminfo: %w", err)
		}
	}
	if _, err := tx.Exec("DELETE FROM session WHERE uuid != ?;", s.session); err != nil {
		return fmt.Errorf("failed to clear viminfo: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	log.Info("cleared viminfo", "session", s.session)
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
