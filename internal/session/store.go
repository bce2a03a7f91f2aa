// Package session persists the directory state between CLI invocations in a
// local SQLite database, together with a log of the statuses each command
// produced.
package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/rcliao/persondir/internal/directory"
	"github.com/rcliao/persondir/internal/model"
)

// Entry is one line of the activity log.
type Entry struct {
	ID      string    `json:"id"`
	At      time.Time `json:"at"`
	Action  string    `json:"action"`
	Message string    `json:"message"`
	IsError bool      `json:"is_error"`
}

// Store keeps one snapshot and the activity log.
type Store struct {
	db      *sql.DB
	path    string
	entropy io.Reader
}

// Open opens or creates the session database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create session dir: %w", err)
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &Store{
		db:      db,
		path:    path,
		entropy: ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0),
	}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	_, err := s.db.Exec(`
	CREATE TABLE IF NOT EXISTS snapshot (
		id         INTEGER PRIMARY KEY CHECK (id = 1),
		data       TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);

	CREATE TABLE IF NOT EXISTS activity (
		id       TEXT PRIMARY KEY,
		at       TEXT NOT NULL,
		action   TEXT NOT NULL,
		message  TEXT NOT NULL,
		is_error INTEGER NOT NULL DEFAULT 0
	);
	`)
	return err
}

func (s *Store) newID(t time.Time) string {
	return ulid.MustNew(ulid.Timestamp(t), s.entropy).String()
}

// Path returns the database path.
func (s *Store) Path() string { return s.path }

// Load returns the saved snapshot, or a fresh one when nothing was saved.
func (s *Store) Load(ctx context.Context) (directory.Snapshot, error) {
	var data string
	err := s.db.QueryRowContext(ctx, `SELECT data FROM snapshot WHERE id = 1`).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return directory.NewSnapshot(), nil
	}
	if err != nil {
		return directory.Snapshot{}, fmt.Errorf("load snapshot: %w", err)
	}

	snap := directory.NewSnapshot()
	if err := json.Unmarshal([]byte(data), &snap); err != nil {
		return directory.Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return snap, nil
}

// Save replaces the saved snapshot.
func (s *Store) Save(ctx context.Context, snap directory.Snapshot) error {
	b, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO snapshot (id, data, updated_at) VALUES (1, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		string(b), time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("save snapshot: %w", err)
	}
	return nil
}

// Record appends the status an action ended with to the activity log.
func (s *Store) Record(ctx context.Context, action string, st model.Status) (*Entry, error) {
	now := time.Now().UTC()
	e := &Entry{
		ID:      s.newID(now),
		At:      now,
		Action:  action,
		Message: st.Message,
		IsError: st.IsError,
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO activity (id, at, action, message, is_error) VALUES (?, ?, ?, ?, ?)`,
		e.ID, now.Format(time.RFC3339Nano), e.Action, e.Message, e.IsError)
	if err != nil {
		return nil, fmt.Errorf("record activity: %w", err)
	}
	return e, nil
}

// History returns up to limit log entries, newest first. Insertion order
// decides, since ids from separate processes may share a millisecond.
func (s *Store) History(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, at, action, message, is_error FROM activity ORDER BY rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var at string
		if err := rows.Scan(&e.ID, &at, &e.Action, &e.Message, &e.IsError); err != nil {
			return nil, err
		}
		parsed, err := time.Parse(time.RFC3339Nano, at)
		if err != nil {
			return nil, fmt.Errorf("activity %s: parse time: %w", e.ID, err)
		}
		e.At = parsed
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Reset drops the snapshot and the activity log.
func (s *Store) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM snapshot`); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx, `DELETE FROM activity`)
	return err
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}
