package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/HendryAvila/azimut/internal/identity"
	"github.com/HendryAvila/azimut/internal/journal"

	_ "modernc.org/sqlite"
)

// openDB is a package-level var to allow test injection.
var openDB = sql.Open

// SQLiteStore implements Store with one SQLite database per partition.
// Save runs in a single transaction, so a reader sees either the old or
// the new log.
type SQLiteStore struct {
	root  string
	opts  options
	hooks appendHooks
	tx    txHooks
}

type txHooks struct {
	commit func(tx *sql.Tx) error
}

// NewSQLiteStore creates a SQLite-backed journal store under root.
func NewSQLiteStore(root string, opts ...Option) *SQLiteStore {
	return &SQLiteStore{root: root, opts: buildOptions(opts)}
}

// Path returns the database file of key.
func (s *SQLiteStore) Path(key identity.Key) string {
	return JournalPath(s.root, key, ".db")
}

// ─── Connection ──────────────────────────────────────────────────────────────

func (s *SQLiteStore) open(path string) (*sql.DB, error) {
	db, err := openDB("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	pragmas := []string{
		"PRAGMA busy_timeout = 5000",
		"PRAGMA synchronous = FULL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("pragma %q: %w", p, err)
		}
	}
	return db, nil
}

func migrate(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS entries (
			seq            INTEGER PRIMARY KEY,
			recorded_at    TEXT    NOT NULL,
			category       INTEGER NOT NULL,
			effective_date TEXT,
			label          TEXT    NOT NULL,
			value          TEXT    NOT NULL,
			annotations    TEXT    NOT NULL DEFAULT 'null'
		);
	`)
	return err
}

// ─── Store ───────────────────────────────────────────────────────────────────

// Load reads the full journal of key ordered by append sequence. A missing
// database is an empty log and is not created.
func (s *SQLiteStore) Load(key identity.Key) []journal.Entry {
	if !key.Resolved() {
		return []journal.Entry{}
	}

	path := s.Path(key)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		s.opts.metrics.ObserveLoad(BackendSQLite, false)
		return []journal.Entry{}
	}

	entries, err := s.load(path)
	if err != nil {
		s.opts.log.WithField("partition", key.Token).WithError(err).Warn("journal database unreadable, using empty log")
		s.opts.metrics.ObserveLoad(BackendSQLite, true)
		return []journal.Entry{}
	}
	s.opts.metrics.ObserveLoad(BackendSQLite, false)
	return entries
}

func (s *SQLiteStore) load(path string) ([]journal.Entry, error) {
	db, err := s.open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = db.Close() }()

	rows, err := db.Query(`
		SELECT recorded_at, category, effective_date, label, value, annotations
		FROM entries ORDER BY seq`)
	if err != nil {
		return nil, fmt.Errorf("query entries: %w", err)
	}
	defer func() { _ = rows.Close() }()

	entries := []journal.Entry{}
	for rows.Next() {
		var (
			e           journal.Entry
			recordedAt  string
			annotations string
		)
		if err := rows.Scan(&recordedAt, &e.Category, &e.EffectiveDate, &e.Label, &e.Value, &annotations); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		if e.RecordedAt, err = time.Parse(time.RFC3339Nano, recordedAt); err != nil {
			return nil, fmt.Errorf("parse recorded_at %q: %w", recordedAt, err)
		}
		if err := json.Unmarshal([]byte(annotations), &e.Annotations); err != nil {
			return nil, fmt.Errorf("parse annotations: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// Save replaces the journal of key inside one transaction.
func (s *SQLiteStore) Save(key identity.Key, entries []journal.Entry) error {
	if !key.Resolved() {
		return ErrUnresolved
	}
	err := s.save(key, entries)
	s.opts.metrics.ObserveSave(BackendSQLite, err)
	return err
}

func (s *SQLiteStore) save(key identity.Key, entries []journal.Entry) error {
	if err := os.MkdirAll(s.root, 0o700); err != nil {
		return fmt.Errorf("creating storage root: %w", err)
	}

	db, err := s.open(s.Path(key))
	if err != nil {
		return fmt.Errorf("saving journal: %w", err)
	}
	defer func() { _ = db.Close() }()

	if err := migrate(db); err != nil {
		return fmt.Errorf("saving journal: migration: %w", err)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("saving journal: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.Exec(`DELETE FROM entries`); err != nil {
		return fmt.Errorf("saving journal: truncate: %w", err)
	}

	stmt, err := tx.Prepare(`
		INSERT INTO entries (seq, recorded_at, category, effective_date, label, value, annotations)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("saving journal: prepare: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, e := range entries {
		annotations, err := json.Marshal(e.Annotations)
		if err != nil {
			return fmt.Errorf("saving journal: marshal annotations: %w", err)
		}
		if _, err := stmt.Exec(
			i,
			e.RecordedAt.UTC().Format(time.RFC3339Nano),
			int(e.Category),
			e.EffectiveDate,
			e.Label,
			e.Value,
			string(annotations),
		); err != nil {
			return fmt.Errorf("saving journal: insert entry %d: %w", i, err)
		}
	}

	if err := s.commit(tx); err != nil {
		return fmt.Errorf("saving journal: commit: %w", err)
	}
	return nil
}

func (s *SQLiteStore) commit(tx *sql.Tx) error {
	if s.tx.commit != nil {
		return s.tx.commit(tx)
	}
	return tx.Commit()
}

// Append loads, appends and saves. See the package doc for the race.
func (s *SQLiteStore) Append(key identity.Key, entry journal.Entry) error {
	return readModifyWrite(s, s.hooks, key, entry)
}

// Clear replaces the journal of key with an empty log.
func (s *SQLiteStore) Clear(key identity.Key) error {
	return s.Save(key, nil)
}
