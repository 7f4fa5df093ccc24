package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/okian/dfsviz/internal/domain/model"
)

const schema = `CREATE TABLE IF NOT EXISTS slots (
	name       TEXT PRIMARY KEY,
	payload    TEXT NOT NULL,
	players    INTEGER NOT NULL,
	updated_at INTEGER NOT NULL
)`

// SQLiteStore keeps the slot in a SQLite database file.
type SQLiteStore struct {
	db   *sql.DB
	slot string
}

// NewSQLiteStore opens (creating if needed) the database at path.
func NewSQLiteStore(ctx context.Context, path string, opts ...Option) (*SQLiteStore, error) {
	s := newSettings(opts)

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	// one writer; the slot is tiny
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create slots table: %w", err)
	}
	return &SQLiteStore{db: db, slot: s.slot}, nil
}

// Slot returns the slot name.
func (s *SQLiteStore) Slot() string { return s.slot }

// Save replaces the slot contents.
func (s *SQLiteStore) Save(ctx context.Context, c model.Collections) error {
	start := time.Now()
	defer observeUpdate(start)

	b, err := encode(c)
	if err != nil {
		recordError("encode")
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO slots (name, payload, players, updated_at) VALUES (?, ?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET payload = excluded.payload,
		 players = excluded.players, updated_at = excluded.updated_at`,
		s.slot, string(b), len(c[model.All]), time.Now().Unix(),
	)
	if err != nil {
		recordError("write")
		return fmt.Errorf("save slot %s: %w", s.slot, err)
	}
	publish(c)
	return nil
}

// Load returns the slot contents.
func (s *SQLiteStore) Load(ctx context.Context) (model.Collections, error) {
	start := time.Now()
	defer observeQuery(start)

	var payload string
	err := s.db.QueryRowContext(ctx, `SELECT payload FROM slots WHERE name = ?`, s.slot).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		recordError("not_found")
		return nil, ErrNotFound
	}
	if err != nil {
		recordError("read")
		return nil, fmt.Errorf("load slot %s: %w", s.slot, err)
	}
	return decode([]byte(payload))
}

// Clear deletes the slot row.
func (s *SQLiteStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM slots WHERE name = ?`, s.slot); err != nil {
		recordError("write")
		return fmt.Errorf("clear slot %s: %w", s.slot, err)
	}
	publish(model.NewCollections())
	return nil
}

// Count returns the number of stored players, 0 on any error.
func (s *SQLiteStore) Count(ctx context.Context) int {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT players FROM slots WHERE name = ?`, s.slot).Scan(&n); err != nil {
		return 0
	}
	return n
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
