// Package storage provides SQLite-based persistence for recorded games.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
//
// Only replays are stored: the seed, frame rate and input log needed to
// re-simulate a game. Scores are never persisted; they are recomputed by
// replaying.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

var (
	// ErrNotFound is returned when no replay matches an ID.
	ErrNotFound = errors.New("storage: replay not found")
	// ErrAmbiguous is returned when an ID prefix matches several replays.
	ErrAmbiguous = errors.New("storage: replay id prefix is ambiguous")
)

// Store manages the SQLite database connection for replay persistence.
// It is safe for concurrent use; the SSH server shares one Store.
type Store struct {
	db *sql.DB
}

// ReplayRecord is one stored replay. Frames holds the encoded input log.
type ReplayRecord struct {
	ID        string
	GameID    string
	Seed      int64
	TickRate  int
	Ticks     uint64
	Frames    []byte
	CreatedAt time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS replays (
			id TEXT PRIMARY KEY,
			game_id TEXT NOT NULL,
			seed INTEGER NOT NULL,
			tick_rate INTEGER NOT NULL,
			ticks INTEGER NOT NULL,
			frames BLOB NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_replays_created ON replays(created_at DESC);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveReplay stores a replay and returns its ID. A new UUID is assigned
// when rec.ID is empty.
func (s *Store) SaveReplay(rec ReplayRecord) (string, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	} else if _, err := uuid.Parse(rec.ID); err != nil {
		return "", fmt.Errorf("storage: invalid replay id %q: %w", rec.ID, err)
	}
	if rec.Frames == nil {
		rec.Frames = []byte{}
	}

	_, err := s.db.Exec(
		`INSERT INTO replays (id, game_id, seed, tick_rate, ticks, frames)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.GameID, rec.Seed, rec.TickRate, int64(rec.Ticks), rec.Frames,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save replay: %w", err)
	}
	return rec.ID, nil
}

// Replay fetches one replay by full ID or by a unique ID prefix.
func (s *Store) Replay(id string) (*ReplayRecord, error) {
	if id == "" {
		return nil, ErrNotFound
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, seed, tick_rate, ticks, frames, created_at
		 FROM replays
		 WHERE id = ? OR substr(id, 1, ?) = ?
		 LIMIT 2`,
		id, len(id), id,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query replay: %w", err)
	}
	defer rows.Close()

	var found []ReplayRecord
	for rows.Next() {
		rec, err := scanReplay(rows, true)
		if err != nil {
			return nil, err
		}
		found = append(found, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	switch len(found) {
	case 0:
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	case 1:
		return &found[0], nil
	default:
		for i := range found {
			if found[i].ID == id {
				return &found[i], nil
			}
		}
		return nil, fmt.Errorf("%w: %s", ErrAmbiguous, id)
	}
}

// RecentReplays lists the newest replays first, without their input logs.
func (s *Store) RecentReplays(limit int) ([]ReplayRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, game_id, seed, tick_rate, ticks, created_at
		 FROM replays
		 ORDER BY created_at DESC, rowid DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query replays: %w", err)
	}
	defer rows.Close()

	var records []ReplayRecord
	for rows.Next() {
		rec, err := scanReplay(rows, false)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return records, nil
}

// CountReplays returns the number of stored replays.
func (s *Store) CountReplays() (int, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM replays").Scan(&n); err != nil {
		return 0, fmt.Errorf("storage: cannot count replays: %w", err)
	}
	return n, nil
}

// DeleteReplay removes a replay by its full ID.
func (s *Store) DeleteReplay(id string) error {
	res, err := s.db.Exec("DELETE FROM replays WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("storage: cannot delete replay: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("storage: cannot delete replay: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanReplay(row scanner, withFrames bool) (ReplayRecord, error) {
	var rec ReplayRecord
	var ticks int64
	var createdAt any

	dest := []any{&rec.ID, &rec.GameID, &rec.Seed, &rec.TickRate, &ticks}
	if withFrames {
		dest = append(dest, &rec.Frames)
	}
	dest = append(dest, &createdAt)

	if err := row.Scan(dest...); err != nil {
		return rec, fmt.Errorf("storage: cannot scan row: %w", err)
	}
	rec.Ticks = uint64(ticks)
	rec.CreatedAt = parseTime(createdAt)
	return rec, nil
}

// parseTime handles both time.Time and string datetimes from the driver.
func parseTime(v any) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", t); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
