// Package history provides SQLite persistence for the local view
// history: which gallery items were opened in the viewer and when.
package history

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// Store handles SQLite persistence. NOT an interface - concrete type.
// Thread-safety: all methods are safe for concurrent use via internal mutex.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// Entry is one recorded viewing.
type Entry struct {
	ItemID   string
	Title    string
	Event    string
	ViewedAt time.Time
}

// Open creates a Store at the given database path, creating tables if
// they don't exist. Uses WAL mode for file-based databases; ":memory:"
// is supported for tests.
func Open(dbPath string) (*Store, error) {
	connStr := dbPath
	if dbPath == ":memory:" {
		// Shared cache so all pooled connections see the same database.
		connStr = "file::memory:?cache=shared"
	}

	db, err := sql.Open("sqlite", connStr)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if dbPath == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if dbPath != ":memory:" {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("enable WAL mode: %w", err)
		}
	}

	s := &Store{db: db}
	if err := s.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}
	return s, nil
}

func (s *Store) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS views (
		item_id TEXT PRIMARY KEY,
		title TEXT,
		event TEXT,
		viewed_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_views_viewed ON views(viewed_at DESC);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("execute schema: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

// Record stores (or refreshes) a viewing of the given item.
func (s *Store) Record(e Entry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`
		INSERT INTO views (item_id, title, event, viewed_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(item_id) DO UPDATE SET viewed_at = excluded.viewed_at
	`, e.ItemID, e.Title, e.Event, e.ViewedAt)
	if err != nil {
		return fmt.Errorf("record view: %w", err)
	}
	return nil
}

// Seen returns the set of item IDs, out of the given list, that have
// been viewed before. Used by the grid to dim already-seen items.
func (s *Store) Seen(ids []string) (map[string]bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	seen := make(map[string]bool, len(ids))
	if len(ids) == 0 {
		return seen, nil
	}

	stmt, err := s.db.Prepare("SELECT 1 FROM views WHERE item_id = ?")
	if err != nil {
		return nil, err
	}
	defer stmt.Close()

	for _, id := range ids {
		var one int
		err := stmt.QueryRow(id).Scan(&one)
		switch {
		case err == sql.ErrNoRows:
			continue
		case err != nil:
			return nil, fmt.Errorf("query view: %w", err)
		default:
			seen[id] = true
		}
	}
	return seen, nil
}

// Recent returns up to limit entries, most recent first.
func (s *Store) Recent(limit int) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT item_id, title, event, viewed_at
		FROM views ORDER BY viewed_at DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query recent: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ItemID, &e.Title, &e.Event, &e.ViewedAt); err != nil {
			return nil, fmt.Errorf("scan entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
