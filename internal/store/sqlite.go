package store

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/amishk599/tailor/internal/model"
)

// DefaultSnapshotName is the row key used when none is configured.
const DefaultSnapshotName = "resumeCustomizer"

// Ensure SQLiteStore implements model.SnapshotStore.
var _ model.SnapshotStore = (*SQLiteStore)(nil)

// SQLiteStore keeps one named snapshot as a JSON object in a SQLite database.
type SQLiteStore struct {
	db   *sql.DB
	name string
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath and ensures the
// snapshots table exists. name selects the snapshot row.
func NewSQLiteStore(dbPath, name string) (*SQLiteStore, error) {
	if name == "" {
		name = DefaultSnapshotName
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging sqlite db: %w", err)
	}

	createTable := `CREATE TABLE IF NOT EXISTS snapshots (
		name       TEXT PRIMARY KEY,
		data       TEXT NOT NULL,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	)`
	if _, err := db.Exec(createTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating snapshots table: %w", err)
	}

	return &SQLiteStore{db: db, name: name}, nil
}

// Load returns the stored snapshot. A missing row yields a zero Snapshot, and
// keys absent from the stored object keep their zero values.
func (s *SQLiteStore) Load() (model.Snapshot, error) {
	var data string
	err := s.db.QueryRow("SELECT data FROM snapshots WHERE name = ?", s.name).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Snapshot{}, nil
	}
	if err != nil {
		return model.Snapshot{}, fmt.Errorf("loading snapshot %s: %w", s.name, err)
	}

	var snap model.Snapshot
	if err := json.Unmarshal([]byte(data), &snap); err != nil {
		return model.Snapshot{}, fmt.Errorf("decoding snapshot %s: %w", s.name, err)
	}
	return snap, nil
}

// Save replaces the stored snapshot.
func (s *SQLiteStore) Save(snap model.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encoding snapshot %s: %w", s.name, err)
	}
	_, err = s.db.Exec(`INSERT INTO snapshots (name, data, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(name) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`, s.name, string(data))
	if err != nil {
		return fmt.Errorf("saving snapshot %s: %w", s.name, err)
	}
	return nil
}

// Clear deletes the stored snapshot.
func (s *SQLiteStore) Clear() error {
	if _, err := s.db.Exec("DELETE FROM snapshots WHERE name = ?", s.name); err != nil {
		return fmt.Errorf("clearing snapshot %s: %w", s.name, err)
	}
	return nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
