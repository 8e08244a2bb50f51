package placecache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/jonwraymond/placegate/place"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS cached_places (
	place_id   TEXT PRIMARY KEY,
	row_json   TEXT NOT NULL,
	cached_at  TEXT NOT NULL,
	expires_at TEXT NOT NULL
);
`

// SQLiteStore is a durable store backed by a local SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore opens (and if needed initializes) the database at path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("placecache: open sqlite: %w", err)
	}
	// SQLite handles one writer at a time; a second connection would
	// just contend on the file lock.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("placecache: init schema: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error { return s.db.Close() }

// Get returns the row for placeID, stale or not. (nil, nil) on absence.
func (s *SQLiteStore) Get(ctx context.Context, placeID string) (*place.CachedPlace, error) {
	if placeID == "" {
		return nil, ErrInvalidKey
	}

	var rowJSON string
	err := s.db.QueryRowContext(ctx,
		`SELECT row_json FROM cached_places WHERE place_id = ?`, placeID,
	).Scan(&rowJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("placecache: select: %w", err)
	}

	var p place.CachedPlace
	if err := json.Unmarshal([]byte(rowJSON), &p); err != nil {
		return nil, fmt.Errorf("placecache: decode row: %w", err)
	}
	return &p, nil
}

// Upsert inserts or fully replaces the row under p.PlaceID.
func (s *SQLiteStore) Upsert(ctx context.Context, p *place.CachedPlace) error {
	if p == nil || p.PlaceID == "" {
		return ErrInvalidKey
	}

	rowJSON, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("placecache: encode row: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO cached_places (place_id, row_json, cached_at, expires_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(place_id) DO UPDATE SET
			row_json   = excluded.row_json,
			cached_at  = excluded.cached_at,
			expires_at = excluded.expires_at`,
		p.PlaceID, string(rowJSON),
		p.CachedAt.UTC().Format(time.RFC3339Nano),
		p.ExpiresAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("placecache: upsert: %w", err)
	}
	return nil
}

// Ping verifies the database file is reachable.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Ensure SQLiteStore implements Store
var _ Store = (*SQLiteStore)(nil)
