package export

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "modernc.org/sqlite"
)

// Store persists exported tracks in SQLite
type Store struct {
	db *sql.DB
}

// TrackRecord is one exported track. Source names where the track came from:
// "library" or "playlist:<id>".
type TrackRecord struct {
	Source     string
	TrackID    string
	Name       string
	Artist     string
	Album      string
	URI        string
	Duration   time.Duration
	AddedAt    string
	ExportedAt time.Time
}

// NewStore opens (or creates) the export database at dbPath
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// One connection keeps :memory: databases consistent across calls
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA busy_timeout = 10000",
		"PRAGMA synchronous = NORMAL",
		"PRAGMA journal_mode = WAL",
		"PRAGMA temp_store = MEMORY",
	}

	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	schema := `
		CREATE TABLE IF NOT EXISTS tracks (
			source TEXT NOT NULL,
			track_id TEXT NOT NULL,
			name TEXT NOT NULL,
			artist TEXT NOT NULL,
			album TEXT,
			uri TEXT,
			duration_ms INTEGER NOT NULL,
			added_at TEXT,
			position INTEGER NOT NULL,
			exported_at INTEGER NOT NULL,
			PRIMARY KEY (source, track_id)
		);

		CREATE INDEX IF NOT EXISTS idx_tracks_source ON tracks(source, position);
	`

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// ReplaceSource stores records as the complete content of source. Rows of
// the source that are not in records are removed. A track listed twice keeps
// its first position.
func (s *Store) ReplaceSource(ctx context.Context, source string, records []TrackRecord) (int, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM tracks WHERE source = ?", source); err != nil {
		return 0, fmt.Errorf("failed to clear source %s: %w", source, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO tracks (source, track_id, name, artist, album, uri, duration_ms, added_at, position, exported_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (source, track_id) DO NOTHING
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to prepare statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	now := time.Now().Unix()
	stored := 0
	for i, r := range records {
		result, err := stmt.ExecContext(ctx,
			source,
			r.TrackID,
			r.Name,
			r.Artist,
			r.Album,
			r.URI,
			r.Duration.Milliseconds(),
			r.AddedAt,
			i,
			now,
		)
		if err != nil {
			return 0, fmt.Errorf("failed to insert track %s: %w", r.TrackID, err)
		}
		if n, err := result.RowsAffected(); err == nil {
			stored += int(n)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return stored, nil
}

// List returns the tracks of source in their original order. An empty source
// lists every track. limit <= 0 means no limit.
func (s *Store) List(ctx context.Context, source string, limit int) ([]TrackRecord, error) {
	query := `
		SELECT source, track_id, name, artist, COALESCE(album, ''), COALESCE(uri, ''),
			duration_ms, COALESCE(added_at, ''), exported_at
		FROM tracks
	`
	var args []interface{}
	if source != "" {
		query += " WHERE source = ?"
		args = append(args, source)
	}
	query += " ORDER BY source ASC, position ASC"
	if limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query tracks: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var records []TrackRecord
	for rows.Next() {
		var r TrackRecord
		var durationMS, exportedUnix int64

		if err := rows.Scan(
			&r.Source,
			&r.TrackID,
			&r.Name,
			&r.Artist,
			&r.Album,
			&r.URI,
			&durationMS,
			&r.AddedAt,
			&exportedUnix,
		); err != nil {
			return nil, fmt.Errorf("failed to scan track: %w", err)
		}

		r.Duration = time.Duration(durationMS) * time.Millisecond
		r.ExportedAt = time.Unix(exportedUnix, 0)
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating tracks: %w", err)
	}

	return records, nil
}

// Count returns the number of stored tracks, for one source or all of them
func (s *Store) Count(ctx context.Context, source string) (int, error) {
	query := "SELECT COUNT(*) FROM tracks"
	var args []interface{}
	if source != "" {
		query += " WHERE source = ?"
		args = append(args, source)
	}

	var count int
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count tracks: %w", err)
	}
	return count, nil
}

// Sources returns every exported source name
func (s *Store) Sources(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT DISTINCT source FROM tracks ORDER BY source")
	if err != nil {
		return nil, fmt.Errorf("failed to query sources: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var sources []string
	for rows.Next() {
		var source string
		if err := rows.Scan(&source); err != nil {
			return nil, fmt.Errorf("failed to scan source: %w", err)
		}
		sources = append(sources, source)
	}
	return sources, rows.Err()
}
