// Package store keeps the point collection in a local sqlite file so an
// editing session survives a restart.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"

	"geoedit/internal/dataset"
)

const schema = `
CREATE TABLE IF NOT EXISTS points (
	id           TEXT PRIMARY KEY,
	seq          INTEGER NOT NULL,
	lat          REAL NOT NULL,
	lon          REAL NOT NULL,
	alt          REAL NOT NULL DEFAULT 0,
	heading      REAL NOT NULL DEFAULT 0,
	gimbal_pitch REAL NOT NULL DEFAULT 0,
	attributes   TEXT NOT NULL DEFAULT '{}'
);
CREATE INDEX IF NOT EXISTS points_seq_idx ON points (seq);
CREATE TABLE IF NOT EXISTS meta (
	key   TEXT PRIMARY KEY,
	value TEXT NOT NULL
);
`

const headersKey = "headers"

// Store is a sqlite-backed point store keyed by point id.
type Store struct {
	db *sql.DB
}

// Open opens or creates the database at path.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: ping %s: %w", path, err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: create schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// SavePoints replaces the stored collection with points, in order, and
// records the column layout.
func (s *Store) SavePoints(ctx context.Context, points []dataset.FeaturePoint, headers []string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("store: begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM points`); err != nil {
		return fmt.Errorf("store: clear points: %w", err)
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO points
		(id, seq, lat, lon, alt, heading, gimbal_pitch, attributes)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("store: prepare insert: %w", err)
	}
	defer stmt.Close()

	for i, p := range points {
		attrs, err := json.Marshal(p.Attributes)
		if err != nil {
			return fmt.Errorf("store: encode attributes of %s: %w", p.ID, err)
		}
		if _, err := stmt.ExecContext(ctx, p.ID, i, p.Lat, p.Lon, p.Alt, p.Heading, p.GimbalPitch, string(attrs)); err != nil {
			return fmt.Errorf("store: insert %s: %w", p.ID, err)
		}
	}

	hdr, err := json.Marshal(headers)
	if err != nil {
		return fmt.Errorf("store: encode headers: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`INSERT INTO meta (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`, headersKey, string(hdr)); err != nil {
		return fmt.Errorf("store: save headers: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("store: commit: %w", err)
	}
	return nil
}

// LoadPoints returns the stored collection in flight order and its headers.
// An empty store yields no points and nil headers.
func (s *Store) LoadPoints(ctx context.Context) ([]dataset.FeaturePoint, []string, error) {
	var headers []string
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = ?`, headersKey).Scan(&raw)
	switch {
	case errors.Is(err, sql.ErrNoRows):
	case err != nil:
		return nil, nil, fmt.Errorf("store: load headers: %w", err)
	default:
		if err := json.Unmarshal([]byte(raw), &headers); err != nil {
			return nil, nil, fmt.Errorf("store: decode headers: %w", err)
		}
	}

	rows, err := s.db.QueryContext(ctx, `SELECT id, lat, lon, alt, heading, gimbal_pitch, attributes
		FROM points ORDER BY seq`)
	if err != nil {
		return nil, nil, fmt.Errorf("store: query points: %w", err)
	}
	defer rows.Close()

	var points []dataset.FeaturePoint
	for rows.Next() {
		var p dataset.FeaturePoint
		var attrs string
		if err := rows.Scan(&p.ID, &p.Lat, &p.Lon, &p.Alt, &p.Heading, &p.GimbalPitch, &attrs); err != nil {
			return nil, nil, fmt.Errorf("store: scan point: %w", err)
		}
		if err := json.Unmarshal([]byte(attrs), &p.Attributes); err != nil {
			return nil, nil, fmt.Errorf("store: decode attributes of %s: %w", p.ID, err)
		}
		points = append(points, p)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("store: read points: %w", err)
	}
	return points, headers, nil
}

// Clear removes every stored point and the header record.
func (s *Store) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM points; DELETE FROM meta;`); err != nil {
		return fmt.Errorf("store: clear: %w", err)
	}
	return nil
}
