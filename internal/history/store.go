// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history keeps a SQLite log of conversions.
package history

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/word2md/pkg/types"
)

const dbFile = "history.db"

// Store records conversions in a SQLite database.
type Store struct {
	db *sql.DB
}

// DefaultDBPath returns <user config dir>/word2md/history.db.
func DefaultDBPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("locating config directory: %w", err)
	}
	return filepath.Join(dir, "word2md", dbFile), nil
}

// NewStore opens or creates the history database at cfg.DBPath, or at
// DefaultDBPath when none is configured. It creates the schema if it does
// not exist.
func NewStore(cfg types.HistoryConfig) (*Store, error) {
	dbPath := cfg.DBPath
	if dbPath == "" {
		var err error
		if dbPath, err = DefaultDBPath(); err != nil {
			return nil, err
		}
	}
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS conversions (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			id TEXT NOT NULL UNIQUE,
			source_path TEXT NOT NULL,
			output_path TEXT NOT NULL,
			sections TEXT NOT NULL,
			code_language TEXT,
			images INTEGER NOT NULL DEFAULT 0,
			status TEXT NOT NULL,
			error TEXT,
			converted_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_conversions_converted_at ON conversions(converted_at)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record stores rec, assigning a new ID when rec has none.
func (s *Store) Record(ctx context.Context, rec types.ConversionRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.ConvertedAt.IsZero() {
		rec.ConvertedAt = time.Now()
	}
	sections, err := json.Marshal(rec.Sections)
	if err != nil {
		return fmt.Errorf("encoding sections: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO conversions (id, source_path, output_path, sections, code_language, images, status, error, converted_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.SourcePath, rec.OutputPath, string(sections), rec.CodeLanguage,
		rec.Images, string(rec.Status), rec.Error,
		rec.ConvertedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("inserting conversion %s: %w", rec.ID, err)
	}
	return nil
}

// List returns the most recent conversions, newest first. A limit of zero
// or less returns every record.
func (s *Store) List(ctx context.Context, limit int) ([]types.ConversionRecord, error) {
	query := `SELECT id, source_path, output_path, sections, code_language, images, status, error, converted_at
		FROM conversions ORDER BY converted_at DESC, rowid DESC`
	var args []any
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying conversions: %w", err)
	}
	defer rows.Close()

	var records []types.ConversionRecord
	for rows.Next() {
		var (
			rec                types.ConversionRecord
			sections, at       string
			lang, status, errS sql.NullString
		)
		if err := rows.Scan(&rec.ID, &rec.SourcePath, &rec.OutputPath, &sections,
			&lang, &rec.Images, &status, &errS, &at); err != nil {
			return nil, fmt.Errorf("scanning conversion: %w", err)
		}
		if err := json.Unmarshal([]byte(sections), &rec.Sections); err != nil {
			return nil, fmt.Errorf("decoding sections of %s: %w", rec.ID, err)
		}
		if rec.ConvertedAt, err = time.Parse(time.RFC3339Nano, at); err != nil {
			return nil, fmt.Errorf("decoding timestamp of %s: %w", rec.ID, err)
		}
		rec.CodeLanguage = lang.String
		rec.Status = types.ConversionStatus(status.String)
		rec.Error = errS.String
		records = append(records, rec)
	}
	return records, rows.Err()
}
