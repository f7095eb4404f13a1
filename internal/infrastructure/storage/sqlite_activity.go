package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/yourusername/crm-records/internal/domain/entity"
	"github.com/yourusername/crm-records/internal/domain/repository"
)

type sqliteActivityRepository struct {
	db *sql.DB
}

// NewSQLiteActivityRepository SQLite backed activity journal
func NewSQLiteActivityRepository(dbPath string) (repository.ActivityRepository, error) {
	if dbPath == "" {
		return nil, errors.New("db path must not be empty")
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if err := createActivitySchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &sqliteActivityRepository{db: db}, nil
}

func createActivitySchema(db *sql.DB) error {
	const schema = `
CREATE TABLE IF NOT EXISTS activities (
	id TEXT PRIMARY KEY,
	action TEXT NOT NULL,
	kind TEXT,
	details TEXT,
	row_count INTEGER NOT NULL DEFAULT 0,
	ts TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_activities_ts ON activities (ts);
`
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Log inserts an entry
func (s *sqliteActivityRepository) Log(ctx context.Context, activity entity.Activity) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO activities (id, action, kind, details, row_count, ts) VALUES (?, ?, ?, ?, ?, ?)`,
		activity.ID, activity.Action, string(activity.Kind), activity.Details, activity.Rows, activity.Timestamp)
	return err
}

// Recent newest first
func (s *sqliteActivityRepository) Recent(ctx context.Context, limit int) ([]entity.Activity, error) {
	query := `SELECT id, action, kind, details, row_count, ts FROM activities ORDER BY ts DESC, rowid DESC`
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []entity.Activity
	for rows.Next() {
		var a entity.Activity
		var kind string
		var ts time.Time
		if err := rows.Scan(&a.ID, &a.Action, &kind, &a.Details, &a.Rows, &ts); err != nil {
			return nil, err
		}
		a.Kind = entity.Kind(kind)
		a.Timestamp = ts
		out = append(out, a)
	}
	return out, rows.Err()
}

// Clear removes every entry
func (s *sqliteActivityRepository) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM activities`)
	return err
}

// Close closes the database handle
func (s *sqliteActivityRepository) Close() error {
	return s.db.Close()
}
