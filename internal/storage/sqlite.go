package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"localmart/internal/logger"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS kv (
	key        TEXT PRIMARY KEY,
	value      BLOB NOT NULL,
	updated_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
);`

// SQLite persists keys in a single-file database, the durable store used by
// the CLI between runs.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (creating if needed) the database at path.
func OpenSQLite(ctx context.Context, path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite %s: %w", path, err)
	}
	// One writer keeps modernc from returning SQLITE_BUSY under load.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite %s: %w", path, err)
	}

	s := NewSQLite(db)
	if err := s.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func NewSQLite(db *sql.DB) *SQLite {
	return &SQLite{db: db}
}

func (s *SQLite) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("ensure kv schema: %w", err)
	}
	return nil
}

func (s *SQLite) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		logger.FromCtx(ctx).Error("kv read failed",
			zap.String("layer", "storage"),
			zap.String("method", "Get"),
			zap.String("key", key),
			zap.Error(err),
		)
		return nil, err
	}
	return value, nil
}

func (s *SQLite) Set(ctx context.Context, key string, value []byte) error {
	start := time.Now()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO kv (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = excluded.updated_at
	`, key, value, start.UTC())
	if err != nil {
		logger.FromCtx(ctx).Error("kv write failed",
			zap.String("layer", "storage"),
			zap.String("method", "Set"),
			zap.String("key", key),
			zap.Error(err),
		)
		return err
	}

	logger.FromCtx(ctx).Debug("kv write",
		zap.String("key", key),
		zap.Int("bytes", len(value)),
		zap.Duration("duration", time.Since(start)),
	)
	return nil
}

func (s *SQLite) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		logger.FromCtx(ctx).Error("kv delete failed",
			zap.String("layer", "storage"),
			zap.String("method", "Delete"),
			zap.String("key", key),
			zap.Error(err),
		)
		return err
	}
	return nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}
