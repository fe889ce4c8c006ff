// Package sqlitekv backs the kv.Engine contract with a local sqlite file.
// The whole engine is a single kv(key, value) table; the schema is managed
// by embedded goose migrations run at open.
package sqlitekv

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"github.com/freecbt/journal/internal/dbx"
	"github.com/freecbt/journal/internal/kv"
	"github.com/freecbt/journal/internal/kv/sqlitekv/migrations"
)

// Engine is a sqlite-backed kv.Engine.
type Engine struct {
	db *sql.DB
}

var _ kv.Engine = (*Engine)(nil)

// Open opens (creating if necessary) the database at dsn and migrates it.
func Open(ctx context.Context, dsn string) (*Engine, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite db: %w", err)
	}
	if err := runMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to migrate kv schema: %w", err)
	}
	return &Engine{db: db}, nil
}

func runMigrations(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	return goose.UpContext(ctx, db, ".")
}

// Close closes the underlying database.
func (e *Engine) Close() error { return e.db.Close() }

func (e *Engine) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := e.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to select value: %w", err)
	}
	return value, true, nil
}

func (e *Engine) Set(ctx context.Context, key, value string) error {
	query := `INSERT INTO kv (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`
	if _, err := e.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("failed to upsert value: %w", err)
	}
	return nil
}

func (e *Engine) Remove(ctx context.Context, key string) error {
	if _, err := e.db.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete key: %w", err)
	}
	return nil
}

func (e *Engine) Keys(ctx context.Context) ([]string, error) {
	rows, err := e.db.QueryContext(ctx, `SELECT key FROM kv`)
	if err != nil {
		return nil, fmt.Errorf("failed to select keys: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return keys, nil
}

func (e *Engine) MultiGet(ctx context.Context, keys []string) ([]kv.Pair, error) {
	if len(keys) == 0 {
		return []kv.Pair{}, nil
	}

	placeholders := strings.Repeat("?,", len(keys))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]any, len(keys))
	for i, k := range keys {
		args[i] = k
	}

	query := `SELECT key, value FROM kv WHERE key IN (` + placeholders + `)`
	rows, err := e.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to select values: %w", err)
	}
	defer rows.Close()

	found := make(map[string]string, len(keys))
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, err
		}
		found[k] = v
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]kv.Pair, 0, len(keys))
	for _, k := range keys {
		v, ok := found[k]
		out = append(out, kv.Pair{Key: k, Value: v, Found: ok})
	}
	return out, nil
}

func (e *Engine) MultiSet(ctx context.Context, pairs []kv.Pair) error {
	if len(pairs) == 0 {
		return nil
	}
	return dbx.WithTx(ctx, e.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		query := `INSERT INTO kv (key, value) VALUES (?, ?)
			ON CONFLICT(key) DO UPDATE SET value = excluded.value`
		for _, p := range pairs {
			if _, err := tx.ExecContext(ctx, query, p.Key, p.Value); err != nil {
				return fmt.Errorf("failed to upsert %q: %w", p.Key, err)
			}
		}
		return nil
	})
}

func (e *Engine) MultiRemove(ctx context.Context, keys []string) error {
	if len(keys) == 0 {
		return nil
	}
	return dbx.WithTx(ctx, e.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		for _, k := range keys {
			if _, err := tx.ExecContext(ctx, `DELETE FROM kv WHERE key = ?`, k); err != nil {
				return fmt.Errorf("failed to delete %q: %w", k, err)
			}
		}
		return nil
	})
}
