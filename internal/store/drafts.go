package store

import (
	"context"
	"database/sql"
	"time"
)

// Drafts is a draft.Store backed by the drafts table.
type Drafts struct {
	db *DB
}

// Drafts returns the draft store for this database.
func (db *DB) Drafts() *Drafts {
	return &Drafts{db: db}
}

// Get returns the draft stored under key.
func (d *Drafts) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := d.db.conn.QueryRowContext(ctx, "SELECT value FROM drafts WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return value, true, nil
}

// Set upserts the draft stored under key.
func (d *Drafts) Set(ctx context.Context, key, value string) error {
	_, err := d.db.conn.ExecContext(ctx,
		`INSERT INTO drafts (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().UTC().Format(timeLayout),
	)
	return err
}

// Clear deletes the draft stored under key.
func (d *Drafts) Clear(ctx context.Context, key string) error {
	_, err := d.db.conn.ExecContext(ctx, "DELETE FROM drafts WHERE key = ?", key)
	return err
}

// Keys lists all draft keys, sorted.
func (d *Drafts) Keys(ctx context.Context) ([]string, error) {
	rows, err := d.db.conn.QueryContext(ctx, "SELECT key FROM drafts ORDER BY key")
	if err != nil {
		return nil, err
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
	return keys, rows.Err()
}
