package store

import (
	"database/sql"
	"errors"
	"fmt"
)

// currentSchemaVersion is the latest schema version.
const currentSchemaVersion = 1

// migrations[i] upgrades the schema from version i to i+1.
var migrations = []func(tx *sql.Tx) error{
	migrateV1,
}

// Migrate applies every migration newer than the recorded schema version,
// each in its own transaction.
func (db *DB) Migrate() error {
	if _, err := db.conn.Exec(`CREATE TABLE IF NOT EXISTS schema_version (version INTEGER NOT NULL)`); err != nil {
		return fmt.Errorf("creating schema_version table: %w", err)
	}

	var version int
	err := db.conn.QueryRow("SELECT version FROM schema_version LIMIT 1").Scan(&version)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("reading schema version: %w", err)
	}

	for v := version; v < len(migrations); v++ {
		if err := db.migrateTo(v+1, migrations[v]); err != nil {
			return fmt.Errorf("migration v%d: %w", v+1, err)
		}
	}
	return nil
}

func (db *DB) migrateTo(version int, step func(*sql.Tx) error) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := step(tx); err != nil {
		return err
	}
	if _, err := tx.Exec("DELETE FROM schema_version"); err != nil {
		return err
	}
	if _, err := tx.Exec("INSERT INTO schema_version (version) VALUES (?)", version); err != nil {
		return err
	}
	return tx.Commit()
}

// migrateV1 creates the diagnostics, recommendations and drafts tables.
func migrateV1(tx *sql.Tx) error {
	statements := []string{
		`CREATE TABLE diagnostics (
			id                TEXT PRIMARY KEY,
			client_id         TEXT NOT NULL,
			saved_at          TEXT NOT NULL,
			business_type     TEXT NOT NULL,
			max_cac           REAL NOT NULL,
			required_sales    INTEGER NOT NULL,
			required_leads    INTEGER NOT NULL,
			required_clicks   INTEGER NOT NULL,
			required_reach    INTEGER NOT NULL,
			viable_investment REAL NOT NULL,
			snapshot          TEXT NOT NULL
		)`,
		`CREATE TABLE recommendations (
			id            INTEGER PRIMARY KEY AUTOINCREMENT,
			diagnostic_id TEXT NOT NULL REFERENCES diagnostics(id) ON DELETE CASCADE,
			position      INTEGER NOT NULL,
			type          TEXT NOT NULL,
			title         TEXT NOT NULL,
			description   TEXT NOT NULL
		)`,
		`CREATE TABLE drafts (
			key        TEXT PRIMARY KEY,
			value      TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
		`CREATE INDEX idx_diagnostics_client ON diagnostics(client_id, saved_at)`,
		`CREATE INDEX idx_recommendations_diagnostic ON recommendations(diagnostic_id, position)`,
	}
	for _, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("executing %.40q: %w", stmt, err)
		}
	}
	return nil
}
