package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// busyTimeoutMS lets a second funnelplan process wait for a write lock
// instead of failing immediately.
const busyTimeoutMS = 5000

// DB wraps a sql.DB connection to the funnelplan SQLite database.
type DB struct {
	conn *sql.DB
}

// dsn builds a modernc.org/sqlite connection string. Pragmas given in the DSN
// are applied to every pooled connection, not just the first.
func dsn(path string, wal bool) string {
	s := fmt.Sprintf("%s?_pragma=foreign_keys(1)&_pragma=busy_timeout(%d)", path, busyTimeoutMS)
	if wal {
		s += "&_pragma=journal_mode(WAL)"
	}
	return s
}

// Open opens or creates the SQLite database at dbPath, creating its parent
// directory when needed, and migrates it to the current schema.
func Open(dbPath string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory: %w", err)
	}

	conn, err := sql.Open("sqlite", dsn(dbPath, true))
	if err != nil {
		return nil, err
	}
	return initialize(conn)
}

// OpenInMemory opens a private in-memory database, used by tests.
func OpenInMemory() (*DB, error) {
	conn, err := sql.Open("sqlite", dsn(":memory:", false))
	if err != nil {
		return nil, err
	}
	// Each connection to :memory: is a separate database.
	conn.SetMaxOpenConns(1)
	return initialize(conn)
}

func initialize(conn *sql.DB) (*DB, error) {
	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}
	db := &DB{conn: conn}
	if err := db.Migrate(); err != nil {
		_ = conn.Close()
		return nil, err
	}
	return db, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// Conn exposes the underlying pool for ad-hoc queries.
func (db *DB) Conn() *sql.DB {
	return db.conn
}
