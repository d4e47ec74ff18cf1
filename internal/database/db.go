// Package database is the sqlite key-value backend. Each value is an opaque
// string keyed by name; the planner stores one JSON snapshot per slot.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/akyairhashvil/timeplan/internal/config"
	_ "github.com/mattn/go-sqlite3"
)

const (
	defaultDBTimeout = config.DefaultDBTimeout
	schemaVersion    = 1
)

// Database wraps a sqlite handle.
type Database struct {
	DB     *sql.DB
	dbFile string
}

// Open opens (creating if needed) the database at path and applies the schema.
func Open(ctx context.Context, path string) (*Database, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, wrapErr("open", path, err)
		}
	}
	conn, err := sql.Open("sqlite3", path+"?_busy_timeout=5000&_foreign_keys=on")
	if err != nil {
		return nil, wrapErr("open", path, err)
	}
	// sqlite allows one writer at a time.
	conn.SetMaxOpenConns(1)

	d := &Database{DB: conn, dbFile: path}
	if err := d.ping(ctx); err != nil {
		conn.Close()
		return nil, err
	}
	if err := d.createTables(ctx); err != nil {
		conn.Close()
		return nil, err
	}
	return d, nil
}

func (d *Database) Close() error {
	if d == nil || d.DB == nil {
		return nil
	}
	return d.DB.Close()
}

// Path returns the file backing the database.
func (d *Database) Path() string {
	return d.dbFile
}

func (d *Database) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, timeout)
}

func (d *Database) ping(ctx context.Context) error {
	ctx, cancel := d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()
	if err := d.DB.PingContext(ctx); err != nil {
		if isNotADatabase(err) {
			return wrapErr("open", d.dbFile, ErrDatabaseCorrupted)
		}
		return wrapErr("ping", d.dbFile, err)
	}
	// sqlite opens lazily; touching the schema surfaces a corrupt file.
	var n int
	if err := d.DB.QueryRowContext(ctx, "SELECT count(*) FROM sqlite_master").Scan(&n); err != nil {
		if isNotADatabase(err) {
			return wrapErr("open", d.dbFile, ErrDatabaseCorrupted)
		}
		return wrapErr("open", d.dbFile, err)
	}
	return nil
}

func (d *Database) createTables(ctx context.Context) error {
	ctx, cancel := d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()

	queries := []string{
		`CREATE TABLE IF NOT EXISTS kv (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);`,
		fmt.Sprintf("PRAGMA user_version = %d", schemaVersion),
	}
	for _, query := range queries {
		if _, err := d.DB.ExecContext(ctx, query); err != nil {
			return wrapErr("migrate", d.dbFile, fmt.Errorf("%w: %s", err, query))
		}
	}
	return nil
}

// SchemaVersion reports the stored schema version.
func (d *Database) SchemaVersion(ctx context.Context) (int, error) {
	ctx, cancel := d.withTimeout(ctx, defaultDBTimeout)
	defer cancel()
	var v int
	err := d.DB.QueryRowContext(ctx, "PRAGMA user_version").Scan(&v)
	return v, err
}

func isNotADatabase(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrDatabaseCorrupted) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "not a database") || strings.Contains(msg, "malformed")
}
