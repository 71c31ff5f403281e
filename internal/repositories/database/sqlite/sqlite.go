// Package sqlite stores credentials and the ledger in a single SQLite file
// using the pure-Go modernc driver.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	sq "github.com/Masterminds/squirrel"

	_ "modernc.org/sqlite"
)

// timestampLayout is how created_at values are written to TEXT columns.
const timestampLayout = time.RFC3339Nano

var builder = sq.StatementBuilder.PlaceholderFormat(sq.Question)

// Open creates the database directory if needed, applies migrations and
// returns a handle limited to one connection so writes are serialized.
func Open(ctx context.Context, dbPath string) (*sql.DB, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	// single connection: reads are serialized with writes too, WAL notwithstanding
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return db, nil
}
