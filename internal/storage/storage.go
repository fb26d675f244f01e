// Package storage owns the progression ledger and the append-only event log,
// backed by either an embedded SQLite file or a networked Postgres server.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"
)

// timeLayout is how timestamps are persisted. Both schema columns are TEXT, so
// the layout has to sort lexicographically and parse back on either dialect.
const timeLayout = "2006-01-02 15:04:05"

type Store struct {
	db      *sql.DB
	dialect Dialect
	now     func() time.Time
}

// Open selects the backend once: a non-empty databaseURL means Postgres,
// otherwise the embedded SQLite file at sqlitePath.
func Open(databaseURL, sqlitePath string) (*Store, error) {
	dialect := DialectSQLite
	dsn := sqlitePath
	if databaseURL != "" {
		dialect = DialectPostgres
		dsn = databaseURL
	}

	db, err := sql.Open(dialect.driverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("storage: opening %s: %w", dialect, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: pinging %s: %w", dialect, err)
	}

	if dialect == DialectSQLite {
		// The pure-Go driver allows a single writer; one pooled connection
		// keeps concurrent transactions from hitting SQLITE_BUSY.
		db.SetMaxOpenConns(1)
	}

	return &Store{db: db, dialect: dialect, now: time.Now}, nil
}

func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) Dialect() Dialect {
	return s.dialect
}

// EnsureSchema creates the subject and event tables if absent. Safe to call on
// every startup.
func (s *Store) EnsureSchema(ctx context.Context) error {
	stmts := []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS events (
			id %s,
			subject_id TEXT NOT NULL,
			display_name TEXT NOT NULL,
			outcome_text TEXT NOT NULL,
			occurred_at TEXT NOT NULL
		)`, s.dialect.autoIncrementPK()),
		`CREATE TABLE IF NOT EXISTS subjects (
			subject_id TEXT PRIMARY KEY,
			display_name TEXT NOT NULL,
			xp INTEGER NOT NULL DEFAULT 0,
			level INTEGER NOT NULL DEFAULT 1,
			streak INTEGER NOT NULL DEFAULT 0,
			last_active TEXT
		)`,
	}
	for _, q := range stmts {
		if _, err := s.db.ExecContext(ctx, q); err != nil {
			return fmt.Errorf("storage: ensuring schema: %w", err)
		}
	}
	return nil
}
