// Package db provides database initialization and shared query helpers
// for SQLite and PostgreSQL stores.
package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"
	_ "github.com/mattn/go-sqlite3"
)

// Dialect identifies the SQL flavour spoken by the underlying driver.
type Dialect string

const (
	SQLite   Dialect = "sqlite3"
	Postgres Dialect = "pgx"
)

// ErrNotFound is returned (wrapped) when a row lookup matches nothing.
var ErrNotFound = errors.New("not found")

// DB wraps *sql.DB and rewrites placeholders for the active dialect.
// Queries are written with "?" placeholders throughout.
type DB struct {
	*sql.DB
	dialect Dialect
}

// Wrap adapts an existing connection pool. Useful for tests that supply
// their own *sql.DB.
func Wrap(sqlDB *sql.DB, dialect Dialect) *DB {
	return &DB{DB: sqlDB, dialect: dialect}
}

// DefaultPath returns the default database path: ~/.estate-office/estate.db
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, ".estate-office", "estate.db"), nil
}

// Connect opens the store named by target. postgres:// and postgresql://
// URLs go to PostgreSQL; anything else is treated as a SQLite file path.
func Connect(target string) (*DB, error) {
	if IsPostgresURL(target) {
		return OpenPostgres(target)
	}
	return Open(target)
}

// IsPostgresURL reports whether target looks like a PostgreSQL connection URL.
func IsPostgresURL(target string) bool {
	return strings.HasPrefix(target, "postgres://") || strings.HasPrefix(target, "postgresql://")
}

// Open opens (or creates) a SQLite database at the given path with WAL
// mode, foreign keys and case-sensitive LIKE, and runs migrations.
func Open(path string) (*DB, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating database directory %s: %w", dir, err)
	}

	// Pragmas go in the DSN so every pooled connection gets them.
	dsn := path + "?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=5000&_cslike=true"
	sqlDB, err := sql.Open(string(SQLite), dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	return initialize(Wrap(sqlDB, SQLite))
}

// OpenPostgres connects to PostgreSQL through the pgx stdlib driver and
// runs migrations.
func OpenPostgres(url string) (*DB, error) {
	sqlDB, err := sql.Open(string(Postgres), url)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	return initialize(Wrap(sqlDB, Postgres))
}

func initialize(d *DB) (*DB, error) {
	ctx := context.Background()

	if err := d.PingContext(ctx); err != nil {
		return nil, closeOnError(d, fmt.Errorf("connecting to database: %w", err))
	}

	if err := d.Migrate(ctx); err != nil {
		return nil, closeOnError(d, fmt.Errorf("running migrations: %w", err))
	}

	return d, nil
}

func closeOnError(d *DB, err error) error {
	if closeErr := d.Close(); closeErr != nil {
		return fmt.Errorf("%w (also failed to close: %v)", err, closeErr)
	}
	return err
}

// Dialect returns the dialect of the underlying driver.
func (d *DB) Dialect() Dialect {
	return d.dialect
}

// Rebind rewrites "?" placeholders into "$1, $2, ..." for PostgreSQL.
// Question marks inside single-quoted literals are left alone.
func (d *DB) Rebind(query string) string {
	if d.dialect != Postgres {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 16)
	n := 0
	inQuote := false
	for i := 0; i < len(query); i++ {
		c := query[i]
		switch {
		case c == '\'':
			inQuote = !inQuote
			b.WriteByte(c)
		case c == '?' && !inQuote:
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}

// QueryContext runs a query after rebinding its placeholders.
func (d *DB) QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error) {
	return d.DB.QueryContext(ctx, d.Rebind(query), args...)
}

// QueryRowContext runs a single-row query after rebinding its placeholders.
func (d *DB) QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row {
	return d.DB.QueryRowContext(ctx, d.Rebind(query), args...)
}

// ExecContext executes a statement after rebinding its placeholders.
func (d *DB) ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error) {
	return d.DB.ExecContext(ctx, d.Rebind(query), args...)
}
