package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"

	// Postgres driver registered as "pgx".
	_ "github.com/jackc/pgx/v5/stdlib"
	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"

	"github.com/XSaadiX/Quiz-app/internal/persist"
)

// Supported SQL drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Table and column names of the key/value table.
const (
	stateTable   = "quiz_states"
	colKey       = "state_key"
	colValue     = "state_value"
	colUpdatedAt = "updated_at"
)

// Store is a SQL-backed persist.KV.
type Store struct {
	db      *sql.DB
	drv     *entsql.Driver
	dialect string
	now     func() time.Time
}

var (
	_ persist.KV     = (*Store)(nil)
	_ persist.Lister = (*Store)(nil)
)

// Open connects to the database at dsn using driver (DriverSQLite or
// DriverPostgres) and creates the state table if missing. SQLite
// connections get the recommended pragmas.
func Open(driver, dsn string) (*Store, error) {
	var (
		sqlDriver string
		dia       string
	)
	switch driver {
	case DriverSQLite, "":
		sqlDriver, dia = "sqlite", dialect.SQLite
	case DriverPostgres:
		sqlDriver, dia = "pgx", dialect.Postgres
	default:
		return nil, fmt.Errorf("unsupported sql driver %q", driver)
	}

	db, err := sql.Open(sqlDriver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if dia == dialect.SQLite {
		if err := applyPragmas(db); err != nil {
			db.Close()
			return nil, fmt.Errorf("apply pragmas: %w", err)
		}
	}

	s := &Store{
		db:      db,
		drv:     entsql.OpenDB(dia, db),
		dialect: dia,
		now:     time.Now,
	}
	if err := s.migrate(context.Background()); err != nil {
		s.Close()
		return nil, fmt.Errorf("auto-migrate: %w", err)
	}
	return s, nil
}

// DB returns the underlying *sql.DB for raw queries.
func (s *Store) DB() *sql.DB {
	return s.db
}

// Dialect returns the ent dialect name in use.
func (s *Store) Dialect() string {
	return s.dialect
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.drv.Close()
}

// Get returns the value stored under key, or persist.ErrNotFound.
func (s *Store) Get(ctx context.Context, key string) ([]byte, error) {
	query, args := entsql.Dialect(s.dialect).
		Select(colValue).
		From(entsql.Table(stateTable)).
		Where(entsql.EQ(colKey, key)).
		Query()

	var rows entsql.Rows
	if err := s.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("query state %q: %w", key, err)
	}
	defer rows.Close()

	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return nil, fmt.Errorf("query state %q: %w", key, err)
		}
		return nil, persist.ErrNotFound
	}
	var value string
	if err := rows.Scan(&value); err != nil {
		return nil, fmt.Errorf("scan state %q: %w", key, err)
	}
	return []byte(value), nil
}

// Set inserts or replaces the value under key.
func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	query, args := entsql.Dialect(s.dialect).
		Insert(stateTable).
		Columns(colKey, colValue, colUpdatedAt).
		Values(key, string(value), s.now().UTC()).
		OnConflict(
			entsql.ConflictColumns(colKey),
			entsql.ResolveWithNewValues(),
		).
		Query()

	if err := s.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("save state %q: %w", key, err)
	}
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (s *Store) Delete(ctx context.Context, key string) error {
	query, args := entsql.Dialect(s.dialect).
		Delete(stateTable).
		Where(entsql.EQ(colKey, key)).
		Query()

	if err := s.drv.Exec(ctx, query, args, nil); err != nil {
		return fmt.Errorf("delete state %q: %w", key, err)
	}
	return nil
}

// Keys lists every stored key in ascending order.
func (s *Store) Keys(ctx context.Context) ([]string, error) {
	query, args := entsql.Dialect(s.dialect).
		Select(colKey).
		From(entsql.Table(stateTable)).
		OrderBy(colKey).
		Query()

	var rows entsql.Rows
	if err := s.drv.Query(ctx, query, args, &rows); err != nil {
		return nil, fmt.Errorf("list states: %w", err)
	}
	defer rows.Close()

	var keys []string
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err != nil {
			return nil, fmt.Errorf("scan key: %w", err)
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

// createTableDDL creates the state table; %s is the dialect's timestamp type.
const createTableDDL = "CREATE TABLE IF NOT EXISTS " + stateTable + " (" +
	colKey + " varchar(255) NOT NULL PRIMARY KEY, " +
	colValue + " text NOT NULL, " +
	colUpdatedAt + " %s NOT NULL)"

func (s *Store) migrate(ctx context.Context) error {
	timeType := "datetime"
	if s.dialect == dialect.Postgres {
		timeType = "timestamptz"
	}
	if err := s.drv.Exec(ctx, fmt.Sprintf(createTableDDL, timeType), []any{}, nil); err != nil {
		return fmt.Errorf("create %s: %w", stateTable, err)
	}
	return nil
}

// applyPragmas configures SQLite for optimal single-user performance.
func applyPragmas(db *sql.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
		"PRAGMA foreign_keys = ON",
		"PRAGMA synchronous = NORMAL",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("%s: %w", p, err)
		}
	}
	return nil
}

// DefaultDBPath resolves the database file path in priority order:
// 1. QUIZAPP_DB environment variable
// 2. $XDG_DATA_HOME/quizapp/quizapp.db
// 3. ~/.local/share/quizapp/quizapp.db
func DefaultDBPath() (string, error) {
	if p := os.Getenv("QUIZAPP_DB"); p != "" {
		return p, EnsureDir(p)
	}

	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		dataHome = filepath.Join(home, ".local", "share")
	}

	p := filepath.Join(dataHome, "quizapp", "quizapp.db")
	return p, EnsureDir(p)
}

// EnsureDir creates the parent directory of path if it doesn't exist.
func EnsureDir(path string) error {
	dir := filepath.Dir(path)
	return os.MkdirAll(dir, 0o755)
}
