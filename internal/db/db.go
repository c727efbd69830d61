// Copyright (c) 2025 Lockam Team
// Lockam - local admin provisioning and device lock
// This source code is licensed under the MIT license found in the LICENSE file.

package db // import "github.com/lockam/lockam/internal/db"

import (
	"context"
	"database/sql"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/mysqldialect"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Supported database types.
const (
	TypeSQLite   = "sqlite"
	TypePostgres = "postgres"
	TypeMySQL    = "mysql"
)

var (
	//go:embed migrations
	embeddedMigrations embed.FS
	// sqlOpenFunc allows tests to override database opening behavior.
	sqlOpenFunc = sql.Open
)

// driverFor maps a configured database type to its registered driver name.
func driverFor(dbType string) (string, error) {
	switch dbType {
	case TypeSQLite:
		return "sqlite", nil
	case TypePostgres:
		// pgx stdlib registers itself as "pgx".
		return "pgx", nil
	case TypeMySQL:
		return "mysql", nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedDatabase, dbType)
	}
}

// IsMemoryDSN reports whether dsn names an in-memory SQLite database.
func IsMemoryDSN(dsn string) bool {
	return dsn == ":memory:" || strings.Contains(dsn, "mode=memory") || strings.HasPrefix(dsn, "file::memory:")
}

// EnsureSQLiteDir creates the parent directory of a file-backed SQLite DSN.
// Memory DSNs and bare file names need nothing.
func EnsureSQLiteDir(dsn string) error {
	if dsn == "" || IsMemoryDSN(dsn) {
		return nil
	}
	file := strings.TrimPrefix(dsn, "file:")
	if i := strings.IndexByte(file, '?'); i >= 0 {
		file = file[:i]
	}
	dir := filepath.Dir(file)
	if dir == "." || dir == "" {
		return nil
	}
	return os.MkdirAll(dir, 0o700)
}

// NewStoreFromDSN opens the database, applies pending migrations and returns
// a Store backed by a long-lived *bun.DB. It is safe to call on every start.
func NewStoreFromDSN(ctx context.Context, dbType, dsn string) (*BunStore, error) {
	driverName, err := driverFor(dbType)
	if err != nil {
		return nil, err
	}
	start := time.Now()
	sqlDB, err := sqlOpenFunc(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s database: %w", ErrStorageUnavailable, dbType, err)
	}
	configurePool(sqlDB, dbType, dsn)

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("%w: connect to %s database: %w", ErrStorageUnavailable, dbType, err)
	}
	dbLogf("db: opened %s driver in %s", driverName, time.Since(start))

	migStart := time.Now()
	if err := RunMigrations(ctx, sqlDB, dbType); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}
	dbLogf("db: migrations for %s completed in %s", dbType, time.Since(migStart))

	return &BunStore{bun: createBunDB(sqlDB, dbType), dbType: dbType}, nil
}

// configurePool applies conservative pool limits. LOCKAM_DB_MAX_OPEN_CONNS
// and LOCKAM_DB_CONN_MAX_LIFETIME_SECONDS override the defaults for
// server-backed databases.
func configurePool(sqlDB *sql.DB, dbType, dsn string) {
	const (
		defaultMaxOpenConns    = 4
		defaultConnMaxLifetime = 5 * time.Minute
	)

	// Each connection to a plain ":memory:" DSN gets its own database, so
	// memory stores are pinned to one connection that never expires.
	if dbType == TypeSQLite && IsMemoryDSN(dsn) {
		sqlDB.SetMaxOpenConns(1)
		sqlDB.SetMaxIdleConns(1)
		sqlDB.SetConnMaxLifetime(0)
		sqlDB.SetConnMaxIdleTime(0)
		return
	}
	if dbType == TypeSQLite {
		// SQLite serializes writers; one connection avoids SQLITE_BUSY.
		sqlDB.SetMaxOpenConns(1)
		return
	}

	maxOpen := defaultMaxOpenConns
	if v := os.Getenv("LOCKAM_DB_MAX_OPEN_CONNS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			maxOpen = n
		}
	}
	connMax := defaultConnMaxLifetime
	if v := os.Getenv("LOCKAM_DB_CONN_MAX_LIFETIME_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			connMax = time.Duration(n) * time.Second
		}
	}
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(maxOpen)
	sqlDB.SetConnMaxLifetime(connMax)
}

// createBunDB wraps sqlDB with the dialect for dbType.
func createBunDB(sqlDB *sql.DB, dbType string) *bun.DB {
	switch dbType {
	case TypePostgres:
		return bun.NewDB(sqlDB, pgdialect.New())
	case TypeMySQL:
		return bun.NewDB(sqlDB, mysqldialect.New())
	default:
		return bun.NewDB(sqlDB, sqlitedialect.New())
	}
}

// RunMigrations applies the embedded *.up.sql files for dbType that are not
// yet recorded in schema_migrations. Each file runs in its own transaction.
func RunMigrations(ctx context.Context, sqlDB *sql.DB, dbType string) error {
	migrationsPath := "migrations/" + dbType

	entries, err := fs.ReadDir(embeddedMigrations, migrationsPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("no migrations embedded for %s", dbType)
		}
		return fmt.Errorf("failed to read embedded migrations (%s): %w", migrationsPath, err)
	}

	var ups []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".up.sql") {
			ups = append(ups, e.Name())
		}
	}
	sort.Strings(ups)

	if err := ensureSchemaMigrationsTable(ctx, sqlDB, dbType); err != nil {
		return fmt.Errorf("failed to ensure schema_migrations table: %w", err)
	}

	selectQuery := "SELECT 1 FROM schema_migrations WHERE version = ?"
	insertQuery := "INSERT INTO schema_migrations(version, applied_at) VALUES(?, ?)"
	if dbType == TypePostgres {
		selectQuery = "SELECT 1 FROM schema_migrations WHERE version = $1"
		insertQuery = "INSERT INTO schema_migrations(version, applied_at) VALUES($1, $2)"
	}

	for _, fname := range ups {
		version := strings.TrimSuffix(fname, ".up.sql")

		var exists int
		err := sqlDB.QueryRowContext(ctx, selectQuery, version).Scan(&exists)
		if err == nil {
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("failed to check migration version %s: %w", version, err)
		}

		p := path.Join(migrationsPath, fname)
		data, err := embeddedMigrations.ReadFile(p)
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", p, err)
		}

		tx, err := sqlDB.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to begin transaction for migration %s: %w", version, err)
		}
		if _, err := tx.ExecContext(ctx, string(data)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to execute migration %s: %w", version, err)
		}
		if _, err := tx.ExecContext(ctx, insertQuery, version, time.Now().UTC()); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to record migration %s: %w", version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %s: %w", version, err)
		}
		dbLogf("db: applied migration %s", version)
	}
	return nil
}

func ensureSchemaMigrationsTable(ctx context.Context, sqlDB *sql.DB, dbType string) error {
	// MySQL cannot index TEXT without a prefix length.
	ddl := `CREATE TABLE IF NOT EXISTS schema_migrations (version TEXT PRIMARY KEY, applied_at TIMESTAMP)`
	if dbType == TypeMySQL {
		ddl = `CREATE TABLE IF NOT EXISTS schema_migrations (version VARCHAR(191) PRIMARY KEY, applied_at TIMESTAMP)`
	}
	_, err := sqlDB.ExecContext(ctx, ddl)
	return err
}
