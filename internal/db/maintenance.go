// Copyright (c) 2025 Lockam Team
// Lockam - local admin provisioning and device lock
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"context"
	"fmt"
	"time"
)

// Maintain runs engine-specific housekeeping on the open store: PRAGMA
// optimize, VACUUM and an integrity check for SQLite, VACUUM ANALYZE for
// Postgres, OPTIMIZE TABLE for MySQL.
func (s *BunStore) Maintain(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()

	db := s.bun.DB
	switch s.dbType {
	case TypeSQLite:
		// optimize is advisory and unsupported on some builds.
		if _, err := db.ExecContext(ctx, "PRAGMA optimize;"); err != nil {
			dbLogf("db: sqlite optimize failed (ignored): %v", err)
		}
		if _, err := db.ExecContext(ctx, "VACUUM;"); err != nil {
			return fmt.Errorf("sqlite vacuum failed: %w", err)
		}
		var res string
		if err := db.QueryRowContext(ctx, "PRAGMA integrity_check;").Scan(&res); err != nil {
			return fmt.Errorf("sqlite integrity_check failed: %w", err)
		}
		if res != "ok" {
			return fmt.Errorf("sqlite integrity_check failed: %s", res)
		}
	case TypePostgres:
		if _, err := db.ExecContext(ctx, "VACUUM ANALYZE;"); err != nil {
			return fmt.Errorf("postgres vacuum failed: %w", err)
		}
	case TypeMySQL:
		for _, table := range []string{"local_user", "metadata", "schema_migrations"} {
			if _, err := db.ExecContext(ctx, "OPTIMIZE TABLE "+table); err != nil {
				return fmt.Errorf("mysql optimize %s failed: %w", table, err)
			}
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedDatabase, s.dbType)
	}
	dbLogf("db: maintenance for %s completed", s.dbType)
	return nil
}
