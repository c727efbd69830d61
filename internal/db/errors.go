// Copyright (c) 2025 Lockam Team
// Lockam - local admin provisioning and device lock
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"errors"
	"strings"
)

var (
	// ErrDuplicate is returned when an insert hits a unique constraint.
	ErrDuplicate = errors.New("duplicate record")
	// ErrNotFound is returned when a lookup matches no row.
	ErrNotFound = errors.New("record not found")
	// ErrStorageUnavailable wraps every failure to open or prepare the
	// backing database. Callers treat it as fatal.
	ErrStorageUnavailable = errors.New("storage unavailable")
	// ErrUnsupportedDatabase is returned for an unknown database type.
	ErrUnsupportedDatabase = errors.New("unsupported database type")
)

// MapDBError maps driver-level constraint violations onto ErrDuplicate.
// The match is string based so this file needs no driver imports.
func MapDBError(err error) error {
	if err == nil {
		return nil
	}
	le := strings.ToLower(err.Error())
	// MySQL duplicate entry (1062), Postgres unique violation (23505), SQLite UNIQUE constraint.
	if strings.Contains(le, "duplicate") || strings.Contains(le, "unique") || strings.Contains(le, "23505") || strings.Contains(le, "1062") {
		return ErrDuplicate
	}
	return err
}
