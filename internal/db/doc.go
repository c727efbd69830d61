// Copyright (c) 2025 Lockam Team
// Lockam - local admin provisioning and device lock
// This source code is licensed under the MIT license found in the LICENSE file.

// Package db is the storage layer behind the credential store.
//
// A Store wraps a long-lived *bun.DB. NewStoreFromDSN opens the driver for
// the configured backend (sqlite by default, postgres and mysql supported),
// pings it, applies the embedded migrations for that dialect and returns a
// *BunStore. Every failure along that path wraps ErrStorageUnavailable.
//
// Tables
//   - local_user: one row per credential (id, username UNIQUE, salt,
//     password_hash, created_at as RFC 3339 text).
//   - metadata: name/value pairs for installation facts such as the
//     install id.
//   - schema_migrations: applied migration versions.
//
// Only the credentials package is expected to call into this package.
//
// Testing notes
//   - Use a per-test shared-cache memory DSN:
//     "file:" + t.Name() + "?mode=memory&cache=shared".
//   - Driver failures are simulated by swapping sqlOpenFunc for a
//     go-sqlmock connection.
package db
