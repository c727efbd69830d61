// Copyright (c) 2025 Lockam Team
// Lockam - local admin provisioning and device lock
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lockam/lockam/internal/model"
	"github.com/uptrace/bun"
)

// BunStore implements Store on top of a *bun.DB for every supported dialect.
type BunStore struct {
	bun    *bun.DB
	dbType string
}

// Type returns the configured database type.
func (s *BunStore) Type() string { return s.dbType }

// Bun exposes the underlying handle for maintenance and tests.
func (s *BunStore) Bun() *bun.DB { return s.bun }

// Close releases the database handle.
func (s *BunStore) Close() error {
	if s == nil || s.bun == nil {
		return nil
	}
	return s.bun.Close()
}

type credentialRow struct {
	bun.BaseModel `bun:"table:local_user"`

	ID           int64  `bun:"id,pk,autoincrement"`
	Username     string `bun:"username,notnull"`
	Salt         string `bun:"salt,notnull"`
	PasswordHash string `bun:"password_hash,notnull"`
	CreatedAt    string `bun:"created_at,notnull"`
}

func rowFromCredential(c *model.Credential) *credentialRow {
	return &credentialRow{
		Username:     c.Username,
		Salt:         c.Salt,
		PasswordHash: c.PasswordHash,
		CreatedAt:    c.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func (r *credentialRow) toModel() (*model.Credential, error) {
	created, err := time.Parse(time.RFC3339Nano, r.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("credential %d has malformed created_at %q: %w", r.ID, r.CreatedAt, err)
	}
	return &model.Credential{
		ID:           r.ID,
		Username:     r.Username,
		Salt:         r.Salt,
		PasswordHash: r.PasswordHash,
		CreatedAt:    created.UTC(),
	}, nil
}

// ReplaceCredential implements the single-user write: delete all, insert one.
func (s *BunStore) ReplaceCredential(ctx context.Context, c *model.Credential) error {
	row := rowFromCredential(c)
	err := s.bun.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewRaw("DELETE FROM local_user").Exec(ctx); err != nil {
			return fmt.Errorf("clear local_user: %w", err)
		}
		if _, err := tx.NewInsert().Model(row).Exec(ctx); err != nil {
			return fmt.Errorf("insert local_user: %w", MapDBError(err))
		}
		return nil
	})
	if err != nil {
		return err
	}
	c.ID = row.ID
	dbLogf("db: replaced local credential with %q (id=%d)", c.Username, c.ID)
	return nil
}

// InsertCredential implements the multi-user write.
func (s *BunStore) InsertCredential(ctx context.Context, c *model.Credential) error {
	row := rowFromCredential(c)
	if _, err := s.bun.NewInsert().Model(row).Exec(ctx); err != nil {
		mapped := MapDBError(err)
		if errors.Is(mapped, ErrDuplicate) {
			return ErrDuplicate
		}
		return fmt.Errorf("insert local_user: %w", mapped)
	}
	c.ID = row.ID
	return nil
}

func (s *BunStore) FirstCredential(ctx context.Context) (*model.Credential, error) {
	row := new(credentialRow)
	err := s.bun.NewSelect().Model(row).OrderExpr("id ASC").Limit(1).Scan(ctx)
	return scanResult(row, err)
}

func (s *BunStore) CredentialByUsername(ctx context.Context, username string) (*model.Credential, error) {
	row := new(credentialRow)
	err := s.bun.NewSelect().Model(row).Where("username = ?", username).Limit(1).Scan(ctx)
	return scanResult(row, err)
}

func scanResult(row *credentialRow, err error) (*model.Credential, error) {
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("select local_user: %w", err)
	}
	return row.toModel()
}

// ListUsernames returns usernames in registration order.
func (s *BunStore) ListUsernames(ctx context.Context) ([]string, error) {
	names := []string{}
	err := s.bun.NewSelect().Model((*credentialRow)(nil)).Column("username").OrderExpr("id ASC").Scan(ctx, &names)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("list usernames: %w", err)
	}
	return names, nil
}

func (s *BunStore) CountCredentials(ctx context.Context) (int, error) {
	n, err := s.bun.NewSelect().Model((*credentialRow)(nil)).Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count local_user: %w", err)
	}
	return n, nil
}

func (s *BunStore) DeleteCredential(ctx context.Context, username string) (bool, error) {
	res, err := s.bun.NewDelete().Model((*credentialRow)(nil)).Where("username = ?", username).Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("delete local_user: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("delete local_user: %w", err)
	}
	return n > 0, nil
}
