// Copyright (c) 2025 Lockam Team
// Lockam - local admin provisioning and device lock
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"context"

	"github.com/lockam/lockam/internal/model"
)

// Store is the persistence contract used by the credentials package.
// Lookups that match nothing return ErrNotFound; inserts that collide on
// username return ErrDuplicate.
type Store interface {
	// ReplaceCredential deletes every credential and inserts c in one
	// transaction. c.ID is set on success.
	ReplaceCredential(ctx context.Context, c *model.Credential) error
	// InsertCredential adds c, failing with ErrDuplicate without mutation
	// when the username is taken.
	InsertCredential(ctx context.Context, c *model.Credential) error
	// FirstCredential returns the earliest stored credential.
	FirstCredential(ctx context.Context) (*model.Credential, error)
	CredentialByUsername(ctx context.Context, username string) (*model.Credential, error)
	ListUsernames(ctx context.Context) ([]string, error)
	CountCredentials(ctx context.Context) (int, error)
	// DeleteCredential reports whether a row was removed.
	DeleteCredential(ctx context.Context, username string) (bool, error)

	// Metadata methods
	GetMetadata(ctx context.Context, name string) (string, bool, error)
	SetMetadata(ctx context.Context, name, value string) error

	Close() error
}

var _ Store = (*BunStore)(nil)
