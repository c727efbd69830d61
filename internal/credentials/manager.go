// Copyright (c) 2025 Lockam Team
// Lockam - local admin provisioning and device lock
// This source code is licensed under the MIT license found in the LICENSE file.

package credentials

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lockam/lockam/internal/db"
	"github.com/lockam/lockam/internal/deviceinfo"
	"github.com/lockam/lockam/internal/i18n"
	"github.com/lockam/lockam/internal/logging"
	"github.com/lockam/lockam/internal/model"
	"github.com/lockam/lockam/internal/security"
)

// Options describes where the credential store lives.
type Options struct {
	DBType string
	DSN    string
	Policy Policy
}

// Option customises a Manager.
type Option func(*Manager)

// WithHasher replaces the password hasher.
func WithHasher(h *security.Hasher) Option {
	return func(m *Manager) { m.hasher = h }
}

// WithClock sets the source of CreatedAt timestamps.
func WithClock(now func() time.Time) Option {
	return func(m *Manager) { m.now = now }
}

// WithDeviceInfo sets the host metadata source used by ExportPublicInfo.
func WithDeviceInfo(fn func(ctx context.Context) (model.DeviceInfo, error)) Option {
	return func(m *Manager) { m.device = fn }
}

// Manager is the credential store. It is not safe for concurrent use.
type Manager struct {
	store  db.Store
	policy Policy
	hasher *security.Hasher
	now    func() time.Time
	device func(ctx context.Context) (model.DeviceInfo, error)
	closed bool
}

// Open prepares the backing database and returns a ready Manager. The
// parent directory of a file-backed SQLite database is created when missing.
// Every failure wraps db.ErrStorageUnavailable.
func Open(ctx context.Context, o Options, opts ...Option) (*Manager, error) {
	dbType := o.DBType
	if dbType == "" {
		dbType = db.TypeSQLite
	}
	if dbType == db.TypeSQLite {
		if err := db.EnsureSQLiteDir(o.DSN); err != nil {
			return nil, fmt.Errorf("%w: create database directory: %w", db.ErrStorageUnavailable, err)
		}
	}
	store, err := db.NewStoreFromDSN(ctx, dbType, o.DSN)
	if err != nil {
		return nil, err
	}
	logging.Debugf("credential store opened (type=%s policy=%s)", dbType, o.Policy)
	return NewManager(store, o.Policy, opts...), nil
}

// NewManager wraps an already prepared store.
func NewManager(store db.Store, policy Policy, opts ...Option) *Manager {
	m := &Manager{
		store:  store,
		policy: policy,
		hasher: security.DefaultHasher,
		now:    time.Now,
	}
	m.device = func(ctx context.Context) (model.DeviceInfo, error) {
		return deviceinfo.CollectWithID(ctx, m.store)
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Policy returns the storage policy the manager was built with.
func (m *Manager) Policy() Policy { return m.policy }

func (m *Manager) ready() error {
	if m == nil || m.store == nil || m.closed {
		return ErrNotInitialized
	}
	return nil
}

func (m *Manager) require(p Policy) error {
	if err := m.ready(); err != nil {
		return err
	}
	if m.policy != p {
		return fmt.Errorf("%w: requires %s, configured %s", ErrPolicyMismatch, p, m.policy)
	}
	return nil
}

// Save hashes password and stores the credential under the configured
// policy. The password is wiped before Save returns. Expected refusals come
// back as an Outcome; the error is reserved for storage failures.
func (m *Manager) Save(ctx context.Context, username string, password security.Secret) (Outcome, error) {
	defer password.Zero()
	if err := m.ready(); err != nil {
		return Outcome{}, err
	}

	username = strings.TrimSpace(username)
	if username == "" {
		return rejected(i18n.T("credentials.username_required")), nil
	}
	if password.Empty() {
		return rejected(i18n.T("credentials.password_required")), nil
	}

	salt, hash, err := m.hasher.Generate(password)
	if err != nil {
		return Outcome{}, fmt.Errorf("hash password: %w", err)
	}
	rec := &model.Credential{
		Username:     username,
		Salt:         salt,
		PasswordHash: hash,
		CreatedAt:    m.now().UTC(),
	}

	switch m.policy {
	case PolicySingle:
		if err := m.store.ReplaceCredential(ctx, rec); err != nil {
			return Outcome{}, fmt.Errorf("replace credential: %w", err)
		}
	case PolicyMulti:
		if err := m.store.InsertCredential(ctx, rec); err != nil {
			if errors.Is(err, db.ErrDuplicate) {
				logging.Debugf("save refused, username %q exists", username)
				return duplicate(i18n.T("credentials.duplicate_user")), nil
			}
			return Outcome{}, fmt.Errorf("insert credential: %w", err)
		}
	default:
		return Outcome{}, fmt.Errorf("%w: %s", ErrPolicyMismatch, m.policy)
	}
	logging.Debugf("credential saved for %q (policy=%s)", username, m.policy)
	return saved(), nil
}

// Authenticate checks password against the single stored credential. With
// nothing registered it returns false without hashing.
func (m *Manager) Authenticate(ctx context.Context, password security.Secret) (bool, error) {
	if err := m.require(PolicySingle); err != nil {
		return false, err
	}
	rec, err := m.store.FirstCredential(ctx)
	if errors.Is(err, db.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load credential: %w", err)
	}
	return m.hasher.Verify(password, rec.Salt, rec.PasswordHash), nil
}

// AuthenticateUser checks a username/password pair. An unknown user and a
// wrong password produce the same false result.
func (m *Manager) AuthenticateUser(ctx context.Context, username string, password security.Secret) (bool, error) {
	if err := m.ready(); err != nil {
		return false, err
	}
	rec, err := m.store.CredentialByUsername(ctx, strings.TrimSpace(username))
	if errors.Is(err, db.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("load credential: %w", err)
	}
	return m.hasher.Verify(password, rec.Salt, rec.PasswordHash), nil
}

// IsRegistered reports whether any credential exists.
func (m *Manager) IsRegistered(ctx context.Context) (bool, error) {
	if err := m.ready(); err != nil {
		return false, err
	}
	n, err := m.store.CountCredentials(ctx)
	if err != nil {
		return false, fmt.Errorf("count credentials: %w", err)
	}
	return n > 0, nil
}

// LocalUsername returns the registered username in single-user mode.
func (m *Manager) LocalUsername(ctx context.Context) (string, bool, error) {
	if err := m.require(PolicySingle); err != nil {
		return "", false, err
	}
	rec, err := m.store.FirstCredential(ctx)
	if errors.Is(err, db.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("load credential: %w", err)
	}
	return rec.Username, true, nil
}

// ListUsernames returns usernames in registration order.
func (m *Manager) ListUsernames(ctx context.Context) ([]string, error) {
	if err := m.ready(); err != nil {
		return nil, err
	}
	names, err := m.store.ListUsernames(ctx)
	if err != nil {
		return nil, fmt.Errorf("list usernames: %w", err)
	}
	return names, nil
}

// Remove deletes the named credential and reports whether it existed.
func (m *Manager) Remove(ctx context.Context, username string) (bool, error) {
	if err := m.require(PolicyMulti); err != nil {
		return false, err
	}
	ok, err := m.store.DeleteCredential(ctx, strings.TrimSpace(username))
	if err != nil {
		return false, fmt.Errorf("remove credential: %w", err)
	}
	if ok {
		logging.Debugf("credential removed for %q", username)
	}
	return ok, nil
}

// Close releases the store. Further calls fail with ErrNotInitialized.
func (m *Manager) Close() error {
	if err := m.ready(); err != nil {
		return err
	}
	m.closed = true
	return m.store.Close()
}
