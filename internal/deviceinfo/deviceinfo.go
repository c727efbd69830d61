// Copyright (c) 2025 Lockam Team
// Lockam - local admin provisioning and device lock
// This source code is licensed under the MIT license found in the LICENSE file.

// Package deviceinfo gathers the host details published alongside the
// registered account and keeps the per-install identifier.
package deviceinfo

import (
	"context"
	"fmt"
	"os"
	"os/user"
	"runtime"

	"github.com/google/uuid"

	"github.com/lockam/lockam/internal/model"
)

// InstallIDKey is the metadata row holding the per-install identifier.
const InstallIDKey = "install_id"

// MetadataStore is the slice of the storage layer needed to persist the
// install identifier.
type MetadataStore interface {
	GetMetadata(ctx context.Context, name string) (string, bool, error)
	SetMetadata(ctx context.Context, name, value string) error
}

// Overridable in tests.
var (
	hostnameFunc    = os.Hostname
	currentUserFunc = user.Current
	osVersionFunc   = osVersion
	newIDFunc       = func() string { return uuid.NewString() }
)

// Collect returns what can be discovered about the host. Lookups that fail
// leave their field empty, except User which falls back to the environment.
func Collect() model.DeviceInfo {
	info := model.DeviceInfo{
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
		OSVersion: osVersionFunc(),
	}
	if h, err := hostnameFunc(); err == nil {
		info.Hostname = h
	}
	info.User = currentUsername()
	return info
}

func currentUsername() string {
	if u, err := currentUserFunc(); err == nil && u.Username != "" {
		return u.Username
	}
	for _, k := range []string{"USER", "USERNAME"} {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return "unknown"
}

// EnsureInstallID returns the stored install identifier, generating and
// persisting a new UUID the first time.
func EnsureInstallID(ctx context.Context, store MetadataStore) (string, error) {
	id, ok, err := store.GetMetadata(ctx, InstallIDKey)
	if err != nil {
		return "", fmt.Errorf("read install id: %w", err)
	}
	if ok && id != "" {
		return id, nil
	}
	id = newIDFunc()
	if err := store.SetMetadata(ctx, InstallIDKey, id); err != nil {
		return "", fmt.Errorf("store install id: %w", err)
	}
	return id, nil
}

// CollectWithID is Collect plus the persisted install identifier.
func CollectWithID(ctx context.Context, store MetadataStore) (model.DeviceInfo, error) {
	info := Collect()
	id, err := EnsureInstallID(ctx, store)
	if err != nil {
		return info, err
	}
	info.InstallID = id
	return info, nil
}
