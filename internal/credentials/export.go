// Copyright (c) 2025 Lockam Team
// Lockam - local admin provisioning and device lock
// This source code is licensed under the MIT license found in the LICENSE file.

package credentials

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/goccy/go-yaml"

	"github.com/lockam/lockam/internal/db"
	"github.com/lockam/lockam/internal/model"
)

// ExportPublicInfo returns the earliest registered username, its
// registration time and host metadata. Salt and hash are never included.
// The zero PublicInfo is returned when nothing is registered.
func (m *Manager) ExportPublicInfo(ctx context.Context) (model.PublicInfo, error) {
	if err := m.ready(); err != nil {
		return model.PublicInfo{}, err
	}
	rec, err := m.store.FirstCredential(ctx)
	if errors.Is(err, db.ErrNotFound) {
		return model.PublicInfo{}, nil
	}
	if err != nil {
		return model.PublicInfo{}, fmt.Errorf("load credential: %w", err)
	}
	dev, err := m.device(ctx)
	if err != nil {
		return model.PublicInfo{}, fmt.Errorf("collect device info: %w", err)
	}
	return model.PublicInfo{
		Username:     rec.Username,
		RegisteredAt: rec.CreatedAt.UTC(),
		SystemName:   dev.Hostname,
		OS:           dev.OS,
		OSVersion:    dev.OSVersion,
		Arch:         dev.Arch,
		InstallID:    dev.InstallID,
	}, nil
}

// ExportPublicInfoJSON renders ExportPublicInfo as indented JSON.
func (m *Manager) ExportPublicInfoJSON(ctx context.Context) ([]byte, error) {
	info, err := m.ExportPublicInfo(ctx)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(info, "", "  ")
}

// ExportPublicInfoYAML renders ExportPublicInfo as YAML.
func (m *Manager) ExportPublicInfoYAML(ctx context.Context) ([]byte, error) {
	info, err := m.ExportPublicInfo(ctx)
	if err != nil {
		return nil, err
	}
	if info.IsZero() {
		return []byte("{}\n"), nil
	}
	return yaml.Marshal(info)
}
