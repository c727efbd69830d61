// Copyright (c) 2025 Lockam Team
// Lockam - local admin provisioning and device lock
// This source code is licensed under the MIT license found in the LICENSE file.

package model

import (
	"encoding/json"
	"time"
)

// Credential is the persisted admin identity. Salt and PasswordHash are hex
// strings produced by the security package and never leave the credentials
// package through exported reports.
type Credential struct {
	ID           int64
	Username     string
	Salt         string
	PasswordHash string
	CreatedAt    time.Time
}

// String returns the username only.
func (c Credential) String() string {
	return c.Username
}

// PublicInfo is the non-secret view of the registered admin, enriched with
// host metadata. It is what gets handed to reporting code.
type PublicInfo struct {
	Username     string    `json:"username" yaml:"username"`
	RegisteredAt time.Time `json:"registered_at" yaml:"registered_at"`
	SystemName   string    `json:"system_name" yaml:"system_name"`
	OS           string    `json:"os" yaml:"os"`
	OSVersion    string    `json:"os_version" yaml:"os_version"`
	Arch         string    `json:"arch" yaml:"arch"`
	InstallID    string    `json:"install_id,omitempty" yaml:"install_id,omitempty"`
}

// IsZero reports whether no admin was registered when the info was built.
func (p PublicInfo) IsZero() bool {
	return p.Username == ""
}

// Map flattens the info into string pairs. An empty map is returned for the
// zero value.
func (p PublicInfo) Map() map[string]string {
	if p.IsZero() {
		return map[string]string{}
	}
	m := map[string]string{
		"username":      p.Username,
		"registered_at": p.RegisteredAt.UTC().Format(time.RFC3339),
		"system_name":   p.SystemName,
		"os":            p.OS,
		"os_version":    p.OSVersion,
		"arch":          p.Arch,
	}
	if p.InstallID != "" {
		m["install_id"] = p.InstallID
	}
	return m
}

// MarshalJSON encodes the zero value as an empty object.
func (p PublicInfo) MarshalJSON() ([]byte, error) {
	if p.IsZero() {
		return []byte("{}"), nil
	}
	type plain PublicInfo
	return json.Marshal(plain(p))
}

// DeviceInfo describes the host the installation lives on.
type DeviceInfo struct {
	Hostname  string `json:"hostname"`
	OS        string `json:"os"`
	OSVersion string `json:"os_version"`
	Arch      string `json:"arch"`
	User      string `json:"user"`
	InstallID string `json:"install_id"`
}
