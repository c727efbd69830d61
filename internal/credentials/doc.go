// Copyright (c) 2025 Lockam Team
// Lockam - local admin provisioning and device lock
// This source code is licensed under the MIT license found in the LICENSE file.

// Package credentials owns the admin credential record(s). It hashes
// passwords through the security package, persists them through internal/db
// and answers authentication and introspection queries.
//
// Two storage policies exist and are never mixed: PolicySingle keeps at most
// one record and replaces it on every Save, PolicyMulti keys records by a
// unique username. The policy is chosen by configuration when the Manager is
// built.
package credentials
