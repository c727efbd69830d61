// Copyright (c) 2025 Lockam Team
// Lockam - local admin provisioning and device lock
// This source code is licensed under the MIT license found in the LICENSE file.

// Package security holds the password hashing primitives and the Secret
// wrapper used to carry plaintext passwords through the credential store.
//
// Passwords are derived with PBKDF2-HMAC-SHA256 (100 000 rounds) over a
// 16-byte random salt. Salt and digest are stored as lower-case hex.
// Verification never returns an error: malformed input simply fails.
package security
