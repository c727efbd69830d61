// Copyright (c) 2025 Lockam Team
// Lockam - local admin provisioning and device lock
// This source code is licensed under the MIT license found in the LICENSE file.

package security

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"io"
)

const redacted = "[REDACTED]"

// ErrSecretNotStorable is returned when a Secret is handed to a SQL driver.
// Plaintext passwords never reach the database.
var ErrSecretNotStorable = errors.New("secret values cannot be stored")

// Secret carries a plaintext password between the prompt and the hasher.
// Every formatting and encoding path prints a placeholder instead of the
// content.
type Secret []byte

// NewSecret copies in into a new Secret.
func NewSecret(in string) Secret { return Secret([]byte(in)) }

// SecretFromBytes copies b so the caller may wipe its own buffer.
func SecretFromBytes(b []byte) Secret {
	out := make([]byte, len(b))
	copy(out, b)
	return Secret(out)
}

func (s Secret) String() string { return redacted }

// Format keeps %v, %+v, %#v and %s from leaking the value.
func (s Secret) Format(f fmt.State, _ rune) {
	_, _ = io.WriteString(f, redacted)
}

func (s Secret) MarshalJSON() ([]byte, error) { return json.Marshal(redacted) }

func (s Secret) MarshalText() ([]byte, error) { return []byte(redacted), nil }

// Value implements driver.Valuer and always refuses.
func (s Secret) Value() (driver.Value, error) { return nil, ErrSecretNotStorable }

// Empty reports whether the secret holds no bytes.
func (s Secret) Empty() bool { return len(s) == 0 }

// Use runs fn with the underlying bytes without copying them.
func (s Secret) Use(fn func([]byte) error) error {
	return fn([]byte(s))
}

// Zero overwrites the secret in place.
func (s *Secret) Zero() {
	if s == nil || *s == nil {
		return
	}
	for i := range *s {
		(*s)[i] = 0
	}
}
