// Copyright (c) 2025 Lockam Team
// Lockam - local admin provisioning and device lock
// This source code is licensed under the MIT license found in the LICENSE file.

package security

import (
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/pbkdf2"
)

const (
	// DefaultIterations is the PBKDF2 round count for new credentials.
	DefaultIterations = 100_000
	// DefaultSaltLen is the salt size in bytes (128 bits).
	DefaultSaltLen = 16
	// DefaultKeyLen matches the SHA-256 output size.
	DefaultKeyLen = sha256.Size
)

// ErrEmptyPassword is returned by Generate when there is nothing to hash.
var ErrEmptyPassword = errors.New("password is empty")

// Hasher derives and checks salted password digests.
// The zero value is not usable; start from DefaultHasher.
type Hasher struct {
	Iterations int
	SaltLen    int
	KeyLen     int

	// rand is the salt source. Tests swap it for a deterministic reader.
	rand io.Reader
}

// DefaultHasher is used by the package-level Generate and Verify.
var DefaultHasher = &Hasher{
	Iterations: DefaultIterations,
	SaltLen:    DefaultSaltLen,
	KeyLen:     DefaultKeyLen,
	rand:       rand.Reader,
}

// Generate creates a fresh random salt and derives the password hash with it.
// Both values are hex encoded.
func (h *Hasher) Generate(password []byte) (salt, hash string, err error) {
	if len(password) == 0 {
		return "", "", ErrEmptyPassword
	}
	src := h.rand
	if src == nil {
		src = rand.Reader
	}
	raw := make([]byte, h.SaltLen)
	if _, err := io.ReadFull(src, raw); err != nil {
		return "", "", fmt.Errorf("generate salt: %w", err)
	}
	key := h.derive(password, raw)
	return hex.EncodeToString(raw), hex.EncodeToString(key), nil
}

// Verify recomputes the digest of password with salt and compares it against
// storedHash in constant time. Any decoding problem yields false.
func (h *Hasher) Verify(password []byte, salt, storedHash string) bool {
	rawSalt, err := hex.DecodeString(salt)
	if err != nil || len(rawSalt) == 0 {
		return false
	}
	want, err := hex.DecodeString(storedHash)
	if err != nil || len(want) != h.KeyLen {
		return false
	}
	got := h.derive(password, rawSalt)
	return subtle.ConstantTimeCompare(got, want) == 1
}

func (h *Hasher) derive(password, salt []byte) []byte {
	return pbkdf2.Key(password, salt, h.Iterations, h.KeyLen, sha256.New)
}

// Generate hashes password with DefaultHasher.
func Generate(password []byte) (salt, hash string, err error) {
	return DefaultHasher.Generate(password)
}

// Verify checks password with DefaultHasher.
func Verify(password []byte, salt, storedHash string) bool {
	return DefaultHasher.Verify(password, salt, storedHash)
}
