package db

import (
	"errors"
	"testing"
)

func TestMapDBError(t *testing.T) {
	if MapDBError(nil) != nil {
		t.Fatalf("nil should stay nil")
	}
	dups := []string{
		"constraint failed: UNIQUE constraint failed: local_user.username (2067)",
		"ERROR: duplicate key value violates unique constraint (SQLSTATE 23505)",
		"Error 1062 (23000): Duplicate entry 'admin' for key 'username'",
	}
	for _, msg := range dups {
		if !errors.Is(MapDBError(errors.New(msg)), ErrDuplicate) {
			t.Fatalf("expected ErrDuplicate for %q", msg)
		}
	}
	other := errors.New("disk I/O error")
	if MapDBError(other) != other {
		t.Fatalf("unrelated errors must pass through")
	}
}
