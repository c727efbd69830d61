package db

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/lockam/lockam/internal/model"
)

// newTestStore opens a shared-cache memory store private to the test.
func newTestStore(t *testing.T) *BunStore {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	s, err := NewStoreFromDSN(context.Background(), TypeSQLite, "file:"+name+"?mode=memory&cache=shared")
	if err != nil {
		t.Fatalf("NewStoreFromDSN failed: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func cred(username string) *model.Credential {
	return &model.Credential{
		Username:     username,
		Salt:         "00112233445566778899aabbccddeeff",
		PasswordHash: strings.Repeat("ab", 32),
		CreatedAt:    time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}
