package credentials

import (
	"context"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/lockam/lockam/internal/db"
	"github.com/lockam/lockam/internal/model"
	"github.com/lockam/lockam/internal/security"
)

var fastHasher = &security.Hasher{Iterations: 1000, SaltLen: security.DefaultSaltLen, KeyLen: security.DefaultKeyLen}

var testClock = func() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC) }

func fakeDevice(context.Context) (model.DeviceInfo, error) {
	return model.DeviceInfo{
		Hostname:  "desk-01",
		OS:        "linux",
		OSVersion: "6.8.0",
		Arch:      "amd64",
		InstallID: "3f8e2c1a-0000-4000-8000-000000000001",
	}, nil
}

var storeSeq atomic.Int64

func newTestManager(t *testing.T, policy Policy) (*Manager, *db.BunStore) {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	store, err := db.NewStoreFromDSN(context.Background(), db.TypeSQLite, fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", name, storeSeq.Add(1)))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	m := NewManager(store, policy, WithHasher(fastHasher), WithClock(testClock), WithDeviceInfo(fakeDevice))
	return m, store
}

func pw(s string) security.Secret { return security.NewSecret(s) }
