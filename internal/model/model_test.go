package model

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestCredentialString_HidesSecrets(t *testing.T) {
	c := Credential{Username: "admin", Salt: "abcd", PasswordHash: "ef01"}
	if got := c.String(); got != "admin" {
		t.Fatalf("unexpected String(): %q", got)
	}
}

func TestPublicInfo_ZeroValue(t *testing.T) {
	var p PublicInfo
	if !p.IsZero() {
		t.Fatalf("expected zero")
	}
	if len(p.Map()) != 0 {
		t.Fatalf("expected empty map, got %v", p.Map())
	}
	b, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != "{}" {
		t.Fatalf("expected {}, got %s", b)
	}
}

func TestPublicInfo_MapAndJSON(t *testing.T) {
	p := PublicInfo{
		Username:     "alice",
		RegisteredAt: time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
		SystemName:   "box",
		OS:           "linux",
		OSVersion:    "6.1",
		Arch:         "amd64",
	}
	m := p.Map()
	if m["username"] != "alice" || m["registered_at"] != "2025-03-01T12:00:00Z" {
		t.Fatalf("unexpected map: %v", m)
	}
	if _, ok := m["install_id"]; ok {
		t.Fatalf("empty install id should be omitted")
	}
	b, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if !strings.Contains(string(b), `"username":"alice"`) || strings.Contains(string(b), "salt") {
		t.Fatalf("unexpected json: %s", b)
	}
}
