// Copyright (c) 2025 Lockam Team
// Lockam - local admin provisioning and device lock
// This source code is licensed under the MIT license found in the LICENSE file.

package security

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestSecret_Redaction(t *testing.T) {
	s := NewSecret("hunter22")
	for _, verb := range []string{"%v", "%+v", "%#v", "%s", "%q", "%x"} {
		out := fmt.Sprintf(verb, s)
		if strings.Contains(out, "hunter22") || out != redacted {
			t.Fatalf("verb %s leaked: %q", verb, out)
		}
	}
	if s.String() != redacted {
		t.Fatalf("String leaked: %q", s.String())
	}
	b, err := json.Marshal(struct{ P Secret }{s})
	if err != nil {
		t.Fatalf("json: %v", err)
	}
	if strings.Contains(string(b), "hunter22") {
		t.Fatalf("json leaked: %s", b)
	}
	txt, _ := s.MarshalText()
	if string(txt) != redacted {
		t.Fatalf("text leaked: %s", txt)
	}
}

func TestSecret_NeverStorable(t *testing.T) {
	v, err := NewSecret("pw").Value()
	if !errors.Is(err, ErrSecretNotStorable) || v != nil {
		t.Fatalf("expected refusal, got %v %v", v, err)
	}
}

func TestSecret_ZeroWipesSharedBuffer(t *testing.T) {
	buf := []byte("abc123")
	s := Secret(buf)
	s.Zero()
	for i, b := range buf {
		if b != 0 {
			t.Fatalf("byte %d not wiped: %d", i, b)
		}
	}
	var nilSecret *Secret
	nilSecret.Zero()
}

func TestSecretFromBytes_Copies(t *testing.T) {
	buf := []byte("pw")
	s := SecretFromBytes(buf)
	buf[0] = 'X'
	if err := s.Use(func(b []byte) error {
		if string(b) != "pw" {
			t.Fatalf("secret shares caller buffer: %q", b)
		}
		return nil
	}); err != nil {
		t.Fatalf("Use: %v", err)
	}
	if s.Empty() || !Secret(nil).Empty() {
		t.Fatalf("Empty misreports")
	}
}
