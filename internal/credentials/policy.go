// Copyright (c) 2025 Lockam Team
// Lockam - local admin provisioning and device lock
// This source code is licensed under the MIT license found in the LICENSE file.

package credentials

import (
	"fmt"
	"strings"
)

// Policy selects the credential storage semantics.
type Policy int

const (
	// PolicySingle keeps one record; Save replaces it.
	PolicySingle Policy = iota
	// PolicyMulti keeps one record per unique username.
	PolicyMulti
)

func (p Policy) String() string {
	switch p {
	case PolicySingle:
		return "single"
	case PolicyMulti:
		return "multi"
	default:
		return fmt.Sprintf("Policy(%d)", int(p))
	}
}

// ParsePolicy accepts "single"/"multi" (case-insensitive). An empty string
// means single.
func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "single", "single-user":
		return PolicySingle, nil
	case "multi", "multi-user":
		return PolicyMulti, nil
	}
	return PolicySingle, fmt.Errorf("unknown credentials policy %q (want single or multi)", s)
}
