// Copyright (c) 2025 Lockam Team
// Lockam - local admin provisioning and device lock
// This source code is licensed under the MIT license found in the LICENSE file.

// Package buildvars holds values injected at link time, e.g.
//
//	go build -ldflags "-X github.com/lockam/lockam/buildvars.Version=1.2.3"
package buildvars

import (
	"runtime/debug"
	"strings"
)

const modulePath = "github.com/lockam/lockam"

var (
	Version = ""
	Commit  = ""
	Date    = ""
)

// Resolve fills in anything not set at link time from the module build
// info. A nil info reads the running binary's.
func Resolve(info *debug.BuildInfo) (version, commit, date string) {
	version, commit, date = Version, Commit, Date
	if info == nil {
		if bi, ok := debug.ReadBuildInfo(); ok {
			info = bi
		}
	}
	if info != nil {
		if version == "" && info.Main.Version != "" && info.Main.Version != "(devel)" {
			version = info.Main.Version
		}
		if version == "" {
			for _, dep := range info.Deps {
				if dep.Path == modulePath && dep.Version != "" {
					version = dep.Version
					break
				}
			}
		}
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs.revision":
				if commit == "" && len(s.Value) >= 7 {
					commit = s.Value[:7]
				}
			case "vcs.time":
				if date == "" {
					date = s.Value
				}
			}
		}
	}
	if version == "" {
		version = "dev"
	}
	return version, commit, date
}

// String renders "version (commit) built: date", omitting empty parts.
func String(info *debug.BuildInfo) string {
	v, c, d := Resolve(info)
	var b strings.Builder
	b.WriteString(v)
	if c != "" {
		b.WriteString(" (" + c + ")")
	}
	if d != "" {
		b.WriteString(" built: " + d)
	}
	return b.String()
}
