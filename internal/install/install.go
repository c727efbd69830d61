// Copyright (c) 2025 Lockam Team
// Lockam - local admin provisioning and device lock
// This source code is licensed under the MIT license found in the LICENSE file.

// Package install tracks whether first-time setup has completed, using a
// marker file whose presence is the only state.
package install

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/lockam/lockam/internal/logging"
)

// MarkerContent is written into the marker file.
const MarkerContent = "Lockam installed\n"

// ErrNoMarkerPath is returned by New for an empty path.
var ErrNoMarkerPath = errors.New("install marker path is empty")

// State is the install lifecycle position.
type State int

const (
	StateFresh State = iota
	StateInstalled
)

func (s State) String() string {
	if s == StateInstalled {
		return "installed"
	}
	return "fresh"
}

// Gate answers whether setup has run. Once the marker exists the gate
// never reports fresh again; removing the file by hand is the only reset.
type Gate struct {
	path string
}

// New returns a Gate for the marker at path.
func New(path string) (*Gate, error) {
	if path == "" {
		return nil, ErrNoMarkerPath
	}
	return &Gate{path: path}, nil
}

// Path returns the marker location.
func (g *Gate) Path() string { return g.path }

// IsFreshInstall reports whether the marker is absent.
func (g *Gate) IsFreshInstall() (bool, error) {
	_, err := os.Stat(g.path)
	switch {
	case err == nil:
		return false, nil
	case errors.Is(err, fs.ErrNotExist):
		return true, nil
	default:
		return false, fmt.Errorf("stat install marker %s: %w", g.path, err)
	}
}

// State maps IsFreshInstall onto State.
func (g *Gate) State() (State, error) {
	fresh, err := g.IsFreshInstall()
	if err != nil {
		return StateFresh, err
	}
	if fresh {
		return StateFresh, nil
	}
	return StateInstalled, nil
}

// MarkInstalled writes the marker. The content goes to a temporary file in
// the same directory which is synced and renamed over the marker, so a crash
// leaves either no marker or a complete one. Calling it again rewrites the
// same content.
func (g *Gate) MarkInstalled() error {
	dir := filepath.Dir(g.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("could not create marker directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(g.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp marker: %w", err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.WriteString(MarkerContent); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp marker: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("sync temp marker: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp marker: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("chmod temp marker: %w", err)
	}
	if err := os.Rename(tmpName, g.path); err != nil {
		return fmt.Errorf("install marker %s: %w", g.path, err)
	}
	committed = true
	syncDir(dir)

	logging.Debugf("install marker written to %s", g.path)
	return nil
}

// syncDir flushes the rename to disk where the platform allows it.
func syncDir(dir string) {
	d, err := os.Open(dir)
	if err != nil {
		return
	}
	_ = d.Sync()
	_ = d.Close()
}
