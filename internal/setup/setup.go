// Copyright (c) 2025 Lockam Team
// Lockam - local admin provisioning and device lock
// This source code is licensed under the MIT license found in the LICENSE file.

// Package setup composes the install gate, the validator and the credential
// store into the first-run flow.
package setup

import (
	"context"
	"errors"
	"fmt"

	"github.com/lockam/lockam/internal/credentials"
	"github.com/lockam/lockam/internal/logging"
	"github.com/lockam/lockam/internal/model"
	"github.com/lockam/lockam/internal/security"
	"github.com/lockam/lockam/internal/validation"
)

// ErrAlreadyInstalled is returned when setup is requested on a device whose
// install marker exists.
var ErrAlreadyInstalled = errors.New("device is already installed")

// Gate is the install marker.
type Gate interface {
	IsFreshInstall() (bool, error)
	MarkInstalled() error
}

// CredentialStore is the part of credentials.Manager used by setup.
type CredentialStore interface {
	Save(ctx context.Context, username string, password security.Secret) (credentials.Outcome, error)
	ExportPublicInfo(ctx context.Context) (model.PublicInfo, error)
}

// Wizard runs first-time setup.
type Wizard struct {
	Gate      Gate
	Store     CredentialStore
	Validator *validation.Validator
}

// Result is what a completed or refused run produced.
type Result struct {
	Outcome credentials.Outcome
	// Field names the input that failed validation, if any.
	Field string
	// Info is set once the device is installed.
	Info model.PublicInfo
}

// Run checks the device is fresh, validates f, stores the credential and
// marks the device installed. Validation and duplicate refusals are
// reported in Result with a nil error; the marker is only written after a
// successful save.
func (w *Wizard) Run(ctx context.Context, f validation.Fields) (Result, error) {
	fresh, err := w.Gate.IsFreshInstall()
	if err != nil {
		return Result{}, fmt.Errorf("check install state: %w", err)
	}
	if !fresh {
		return Result{}, ErrAlreadyInstalled
	}

	v := w.Validator
	if v == nil {
		v = validation.New(validation.DefaultMinAgeYears)
	}
	if err := v.ValidateAll(f); err != nil {
		var fe *validation.FieldError
		if errors.As(err, &fe) {
			logging.Debugf("setup input rejected: %s", fe.Field)
			return Result{
				Outcome: credentials.Outcome{Status: credentials.StatusRejected, Reason: fe.Message},
				Field:   fe.Field,
			}, nil
		}
		return Result{}, err
	}

	out, err := w.Store.Save(ctx, f.Username, security.NewSecret(f.Password))
	if err != nil {
		return Result{}, fmt.Errorf("save credential: %w", err)
	}
	if !out.OK() {
		return Result{Outcome: out, Field: validation.FieldUsername}, nil
	}

	if err := w.Gate.MarkInstalled(); err != nil {
		return Result{Outcome: out}, fmt.Errorf("mark installed: %w", err)
	}

	info, err := w.Store.ExportPublicInfo(ctx)
	if err != nil {
		return Result{Outcome: out}, fmt.Errorf("export public info: %w", err)
	}
	logging.Infof("setup completed for %s", info.Username)
	return Result{Outcome: out, Info: info}, nil
}
