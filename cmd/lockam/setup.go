// Copyright (c) 2025 Lockam Team
// Lockam - local admin provisioning and device lock
// This source code is licensed under the MIT license found in the LICENSE file.

package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/lockam/lockam/internal/i18n"
	"github.com/lockam/lockam/internal/setup"
	"github.com/lockam/lockam/internal/validation"
)

const dobLayout = "2006-01-02"

func newSetupCmd(a *app) *cobra.Command {
	var (
		fullName, email, username, dob string
		passwordStdin                  bool
	)
	cmd := &cobra.Command{
		Use:   "setup",
		Short: "Run first-time setup and register the admin",
		Long: `Collects the admin's details, validates them, stores the credential and
marks the device installed. Missing values are prompted for.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			g, err := a.gate()
			if err != nil {
				return err
			}
			fresh, err := g.IsFreshInstall()
			if err != nil {
				return err
			}
			if !fresh {
				return fail(i18n.T("setup.already_installed"), setup.ErrAlreadyInstalled)
			}

			p := newPrompter(cmd)
			flags := cmd.Flags()
			ask := func(flag string, val *string, label string) error {
				if flags.Changed(flag) {
					return nil
				}
				s, err := p.Line(label)
				if err != nil {
					return err
				}
				*val = s
				return nil
			}
			if err := ask("full-name", &fullName, i18n.T("prompt.full_name")); err != nil {
				return err
			}
			if err := ask("email", &email, i18n.T("prompt.email")); err != nil {
				return err
			}
			if err := ask("username", &username, i18n.T("prompt.username")); err != nil {
				return err
			}
			if err := ask("dob", &dob, i18n.T("prompt.dob")); err != nil {
				return err
			}
			born, err := time.Parse(dobLayout, dob)
			if err != nil {
				return fail(i18n.T("prompt.dob_invalid"), err)
			}

			var password string
			if passwordStdin {
				password, err = p.Line("")
				if err != nil {
					return err
				}
			} else {
				first, err := p.Password(i18n.T("prompt.password"))
				if err != nil {
					return err
				}
				second, err := p.Password(i18n.T("prompt.password_confirm"))
				if err != nil {
					return err
				}
				if string(first) != string(second) {
					return errors.New(i18n.T("prompt.password_mismatch"))
				}
				password = string(first)
				first.Zero()
				second.Zero()
			}

			m, err := a.openManager(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = m.Close() }()

			w := &setup.Wizard{Gate: g, Store: m, Validator: a.validator()}
			res, err := w.Run(cmd.Context(), validation.Fields{
				FullName:    fullName,
				Email:       email,
				Username:    username,
				Password:    password,
				DateOfBirth: born,
			})
			if err != nil {
				return err
			}
			if !res.Outcome.OK() {
				return fail(res.Outcome.Reason, res.Outcome.Err())
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), okStyle.Render(i18n.T("setup.success", res.Info.Username)))
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&fullName, "full-name", "", "admin's full name")
	f.StringVar(&email, "email", "", "admin's email address (optional)")
	f.StringVar(&username, "username", "", "admin username")
	f.StringVar(&dob, "dob", "", "date of birth, YYYY-MM-DD")
	f.BoolVar(&passwordStdin, "password-stdin", false, "read the password from the first line of stdin")
	return cmd
}
