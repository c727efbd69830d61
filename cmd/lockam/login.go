// Copyright (c) 2025 Lockam Team
// Lockam - local admin provisioning and device lock
// This source code is licensed under the MIT license found in the LICENSE file.

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lockam/lockam/internal/credentials"
	"github.com/lockam/lockam/internal/i18n"
)

var errLoginFailed = errors.New("authentication failed")

func newLoginCmd(a *app) *cobra.Command {
	var username string
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Check a password against the stored credential",
		Long: `Prompts for the password and exits non-zero when it does not match.
Under the multi policy a username is required and is prompted for when
--username is not given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := a.openManager(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = m.Close() }()

			p := newPrompter(cmd)
			if username == "" && a.policy == credentials.PolicyMulti {
				if username, err = p.Line(i18n.T("login.prompt_username")); err != nil {
					return err
				}
			}
			pw, err := p.Password(i18n.T("login.prompt_password"))
			if err != nil {
				return err
			}
			defer pw.Zero()

			var ok bool
			if username != "" {
				ok, err = m.AuthenticateUser(cmd.Context(), username, pw)
			} else {
				ok, err = m.Authenticate(cmd.Context(), pw)
			}
			if err != nil {
				return err
			}
			if !ok {
				return fail(i18n.T("login.failed"), errLoginFailed)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), okStyle.Render(i18n.T("login.success")))
			return nil
		},
	}
	cmd.Flags().StringVarP(&username, "username", "u", "", "username to authenticate")
	return cmd
}
