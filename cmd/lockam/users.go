// Copyright (c) 2025 Lockam Team
// Lockam - local admin provisioning and device lock
// This source code is licensed under the MIT license found in the LICENSE file.

package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lockam/lockam/internal/i18n"
	"github.com/lockam/lockam/internal/validation"
)

var errUserNotFound = errors.New("user not found")

func newUsersCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage registered users (multi policy)",
	}
	cmd.AddCommand(newUsersListCmd(a), newUsersAddCmd(a), newUsersRemoveCmd(a))
	return cmd
}

func newUsersListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List usernames in registration order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := a.openManager(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = m.Close() }()

			names, err := m.ListUsernames(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(names) == 0 {
				_, _ = fmt.Fprintln(out, mutedStyle.Render(i18n.T("users.none")))
				return nil
			}
			for _, n := range names {
				_, _ = fmt.Fprintln(out, n)
			}
			return nil
		},
	}
}

func newUsersAddCmd(a *app) *cobra.Command {
	var passwordStdin bool
	cmd := &cobra.Command{
		Use:   "add <username>",
		Short: "Register another user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.requireMulti(); err != nil {
				return err
			}
			username := args[0]
			if err := validation.Username(username); err != nil {
				return err
			}

			p := newPrompter(cmd)
			var password string
			if passwordStdin {
				line, err := p.Line("")
				if err != nil {
					return err
				}
				password = line
			} else {
				pw, err := p.Password(i18n.T("prompt.password"))
				if err != nil {
					return err
				}
				password = string(pw)
				pw.Zero()
			}
			if err := validation.Password(password); err != nil {
				return err
			}

			m, err := a.openManager(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = m.Close() }()

			out, err := m.Save(cmd.Context(), username, []byte(password))
			if err != nil {
				return err
			}
			if !out.OK() {
				return fail(out.Reason, out.Err())
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), okStyle.Render(i18n.T("users.added", username)))
			return nil
		},
	}
	cmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "read the password from the first line of stdin")
	return cmd
}

func newUsersRemoveCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <username>",
		Aliases: []string{"rm"},
		Short:   "Delete a registered user",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := a.openManager(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = m.Close() }()

			removed, err := m.Remove(cmd.Context(), args[0])
			if isPolicyMismatch(err) {
				return fail(i18n.T("users.requires_multi"), err)
			}
			if err != nil {
				return err
			}
			if !removed {
				return fail(i18n.T("users.not_found", args[0]), errUserNotFound)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), okStyle.Render(i18n.T("users.removed", args[0])))
			return nil
		},
	}
}
