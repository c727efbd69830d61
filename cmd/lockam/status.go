// Copyright (c) 2025 Lockam Team
// Lockam - local admin provisioning and device lock
// This source code is licensed under the MIT license found in the LICENSE file.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lockam/lockam/internal/i18n"
	"github.com/lockam/lockam/internal/install"
)

func newStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show install state and registered users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			g, err := a.gate()
			if err != nil {
				return err
			}
			st, err := g.State()
			if err != nil {
				return err
			}
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
			stateText := okStyle.Render(i18n.T("status.installed"))
			if st == install.StateFresh {
				stateText = warnStyle.Render(i18n.T("status.fresh"))
			}
			_, _ = fmt.Fprintln(out, titleStyle.Render(i18n.T("status.title")))
			_, _ = fmt.Fprintln(out, i18n.T("status.state", stateText))
			_, _ = fmt.Fprintln(out, i18n.T("status.policy", a.policy))
			if len(names) == 0 {
				_, _ = fmt.Fprintln(out, mutedStyle.Render(i18n.T("status.no_users")))
			} else {
				_, _ = fmt.Fprintln(out, i18n.T("status.registered", strings.Join(names, ", ")))
			}
			return nil
		},
	}
}
