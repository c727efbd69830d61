// Copyright (c) 2025 Lockam Team
// Lockam - local admin provisioning and device lock
// This source code is licensed under the MIT license found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"

	"github.com/lockam/lockam/internal/config"
	"github.com/lockam/lockam/internal/i18n"
)

func newConfigCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect or persist the effective configuration",
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration as YAML",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := yaml.Marshal(&a.cfg)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}

	var system bool
	write := &cobra.Command{
		Use:   "write",
		Short: "Write the effective configuration to the config file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, err := config.WriteConfigFile(&a.cfg, system)
			if err != nil {
				return err
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), i18n.T("config.written", path))
			return nil
		},
	}
	write.Flags().BoolVar(&system, "system", false, "write the system-wide file instead of the user file")

	cmd.AddCommand(show, write)
	return cmd
}
