// Copyright (c) 2025 Lockam Team
// Lockam - local admin provisioning and device lock
// This source code is licensed under the MIT license found in the LICENSE file.

package main

import (
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/spf13/cobra"

	"github.com/lockam/lockam/internal/i18n"
	"github.com/lockam/lockam/internal/logging"
)

func newExportCmd(a *app) *cobra.Command {
	var (
		format string
		copyTo bool
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Print the non-secret admin and device info",
		Long: `Prints the registered username, registration time and host metadata.
Salts and password hashes are never part of the output.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			m, err := a.openManager(cmd.Context())
			if err != nil {
				return err
			}
			defer func() { _ = m.Close() }()

			var data []byte
			switch strings.ToLower(format) {
			case "json":
				data, err = m.ExportPublicInfoJSON(cmd.Context())
			case "yaml", "yml":
				data, err = m.ExportPublicInfoYAML(cmd.Context())
			default:
				return fmt.Errorf("unknown export format %q (want json or yaml)", format)
			}
			if err != nil {
				return err
			}

			text := strings.TrimRight(string(data), "\n")
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), text)
			if text == "{}" {
				_, _ = fmt.Fprintln(cmd.ErrOrStderr(), mutedStyle.Render(i18n.T("export.empty")))
				return nil
			}
			if copyTo {
				if err := clipboard.WriteAll(text); err != nil {
					logging.Warnf("could not copy to clipboard: %v", err)
					return nil
				}
				_, _ = fmt.Fprintln(cmd.ErrOrStderr(), okStyle.Render(i18n.T("export.copied")))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", `output format ("json" or "yaml")`)
	cmd.Flags().BoolVar(&copyTo, "clipboard", false, "also copy the output to the clipboard")
	return cmd
}
