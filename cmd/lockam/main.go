// Copyright (c) 2025 Lockam Team
// Lockam - local admin provisioning and device lock
// This source code is licensed under the MIT license found in the LICENSE file.

// Command lockam provisions the local admin account of a device and checks
// its credentials.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lockam/lockam/buildvars"
	"github.com/lockam/lockam/internal/config"
	"github.com/lockam/lockam/internal/credentials"
	"github.com/lockam/lockam/internal/db"
	"github.com/lockam/lockam/internal/i18n"
	"github.com/lockam/lockam/internal/install"
	"github.com/lockam/lockam/internal/logging"
	"github.com/lockam/lockam/internal/validation"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		// Cobra has already printed the error.
		os.Exit(1)
	}
}

// app carries the resolved configuration into subcommands.
type app struct {
	cfgFile string
	cfg     config.Config
	policy  credentials.Policy
}

// cliError pairs a localized message with the underlying error.
type cliError struct {
	msg string
	err error
}

func (e *cliError) Error() string { return e.msg }
func (e *cliError) Unwrap() error { return e.err }

func fail(msg string, err error) error { return &cliError{msg: msg, err: err} }

// newRootCmd builds a fresh command tree. Tests call it once per run.
func newRootCmd() *cobra.Command {
	a := &app{}
	cmd := &cobra.Command{
		Use:   "lockam",
		Short: "Lockam provisions and verifies the local admin account of a device.",
		Long: `Lockam keeps the admin credential of this device in a local database.
First-time setup validates the admin's details, stores a salted password
hash and marks the device installed. Afterwards the credential can be
checked, listed and exported without exposing secrets.`,
		SilenceUsage:      true,
		PersistentPreRunE: a.load,
	}
	cmd.Version = buildvars.String(nil)

	pf := cmd.PersistentFlags()
	pf.StringVar(&a.cfgFile, "config", "", "config file (default <user config dir>/lockam/lockam.yaml)")
	pf.String("database.type", "", `database type ("sqlite", "postgres", "mysql")`)
	pf.String("database.dsn", "", "database connection string; a file path for sqlite")
	pf.String("install.marker", "", "path of the install marker file")
	pf.String("credentials.policy", "", `credential policy ("single" or "multi")`)
	pf.String("language", "", `message language ("en", "de")`)
	pf.Bool("debug", false, "enable debug logging")

	cmd.AddCommand(
		newStatusCmd(a),
		newSetupCmd(a),
		newLoginCmd(a),
		newUsersCmd(a),
		newExportCmd(a),
		newDBCmd(a),
		newConfigCmd(a),
	)
	return cmd
}

func (a *app) explicitConfigPath(cmd *cobra.Command) (*string, error) {
	if !cmd.Flags().Changed("config") || a.cfgFile == "" {
		return nil, nil
	}
	if _, err := os.Stat(a.cfgFile); err != nil {
		return nil, fmt.Errorf("config file specified via --config flag not found or is not accessible: %w", err)
	}
	path := a.cfgFile
	return &path, nil
}

// load resolves configuration and initialises logging and messages.
func (a *app) load(cmd *cobra.Command, _ []string) error {
	path, err := a.explicitConfigPath(cmd)
	if err != nil {
		return err
	}
	defaults := config.Defaults()
	a.cfg, err = config.LoadConfig[config.Config](cmd, defaults, path)
	if err != nil {
		return fmt.Errorf("error loading config: %w", err)
	}

	// Empty values in a config file fall back to the defaults.
	if a.cfg.Database.Type == "" {
		a.cfg.Database.Type = defaults["database.type"].(string)
	}
	if a.cfg.Database.DSN == "" {
		a.cfg.Database.DSN = defaults["database.dsn"].(string)
	}
	if a.cfg.Install.Marker == "" {
		a.cfg.Install.Marker = defaults["install.marker"].(string)
	}
	if a.cfg.Language == "" {
		a.cfg.Language = defaults["language"].(string)
	}

	i18n.Init(a.cfg.Language)
	logging.SetDebug(a.cfg.Debug)
	db.SetDebug(a.cfg.Debug)

	a.policy, err = credentials.ParsePolicy(a.cfg.Credentials.Policy)
	if err != nil {
		return err
	}
	logging.Debugf("config loaded: database=%s policy=%s marker=%s", a.cfg.Database.Type, a.policy, a.cfg.Install.Marker)
	return nil
}

func (a *app) openManager(ctx context.Context) (*credentials.Manager, error) {
	m, err := credentials.Open(ctx, credentials.Options{
		DBType: strings.ToLower(a.cfg.Database.Type),
		DSN:    a.cfg.Database.DSN,
		Policy: a.policy,
	})
	if err != nil {
		return nil, fail(i18n.T("config.error_init_db", err), err)
	}
	return m, nil
}

func (a *app) gate() (*install.Gate, error) {
	return install.New(a.cfg.Install.Marker)
}

func (a *app) validator() *validation.Validator {
	return validation.New(a.cfg.Validation.MinAgeYears)
}

func (a *app) requireMulti() error {
	if a.policy != credentials.PolicyMulti {
		return fail(i18n.T("users.requires_multi"), credentials.ErrPolicyMismatch)
	}
	return nil
}

// isPolicyMismatch reports whether err came from calling a policy-specific
// operation under the other policy.
func isPolicyMismatch(err error) bool {
	return errors.Is(err, credentials.ErrPolicyMismatch)
}
