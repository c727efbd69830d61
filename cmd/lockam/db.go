package main

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/lockam/lockam/internal/db"
	"github.com/lockam/lockam/internal/i18n"
)

func newDBCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "db",
		Short: "Database housekeeping",
	}
	cmd.AddCommand(newDBMaintainCmd(a))
	return cmd
}

func newDBMaintainCmd(a *app) *cobra.Command {
	var timeoutSec int
	cmd := &cobra.Command{
		Use:   "maintain",
		Short: "Run database maintenance (VACUUM/OPTIMIZE) for the configured DB",
		Long:  `Runs engine-specific maintenance tasks (PRAGMA optimize, VACUUM, integrity_check, OPTIMIZE TABLE).`,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			if timeoutSec > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, time.Duration(timeoutSec)*time.Second)
				defer cancel()
			}

			dbType := strings.ToLower(a.cfg.Database.Type)
			if dbType == db.TypeSQLite {
				if err := db.EnsureSQLiteDir(a.cfg.Database.DSN); err != nil {
					return err
				}
			}
			store, err := db.NewStoreFromDSN(ctx, dbType, a.cfg.Database.DSN)
			if err != nil {
				return fail(i18n.T("config.error_init_db", err), err)
			}
			defer func() { _ = store.Close() }()

			if err := store.Maintain(ctx); err != nil {
				return fmt.Errorf("maintenance failed: %w", err)
			}
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), okStyle.Render(i18n.T("db.maintenance_done")))
			return nil
		},
	}
	cmd.Flags().IntVar(&timeoutSec, "timeout", 0, "timeout in seconds (0 means no timeout)")
	return cmd
}
