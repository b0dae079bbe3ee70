package cli

import (
	"github.com/spf13/cobra"

	sqliteadapter "github.com/ericfisherdev/chorekit/internal/adapter/driven/sqlite"
	"github.com/ericfisherdev/chorekit/internal/application"
)

func newHistoryCommand(app *App) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show the prune audit trail and recorded balances",
	}
	cmd.PersistentFlags().IntVar(&limit, "limit", application.DefaultHistoryLimit, "maximum number of rows")

	audit := &cobra.Command{
		Use:   "audit",
		Short: "List recent prune decisions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := app.history(cmd.Context())
			if err != nil {
				return err
			}
			svc := application.NewHistoryService(sqliteadapter.NewAuditRepo(db), nil, cmd.OutOrStdout())
			return svc.PrintAudit(cmd.Context(), limit)
		},
	}

	balances := &cobra.Command{
		Use:   "balances",
		Short: "List recorded balance snapshots",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			db, err := app.history(cmd.Context())
			if err != nil {
				return err
			}
			svc := application.NewHistoryService(nil, sqliteadapter.NewBalanceRepo(db), cmd.OutOrStdout())
			return svc.PrintBalances(cmd.Context(), limit)
		},
	}

	cmd.AddCommand(audit, balances)
	return cmd
}
