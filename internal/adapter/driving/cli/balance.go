package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ericfisherdev/chorekit/internal/adapter/driven/filesystem"
	"github.com/ericfisherdev/chorekit/internal/application"
	"github.com/ericfisherdev/chorekit/internal/domain/port/driven"
)

// DefaultSummaryFile is where balance summary writes its message.
const DefaultSummaryFile = "summary.txt"

// DefaultQuoteCurrency is the currency balance summary converts into.
const DefaultQuoteCurrency = "PLN"

func newBalanceCommand(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "balance",
		Short: "Save and summarize DigitalOcean billing balances",
	}
	cmd.AddCommand(newBalanceSaveCommand(app), newBalanceSummaryCommand(app))
	return cmd
}

func newBalanceSaveCommand(app *App) *cobra.Command {
	var (
		dir   string
		fetch bool
	)

	cmd := &cobra.Command{
		Use:   "save <account>",
		Short: "Store a balance document as <account>.json",
		Long: "Reads the JSON returned by the DigitalOcean balance endpoint from stdin,\n" +
			"or fetches it with --fetch, and stores it under the account name.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			history, err := app.balanceStore(ctx)
			if err != nil {
				return err
			}

			var cloud driven.CloudClient
			if fetch {
				if cloud, err = app.NewCloud(ctx, app.Config.DigitalOceanToken); err != nil {
					return err
				}
			}
			svc := application.NewBalanceService(cloud, nil, history, cmd.OutOrStdout())

			var doc map[string]any
			if fetch {
				if doc, err = svc.Fetch(ctx); err != nil {
					return err
				}
			} else {
				dec := json.NewDecoder(cmd.InOrStdin())
				dec.UseNumber()
				if err := dec.Decode(&doc); err != nil {
					return fmt.Errorf("decode balance JSON from stdin: %w", err)
				}
			}
			if doc == nil {
				return fmt.Errorf("balance JSON must be an object")
			}

			_, err = svc.Save(ctx, filesystem.NewSnapshotDir(dir), args[0], doc)
			return err
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", "directory balance files are written to")
	cmd.Flags().BoolVar(&fetch, "fetch", false, "fetch the balance from the DigitalOcean API instead of reading stdin")
	return cmd
}

func newBalanceSummaryCommand(app *App) *cobra.Command {
	var path, webhook, output, currency string

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Total every saved balance and report it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()

			svc := application.NewBalanceService(nil, app.NewRates(app.Config.ExchangeRateURL), nil, out)
			sum, err := svc.Summarize(ctx, filesystem.NewSnapshotDir(path), currency)
			if err != nil {
				return err
			}
			message := application.FormatSummary(sum)

			if webhook == "" {
				webhook = app.Config.DiscordWebhook
			}
			var notifier driven.Notifier
			if webhook != "" {
				notifier = app.NewNotifier(webhook)
			}
			return svc.Report(ctx, message, notifier, filesystem.NewDir(""), output)
		},
	}

	cmd.Flags().StringVar(&path, "path", ".", "directory containing the balance JSON files")
	cmd.Flags().StringVar(&webhook, "webhook", "", "Discord webhook URL (default from CHOREKIT_DISCORD_WEBHOOK)")
	cmd.Flags().StringVar(&output, "output", DefaultSummaryFile, "file the summary is written to")
	cmd.Flags().StringVar(&currency, "currency", DefaultQuoteCurrency, "currency the month-to-date balance is converted to")
	return cmd
}
