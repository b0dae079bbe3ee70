// Package application contains use-case orchestration services.
package application

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"time"

	"github.com/ericfisherdev/chorekit/internal/domain/model"
	"github.com/ericfisherdev/chorekit/internal/domain/port/driven"
)

// BaseCurrency is the currency DigitalOcean bills in.
const BaseCurrency = "USD"

// BalanceService saves per-account billing snapshots and summarizes them.
type BalanceService struct {
	cloud   driven.CloudClient
	rates   driven.ExchangeRateSource
	history driven.BalanceStore
	out     io.Writer
}

// NewBalanceService creates a BalanceService. cloud, rates and history may
// be nil when the command being run does not need them.
func NewBalanceService(cloud driven.CloudClient, rates driven.ExchangeRateSource, history driven.BalanceStore, out io.Writer) *BalanceService {
	return &BalanceService{cloud: cloud, rates: rates, history: history, out: out}
}

// Fetch retrieves the live balance document from the cloud provider.
func (s *BalanceService) Fetch(ctx context.Context) (map[string]any, error) {
	if s.cloud == nil {
		return nil, fmt.Errorf("fetch balance: no cloud client configured")
	}
	return s.cloud.FetchBalance(ctx)
}

// Save stamps doc with account, writes it to repo and, when history is
// enabled, records the snapshot.
func (s *BalanceService) Save(ctx context.Context, repo driven.SnapshotRepository, account string, doc map[string]any) (string, error) {
	doc["account_name"] = account

	name, err := repo.Save(ctx, account, doc)
	if err != nil {
		return "", err
	}
	fmt.Fprintf(s.out, "Data are save to file: %s.\n", name)

	if s.history != nil {
		snap := model.BalanceSnapshot{
			AccountName:        account,
			MonthToDateBalance: stringField(doc, "month_to_date_balance"),
			AccountBalance:     stringField(doc, "account_balance"),
			MonthToDateUsage:   stringField(doc, "month_to_date_usage"),
		}
		if raw := stringField(doc, "generated_at"); raw != "" {
			if t, err := time.Parse(time.RFC3339, raw); err == nil {
				snap.GeneratedAt = t
			} else {
				slog.Warn("ignoring unparsable generated_at", "account", account, "value", raw)
			}
		}
		if err := s.history.Save(ctx, snap); err != nil {
			return name, fmt.Errorf("record balance history: %w", err)
		}
		slog.Debug("recorded balance snapshot", "account", account)
	}
	return name, nil
}

// Summarize totals every snapshot in repo and converts the month-to-date
// balance into quote. A missing exchange rate fails the summary.
func (s *BalanceService) Summarize(ctx context.Context, repo driven.SnapshotRepository, quote string) (model.BalanceSummary, error) {
	files, err := repo.LoadAll(ctx)
	if err != nil {
		return model.BalanceSummary{}, err
	}

	sum := model.BalanceSummary{Accounts: len(files), QuoteCurrency: quote}
	for _, f := range files {
		fields := []struct {
			name  string
			raw   string
			total *float64
		}{
			{"month_to_date_balance", f.Snapshot.MonthToDateBalance, &sum.MonthToDateBalance},
			{"account_balance", f.Snapshot.AccountBalance, &sum.AccountBalance},
			{"month_to_date_usage", f.Snapshot.MonthToDateUsage, &sum.MonthToDateUsage},
		}
		for _, field := range fields {
			v, err := strconv.ParseFloat(field.raw, 64)
			if err != nil {
				return model.BalanceSummary{}, fmt.Errorf("%s: invalid %s %q: %w", f.Name, field.name, field.raw, err)
			}
			*field.total += v
		}
	}

	if s.rates == nil {
		return model.BalanceSummary{}, fmt.Errorf("summarize balances: no exchange rate source configured")
	}
	rate, err := s.rates.Rate(ctx, BaseCurrency, quote)
	if err != nil {
		return model.BalanceSummary{}, fmt.Errorf("failed to retrieve exchange rate: %w", err)
	}
	sum.ExchangeRate = rate
	sum.MonthToDateBalanceQuote = sum.MonthToDateBalance * rate

	slog.Info("summarized balances", "accounts", sum.Accounts, "rate", rate, "currency", quote)
	return sum, nil
}

// Report posts message through notifier when one is given and always writes
// it to name in ws. A notifier failure is reported and does not fail Report.
func (s *BalanceService) Report(ctx context.Context, message string, notifier driven.Notifier, ws driven.Workspace, name string) error {
	if notifier != nil {
		if err := notifier.Notify(ctx, message); err != nil {
			slog.Warn("sending summary to discord failed", "error", err)
			fmt.Fprintf(s.out, "Error occurred: %v\n", err)
		} else {
			fmt.Fprintln(s.out, "Summary successfully sent to Discord!")
		}
	}

	if err := ws.WriteText(name, message); err != nil {
		return err
	}
	fmt.Fprintf(s.out, "Summary saved to file %s.\n", name)
	return nil
}

// FormatSummary renders sum as the chat message posted for a billing summary.
func FormatSummary(sum model.BalanceSummary) string {
	return fmt.Sprintf(`
📊 ** ---===### SUMMARY ###===---**
💵 Month to Date Balance (USD): %.2f $
💰 Month to Date Balance (%s): %.2f %s
🔒 Account Balance (USD): %.2f $
📈 Month to Date Usage (USD): %.2f $
`,
		sum.MonthToDateBalance,
		sum.QuoteCurrency, sum.MonthToDateBalanceQuote, currencySymbol(sum.QuoteCurrency),
		sum.AccountBalance,
		sum.MonthToDateUsage,
	)
}

func currencySymbol(code string) string {
	switch code {
	case "PLN":
		return "zł"
	case "USD":
		return "$"
	case "EUR":
		return "€"
	case "GBP":
		return "£"
	default:
		return code
	}
}

// stringField renders doc[key] the way the API writes amounts.
func stringField(doc map[string]any, key string) string {
	switch v := doc[key].(type) {
	case string:
		return v
	case json.Number:
		return v.String()
	case nil:
		return ""
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return fmt.Sprint(v)
	}
}
