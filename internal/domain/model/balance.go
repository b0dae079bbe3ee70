package model

import "time"

// BalanceSnapshot is a single account's billing state as reported by
// DigitalOcean. Amounts are kept as the decimal strings the API returns.
type BalanceSnapshot struct {
	AccountName        string
	MonthToDateBalance string
	AccountBalance     string
	MonthToDateUsage   string
	GeneratedAt        time.Time
	RecordedAt         time.Time
}

// BalanceSummary aggregates snapshots across accounts. All USD totals are in
// dollars; QuoteCurrency holds the currency MonthToDateBalanceQuote is in.
type BalanceSummary struct {
	Accounts                int
	MonthToDateBalance      float64
	AccountBalance          float64
	MonthToDateUsage        float64
	QuoteCurrency           string
	ExchangeRate            float64
	MonthToDateBalanceQuote float64
}
