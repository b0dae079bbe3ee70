package driven

import "context"

// ExchangeRateSource defines the driven port for currency conversion rates.
type ExchangeRateSource interface {
	// Rate returns how many units of quote one unit of base buys.
	// Returns ErrRateUnavailable if the source does not list quote.
	Rate(ctx context.Context, base, quote string) (float64, error)
}
