package driven

import "errors"

// ErrNotFound is returned when a requested remote resource does not exist.
var ErrNotFound = errors.New("not found")

// ErrRateUnavailable is returned by ExchangeRateSource when the source has no
// rate for the requested currency pair.
var ErrRateUnavailable = errors.New("exchange rate unavailable")
