package rates

import "errors"

var (
	// ErrInvalidAmount blocks conversion of a negative amount; no fetch is
	// attempted.
	ErrInvalidAmount = errors.New("amount must be greater than or equal to 0")
	// ErrNoRateAvailable is surfaced to the field instead of a silent zero.
	ErrNoRateAvailable = errors.New("no exchange rate available for country")
	// ErrRatesUnavailable signals the quote fetch itself failed.
	ErrRatesUnavailable = errors.New("exchange rates could not be fetched")
)
