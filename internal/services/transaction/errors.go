package transaction

import "errors"

var (
	// ErrInvalidAccountNumber blocks non-numeric account numbers; defense
	// in depth beyond form validation.
	ErrInvalidAccountNumber = errors.New("account number must be numeric")
	// ErrIncompleteDraft means required draft fields are missing.
	ErrIncompleteDraft = errors.New("transaction draft is incomplete")
	// ErrCurrencyNotFound means no currency row matches the payout
	// country. Fatal to this submission, recoverable by retry.
	ErrCurrencyNotFound = errors.New("currency not found for country")
	// ErrSubmissionFailed wraps a failed transaction-creation call.
	ErrSubmissionFailed = errors.New("transaction submission failed")
)
