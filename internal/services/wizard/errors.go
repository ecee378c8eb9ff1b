package wizard

import "errors"

var (
	// ErrNotAuthenticated gates every step behind wallet authentication.
	// Handlers map it to a welcome redirect, not an error page.
	ErrNotAuthenticated = errors.New("wallet authentication required")

	// ErrStepNotReady is returned when a step is entered before the
	// previous one has been committed.
	ErrStepNotReady = errors.New("previous step not completed")

	// ErrConsentRequired is returned when any summary consent is
	// unchecked. No network call is made in that case.
	ErrConsentRequired = errors.New("all consents must be accepted")

	// ErrUnknownCountry is returned for a destination outside the
	// served corridor.
	ErrUnknownCountry = errors.New("unsupported destination country")

	// ErrBankRequired is returned when no payout bank is selected or the
	// selection does not belong to the destination country.
	ErrBankRequired = errors.New("a payout bank for the destination country is required")

	// ErrAmountTooSmall rejects amounts below the 0.01 WLD minimum.
	ErrAmountTooSmall = errors.New("amount is below the minimum of 0.01 WLD")

	// ErrAmountExceedsBalance rejects amounts above the cached balance.
	ErrAmountExceedsBalance = errors.New("amount exceeds wallet balance")

	// ErrNoConversion is returned when the receive amount could not be
	// computed for the entered amount.
	ErrNoConversion = errors.New("no conversion available for amount")

	// ErrWalletAddressMissing is returned by the max-amount affordance
	// when the session has no well-formed wallet address.
	ErrWalletAddressMissing = errors.New("wallet address unavailable")

	// ErrBackendUnavailable is returned when the liveness probe fails.
	ErrBackendUnavailable = errors.New("backend unavailable")

	// ErrReferenceMissing is returned when a selected reference entity
	// cannot be resolved to a display name.
	ErrReferenceMissing = errors.New("reference data missing for selection")
)
