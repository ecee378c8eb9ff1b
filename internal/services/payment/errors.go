package payment

import "errors"

var (
	// ErrWalletUnavailable means the wallet app is not installed.
	ErrWalletUnavailable = errors.New("wallet app is not available")
	// ErrInvalidAmount means the amount is not a finite positive number.
	ErrInvalidAmount = errors.New("invalid payment amount")
	// ErrInsufficientBalance blocks amounts above the cached balance.
	ErrInsufficientBalance = errors.New("insufficient wallet balance")
	// ErrPaymentDeclined covers SDK rejection and failed backend
	// confirmation.
	ErrPaymentDeclined = errors.New("payment was declined")
)
