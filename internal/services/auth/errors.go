package auth

import "errors"

var (
	// ErrWalletUnavailable means the wallet app is not installed. Fatal,
	// never retried.
	ErrWalletUnavailable = errors.New("wallet app is not available")
	// ErrNonceFetch means the single-use nonce could not be fetched. Fatal.
	ErrNonceFetch = errors.New("failed to fetch auth nonce")
	// ErrNoIdentity means neither extraction nor the backend produced a
	// user id or wallet address.
	ErrNoIdentity = errors.New("no identity could be established")
	// ErrAuthFailed wraps the last error after all attempts are exhausted.
	ErrAuthFailed = errors.New("wallet authentication failed")
)
