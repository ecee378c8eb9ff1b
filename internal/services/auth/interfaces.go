package auth

import (
	"context"
	"time"

	"remesa/internal/backend"
	"remesa/internal/models"
)

// Service runs the wallet authentication flow.
type Service interface {
	Authenticate(ctx context.Context) (*models.WalletAuthResult, error)
}

// Backend is the slice of the backend client the flow needs.
type Backend interface {
	Nonce(ctx context.Context) (string, error)
	VerifyLogin(ctx context.Context, req backend.VerifyLoginRequest) (*backend.VerifyLoginResponse, error)
	UserByWalletAddress(ctx context.Context, walletAddress string) (*models.User, error)
	CreateUser(ctx context.Context, walletAddress string) (*models.User, error)
}

// Config tunes the flow. Zero values fall back to the defaults below.
type Config struct {
	// MaxRetries is the number of extra attempts after the first failure.
	MaxRetries int
	// RetryDelay is the fixed pause between attempts.
	RetryDelay time.Duration
	// VerifyTimeout bounds the verification call; the race loser is
	// discarded, not aborted at the transport level.
	VerifyTimeout time.Duration
	// CredentialTTL is the expiration requested for the signed credential.
	CredentialTTL time.Duration
}

const (
	DefaultMaxRetries    = 2
	DefaultRetryDelay    = 2 * time.Second
	DefaultVerifyTimeout = 10 * time.Second
	DefaultCredentialTTL = 5 * time.Minute
)

func (c *Config) applyDefaults() {
	if c.MaxRetries == 0 {
		c.MaxRetries = DefaultMaxRetries
	}
	if c.RetryDelay == 0 {
		c.RetryDelay = DefaultRetryDelay
	}
	if c.VerifyTimeout == 0 {
		c.VerifyTimeout = DefaultVerifyTimeout
	}
	if c.CredentialTTL == 0 {
		c.CredentialTTL = DefaultCredentialTTL
	}
}
