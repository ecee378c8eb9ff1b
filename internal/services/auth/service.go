// Package auth implements the wallet authentication flow: nonce fetch,
// wallet signature request, layered address extraction and backend
// verification with bounded retry.
package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"remesa/internal/backend"
	"remesa/internal/metrics"
	"remesa/internal/minikit"
	"remesa/internal/models"
	"remesa/pkg/logger"
)

type service struct {
	backend Backend
	sdk     minikit.SDK
	config  Config
	metrics metrics.Collector
}

// NewService creates the wallet auth flow.
func NewService(be Backend, sdk minikit.SDK, config Config, collector metrics.Collector) Service {
	if be == nil {
		panic("backend is required")
	}
	if sdk == nil {
		panic("wallet sdk is required")
	}
	if collector == nil {
		collector = metrics.Noop{}
	}
	config.applyDefaults()

	return &service{
		backend: be,
		sdk:     sdk,
		config:  config,
		metrics: collector,
	}
}

// identity is what one signature/verification attempt yields.
type identity struct {
	userID        string
	walletAddress string
}

func (s *service) Authenticate(ctx context.Context) (*models.WalletAuthResult, error) {
	if !s.sdk.IsInstalled() {
		s.metrics.RecordAuthAttempt("wallet_unavailable")
		return nil, ErrWalletUnavailable
	}

	nonce, err := s.backend.Nonce(ctx)
	if err != nil {
		s.metrics.RecordAuthAttempt("nonce_failed")
		return nil, fmt.Errorf("%w: %v", ErrNonceFetch, err)
	}

	id, err := s.signAndVerify(ctx, nonce)
	if err != nil {
		s.metrics.RecordAuthAttempt("failed")
		return nil, fmt.Errorf("%w: %v", ErrAuthFailed, err)
	}
	s.metrics.RecordAuthAttempt("ok")

	return s.resolveUser(ctx, id)
}

// signAndVerify runs the signature request, extraction and verification,
// retrying the whole sequence with a fixed delay until the attempt budget is
// spent. The last error is surfaced.
func (s *service) signAndVerify(ctx context.Context, nonce string) (*identity, error) {
	var result *identity

	attempt := 0
	operation := func() error {
		if attempt > 0 {
			s.metrics.RecordAuthRetry()
			logger.Debug("retrying wallet auth", zap.Int("attempt", attempt+1))
		}
		attempt++

		id, err := s.attempt(ctx, nonce)
		if err != nil {
			if errors.Is(err, minikit.ErrNotInstalled) {
				return backoff.Permanent(ErrWalletUnavailable)
			}
			return err
		}
		result = id
		return nil
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(
			backoff.NewConstantBackOff(s.config.RetryDelay),
			uint64(s.config.MaxRetries),
		),
		ctx,
	)
	if err := backoff.Retry(operation, policy); err != nil {
		return nil, err
	}
	return result, nil
}

func (s *service) attempt(ctx context.Context, nonce string) (*identity, error) {
	signed, err := s.sdk.WalletAuth(ctx, minikit.WalletAuthRequest{
		Nonce:     nonce,
		RequestID: uuid.NewString(),
		ExpiresAt: time.Now().Add(s.config.CredentialTTL),
	})
	if err != nil {
		return nil, fmt.Errorf("wallet auth command: %w", err)
	}

	extracted := ExtractWalletAddress(signed)
	if extracted.Address != "" && !extracted.Confident {
		logger.Debug("wallet address extracted by fallback scan")
	}

	// The verification call races a fixed timeout; on timeout the response
	// is discarded and the attempt counts as failed.
	verifyCtx, cancel := context.WithTimeout(ctx, s.config.VerifyTimeout)
	defer cancel()

	resp, err := s.backend.VerifyLogin(verifyCtx, backend.VerifyLoginRequest{
		Nonce:           nonce,
		Payload:         signed.FinalPayload,
		ExtractedWallet: extracted.Address,
	})
	if err != nil {
		return nil, fmt.Errorf("verify login: %w", err)
	}

	id := &identity{
		userID:        resp.UserID(),
		walletAddress: resp.Address(),
	}
	if id.walletAddress == "" {
		id.walletAddress = extracted.Address
	}
	if id.userID == "" && id.walletAddress == "" {
		return nil, ErrNoIdentity
	}
	return id, nil
}

// resolveUser maps the verified identity onto a backend user record. A known
// wallet resolves to the existing profile; an unknown one gets a new record
// with an empty profile.
func (s *service) resolveUser(ctx context.Context, id *identity) (*models.WalletAuthResult, error) {
	if id.walletAddress == "" {
		// Verification returned a user id but no address; trust it as an
		// existing account.
		return &models.WalletAuthResult{UserID: id.userID, ExistingUser: true}, nil
	}

	user, err := s.backend.UserByWalletAddress(ctx, id.walletAddress)
	if err != nil {
		return nil, fmt.Errorf("user lookup: %w", err)
	}
	if user != nil {
		return &models.WalletAuthResult{
			UserID:        user.ID,
			WalletAddress: id.walletAddress,
			ExistingUser:  true,
		}, nil
	}

	created, err := s.backend.CreateUser(ctx, id.walletAddress)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &models.WalletAuthResult{
		UserID:        created.ID,
		WalletAddress: id.walletAddress,
		ExistingUser:  false,
	}, nil
}
