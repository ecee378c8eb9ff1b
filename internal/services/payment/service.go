// Package payment implements the crypto payment flow: payment nonce fetch,
// wallet pay command and backend settlement confirmation.
package payment

import (
	"context"
	"fmt"
	"strings"

	"remesa/internal/metrics"
	"remesa/internal/minikit"
	"remesa/internal/services/rates"
)

const (
	// RecipientAddress is the fixed settlement wallet payments are sent to.
	RecipientAddress = "0xa2f329cb66feac2925a94caefe20ef0b0b0f3e40"
	// paymentDescription is shown in the wallet's confirmation sheet.
	paymentDescription = "ENVIAR MONEDAS"
	payStatusSuccess   = "success"
)

type service struct {
	backend Backend
	sdk     minikit.SDK
	balance BalanceSource
	metrics metrics.Collector
}

// NewService creates the payment flow.
func NewService(be Backend, sdk minikit.SDK, balance BalanceSource, collector metrics.Collector) Service {
	if be == nil {
		panic("backend is required")
	}
	if sdk == nil {
		panic("wallet sdk is required")
	}
	if balance == nil {
		panic("balance source is required")
	}
	if collector == nil {
		collector = metrics.Noop{}
	}
	return &service{backend: be, sdk: sdk, balance: balance, metrics: collector}
}

func (s *service) Pay(ctx context.Context, amountWLD string) (*Result, error) {
	if !s.sdk.IsInstalled() {
		s.metrics.RecordPayment("wallet_unavailable")
		return nil, ErrWalletUnavailable
	}

	amount := rates.ParseInputNumber(strings.ReplaceAll(amountWLD, ",", "."))
	if amount.IsZero() || amount.IsNegative() {
		s.metrics.RecordPayment("invalid_amount")
		return nil, ErrInvalidAmount
	}

	// Upstream already checked the balance; re-check here so a stale draft
	// can never spend more than the wallet holds.
	if amount.GreaterThan(s.balance.WalletBalance()) {
		s.metrics.RecordPayment("insufficient_balance")
		return nil, ErrInsufficientBalance
	}

	reference, err := s.backend.PaymentNonce(ctx)
	if err != nil {
		s.metrics.RecordPayment("nonce_failed")
		return nil, fmt.Errorf("payment nonce: %w", err)
	}

	tokenAmount, err := minikit.TokenToDecimals(amount, minikit.TokenWLD)
	if err != nil {
		return nil, fmt.Errorf("token conversion: %w", err)
	}

	payResult, err := s.sdk.Pay(ctx, minikit.PayCommandInput{
		Reference: reference,
		To:        RecipientAddress,
		Tokens: []minikit.TokenAmount{
			{Symbol: minikit.TokenWLD, TokenAmount: tokenAmount},
		},
		Description: paymentDescription,
	})
	if err != nil {
		s.metrics.RecordPayment("sdk_failed")
		return nil, fmt.Errorf("%w: %v", ErrPaymentDeclined, err)
	}
	if payResult.FinalPayload.Status != payStatusSuccess {
		s.metrics.RecordPayment("declined")
		return nil, ErrPaymentDeclined
	}

	confirmation, err := s.backend.ConfirmPayment(ctx, payResult.FinalPayload.Raw)
	if err != nil {
		s.metrics.RecordPayment("confirm_failed")
		return nil, fmt.Errorf("%w: %v", ErrPaymentDeclined, err)
	}
	if !confirmation.Success {
		s.metrics.RecordPayment("confirm_rejected")
		return nil, ErrPaymentDeclined
	}

	s.metrics.RecordPayment("ok")
	return &Result{
		Reference:    reference,
		FinalPayload: payResult.FinalPayload.Raw,
	}, nil
}
