package payment

import (
	"context"
	"encoding/json"

	"github.com/shopspring/decimal"

	"remesa/internal/backend"
)

// Service runs the crypto payment flow for the summary step.
type Service interface {
	// Pay sends amountWLD through the wallet and waits for backend
	// confirmation. SDK-level success alone is not success.
	Pay(ctx context.Context, amountWLD string) (*Result, error)
}

// Result is a confirmed payment.
type Result struct {
	Reference    string
	FinalPayload json.RawMessage
}

// Backend is the slice of the backend client the flow needs.
type Backend interface {
	PaymentNonce(ctx context.Context) (string, error)
	ConfirmPayment(ctx context.Context, payload json.RawMessage) (*backend.ConfirmPaymentResponse, error)
}

// BalanceSource exposes the cached wallet balance for the re-check
// done at this layer.
type BalanceSource interface {
	WalletBalance() decimal.Decimal
}
