// Package minikit is the opaque capability surface of the device wallet SDK:
// availability check, wallet-auth signature request and payment request. The
// cryptographic protocol behind it is external.
package minikit

import (
	"context"
	"encoding/json"
	"time"
)

// WalletAuthRequest asks the wallet for a signed credential over a nonce.
type WalletAuthRequest struct {
	Nonce     string    `json:"nonce"`
	RequestID string    `json:"requestId"`
	ExpiresAt time.Time `json:"expirationTime"`
}

// AuthResult is the signed outcome of a wallet-auth command. Both the full
// serialized result and the final payload are kept raw; their shape is owned
// by the SDK and only probed, never relied on.
type AuthResult struct {
	Raw          json.RawMessage `json:"-"`
	FinalPayload json.RawMessage `json:"finalPayload"`
}

// TokenAmount is one token leg of a payment, in minor units.
type TokenAmount struct {
	Symbol      string `json:"symbol"`
	TokenAmount string `json:"token_amount"`
}

// PayCommandInput is a payment request to the wallet.
type PayCommandInput struct {
	Reference   string        `json:"reference"`
	To          string        `json:"to"`
	Tokens      []TokenAmount `json:"tokens"`
	Description string        `json:"description"`
}

// PayFinalPayload is the signed payment outcome. Status "success" means the
// wallet signed and broadcast; settlement is still pending backend
// confirmation.
type PayFinalPayload struct {
	Status string          `json:"status"`
	Raw    json.RawMessage `json:"-"`
}

// PayResult wraps the payment command outcome.
type PayResult struct {
	FinalPayload PayFinalPayload
}

// SDK is the wallet capability consumed by the flows.
type SDK interface {
	// IsInstalled reports whether the wallet app is available on the device.
	IsInstalled() bool
	WalletAuth(ctx context.Context, req WalletAuthRequest) (*AuthResult, error)
	Pay(ctx context.Context, input PayCommandInput) (*PayResult, error)
}
