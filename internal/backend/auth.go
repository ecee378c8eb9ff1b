package backend

import (
	"context"
	"encoding/json"
	"errors"

	"remesa/internal/models"
)

// Nonce fetches a single-use authentication nonce.
func (c *Client) Nonce(ctx context.Context) (string, error) {
	var out struct {
		Nonce string `json:"nonce"`
	}
	if err := c.get(ctx, "/nonce", nil, &out); err != nil {
		return "", err
	}
	if out.Nonce == "" {
		return "", errors.New("empty nonce in response")
	}
	return out.Nonce, nil
}

// VerifyLoginRequest submits the signed wallet credential for verification.
type VerifyLoginRequest struct {
	Nonce           string          `json:"nonce"`
	Payload         json.RawMessage `json:"payload"`
	ExtractedWallet string          `json:"extractedWallet"`
}

// VerifyLoginResponse captures every identifier alias the backend has been
// observed to answer with.
type VerifyLoginResponse struct {
	UserIDCamel     string `json:"userId"`
	UserIDSnake     string `json:"user_id"`
	ID              string `json:"id"`
	WalletAddress   string `json:"wallet_address"`
	WalletAddrCamel string `json:"walletAddress"`
	Wallet          string `json:"wallet"`
}

// UserID returns the first populated user identifier alias.
func (r *VerifyLoginResponse) UserID() string {
	switch {
	case r.UserIDCamel != "":
		return r.UserIDCamel
	case r.UserIDSnake != "":
		return r.UserIDSnake
	default:
		return r.ID
	}
}

// Address returns the first populated wallet address alias, normalized.
func (r *VerifyLoginResponse) Address() string {
	switch {
	case r.WalletAddress != "":
		return models.NormalizeWalletAddress(r.WalletAddress)
	case r.WalletAddrCamel != "":
		return models.NormalizeWalletAddress(r.WalletAddrCamel)
	default:
		return models.NormalizeWalletAddress(r.Wallet)
	}
}

// VerifyLogin submits {nonce, signed payload, extracted address} to the
// verification endpoint.
func (c *Client) VerifyLogin(ctx context.Context, req VerifyLoginRequest) (*VerifyLoginResponse, error) {
	var out VerifyLoginResponse
	if err := c.post(ctx, "/verify-login", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
