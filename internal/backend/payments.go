package backend

import (
	"context"
	"encoding/json"
	"errors"
)

// PaymentNonce fetches the reference record a payment must be initiated
// against. A response without an id is unusable.
func (c *Client) PaymentNonce(ctx context.Context) (string, error) {
	var out struct {
		ID string `json:"id"`
	}
	if err := c.get(ctx, "/nonce-payment", nil, &out); err != nil {
		return "", err
	}
	if out.ID == "" {
		return "", errors.New("payment nonce response has no id")
	}
	return out.ID, nil
}

// ConfirmPaymentResponse is the backend's verdict on a signed payment
// payload. Only Success=true settles the payment; SDK-level success alone
// is insufficient.
type ConfirmPaymentResponse struct {
	Success bool            `json:"success"`
	Detail  json.RawMessage `json:"detail,omitempty"`
}

// ConfirmPayment forwards the wallet SDK's final signed payload for
// settlement confirmation.
func (c *Client) ConfirmPayment(ctx context.Context, payload json.RawMessage) (*ConfirmPaymentResponse, error) {
	body := struct {
		Payload json.RawMessage `json:"payload"`
	}{Payload: payload}

	var out ConfirmPaymentResponse
	if err := c.post(ctx, "/confirm-payment", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
