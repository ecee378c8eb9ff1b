package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"remesa/internal/models"
)

// CreateTransactionResponse covers every response shape the creation
// endpoint has been observed to answer with.
type CreateTransactionResponse struct {
	ID            string `json:"id"`
	TransactionID string `json:"transaction_id"`
	Data          struct {
		ID string `json:"id"`
	} `json:"data"`
}

// CreatedID returns the transaction id from whichever field carries it.
func (r *CreateTransactionResponse) CreatedID() string {
	switch {
	case r.ID != "":
		return r.ID
	case r.TransactionID != "":
		return r.TransactionID
	default:
		return r.Data.ID
	}
}

// CreateTransaction persists a completed transaction. Only HTTP 200/201
// count as success.
func (c *Client) CreateTransaction(ctx context.Context, payload models.TransactionPayload) (*CreateTransactionResponse, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode transaction: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/transactions", bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	c.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("POST /transactions: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, &APIError{Method: http.MethodPost, Path: "/transactions", Status: resp.StatusCode, Body: string(body)}
	}

	var out CreateTransactionResponse
	if len(body) > 0 {
		if err := json.Unmarshal(body, &out); err != nil {
			return nil, fmt.Errorf("decode POST /transactions: %w", err)
		}
	}
	return &out, nil
}

// SendEmail fires the transaction notification. Fire-and-forget from the
// backend's point of view; the caller decides how to report a failure.
func (c *Client) SendEmail(ctx context.Context, payload models.EmailPayload) error {
	return c.post(ctx, "/send-email", payload, nil)
}

// Transaction fetches a completed transaction for display.
func (c *Client) Transaction(ctx context.Context, id string) (*models.Transaction, error) {
	var out models.Transaction
	if err := c.get(ctx, "/transactions/"+id, nil, &out); err != nil {
		if IsStatus(err, http.StatusNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &out, nil
}
