package minikit

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ErrNotInstalled signals that the wallet app is not available on the
// device. Fatal to the current flow, never retried.
var ErrNotInstalled = errors.New("wallet app is not installed")

const bridgeStatusTimeout = 3 * time.Second

// Bridge talks to the device-side SDK bridge over HTTP. It is the production
// implementation of SDK; tests substitute mocks.
type Bridge struct {
	endpoint string
	http     *http.Client
}

// NewBridge creates a bridge client for the given device endpoint.
func NewBridge(endpoint string, timeout time.Duration) *Bridge {
	if timeout == 0 {
		timeout = 60 * time.Second // wallet commands wait on user interaction
	}
	return &Bridge{
		endpoint: strings.TrimRight(endpoint, "/"),
		http:     &http.Client{Timeout: timeout},
	}
}

// IsInstalled probes the bridge status endpoint.
func (b *Bridge) IsInstalled() bool {
	ctx, cancel := context.WithTimeout(context.Background(), bridgeStatusTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, b.endpoint+"/status", nil)
	if err != nil {
		return false
	}
	resp, err := b.http.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)
	return resp.StatusCode == http.StatusOK
}

// WalletAuth requests a signed wallet credential.
func (b *Bridge) WalletAuth(ctx context.Context, authReq WalletAuthRequest) (*AuthResult, error) {
	raw, err := b.command(ctx, "/wallet-auth", authReq)
	if err != nil {
		return nil, err
	}

	var result AuthResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("decode wallet-auth result: %w", err)
	}
	result.Raw = raw
	return &result, nil
}

// Pay requests a payment signature.
func (b *Bridge) Pay(ctx context.Context, input PayCommandInput) (*PayResult, error) {
	raw, err := b.command(ctx, "/pay", input)
	if err != nil {
		return nil, err
	}

	var envelope struct {
		FinalPayload json.RawMessage `json:"finalPayload"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("decode pay result: %w", err)
	}

	var payload PayFinalPayload
	if len(envelope.FinalPayload) > 0 {
		if err := json.Unmarshal(envelope.FinalPayload, &payload); err != nil {
			return nil, fmt.Errorf("decode pay payload: %w", err)
		}
		payload.Raw = envelope.FinalPayload
	}
	return &PayResult{FinalPayload: payload}, nil
}

func (b *Bridge) command(ctx context.Context, path string, body interface{}) (json.RawMessage, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode command: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.endpoint+path, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("build command: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("bridge %s: %w", path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read bridge response: %w", err)
	}
	if resp.StatusCode == http.StatusServiceUnavailable {
		return nil, ErrNotInstalled
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bridge %s: status %d", path, resp.StatusCode)
	}
	return raw, nil
}
