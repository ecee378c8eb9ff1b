package backend

import (
	"context"
	"net/url"

	"remesa/internal/models"
)

// UserByWalletAddress looks a user up by wallet address. The backend query
// is not guaranteed to match case-insensitively, so the result set is
// re-matched client-side against the normalized address. A miss returns
// (nil, nil).
func (c *Client) UserByWalletAddress(ctx context.Context, walletAddress string) (*models.User, error) {
	normalized := models.NormalizeWalletAddress(walletAddress)
	query := url.Values{}
	query.Set("wallet_address", normalized)

	var out []models.User
	if err := c.get(ctx, "/users", query, &out); err != nil {
		return nil, err
	}
	for i := range out {
		if models.NormalizeWalletAddress(out[i].WalletAddress) == normalized {
			return &out[i], nil
		}
	}
	return nil, nil
}

// CreateUser registers a new user with an empty profile.
func (c *Client) CreateUser(ctx context.Context, walletAddress string) (*models.User, error) {
	body := models.User{
		WalletAddress: models.NormalizeWalletAddress(walletAddress),
	}
	var out models.User
	if err := c.post(ctx, "/users", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateUserProfile registers a new user with a full profile.
func (c *Client) CreateUserProfile(ctx context.Context, input models.UserProfileInput) (*models.User, error) {
	input.WalletAddress = models.NormalizeWalletAddress(input.WalletAddress)
	var out models.User
	if err := c.post(ctx, "/users", input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateUser persists profile changes for an existing user.
func (c *Client) UpdateUser(ctx context.Context, userID string, input models.UserProfileInput) (*models.User, error) {
	input.WalletAddress = models.NormalizeWalletAddress(input.WalletAddress)
	var out models.User
	if err := c.put(ctx, "/users/"+userID, input, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UserByID fetches a user by id.
func (c *Client) UserByID(ctx context.Context, id string) (*models.User, error) {
	var out models.User
	if err := c.get(ctx, "/users/"+id, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// DeleteUser removes a user.
func (c *Client) DeleteUser(ctx context.Context, id string) error {
	return c.delete(ctx, "/users/"+id)
}
