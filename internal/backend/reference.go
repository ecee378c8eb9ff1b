package backend

import (
	"context"
	"net/url"

	"remesa/internal/models"
)

// Countries fetches the supported payout countries.
func (c *Client) Countries(ctx context.Context) ([]models.Country, error) {
	var out []models.Country
	if err := c.get(ctx, "/countries", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Banks fetches banks, optionally filtered by country. The backend filter is
// advisory; the result is filtered again client-side.
func (c *Client) Banks(ctx context.Context, countryID string) ([]models.Bank, error) {
	query := url.Values{}
	if countryID != "" {
		query.Set("country_id", countryID)
	}
	var out []models.Bank
	if err := c.get(ctx, "/banks", query, &out); err != nil {
		return nil, err
	}
	if countryID != "" {
		out = models.FilterBanksByCountry(out, countryID)
	}
	return out, nil
}

// DocumentTypes fetches document types, optionally filtered by country.
func (c *Client) DocumentTypes(ctx context.Context, countryID string) ([]models.DocumentType, error) {
	query := url.Values{}
	if countryID != "" {
		query.Set("country_id", countryID)
	}
	var out []models.DocumentType
	if err := c.get(ctx, "/documents-type", query, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AccountTypes fetches account types, optionally filtered by country.
func (c *Client) AccountTypes(ctx context.Context, countryID string) ([]models.AccountType, error) {
	query := url.Values{}
	if countryID != "" {
		query.Set("country_id", countryID)
	}
	var out []models.AccountType
	if err := c.get(ctx, "/accounts-type", query, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Currencies fetches the currency table used to resolve currency ids.
func (c *Client) Currencies(ctx context.Context) ([]models.Currency, error) {
	var out []models.Currency
	if err := c.get(ctx, "/currencies", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
