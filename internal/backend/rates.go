package backend

import (
	"context"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"remesa/internal/models"
)

// ExchangeRate fetches the converted total for amount WLD into the target
// country's currency.
func (c *Client) ExchangeRate(ctx context.Context, country string, amount decimal.Decimal) (decimal.Decimal, error) {
	var out struct {
		Total decimal.Decimal `json:"total"`
	}
	path := "/exchange-rates/" + strings.ToLower(country) + "/" + amount.String()
	if err := c.get(ctx, path, nil, &out); err != nil {
		return decimal.Zero, err
	}
	return out.Total, nil
}

// ExchangeRates fetches both country legs concurrently for one amount.
func (c *Client) ExchangeRates(ctx context.Context, amount decimal.Decimal) (*models.ExchangeRateQuote, error) {
	var (
		wg       sync.WaitGroup
		cop, ves decimal.Decimal
		copErr   error
		vesErr   error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		cop, copErr = c.ExchangeRate(ctx, "colombia", amount)
	}()
	go func() {
		defer wg.Done()
		ves, vesErr = c.ExchangeRate(ctx, "venezuela", amount)
	}()
	wg.Wait()

	if copErr != nil {
		return nil, copErr
	}
	if vesErr != nil {
		return nil, vesErr
	}
	return &models.ExchangeRateQuote{WLDToCOP: cop, WLDToVES: ves}, nil
}

// WalletBalance fetches the on-chain WLD balance for a wallet address.
func (c *Client) WalletBalance(ctx context.Context, walletAddress string) (decimal.Decimal, error) {
	var out struct {
		Total decimal.Decimal `json:"total"`
	}
	path := "/worldscan/user/balance/" + models.NormalizeWalletAddress(walletAddress)
	if err := c.get(ctx, path, nil, &out); err != nil {
		return decimal.Zero, err
	}
	return out.Total, nil
}
