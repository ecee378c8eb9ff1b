// Package rates converts send amounts to the payout currency using fetched
// exchange-rate quotes, with the wizard's formatting and debounce rules.
package rates

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"remesa/internal/metrics"
	"remesa/internal/models"
)

const (
	CountryColombia  = "Colombia"
	CountryVenezuela = "Venezuela"
)

// ZeroReceives is the formatted payout amount for empty or invalid input.
const ZeroReceives = "0,00"

// QuoteSource fetches a rate quote for one requested amount.
type QuoteSource interface {
	ExchangeRates(ctx context.Context, amount decimal.Decimal) (*models.ExchangeRateQuote, error)
}

// Converter turns a typed WLD amount into a formatted payout amount.
type Converter struct {
	quotes  QuoteSource
	metrics metrics.Collector
}

// NewConverter creates a converter. metrics may be nil.
func NewConverter(quotes QuoteSource, collector metrics.Collector) *Converter {
	if quotes == nil {
		panic("quote source is required")
	}
	if collector == nil {
		collector = metrics.Noop{}
	}
	return &Converter{quotes: quotes, metrics: collector}
}

// Convert fetches a quote for amount and selects the target country's leg.
// It returns the formatted payout amount and the quote it was derived from.
// Empty input converts to "0,00" without a fetch; negative input is a
// validation error and no fetch is attempted.
func (c *Converter) Convert(ctx context.Context, amount, country string) (string, *models.ExchangeRateQuote, error) {
	if strings.TrimSpace(amount) == "" || country == "" {
		return ZeroReceives, nil, nil
	}

	value := ParseInputNumber(amount)
	if value.IsNegative() {
		return ZeroReceives, nil, ErrInvalidAmount
	}

	start := time.Now()
	quote, err := c.quotes.ExchangeRates(ctx, value)
	c.metrics.ObserveConversion(time.Since(start))
	if err != nil {
		return ZeroReceives, nil, fmt.Errorf("%w: %v", ErrRatesUnavailable, err)
	}

	total, err := selectLeg(quote, country)
	if err != nil {
		return ZeroReceives, quote, err
	}
	return FormatLocalCurrency(total.Round(receivesPrecision)), quote, nil
}

// selectLeg picks the converted total for the chosen country.
func selectLeg(quote *models.ExchangeRateQuote, country string) (decimal.Decimal, error) {
	var total decimal.Decimal
	switch {
	case strings.EqualFold(country, CountryColombia):
		total = quote.WLDToCOP
	case strings.EqualFold(country, CountryVenezuela):
		total = quote.WLDToVES
	default:
		return decimal.Zero, fmt.Errorf("%w: %s", ErrNoRateAvailable, country)
	}
	if total.IsZero() {
		return decimal.Zero, fmt.Errorf("%w: %s", ErrNoRateAvailable, country)
	}
	return total, nil
}

// CurrencyFor returns the payout currency code for a country.
func CurrencyFor(country string) (string, bool) {
	switch {
	case strings.EqualFold(country, CountryColombia):
		return "COP", true
	case strings.EqualFold(country, CountryVenezuela):
		return "VES", true
	default:
		return "", false
	}
}
