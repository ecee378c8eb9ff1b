package rates

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"remesa/internal/models"
)

type MockQuoteSource struct {
	mock.Mock
}

func (m *MockQuoteSource) ExchangeRates(ctx context.Context, amount decimal.Decimal) (*models.ExchangeRateQuote, error) {
	args := m.Called(ctx, amount)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ExchangeRateQuote), args.Error(1)
}

func quoteOf(cop, ves string) *models.ExchangeRateQuote {
	return &models.ExchangeRateQuote{
		WLDToCOP: decimal.RequireFromString(cop),
		WLDToVES: decimal.RequireFromString(ves),
	}
}

func TestConverter_Convert(t *testing.T) {
	tests := []struct {
		name      string
		amount    string
		country   string
		setupMock func(*MockQuoteSource)
		want      string
		wantErr   error
	}{
		{
			name:    "empty amount skips the fetch",
			amount:  "",
			country: CountryColombia,
			want:    ZeroReceives,
		},
		{
			name:   "empty country skips the fetch",
			amount: "1,5",
			want:   ZeroReceives,
		},
		{
			name:    "negative amount is rejected without a fetch",
			amount:  "-3",
			country: CountryColombia,
			want:    ZeroReceives,
			wantErr: ErrInvalidAmount,
		},
		{
			name:    "colombia leg selected and formatted",
			amount:  "1,5",
			country: CountryColombia,
			setupMock: func(q *MockQuoteSource) {
				q.On("ExchangeRates", mock.Anything, decimal.RequireFromString("1.5")).
					Return(quoteOf("16250.756", "550.12"), nil)
			},
			want: "16.250,76",
		},
		{
			name:    "venezuela leg selected case-insensitively",
			amount:  "2",
			country: "venezuela",
			setupMock: func(q *MockQuoteSource) {
				q.On("ExchangeRates", mock.Anything, decimal.RequireFromString("2")).
					Return(quoteOf("20000", "733.5"), nil)
			},
			want: "733,50",
		},
		{
			name:    "fetch failure",
			amount:  "1",
			country: CountryColombia,
			setupMock: func(q *MockQuoteSource) {
				q.On("ExchangeRates", mock.Anything, mock.Anything).
					Return(nil, errors.New("boom"))
			},
			want:    ZeroReceives,
			wantErr: ErrRatesUnavailable,
		},
		{
			name:    "zero rate leg",
			amount:  "1",
			country: CountryVenezuela,
			setupMock: func(q *MockQuoteSource) {
				q.On("ExchangeRates", mock.Anything, mock.Anything).
					Return(quoteOf("16000", "0"), nil)
			},
			want:    ZeroReceives,
			wantErr: ErrNoRateAvailable,
		},
		{
			name:    "unknown country",
			amount:  "1",
			country: "peru",
			setupMock: func(q *MockQuoteSource) {
				q.On("ExchangeRates", mock.Anything, mock.Anything).
					Return(quoteOf("16000", "550"), nil)
			},
			want:    ZeroReceives,
			wantErr: ErrNoRateAvailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quotes := new(MockQuoteSource)
			if tt.setupMock != nil {
				tt.setupMock(quotes)
			}

			converter := NewConverter(quotes, nil)
			got, _, err := converter.Convert(context.Background(), tt.amount, tt.country)

			assert.Equal(t, tt.want, got)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			quotes.AssertExpectations(t)
		})
	}
}

func TestCurrencyFor(t *testing.T) {
	code, ok := CurrencyFor("colombia")
	assert.True(t, ok)
	assert.Equal(t, "COP", code)

	code, ok = CurrencyFor(CountryVenezuela)
	assert.True(t, ok)
	assert.Equal(t, "VES", code)

	_, ok = CurrencyFor("peru")
	assert.False(t, ok)
}
