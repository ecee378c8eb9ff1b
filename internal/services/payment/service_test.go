package payment

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"remesa/internal/backend"
	"remesa/internal/minikit"
)

type MockBackend struct {
	mock.Mock
}

func (m *MockBackend) PaymentNonce(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockBackend) ConfirmPayment(ctx context.Context, payload json.RawMessage) (*backend.ConfirmPaymentResponse, error) {
	args := m.Called(ctx, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*backend.ConfirmPaymentResponse), args.Error(1)
}

type MockSDK struct {
	mock.Mock
}

func (m *MockSDK) IsInstalled() bool {
	return m.Called().Bool(0)
}

func (m *MockSDK) WalletAuth(ctx context.Context, req minikit.WalletAuthRequest) (*minikit.AuthResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*minikit.AuthResult), args.Error(1)
}

func (m *MockSDK) Pay(ctx context.Context, input minikit.PayCommandInput) (*minikit.PayResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*minikit.PayResult), args.Error(1)
}

type staticBalance struct {
	value decimal.Decimal
}

func (b staticBalance) WalletBalance() decimal.Decimal { return b.value }

func payOutcome(status string) *minikit.PayResult {
	return &minikit.PayResult{
		FinalPayload: minikit.PayFinalPayload{
			Status: status,
			Raw:    json.RawMessage(`{"status":"` + status + `"}`),
		},
	}
}

func TestService_Pay(t *testing.T) {
	tests := []struct {
		name      string
		amount    string
		balance   string
		setupMock func(*MockBackend, *MockSDK)
		wantErr   error
	}{
		{
			name:    "wallet not installed",
			amount:  "1,5",
			balance: "10",
			setupMock: func(be *MockBackend, sdk *MockSDK) {
				sdk.On("IsInstalled").Return(false)
			},
			wantErr: ErrWalletUnavailable,
		},
		{
			name:    "zero amount",
			amount:  "0",
			balance: "10",
			setupMock: func(be *MockBackend, sdk *MockSDK) {
				sdk.On("IsInstalled").Return(true)
			},
			wantErr: ErrInvalidAmount,
		},
		{
			name:    "unparseable amount",
			amount:  "abc",
			balance: "10",
			setupMock: func(be *MockBackend, sdk *MockSDK) {
				sdk.On("IsInstalled").Return(true)
			},
			wantErr: ErrInvalidAmount,
		},
		{
			name:    "amount above balance",
			amount:  "11",
			balance: "10",
			setupMock: func(be *MockBackend, sdk *MockSDK) {
				sdk.On("IsInstalled").Return(true)
			},
			wantErr: ErrInsufficientBalance,
		},
		{
			name:    "wallet declines",
			amount:  "1,5",
			balance: "10",
			setupMock: func(be *MockBackend, sdk *MockSDK) {
				sdk.On("IsInstalled").Return(true)
				be.On("PaymentNonce", mock.Anything).Return("ref-1", nil)
				sdk.On("Pay", mock.Anything, mock.Anything).Return(payOutcome("error"), nil)
			},
			wantErr: ErrPaymentDeclined,
		},
		{
			name:    "sdk success but backend rejects confirmation",
			amount:  "1,5",
			balance: "10",
			setupMock: func(be *MockBackend, sdk *MockSDK) {
				sdk.On("IsInstalled").Return(true)
				be.On("PaymentNonce", mock.Anything).Return("ref-1", nil)
				sdk.On("Pay", mock.Anything, mock.Anything).Return(payOutcome("success"), nil)
				be.On("ConfirmPayment", mock.Anything, mock.Anything).
					Return(&backend.ConfirmPaymentResponse{Success: false}, nil)
			},
			wantErr: ErrPaymentDeclined,
		},
		{
			name:    "confirmed payment",
			amount:  "1,5",
			balance: "10",
			setupMock: func(be *MockBackend, sdk *MockSDK) {
				sdk.On("IsInstalled").Return(true)
				be.On("PaymentNonce", mock.Anything).Return("ref-1", nil)
				sdk.On("Pay", mock.Anything, mock.MatchedBy(func(input minikit.PayCommandInput) bool {
					return input.To == RecipientAddress &&
						input.Description == paymentDescription &&
						len(input.Tokens) == 1 &&
						input.Tokens[0].TokenAmount == "1500000000000000000"
				})).Return(payOutcome("success"), nil)
				be.On("ConfirmPayment", mock.Anything, mock.Anything).
					Return(&backend.ConfirmPaymentResponse{Success: true}, nil)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			be := new(MockBackend)
			sdk := new(MockSDK)
			if tt.setupMock != nil {
				tt.setupMock(be, sdk)
			}

			s := NewService(be, sdk, staticBalance{decimal.RequireFromString(tt.balance)}, nil)
			result, err := s.Pay(context.Background(), tt.amount)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, result)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "ref-1", result.Reference)
			}
			be.AssertExpectations(t)
			sdk.AssertExpectations(t)
		})
	}
}
