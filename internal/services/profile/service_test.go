package profile

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"remesa/internal/models"
)

type MockBackend struct {
	mock.Mock
}

func (m *MockBackend) UserByWalletAddress(ctx context.Context, walletAddress string) (*models.User, error) {
	args := m.Called(ctx, walletAddress)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockBackend) UserByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockBackend) CreateUserProfile(ctx context.Context, input models.UserProfileInput) (*models.User, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockBackend) UpdateUser(ctx context.Context, userID string, input models.UserProfileInput) (*models.User, error) {
	args := m.Called(ctx, userID, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) CurrentUser() *models.User {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(*models.User)
}

func (m *MockCache) SetCurrentUser(user *models.User) {
	m.Called(user)
}

func (m *MockCache) HasDocumentType(id string) bool {
	return m.Called(id).Bool(0)
}

func (m *MockCache) HasAccountType(id string) bool {
	return m.Called(id).Bool(0)
}

const testAddr = "0xa1b2c3d4e5f60718293a4b5c6d7e8f9012345678"

func validInput() Input {
	return Input{
		FullName:       "Ana Gomez",
		Email:          "ana@example.com",
		Phone:          "300 111-2233",
		Country:        "Colombia",
		DocumentType:   "doc-1",
		DocumentNumber: "1047382911",
		AccountType:    "acct-1",
		AccountNumber:  "0123456789",
		BankID:         "bank-1",
	}
}

func TestService_Resolve(t *testing.T) {
	t.Run("cached user with profile", func(t *testing.T) {
		be := new(MockBackend)
		cache := new(MockCache)
		cache.On("CurrentUser").Return(&models.User{ID: "u-1", Name: "Ana", Email: "ana@example.com", Phone: "+573001112233"})

		s := NewService(be, cache)
		prefill, err := s.Resolve(context.Background(), "u-1", testAddr)

		assert.NoError(t, err)
		assert.False(t, prefill.New)
		assert.Equal(t, "Ana", prefill.Name)
		be.AssertNotCalled(t, "UserByWalletAddress", mock.Anything, mock.Anything)
	})

	t.Run("empty profile is reported as new", func(t *testing.T) {
		be := new(MockBackend)
		cache := new(MockCache)
		cache.On("CurrentUser").Return(nil)
		be.On("UserByWalletAddress", mock.Anything, testAddr).
			Return(&models.User{ID: "u-1", WalletAddress: testAddr}, nil)
		cache.On("SetCurrentUser", mock.Anything).Return()

		s := NewService(be, cache)
		prefill, err := s.Resolve(context.Background(), "u-1", testAddr)

		assert.NoError(t, err)
		assert.True(t, prefill.New)
		assert.Empty(t, prefill.Name)
	})

	t.Run("lookup falls back to the user id", func(t *testing.T) {
		be := new(MockBackend)
		cache := new(MockCache)
		cache.On("CurrentUser").Return(nil)
		be.On("UserByID", mock.Anything, "u-1").
			Return(&models.User{ID: "u-1", Name: "Ana"}, nil)
		cache.On("SetCurrentUser", mock.Anything).Return()

		s := NewService(be, cache)
		prefill, err := s.Resolve(context.Background(), "u-1", "")

		assert.NoError(t, err)
		assert.Equal(t, "Ana", prefill.Name)
	})

	t.Run("no record anywhere", func(t *testing.T) {
		be := new(MockBackend)
		cache := new(MockCache)
		cache.On("CurrentUser").Return(nil)
		be.On("UserByWalletAddress", mock.Anything, testAddr).Return(nil, nil)

		s := NewService(be, cache)
		prefill, err := s.Resolve(context.Background(), "", testAddr)

		assert.NoError(t, err)
		assert.True(t, prefill.New)
	})
}

func TestService_Save(t *testing.T) {
	tests := []struct {
		name      string
		input     func() Input
		setupMock func(*MockBackend, *MockCache)
		wantErr   error
		wantField string
	}{
		{
			name: "missing required fields",
			input: func() Input {
				in := validInput()
				in.FullName = ""
				return in
			},
			wantField: "full_name",
		},
		{
			name: "bad email",
			input: func() Input {
				in := validInput()
				in.Email = "not-an-email"
				return in
			},
			wantField: "email",
		},
		{
			name: "non-numeric document number",
			input: func() Input {
				in := validInput()
				in.DocumentNumber = "10A7"
				return in
			},
			wantField: "document_number",
		},
		{
			name: "unsupported country",
			input: func() Input {
				in := validInput()
				in.Country = "Peru"
				return in
			},
			wantErr: ErrUnknownCountry,
		},
		{
			name:  "unknown document type",
			input: validInput,
			setupMock: func(be *MockBackend, cache *MockCache) {
				cache.On("HasDocumentType", "doc-1").Return(false)
			},
			wantErr: ErrUnknownDocumentType,
		},
		{
			name:  "first profile is created with prefixed phone",
			input: validInput,
			setupMock: func(be *MockBackend, cache *MockCache) {
				cache.On("HasDocumentType", "doc-1").Return(true)
				cache.On("HasAccountType", "acct-1").Return(true)
				cache.On("CurrentUser").Return(&models.User{ID: "u-1"})
				be.On("CreateUserProfile", mock.Anything, mock.MatchedBy(func(in models.UserProfileInput) bool {
					return in.Phone == "+573001112233" &&
						in.Country == "COL" &&
						in.WalletAddress == testAddr
				})).Return(&models.User{ID: "u-1", Name: "Ana Gomez"}, nil)
				cache.On("SetCurrentUser", mock.Anything).Return()
			},
		},
		{
			name:  "populated profile is updated in place",
			input: validInput,
			setupMock: func(be *MockBackend, cache *MockCache) {
				cache.On("HasDocumentType", "doc-1").Return(true)
				cache.On("HasAccountType", "acct-1").Return(true)
				cache.On("CurrentUser").Return(&models.User{ID: "u-1", Name: "Old Name"})
				be.On("UpdateUser", mock.Anything, "u-1", mock.Anything).
					Return(&models.User{ID: "u-1", Name: "Ana Gomez"}, nil)
				cache.On("SetCurrentUser", mock.Anything).Return()
			},
		},
		{
			name:  "backend failure",
			input: validInput,
			setupMock: func(be *MockBackend, cache *MockCache) {
				cache.On("HasDocumentType", "doc-1").Return(true)
				cache.On("HasAccountType", "acct-1").Return(true)
				cache.On("CurrentUser").Return(nil)
				be.On("CreateUserProfile", mock.Anything, mock.Anything).
					Return(nil, errors.New("500"))
			},
			wantErr: ErrSaveFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			be := new(MockBackend)
			cache := new(MockCache)
			if tt.setupMock != nil {
				tt.setupMock(be, cache)
			}

			s := NewService(be, cache)
			saved, err := s.Save(context.Background(), "u-1", testAddr, tt.input())

			switch {
			case tt.wantField != "":
				var verr *ValidationError
				assert.ErrorAs(t, err, &verr)
				assert.Contains(t, verr.Fields, tt.wantField)
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			default:
				assert.NoError(t, err)
				assert.Equal(t, "Ana Gomez", saved.Name)
			}
			be.AssertExpectations(t)
		})
	}
}
