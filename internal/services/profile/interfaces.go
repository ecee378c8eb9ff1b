package profile

import (
	"context"

	"remesa/internal/models"
)

// Service resolves and persists the sender profile behind the
// personal-info step.
type Service interface {
	// Resolve loads the profile tied to the authenticated wallet for
	// prefilling the form. A user without any populated profile field is
	// reported as new.
	Resolve(ctx context.Context, userID, walletAddress string) (*Prefill, error)

	// Save validates and persists the full profile. Existing profiles are
	// updated in place; first-time profiles are created.
	Save(ctx context.Context, userID, walletAddress string, input Input) (*models.User, error)
}

// Prefill is the form seed derived from the stored profile.
type Prefill struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
	// New is true when no profile field has ever been populated.
	New bool `json:"new"`
}

// Input is the personal-info form as submitted. Phone is entered without
// the dialing code; Save derives the code from the country.
type Input struct {
	FullName       string `json:"full_name" validate:"required,min=3"`
	Email          string `json:"email" validate:"required,email"`
	Phone          string `json:"phone" validate:"required,min=7"`
	Country        string `json:"country" validate:"required"`
	DocumentType   string `json:"document_type" validate:"required"`
	DocumentNumber string `json:"document_number" validate:"required,numeric"`
	AccountType    string `json:"account_type" validate:"required"`
	AccountNumber  string `json:"account_number" validate:"required,numeric"`
	// BankID comes from the amount step, not the form.
	BankID string `json:"-"`
}

// Backend is the slice of the backend client the profile flow needs.
type Backend interface {
	UserByWalletAddress(ctx context.Context, walletAddress string) (*models.User, error)
	UserByID(ctx context.Context, id string) (*models.User, error)
	CreateUserProfile(ctx context.Context, input models.UserProfileInput) (*models.User, error)
	UpdateUser(ctx context.Context, userID string, input models.UserProfileInput) (*models.User, error)
}

// Cache holds the session user and the reference lists the form fields
// are validated against.
type Cache interface {
	CurrentUser() *models.User
	SetCurrentUser(user *models.User)
	HasDocumentType(id string) bool
	HasAccountType(id string) bool
}
