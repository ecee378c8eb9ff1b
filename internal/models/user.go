package models

// User is the profile record held by the settlement backend, keyed by a
// lower-cased wallet address.
type User struct {
	ID            string `json:"id,omitempty"`
	WalletAddress string `json:"wallet_address"`
	Name          string `json:"name"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
}

// HasProfile reports whether any profile field has ever been populated.
// A user row created during wallet auth starts with all of them empty.
func (u *User) HasProfile() bool {
	if u == nil {
		return false
	}
	return u.Name != "" || u.Email != "" || u.Phone != ""
}

// UserProfileInput is the full profile payload persisted before the summary
// step. Phone is already prefixed with the country dialing code.
type UserProfileInput struct {
	Name           string `json:"name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	Country        string `json:"country"`
	DocumentTypeID string `json:"document_type_id"`
	DocumentNumber string `json:"document_number"`
	AccountTypeID  string `json:"account_type_id"`
	AccountNumber  string `json:"account_number"`
	BankID         string `json:"bank_id"`
	WalletAddress  string `json:"wallet_address"`
}

// WalletAuthResult is the outcome of the wallet authentication flow.
// ExistingUser selects the update-profile branch downstream.
type WalletAuthResult struct {
	UserID        string `json:"user_id"`
	WalletAddress string `json:"wallet_address"`
	ExistingUser  bool   `json:"existing_user"`
}
