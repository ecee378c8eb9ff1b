package models

import "github.com/shopspring/decimal"

// PaymentMethodBankTransfer is the only supported payout method.
const PaymentMethodBankTransfer = "bank_transfer"

// TransactionDraft accumulates the in-progress transaction across wizard
// steps. One instance per wizard traversal; cleared on re-authentication and
// on successful submission.
type TransactionDraft struct {
	Country        string `json:"country"`
	CountryID      string `json:"country_id"`
	Amount         string `json:"amount"`   // decimal string, up to 8 fractional digits
	Receives       string `json:"receives"` // locale-formatted, 2 fractional digits
	PaymentMethod  string `json:"payment_method"`
	BankID         string `json:"bank_id"`
	FullName       string `json:"full_name"`
	Email          string `json:"email"`
	Phone          string `json:"phone"`
	DocumentType   string `json:"document_type"`
	DocumentNumber string `json:"document_number"`
	AccountType    string `json:"account_type"`
	AccountNumber  string `json:"account_number"`
	WalletAddress  string `json:"wallet_address"`
	UserID         string `json:"user_id"`
}

// NewTransactionDraft returns an empty draft with the fixed payment method.
func NewTransactionDraft() TransactionDraft {
	return TransactionDraft{
		Amount:        "0",
		Receives:      "0",
		PaymentMethod: PaymentMethodBankTransfer,
	}
}

// HasIdentity reports whether wallet authentication has populated the draft.
func (d TransactionDraft) HasIdentity() bool {
	return d.UserID != "" && d.WalletAddress != ""
}

// HasAmountStep reports whether the amount-entry step has been committed.
func (d TransactionDraft) HasAmountStep() bool {
	return d.Country != "" && d.BankID != "" && d.Amount != "" && d.Receives != ""
}

// HasPersonalInfo reports whether every profile field is populated.
func (d TransactionDraft) HasPersonalInfo() bool {
	return d.FullName != "" && d.Email != "" && d.Phone != "" &&
		d.DocumentType != "" && d.DocumentNumber != "" &&
		d.AccountType != "" && d.AccountNumber != ""
}

// ConsentState carries the three summary-step checkboxes.
type ConsentState struct {
	Age     bool `json:"age"`
	Terms   bool `json:"terms"`
	Privacy bool `json:"privacy"`
}

// AllChecked reports whether every consent has been given.
func (c ConsentState) AllChecked() bool {
	return c.Age && c.Terms && c.Privacy
}

// ExchangeRateQuote is the converted total per target currency for one
// requested amount. Fetched per amount, never persisted.
type ExchangeRateQuote struct {
	WLDToCOP decimal.Decimal `json:"wild_to_cop"`
	WLDToVES decimal.Decimal `json:"wild_to_ves"`
}
