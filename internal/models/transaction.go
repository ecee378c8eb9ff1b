package models

import "github.com/shopspring/decimal"

// Transaction is the completed transaction as persisted by the backend.
type Transaction struct {
	ID             string          `json:"id"`
	UserID         string          `json:"user_id"`
	Quantity       decimal.Decimal `json:"quantity"`
	AmountReceived decimal.Decimal `json:"amount_received"`
	CurrencyID     string          `json:"currency_id"`
	CountryID      string          `json:"country_id"`
	DocumentTypeID string          `json:"document_type_id"`
	DocumentNumber string          `json:"document_number"`
	BankID         string          `json:"bank_id"`
	AccountNumber  string          `json:"account_number"`
	AccountTypeID  string          `json:"account_type_id"`
	State          string          `json:"state"`
	CreatedAt      string          `json:"created_at,omitempty"`
	UpdatedAt      string          `json:"updated_at,omitempty"`
}

// TransactionPayload is the creation request sent to POST /transactions.
// State is always "completed"; the payment has already settled on-chain.
type TransactionPayload struct {
	UserID         string          `json:"user_id"`
	Quantity       decimal.Decimal `json:"quantity"`
	AmountReceived decimal.Decimal `json:"amount_received"`
	CurrencyID     string          `json:"currency_id"`
	CountryID      string          `json:"country_id"`
	Country        string          `json:"country"`
	DocumentTypeID string          `json:"document_type_id"`
	DocumentNumber string          `json:"document_number"`
	BankID         string          `json:"bank_id"`
	AccountNumber  string          `json:"account_number"`
	AccountTypeID  string          `json:"account_type_id"`
	State          string          `json:"state"`
	EmailData      *EmailPayload   `json:"emailData,omitempty"`
}

// EmailPayload is the notification request; ids are resolved to
// human-readable names before sending.
type EmailPayload struct {
	UserName       string          `json:"user_name"`
	UserEmail      string          `json:"user_email"`
	UserPhone      string          `json:"user_phone"`
	WalletAddress  string          `json:"wallet_address"`
	Quantity       decimal.Decimal `json:"quantity"`
	CryptoCurrency string          `json:"cryptoCurrency"`
	AmountReceived decimal.Decimal `json:"amount_received"`
	FiatCurrency   string          `json:"fiatCurrency"`
	State          string          `json:"state"`
	DocumentType   string          `json:"document_type"`
	DocumentNumber string          `json:"document_number"`
	Bank           string          `json:"bank"`
	Country        string          `json:"country"`
	AccountNumber  string          `json:"account_number"`
	AccountType    string          `json:"account_type"`
}
