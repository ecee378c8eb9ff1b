package store

import (
	"sync"

	"remesa/internal/models"
)

// Draft accumulates the in-progress transaction for one wizard traversal.
// Only the currently active step writes; snapshots are taken between steps.
type Draft struct {
	mu   sync.RWMutex
	data models.TransactionDraft
}

// NewDraft returns an empty draft.
func NewDraft() *Draft {
	return &Draft{data: models.NewTransactionDraft()}
}

// Snapshot returns an immutable copy of the current draft.
func (d *Draft) Snapshot() models.TransactionDraft {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.data
}

// Reset clears the draft. Re-authentication and successful submission are
// the only reset points.
func (d *Draft) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.data = models.NewTransactionDraft()
}

// SetIdentity records the authenticated user and normalized wallet address.
func (d *Draft) SetIdentity(userID, walletAddress string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.data.UserID = userID
	d.data.WalletAddress = models.NormalizeWalletAddress(walletAddress)
}

// SetAmountStep commits the amount-entry fields.
func (d *Draft) SetAmountStep(country, countryID, bankID, amount, receives string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.data.Country = country
	d.data.CountryID = countryID
	d.data.BankID = bankID
	d.data.Amount = amount
	d.data.Receives = receives
}

// SetAmount overwrites the send amount only (max-amount affordance).
func (d *Draft) SetAmount(amount string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.data.Amount = amount
}

// SetReceives overwrites the computed receive amount only.
func (d *Draft) SetReceives(receives string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.data.Receives = receives
}

// SetPersonalInfo commits the profile fields.
func (d *Draft) SetPersonalInfo(fullName, email, phone, documentType, documentNumber, accountType, accountNumber string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.data.FullName = fullName
	d.data.Email = email
	d.data.Phone = phone
	d.data.DocumentType = documentType
	d.data.DocumentNumber = documentNumber
	d.data.AccountType = accountType
	d.data.AccountNumber = accountNumber
}
