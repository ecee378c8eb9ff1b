// Package store holds the process-wide reference-data cache and the
// per-session transaction draft.
package store

import (
	"context"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"remesa/internal/models"
)

// Preload caches reference data, exchange rates and the current session's
// user and balance. Countries, banks, document types and account types are
// written through to the persister on every mutation; rates, user and
// balance never leave memory and are refetched every session.
type Preload struct {
	mu sync.RWMutex

	countries     []models.Country
	banks         []models.Bank
	documentTypes []models.DocumentType
	accountTypes  []models.AccountType

	rates               *models.ExchangeRateQuote
	currentUser         *models.User
	walletBalance       decimal.Decimal
	userDataInitialized bool

	persister Persister
}

// NewPreload creates the cache. persister may be nil (memory only).
func NewPreload(persister Persister) *Preload {
	return &Preload{persister: persister}
}

// Load hydrates the reference lists from the persister. A missing,
// undecodable or version-mismatched blob is treated as a cold cache.
func (p *Preload) Load(ctx context.Context) error {
	if p.persister == nil {
		return nil
	}
	blob, err := p.persister.Load(ctx)
	if err != nil {
		return err
	}
	if blob == nil || blob.Version != persistVersion {
		return nil
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	p.countries = blob.Countries
	p.banks = blob.Banks
	p.documentTypes = blob.DocumentTypes
	p.accountTypes = blob.AccountTypes
	return nil
}

// Warm reports whether every reference list is already populated.
func (p *Preload) Warm() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.countries) > 0 && len(p.banks) > 0 &&
		len(p.documentTypes) > 0 && len(p.accountTypes) > 0
}

func (p *Preload) persist(ctx context.Context) error {
	if p.persister == nil {
		return nil
	}
	blob := referenceBlob{
		Version:       persistVersion,
		Countries:     p.countries,
		Banks:         p.banks,
		DocumentTypes: p.documentTypes,
		AccountTypes:  p.accountTypes,
	}
	return p.persister.Save(ctx, blob)
}

// SetCountries replaces the country list and persists it.
func (p *Preload) SetCountries(ctx context.Context, countries []models.Country) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.countries = countries
	return p.persist(ctx)
}

// SetBanks replaces the bank list and persists it.
func (p *Preload) SetBanks(ctx context.Context, banks []models.Bank) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.banks = banks
	return p.persist(ctx)
}

// SetDocumentTypes replaces the document-type list and persists it.
func (p *Preload) SetDocumentTypes(ctx context.Context, docs []models.DocumentType) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.documentTypes = docs
	return p.persist(ctx)
}

// SetAccountTypes replaces the account-type list and persists it.
func (p *Preload) SetAccountTypes(ctx context.Context, accounts []models.AccountType) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.accountTypes = accounts
	return p.persist(ctx)
}

func (p *Preload) Countries() []models.Country {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.countries
}

func (p *Preload) AccountTypes() []models.AccountType {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.accountTypes
}

func (p *Preload) Banks() []models.Bank {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.banks
}

func (p *Preload) DocumentTypes() []models.DocumentType {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.documentTypes
}

// BanksByCountry returns the banks for the selected country; reference
// entities are always filtered by country before display.
func (p *Preload) BanksByCountry(countryID string) []models.Bank {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return models.FilterBanksByCountry(p.banks, countryID)
}

// DocumentTypesByCountry returns the document types for the selected country.
func (p *Preload) DocumentTypesByCountry(countryID string) []models.DocumentType {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return models.FilterDocumentTypesByCountry(p.documentTypes, countryID)
}

// CountryByName finds a country by case-insensitive name match.
func (p *Preload) CountryByName(name string) (models.Country, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	for _, c := range p.countries {
		if strings.EqualFold(c.Name, name) {
			return c, true
		}
	}
	return models.Country{}, false
}

// CountryByID finds a country by id.
func (p *Preload) CountryByID(id string) (models.Country, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	for _, c := range p.countries {
		if c.ID == id {
			return c, true
		}
	}
	return models.Country{}, false
}

// BankName resolves a bank id to its display name.
func (p *Preload) BankName(id string) (string, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	for _, b := range p.banks {
		if b.ID == id {
			return b.Name, true
		}
	}
	return "", false
}

// DocumentTypeName resolves a document-type id to its display name.
func (p *Preload) DocumentTypeName(id string) (string, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	for _, d := range p.documentTypes {
		if d.ID == id {
			return d.Name, true
		}
	}
	return "", false
}

// AccountTypeName resolves an account-type id to its display name.
func (p *Preload) AccountTypeName(id string) (string, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	for _, a := range p.accountTypes {
		if a.ID == id {
			return a.Name, true
		}
	}
	return "", false
}

// HasBank reports whether id references a cached bank.
func (p *Preload) HasBank(id string) bool {
	_, ok := p.BankName(id)
	return ok
}

// HasDocumentType reports whether id references a cached document type.
func (p *Preload) HasDocumentType(id string) bool {
	_, ok := p.DocumentTypeName(id)
	return ok
}

// HasAccountType reports whether id references a cached account type.
func (p *Preload) HasAccountType(id string) bool {
	_, ok := p.AccountTypeName(id)
	return ok
}

func (p *Preload) SetRates(rates *models.ExchangeRateQuote) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.rates = rates
}

func (p *Preload) Rates() *models.ExchangeRateQuote {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.rates
}

func (p *Preload) SetCurrentUser(user *models.User) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.currentUser = user
}

func (p *Preload) CurrentUser() *models.User {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.currentUser
}

func (p *Preload) SetWalletBalance(balance decimal.Decimal) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.walletBalance = balance
}

func (p *Preload) WalletBalance() decimal.Decimal {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.walletBalance
}

func (p *Preload) SetUserDataInitialized(v bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.userDataInitialized = v
}

func (p *Preload) UserDataInitialized() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.userDataInitialized
}

// ClearTransactionData drops the ephemeral session data after a completed
// submission: balance, user, rate quotes. Reference lists survive.
func (p *Preload) ClearTransactionData() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.walletBalance = decimal.Zero
	p.rates = nil
	p.currentUser = nil
	p.userDataInitialized = false
}

// ClearAll empties the cache and drops the persisted blob. Used on entry to
// the welcome screen.
func (p *Preload) ClearAll(ctx context.Context) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.countries = nil
	p.banks = nil
	p.documentTypes = nil
	p.accountTypes = nil
	p.rates = nil
	p.currentUser = nil
	p.walletBalance = decimal.Zero
	p.userDataInitialized = false
	if p.persister == nil {
		return nil
	}
	return p.persister.Drop(ctx)
}
