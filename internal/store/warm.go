package store

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"remesa/internal/models"
	"remesa/pkg/logger"
)

// WarmBackend is the slice of the backend client the preloader needs.
type WarmBackend interface {
	Countries(ctx context.Context) ([]models.Country, error)
	Banks(ctx context.Context, countryID string) ([]models.Bank, error)
	DocumentTypes(ctx context.Context, countryID string) ([]models.DocumentType, error)
	AccountTypes(ctx context.Context, countryID string) ([]models.AccountType, error)
	ExchangeRates(ctx context.Context, amount decimal.Decimal) (*models.ExchangeRateQuote, error)
	UserByWalletAddress(ctx context.Context, walletAddress string) (*models.User, error)
	WalletBalance(ctx context.Context, walletAddress string) (decimal.Decimal, error)
}

// Preloader fills the preload cache at startup and after authentication.
type Preloader struct {
	cache   *Preload
	backend WarmBackend
}

func NewPreloader(cache *Preload, backend WarmBackend) *Preloader {
	return &Preloader{cache: cache, backend: backend}
}

// WarmAll issues the reference preload and the user preload concurrently
// and joins both. walletAddress may be empty (no session yet).
func (p *Preloader) WarmAll(ctx context.Context, walletAddress string) error {
	var (
		wg        sync.WaitGroup
		staticErr error
	)

	wg.Add(1)
	go func() {
		defer wg.Done()
		staticErr = p.WarmStatic(ctx)
	}()

	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := p.WarmUser(ctx, walletAddress); err != nil {
			// User data is refetched on demand; a preload miss is not fatal.
			logger.Warn("user preload failed", zap.Error(err))
		}
	}()

	wg.Wait()
	return staticErr
}

// WarmStatic loads the reference lists and a unit exchange-rate quote,
// skipping lists that are already cached (persisted blob survives restarts).
func (p *Preloader) WarmStatic(ctx context.Context) error {
	countries := p.cache.Countries()
	if len(countries) == 0 {
		fetched, err := p.backend.Countries(ctx)
		if err != nil {
			return err
		}
		countries = fetched
		if err := p.cache.SetCountries(ctx, countries); err != nil {
			return err
		}
	}

	if len(p.cache.DocumentTypes()) == 0 {
		docs, err := p.backend.DocumentTypes(ctx, "")
		if err != nil {
			return err
		}
		if err := p.cache.SetDocumentTypes(ctx, docs); err != nil {
			return err
		}
	}

	if len(p.cache.AccountTypes()) == 0 {
		accounts, err := p.backend.AccountTypes(ctx, "")
		if err != nil {
			return err
		}
		if err := p.cache.SetAccountTypes(ctx, accounts); err != nil {
			return err
		}
	}

	if err := p.warmBanks(ctx, countries); err != nil {
		return err
	}

	rates, err := p.backend.ExchangeRates(ctx, decimal.NewFromInt(1))
	if err != nil {
		return err
	}
	p.cache.SetRates(rates)
	return nil
}

// warmBanks fans out one bank fetch per country and flattens the results.
// A failed leg contributes nothing rather than failing the preload.
func (p *Preloader) warmBanks(ctx context.Context, countries []models.Country) error {
	if len(p.cache.Banks()) > 0 {
		return nil
	}

	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	all := make([]models.Bank, 0)

	for _, country := range countries {
		wg.Add(1)
		go func(countryID string) {
			defer wg.Done()
			banks, err := p.backend.Banks(ctx, countryID)
			if err != nil {
				logger.Warn("bank preload failed", zap.String("country_id", countryID), zap.Error(err))
				return
			}
			mu.Lock()
			all = append(all, banks...)
			mu.Unlock()
		}(country.ID)
	}
	wg.Wait()

	return p.cache.SetBanks(ctx, all)
}

// WarmUser loads the current user and wallet balance for a session.
func (p *Preloader) WarmUser(ctx context.Context, walletAddress string) error {
	if walletAddress == "" || p.cache.CurrentUser() != nil {
		return nil
	}

	var (
		wg                  sync.WaitGroup
		user                *models.User
		balance             decimal.Decimal
		userErr, balanceErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		user, userErr = p.backend.UserByWalletAddress(ctx, walletAddress)
	}()
	go func() {
		defer wg.Done()
		balance, balanceErr = p.backend.WalletBalance(ctx, walletAddress)
	}()
	wg.Wait()

	if userErr != nil {
		return userErr
	}
	if balanceErr != nil {
		return balanceErr
	}

	p.cache.SetCurrentUser(user)
	p.cache.SetWalletBalance(balance)
	return nil
}
