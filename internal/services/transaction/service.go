// Package transaction assembles the final transaction payload and submits
// it together with the notification email.
package transaction

import (
	"context"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"remesa/internal/metrics"
	"remesa/internal/minikit"
	"remesa/internal/models"
	"remesa/internal/services/rates"
	"remesa/pkg/logger"
)

const (
	// StateCompleted is the only state a submitted transaction carries;
	// the payment has already settled when submission starts.
	StateCompleted = "completed"
	// notificationState is the human-readable state in the email.
	notificationState = "Completada"
	// fallbackName replaces unresolvable display names.
	fallbackName = "No especificado"
)

var numericRe = regexp.MustCompile(`^\d+$`)

type service struct {
	backend   Backend
	reference Reference
	metrics   metrics.Collector
}

// NewService creates the submission service.
func NewService(be Backend, ref Reference, collector metrics.Collector) Service {
	if be == nil {
		panic("backend is required")
	}
	if ref == nil {
		panic("reference is required")
	}
	if collector == nil {
		collector = metrics.Noop{}
	}
	return &service{backend: be, reference: ref, metrics: collector}
}

func (s *service) Submit(ctx context.Context, draft models.TransactionDraft) (*Result, error) {
	if !draft.HasIdentity() || !draft.HasAmountStep() || !draft.HasPersonalInfo() {
		s.metrics.RecordSubmission("incomplete")
		return nil, ErrIncompleteDraft
	}
	if !numericRe.MatchString(draft.AccountNumber) {
		s.metrics.RecordSubmission("invalid_account")
		return nil, ErrInvalidAccountNumber
	}

	currencyID, currencyCode, err := s.resolveCurrency(ctx, draft.Country)
	if err != nil {
		s.metrics.RecordSubmission("currency_missing")
		return nil, err
	}

	countryID := draft.CountryID
	if countryID == "" {
		if country, ok := s.reference.CountryByName(draft.Country); ok {
			countryID = country.ID
		}
	}

	quantity := rates.ParseInputNumber(strings.ReplaceAll(draft.Amount, ",", "."))
	amountReceived := rates.ParseReceives(draft.Receives)

	emailPayload := s.buildEmailPayload(draft, currencyCode, quantity, amountReceived)
	txPayload := models.TransactionPayload{
		UserID:         draft.UserID,
		Quantity:       quantity,
		AmountReceived: amountReceived,
		CurrencyID:     currencyID,
		CountryID:      countryID,
		Country:        draft.Country,
		DocumentTypeID: draft.DocumentType,
		DocumentNumber: draft.DocumentNumber,
		BankID:         draft.BankID,
		AccountNumber:  draft.AccountNumber,
		AccountTypeID:  draft.AccountType,
		State:          StateCompleted,
		EmailData:      &emailPayload,
	}

	// Creation and notification go out concurrently; only the creation
	// call decides success.
	var (
		wg        sync.WaitGroup
		createErr error
		notifyErr error
		createdID string
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		resp, err := s.backend.CreateTransaction(ctx, txPayload)
		if err != nil {
			createErr = err
			return
		}
		createdID = resp.CreatedID()
	}()
	go func() {
		defer wg.Done()
		notifyErr = s.backend.SendEmail(ctx, emailPayload)
	}()
	wg.Wait()

	if createErr != nil {
		s.metrics.RecordSubmission("failed")
		return nil, fmt.Errorf("%w: %v", ErrSubmissionFailed, createErr)
	}
	if notifyErr != nil {
		// The transaction exists; surface the notification failure without
		// failing the submission.
		logger.Warn("transaction notification failed",
			zap.String("transaction_id", createdID), zap.Error(notifyErr))
	}

	s.reference.ClearTransactionData()
	s.metrics.RecordSubmission("ok")
	return &Result{ID: createdID, NotificationErr: notifyErr}, nil
}

// resolveCurrency maps the payout country to its currency row.
func (s *service) resolveCurrency(ctx context.Context, country string) (id, code string, err error) {
	code, ok := rates.CurrencyFor(country)
	if !ok {
		return "", "", fmt.Errorf("%w: %s", ErrCurrencyNotFound, country)
	}

	currencies, err := s.backend.Currencies(ctx)
	if err != nil {
		return "", "", fmt.Errorf("fetch currencies: %w", err)
	}
	for _, c := range currencies {
		if c.Name == code {
			return c.ID, code, nil
		}
	}
	return "", "", fmt.Errorf("%w: %s", ErrCurrencyNotFound, code)
}

// buildEmailPayload resolves ids to display names; a lookup miss degrades
// to a placeholder instead of blocking the submission.
func (s *service) buildEmailPayload(draft models.TransactionDraft, currencyCode string, quantity, amountReceived decimal.Decimal) models.EmailPayload {
	bankName, ok := s.reference.BankName(draft.BankID)
	if !ok {
		bankName = fallbackName
	}
	documentTypeName, ok := s.reference.DocumentTypeName(draft.DocumentType)
	if !ok {
		documentTypeName = fallbackName
	}
	accountTypeName, ok := s.reference.AccountTypeName(draft.AccountType)
	if !ok {
		accountTypeName = fallbackName
	}
	country := orFallback(draft.Country)

	return models.EmailPayload{
		UserName:       orFallback(draft.FullName),
		UserEmail:      orFallback(draft.Email),
		UserPhone:      orFallback(draft.Phone),
		WalletAddress:  models.NormalizeWalletAddress(draft.WalletAddress),
		Quantity:       quantity,
		CryptoCurrency: minikit.TokenWLD,
		AmountReceived: amountReceived,
		FiatCurrency:   currencyCode,
		State:          notificationState,
		DocumentType:   documentTypeName,
		DocumentNumber: draft.DocumentNumber,
		Bank:           bankName,
		Country:        country,
		AccountNumber:  draft.AccountNumber,
		AccountType:    accountTypeName,
	}
}

func orFallback(v string) string {
	if strings.TrimSpace(v) == "" {
		return fallbackName
	}
	return v
}
