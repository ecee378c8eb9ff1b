// Package wizard drives the multi-step transaction flow. One Wizard per
// session; every forward transition is gated on the previous step.
package wizard

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"remesa/internal/backend"
	"remesa/internal/metrics"
	"remesa/internal/minikit"
	"remesa/internal/models"
	"remesa/internal/services/auth"
	"remesa/internal/services/payment"
	"remesa/internal/services/profile"
	"remesa/internal/services/rates"
	"remesa/internal/services/transaction"
	"remesa/internal/store"
	"remesa/pkg/logger"
)

// minAmount is the smallest sendable amount in WLD.
var minAmount = decimal.RequireFromString("0.01")

const (
	warmTimeout    = 30 * time.Second
	convertTimeout = 10 * time.Second
)

// Wizard holds one traversal of the transaction flow.
type Wizard struct {
	mu    sync.Mutex
	step  Step
	txID  string
	draft *store.Draft

	cache     *store.Preload
	backend   *backend.Client
	auth      auth.Service
	payments  payment.Service
	profiles  profile.Service
	submitter transaction.Service
	converter *rates.Converter
	preloader *store.Preloader
	debounce  *rates.Debouncer
}

// New wires a wizard and its step services around one session cache.
func New(be *backend.Client, sdk minikit.SDK, cache *store.Preload, collector metrics.Collector, authCfg auth.Config) *Wizard {
	if collector == nil {
		collector = metrics.Noop{}
	}
	return &Wizard{
		draft:     store.NewDraft(),
		cache:     cache,
		backend:   be,
		auth:      auth.NewService(be, sdk, authCfg, collector),
		payments:  payment.NewService(be, sdk, cache, collector),
		profiles:  profile.NewService(be, cache),
		submitter: transaction.NewService(be, cache, collector),
		converter: rates.NewConverter(be, collector),
		preloader: store.NewPreloader(cache, be),
		debounce:  rates.NewDebouncer(rates.DebounceDelay),
	}
}

// Close releases pending background work. Called when the session expires.
func (w *Wizard) Close() {
	w.debounce.Stop()
}

// Cache exposes the session's reference cache for read-only rendering.
func (w *Wizard) Cache() *store.Preload {
	return w.cache
}

// Authenticate runs the wallet handshake and starts a fresh traversal.
// Warming of reference and user data continues in the background.
func (w *Wizard) Authenticate(ctx context.Context) (*models.WalletAuthResult, error) {
	result, err := w.auth.Authenticate(ctx)
	if err != nil {
		return nil, err
	}

	w.draft.Reset()
	w.draft.SetIdentity(result.UserID, result.WalletAddress)
	w.setStep(StepAmount, "")

	go func() {
		warmCtx, cancel := context.WithTimeout(context.Background(), warmTimeout)
		defer cancel()
		if !w.cache.Warm() {
			if err := w.cache.Load(warmCtx); err != nil {
				logger.Warn("persisted cache load failed", zap.Error(err))
			}
		}
		if err := w.preloader.WarmAll(warmCtx, result.WalletAddress); err != nil {
			logger.Warn("cache warm-up incomplete", zap.Error(err))
		}
	}()

	return result, nil
}

// State renders the current wizard position.
func (w *Wizard) State() Snapshot {
	snap := w.draft.Snapshot()
	w.mu.Lock()
	step, txID := w.step, w.txID
	w.mu.Unlock()

	if !snap.HasIdentity() {
		step = StepWelcome
	}
	return Snapshot{
		Step:          step.String(),
		Draft:         snap,
		Warm:          w.cache.Warm(),
		Balance:       rates.FormatWLD(w.cache.WalletBalance()),
		TransactionID: txID,
	}
}

// Back moves one step towards the welcome screen. The draft survives.
func (w *Wizard) Back() Snapshot {
	w.mu.Lock()
	switch w.step {
	case StepSummary:
		w.step = StepPersonalInfo
	case StepPersonalInfo:
		w.step = StepAmount
	default:
		w.step = StepWelcome
	}
	w.mu.Unlock()
	return w.State()
}

// Convert ingests a keystroke from the amount field. The conversion fetch
// is debounced and committed latest-wins in the background; the reply
// carries the last committed receive amount. SubmitAmount performs the
// authoritative conversion.
func (w *Wizard) Convert(in ConvertInput) (string, error) {
	if err := w.requireIdentity(); err != nil {
		return "", err
	}

	amount, country := in.Amount, strings.TrimSpace(in.Country)
	w.debounce.Schedule(func(stale func() bool) {
		ctx, cancel := context.WithTimeout(context.Background(), convertTimeout)
		defer cancel()

		receives, quote, err := w.converter.Convert(ctx, amount, country)
		if err != nil {
			logger.Warn("conversion failed", zap.String("country", country), zap.Error(err))
			return
		}
		if stale() {
			return
		}
		w.draft.SetAmount(rates.ParseInputNumber(amount).String())
		w.draft.SetReceives(receives)
		if quote != nil {
			w.cache.SetRates(quote)
		}
	})

	return w.draft.Snapshot().Receives, nil
}

// SubmitAmount commits the amount step and advances to personal info.
func (w *Wizard) SubmitAmount(ctx context.Context, in AmountInput) error {
	if err := w.requireIdentity(); err != nil {
		return err
	}

	country, ok := w.cache.CountryByName(strings.TrimSpace(in.Country))
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCountry, in.Country)
	}
	if !w.bankBelongsTo(country.ID, in.BankID) {
		return ErrBankRequired
	}

	amount := rates.ParseInputNumber(in.Amount)
	if amount.LessThan(minAmount) {
		return ErrAmountTooSmall
	}
	if amount.GreaterThan(w.cache.WalletBalance()) {
		return ErrAmountExceedsBalance
	}

	// The input has settled; discard any debounced fetch still in flight.
	w.debounce.Stop()

	receives, quote, err := w.converter.Convert(ctx, amount.String(), country.Name)
	if err != nil {
		return err
	}
	if !rates.ParseReceives(receives).IsPositive() {
		return ErrNoConversion
	}
	if quote != nil {
		w.cache.SetRates(quote)
	}

	w.draft.SetAmountStep(country.Name, country.ID, in.BankID, amount.String(), receives)
	w.setStep(StepPersonalInfo, "")
	return nil
}

// MaxAmount fills the amount field with the full spendable balance. The
// balance is re-fetched live after a liveness probe; the cached value may
// be stale by the time the user taps the affordance.
func (w *Wizard) MaxAmount(ctx context.Context) (string, error) {
	if err := w.requireIdentity(); err != nil {
		return "", err
	}

	snap := w.draft.Snapshot()
	addr := models.NormalizeWalletAddress(snap.WalletAddress)
	if !models.IsWalletAddress(addr) {
		return "", ErrWalletAddressMissing
	}
	if !w.backend.Available(ctx) {
		return "", ErrBackendUnavailable
	}

	balance, err := w.backend.WalletBalance(ctx, addr)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrBackendUnavailable, err)
	}
	if balance.LessThan(minAmount) {
		return "", ErrAmountTooSmall
	}

	max := balance.Truncate(8)
	w.cache.SetWalletBalance(balance)
	w.draft.SetAmount(max.String())

	if snap.Country != "" {
		receives, quote, err := w.converter.Convert(ctx, max.String(), snap.Country)
		if err == nil {
			w.draft.SetReceives(receives)
			if quote != nil {
				w.cache.SetRates(quote)
			}
		}
	}

	return max.String(), nil
}

// PersonalInfoPrefill loads the stored profile for form seeding.
func (w *Wizard) PersonalInfoPrefill(ctx context.Context) (*profile.Prefill, error) {
	snap, err := w.requireAmountStep()
	if err != nil {
		return nil, err
	}
	return w.profiles.Resolve(ctx, snap.UserID, snap.WalletAddress)
}

// SubmitPersonalInfo persists the profile and advances to the summary.
func (w *Wizard) SubmitPersonalInfo(ctx context.Context, in profile.Input) error {
	snap, err := w.requireAmountStep()
	if err != nil {
		return err
	}

	in.Country = snap.Country
	in.BankID = snap.BankID
	saved, err := w.profiles.Save(ctx, snap.UserID, snap.WalletAddress, in)
	if err != nil {
		return err
	}

	w.draft.SetPersonalInfo(saved.Name, saved.Email, saved.Phone,
		in.DocumentType, in.DocumentNumber, in.AccountType, in.AccountNumber)
	w.setStep(StepSummary, "")
	return nil
}

// Confirm executes payment and submission for the reviewed draft. Any
// unchecked consent rejects before a single network call is made.
func (w *Wizard) Confirm(ctx context.Context, consents models.ConsentState) (*ConfirmResult, error) {
	snap, err := w.requireAmountStep()
	if err != nil {
		return nil, err
	}
	if !snap.HasPersonalInfo() {
		return nil, ErrStepNotReady
	}
	if !consents.AllChecked() {
		return nil, ErrConsentRequired
	}
	if err := w.requireResolvable(snap); err != nil {
		return nil, err
	}

	if _, err := w.payments.Pay(ctx, snap.Amount); err != nil {
		return nil, err
	}

	result, err := w.submitter.Submit(ctx, snap)
	if err != nil {
		return nil, err
	}

	w.setStep(StepDetails, result.ID)
	w.draft.Reset()
	w.draft.SetIdentity(snap.UserID, snap.WalletAddress)

	return &ConfirmResult{TransactionID: result.ID, NotificationErr: result.NotificationErr}, nil
}

func (w *Wizard) requireIdentity() error {
	if !w.draft.Snapshot().HasIdentity() {
		return ErrNotAuthenticated
	}
	return nil
}

func (w *Wizard) requireAmountStep() (models.TransactionDraft, error) {
	snap := w.draft.Snapshot()
	if !snap.HasIdentity() {
		return snap, ErrNotAuthenticated
	}
	if !snap.HasAmountStep() {
		return snap, ErrStepNotReady
	}
	return snap, nil
}

// requireResolvable verifies every selected reference id still resolves
// to a display name before money moves.
func (w *Wizard) requireResolvable(snap models.TransactionDraft) error {
	if _, ok := w.cache.BankName(snap.BankID); !ok {
		return fmt.Errorf("%w: bank %s", ErrReferenceMissing, snap.BankID)
	}
	if _, ok := w.cache.DocumentTypeName(snap.DocumentType); !ok {
		return fmt.Errorf("%w: document type %s", ErrReferenceMissing, snap.DocumentType)
	}
	if _, ok := w.cache.AccountTypeName(snap.AccountType); !ok {
		return fmt.Errorf("%w: account type %s", ErrReferenceMissing, snap.AccountType)
	}
	return nil
}

func (w *Wizard) bankBelongsTo(countryID, bankID string) bool {
	if bankID == "" {
		return false
	}
	for _, bank := range w.cache.BanksByCountry(countryID) {
		if bank.ID == bankID {
			return true
		}
	}
	return false
}

func (w *Wizard) setStep(step Step, txID string) {
	w.mu.Lock()
	w.step = step
	w.txID = txID
	w.mu.Unlock()
}
