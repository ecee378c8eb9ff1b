package transaction

import (
	"context"

	"remesa/internal/backend"
	"remesa/internal/models"
)

// Service assembles and submits the final transaction.
type Service interface {
	// Submit persists the transaction and fires the notification. Only the
	// transaction-creation call decides success; the notification outcome
	// is reported independently in the result.
	Submit(ctx context.Context, draft models.TransactionDraft) (*Result, error)
}

// Result of a successful submission.
type Result struct {
	// ID is the created transaction id, when the response carried one.
	ID string
	// NotificationErr is the notification-send failure, if any. The
	// transaction itself succeeded.
	NotificationErr error
}

// Backend is the slice of the backend client the submission needs.
type Backend interface {
	Currencies(ctx context.Context) ([]models.Currency, error)
	CreateTransaction(ctx context.Context, payload models.TransactionPayload) (*backend.CreateTransactionResponse, error)
	SendEmail(ctx context.Context, payload models.EmailPayload) error
}

// Reference resolves cached reference entities and owns the ephemeral
// session data cleared after a completed submission.
type Reference interface {
	CountryByName(name string) (models.Country, bool)
	BankName(id string) (string, bool)
	DocumentTypeName(id string) (string, bool)
	AccountTypeName(id string) (string, bool)
	ClearTransactionData()
}
