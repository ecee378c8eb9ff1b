package wizard

import "remesa/internal/models"

// Step is the wizard position. Forward transitions are gated; backward
// navigation is always allowed and never clears the draft.
type Step int

const (
	// StepWelcome is the pre-auth landing state.
	StepWelcome Step = iota
	// StepAmount is the amount-entry form.
	StepAmount
	// StepPersonalInfo is the sender profile form.
	StepPersonalInfo
	// StepSummary is the review-and-confirm screen.
	StepSummary
	// StepDetails shows the completed transaction.
	StepDetails
)

func (s Step) String() string {
	switch s {
	case StepAmount:
		return "amount"
	case StepPersonalInfo:
		return "personal-info"
	case StepSummary:
		return "summary"
	case StepDetails:
		return "details"
	default:
		return "welcome"
	}
}

// Snapshot is the wizard state as rendered to the client.
type Snapshot struct {
	Step          string                  `json:"step"`
	Draft         models.TransactionDraft `json:"draft"`
	Warm          bool                    `json:"warm"`
	Balance       string                  `json:"balance"`
	TransactionID string                  `json:"transaction_id,omitempty"`
}

// AmountInput is the amount-entry form as committed.
type AmountInput struct {
	Country string `json:"country" validate:"required"`
	BankID  string `json:"bank_id" validate:"required"`
	Amount  string `json:"amount" validate:"required"`
}

// ConvertInput is a live conversion request; it never advances the wizard.
type ConvertInput struct {
	Country string `json:"country"`
	Amount  string `json:"amount"`
}

// ConfirmResult is the outcome of a confirmed summary.
type ConfirmResult struct {
	TransactionID string `json:"transaction_id"`
	// NotificationErr reports a failed notification send. The transaction
	// itself succeeded.
	NotificationErr error `json:"-"`
}
