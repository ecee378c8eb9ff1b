package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"remesa/internal/middleware"
	"remesa/internal/models"
	"remesa/internal/services/payment"
	"remesa/internal/services/profile"
	"remesa/internal/services/transaction"
	"remesa/internal/services/wizard"
	"remesa/internal/utils/response"
	"remesa/pkg/logger"
)

// WizardHandler maps the wizard steps onto the session routes.
type WizardHandler struct{}

func NewWizardHandler() *WizardHandler {
	return &WizardHandler{}
}

// State renders the current wizard position.
func (h *WizardHandler) State(c *fiber.Ctx) error {
	entry, ok := middleware.SessionFrom(c)
	if !ok {
		return response.Redirect(c, fiber.StatusUnauthorized, "no session", middleware.WelcomeRedirect)
	}
	return c.JSON(entry.Wizard.State())
}

// Back navigates one step towards the welcome screen.
func (h *WizardHandler) Back(c *fiber.Ctx) error {
	entry, ok := middleware.SessionFrom(c)
	if !ok {
		return response.Redirect(c, fiber.StatusUnauthorized, "no session", middleware.WelcomeRedirect)
	}
	return c.JSON(entry.Wizard.Back())
}

// Convert ingests a keystroke from the amount field.
func (h *WizardHandler) Convert(c *fiber.Ctx) error {
	entry, ok := middleware.SessionFrom(c)
	if !ok {
		return response.Redirect(c, fiber.StatusUnauthorized, "no session", middleware.WelcomeRedirect)
	}

	var input wizard.ConvertInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	receives, err := entry.Wizard.Convert(input)
	if err != nil {
		return h.stepError(c, err)
	}
	return c.JSON(fiber.Map{"receives": receives})
}

// SubmitAmount commits the amount step.
func (h *WizardHandler) SubmitAmount(c *fiber.Ctx) error {
	entry, ok := middleware.SessionFrom(c)
	if !ok {
		return response.Redirect(c, fiber.StatusUnauthorized, "no session", middleware.WelcomeRedirect)
	}

	var input wizard.AmountInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	if err := entry.Wizard.SubmitAmount(c.Context(), input); err != nil {
		return h.stepError(c, err)
	}
	return c.JSON(entry.Wizard.State())
}

// MaxAmount fills the amount field with the full spendable balance.
func (h *WizardHandler) MaxAmount(c *fiber.Ctx) error {
	entry, ok := middleware.SessionFrom(c)
	if !ok {
		return response.Redirect(c, fiber.StatusUnauthorized, "no session", middleware.WelcomeRedirect)
	}

	amount, err := entry.Wizard.MaxAmount(c.Context())
	if err != nil {
		return h.stepError(c, err)
	}
	return c.JSON(fiber.Map{"amount": amount})
}

// PersonalInfo loads the stored profile for form seeding.
func (h *WizardHandler) PersonalInfo(c *fiber.Ctx) error {
	entry, ok := middleware.SessionFrom(c)
	if !ok {
		return response.Redirect(c, fiber.StatusUnauthorized, "no session", middleware.WelcomeRedirect)
	}

	prefill, err := entry.Wizard.PersonalInfoPrefill(c.Context())
	if err != nil {
		return h.stepError(c, err)
	}
	return c.JSON(prefill)
}

// SubmitPersonalInfo persists the profile and advances to the summary.
func (h *WizardHandler) SubmitPersonalInfo(c *fiber.Ctx) error {
	entry, ok := middleware.SessionFrom(c)
	if !ok {
		return response.Redirect(c, fiber.StatusUnauthorized, "no session", middleware.WelcomeRedirect)
	}

	var input profile.Input
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	if err := entry.Wizard.SubmitPersonalInfo(c.Context(), input); err != nil {
		var verr *profile.ValidationError
		if errors.As(err, &verr) {
			return response.ValidationFailed(c, verr.Fields)
		}
		return h.stepError(c, err)
	}
	return c.JSON(entry.Wizard.State())
}

// Confirm executes payment and submission for the reviewed draft.
func (h *WizardHandler) Confirm(c *fiber.Ctx) error {
	entry, ok := middleware.SessionFrom(c)
	if !ok {
		return response.Redirect(c, fiber.StatusUnauthorized, "no session", middleware.WelcomeRedirect)
	}

	var consents models.ConsentState
	if err := c.BodyParser(&consents); err != nil {
		return response.BadRequest(c, "invalid request body")
	}

	result, err := entry.Wizard.Confirm(c.Context(), consents)
	if err != nil {
		return h.stepError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"transaction_id":    result.TransactionID,
		"notification_sent": result.NotificationErr == nil,
	})
}

// stepError translates wizard and step-service failures into status codes.
// Gating failures carry the welcome redirect so the client can recover.
func (h *WizardHandler) stepError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, wizard.ErrNotAuthenticated):
		return response.Redirect(c, fiber.StatusUnauthorized, err.Error(), middleware.WelcomeRedirect)
	case errors.Is(err, wizard.ErrStepNotReady):
		return response.Redirect(c, fiber.StatusConflict, err.Error(), middleware.WelcomeRedirect)
	case errors.Is(err, wizard.ErrConsentRequired),
		errors.Is(err, wizard.ErrUnknownCountry),
		errors.Is(err, wizard.ErrBankRequired),
		errors.Is(err, wizard.ErrAmountTooSmall),
		errors.Is(err, wizard.ErrAmountExceedsBalance),
		errors.Is(err, wizard.ErrNoConversion),
		errors.Is(err, wizard.ErrWalletAddressMissing),
		errors.Is(err, profile.ErrUnknownCountry),
		errors.Is(err, profile.ErrUnknownDocumentType),
		errors.Is(err, profile.ErrUnknownAccountType),
		errors.Is(err, transaction.ErrInvalidAccountNumber),
		errors.Is(err, transaction.ErrIncompleteDraft),
		errors.Is(err, payment.ErrInvalidAmount):
		return response.BadRequest(c, err.Error())
	case errors.Is(err, payment.ErrInsufficientBalance):
		return response.Error(c, fiber.StatusPaymentRequired, err.Error())
	case errors.Is(err, payment.ErrPaymentDeclined):
		return response.Error(c, fiber.StatusPaymentRequired, err.Error())
	case errors.Is(err, payment.ErrWalletUnavailable):
		return response.Error(c, fiber.StatusServiceUnavailable, err.Error())
	case errors.Is(err, wizard.ErrBackendUnavailable):
		return response.Error(c, fiber.StatusServiceUnavailable, err.Error())
	case errors.Is(err, wizard.ErrReferenceMissing),
		errors.Is(err, transaction.ErrCurrencyNotFound):
		return response.Error(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, transaction.ErrSubmissionFailed),
		errors.Is(err, profile.ErrSaveFailed):
		return response.Error(c, fiber.StatusBadGateway, err.Error())
	default:
		logger.Error("wizard step failed", zap.Error(err))
		return response.ServerError(c, "internal error")
	}
}
