package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"remesa/internal/backend"
	"remesa/internal/middleware"
	"remesa/internal/services/rates"
	"remesa/internal/utils/response"
)

// TransactionHandler renders completed transactions.
type TransactionHandler struct {
	backend *backend.Client
}

func NewTransactionHandler(be *backend.Client) *TransactionHandler {
	return &TransactionHandler{backend: be}
}

// Get renders one transaction with display-formatted amounts. The payout
// currency falls back to the raw currency id when the country is not in
// the session cache.
func (h *TransactionHandler) Get(c *fiber.Ctx) error {
	entry, ok := middleware.SessionFrom(c)
	if !ok {
		return response.Redirect(c, fiber.StatusUnauthorized, "no session", middleware.WelcomeRedirect)
	}

	id := c.Params("id")
	if id == "" {
		return response.BadRequest(c, "transaction id is required")
	}

	tx, err := h.backend.Transaction(c.Context(), id)
	if err != nil {
		if errors.Is(err, backend.ErrNotFound) {
			return response.Error(c, fiber.StatusNotFound, "transaction not found")
		}
		return response.Error(c, fiber.StatusBadGateway, "failed to load transaction")
	}

	cache := entry.Wizard.Cache()
	currency := tx.CurrencyID
	countryName := ""
	if country, ok := cache.CountryByID(tx.CountryID); ok {
		countryName = country.Name
		if code, ok := rates.CurrencyFor(country.Name); ok {
			currency = code
		}
	}
	bankName, _ := cache.BankName(tx.BankID)

	return c.JSON(fiber.Map{
		"transaction": tx,
		"display": fiber.Map{
			"quantity":        rates.FormatWLD(tx.Quantity),
			"amount_received": rates.FormatLocalCurrency(tx.AmountReceived),
			"currency":        currency,
			"country":         countryName,
			"bank":            bankName,
		},
	})
}
