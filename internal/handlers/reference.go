package handlers

import (
	"github.com/gofiber/fiber/v2"

	"remesa/internal/middleware"
	"remesa/internal/utils/response"
)

// ReferenceHandler serves the cached reference lists the wizard forms are
// built from. The session cache is warmed after authentication; an empty
// list usually means warming has not finished yet.
type ReferenceHandler struct{}

func NewReferenceHandler() *ReferenceHandler {
	return &ReferenceHandler{}
}

func (h *ReferenceHandler) Countries(c *fiber.Ctx) error {
	entry, ok := middleware.SessionFrom(c)
	if !ok {
		return response.Redirect(c, fiber.StatusUnauthorized, "no session", middleware.WelcomeRedirect)
	}
	return c.JSON(fiber.Map{
		"countries": entry.Wizard.Cache().Countries(),
		"warm":      entry.Wizard.Cache().Warm(),
	})
}

func (h *ReferenceHandler) Banks(c *fiber.Ctx) error {
	entry, ok := middleware.SessionFrom(c)
	if !ok {
		return response.Redirect(c, fiber.StatusUnauthorized, "no session", middleware.WelcomeRedirect)
	}

	cache := entry.Wizard.Cache()
	if countryID := c.Query("country"); countryID != "" {
		return c.JSON(fiber.Map{"banks": cache.BanksByCountry(countryID)})
	}
	return c.JSON(fiber.Map{"banks": cache.Banks()})
}

func (h *ReferenceHandler) DocumentTypes(c *fiber.Ctx) error {
	entry, ok := middleware.SessionFrom(c)
	if !ok {
		return response.Redirect(c, fiber.StatusUnauthorized, "no session", middleware.WelcomeRedirect)
	}

	cache := entry.Wizard.Cache()
	if countryID := c.Query("country"); countryID != "" {
		return c.JSON(fiber.Map{"document_types": cache.DocumentTypesByCountry(countryID)})
	}
	return c.JSON(fiber.Map{"document_types": cache.DocumentTypes()})
}

func (h *ReferenceHandler) AccountTypes(c *fiber.Ctx) error {
	entry, ok := middleware.SessionFrom(c)
	if !ok {
		return response.Redirect(c, fiber.StatusUnauthorized, "no session", middleware.WelcomeRedirect)
	}
	return c.JSON(fiber.Map{"account_types": entry.Wizard.Cache().AccountTypes()})
}
