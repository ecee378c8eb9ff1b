// Package handlers exposes the wizard over HTTP. Every handler renders
// JSON; gating failures carry the screen the client should fall back to.
package handlers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"remesa/internal/middleware"
	"remesa/internal/services/auth"
	"remesa/internal/session"
	"remesa/internal/utils/response"
	"remesa/pkg/logger"
)

// SessionHandler opens and closes wizard sessions.
type SessionHandler struct {
	sessions *session.Manager
	tokenTTL time.Duration
}

func NewSessionHandler(sessions *session.Manager, tokenTTL time.Duration) *SessionHandler {
	if tokenTTL <= 0 {
		tokenTTL = session.DefaultTTL
	}
	return &SessionHandler{sessions: sessions, tokenTTL: tokenTTL}
}

// Open runs the wallet handshake and issues the session token.
func (h *SessionHandler) Open(c *fiber.Ctx) error {
	entry := h.sessions.Create()

	result, err := entry.Wizard.Authenticate(c.Context())
	if err != nil {
		h.sessions.Delete(entry.ID)
		switch {
		case errors.Is(err, auth.ErrWalletUnavailable):
			return response.Error(c, fiber.StatusServiceUnavailable, "wallet app not available")
		case errors.Is(err, auth.ErrNonceFetch):
			return response.Error(c, fiber.StatusBadGateway, "authentication service unavailable")
		default:
			logger.Warn("wallet authentication failed", zap.Error(err))
			return response.Error(c, fiber.StatusUnauthorized, "wallet authentication failed")
		}
	}

	token, err := session.IssueToken(entry.ID, result.UserID, result.WalletAddress, h.tokenTTL)
	if err != nil {
		h.sessions.Delete(entry.ID)
		logger.Error("session token issue failed", zap.Error(err))
		return response.ServerError(c, "failed to issue session token")
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"token":      token,
		"session_id": entry.ID,
		"user": fiber.Map{
			"id":             result.UserID,
			"wallet_address": result.WalletAddress,
			"existing":       result.ExistingUser,
		},
	})
}

// Close ends the authenticated session.
func (h *SessionHandler) Close(c *fiber.Ctx) error {
	entry, ok := middleware.SessionFrom(c)
	if !ok {
		return response.Redirect(c, fiber.StatusUnauthorized, "no session", middleware.WelcomeRedirect)
	}
	h.sessions.Delete(entry.ID)
	return response.Success(c, "session closed", nil)
}
