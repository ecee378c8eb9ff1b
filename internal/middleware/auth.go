// Package middleware binds requests to their wizard session via the
// session JWT.
package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"remesa/internal/session"
	"remesa/internal/utils/response"
	"remesa/pkg/logger"
)

const (
	// LocalsSession is the fiber locals key holding the *session.Entry.
	LocalsSession = "session"
	// LocalsClaims is the fiber locals key holding the parsed claims.
	LocalsClaims = "claims"
	// WelcomeRedirect is where unauthenticated clients are pointed.
	WelcomeRedirect = "/welcome"
)

// SessionMiddleware resolves the bearer token to a live session. Requests
// without one are redirected to the welcome screen, not error-paged.
type SessionMiddleware struct {
	sessions *session.Manager
}

func NewSessionMiddleware(sessions *session.Manager) *SessionMiddleware {
	return &SessionMiddleware{sessions: sessions}
}

func (m *SessionMiddleware) Handler(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return response.Redirect(c, fiber.StatusUnauthorized, "missing session token", WelcomeRedirect)
	}

	claims, err := session.ParseToken(strings.TrimPrefix(authHeader, "Bearer "))
	if err != nil {
		logger.Debug("session token rejected", zap.Error(err))
		return response.Redirect(c, fiber.StatusUnauthorized, "invalid session token", WelcomeRedirect)
	}

	entry, ok := m.sessions.Get(claims.SessionID)
	if !ok {
		return response.Redirect(c, fiber.StatusUnauthorized, "session expired", WelcomeRedirect)
	}

	c.Locals(LocalsSession, entry)
	c.Locals(LocalsClaims, claims)
	return c.Next()
}

// SessionFrom extracts the session bound by the middleware.
func SessionFrom(c *fiber.Ctx) (*session.Entry, bool) {
	entry, ok := c.Locals(LocalsSession).(*session.Entry)
	return entry, ok
}
