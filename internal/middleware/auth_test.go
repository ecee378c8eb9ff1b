package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"remesa/internal/backend"
	"remesa/internal/minikit"
	"remesa/internal/services/auth"
	"remesa/internal/services/wizard"
	"remesa/internal/session"
	"remesa/internal/store"
)

type offlineSDK struct{}

func (offlineSDK) IsInstalled() bool { return false }

func (offlineSDK) WalletAuth(ctx context.Context, req minikit.WalletAuthRequest) (*minikit.AuthResult, error) {
	return nil, errors.New("not installed")
}

func (offlineSDK) Pay(ctx context.Context, input minikit.PayCommandInput) (*minikit.PayResult, error) {
	return nil, errors.New("not installed")
}

func testApp(t *testing.T) (*fiber.App, *session.Manager) {
	t.Helper()
	client := backend.New(backend.Config{BaseURL: "http://localhost:0"})
	sessions := session.NewManager(time.Minute, func() *wizard.Wizard {
		return wizard.New(client, offlineSDK{}, store.NewPreload(nil), nil, auth.Config{})
	})
	t.Cleanup(sessions.Stop)

	app := fiber.New()
	guard := NewSessionMiddleware(sessions)
	app.Get("/guarded", guard.Handler, func(c *fiber.Ctx) error {
		entry, ok := SessionFrom(c)
		if !ok {
			return fiber.ErrInternalServerError
		}
		return c.JSON(fiber.Map{"session_id": entry.ID})
	})
	return app, sessions
}

func TestSessionMiddleware(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")
	app, sessions := testApp(t)

	t.Run("missing header redirects to welcome", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/guarded", nil)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)

		var body map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, WelcomeRedirect, body["redirect"])
	})

	t.Run("garbage token rejected", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/guarded", nil)
		req.Header.Set("Authorization", "Bearer not-a-jwt")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("token for a dead session rejected", func(t *testing.T) {
		entry := sessions.Create()
		token, err := session.IssueToken(entry.ID, "u-1", "", time.Minute)
		require.NoError(t, err)
		sessions.Delete(entry.ID)

		req := httptest.NewRequest("GET", "/guarded", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("live session passes through", func(t *testing.T) {
		entry := sessions.Create()
		token, err := session.IssueToken(entry.ID, "u-1", "", time.Minute)
		require.NoError(t, err)

		req := httptest.NewRequest("GET", "/guarded", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)

		var body map[string]string
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.Equal(t, entry.ID, body["session_id"])
	})
}
