package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"remesa/internal/backend"
	"remesa/internal/minikit"
	"remesa/internal/services/auth"
	"remesa/internal/services/wizard"
	"remesa/internal/store"
)

// unavailableSDK stands in for a device without the wallet app.
type unavailableSDK struct{}

func (unavailableSDK) IsInstalled() bool { return false }

func (unavailableSDK) WalletAuth(ctx context.Context, req minikit.WalletAuthRequest) (*minikit.AuthResult, error) {
	return nil, errors.New("not installed")
}

func (unavailableSDK) Pay(ctx context.Context, input minikit.PayCommandInput) (*minikit.PayResult, error) {
	return nil, errors.New("not installed")
}

func testFactory() func() *wizard.Wizard {
	client := backend.New(backend.Config{BaseURL: "http://localhost:0"})
	return func() *wizard.Wizard {
		return wizard.New(client, unavailableSDK{}, store.NewPreload(nil), nil, auth.Config{})
	}
}

func (m *Manager) has(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.sessions[id]
	return ok
}

func TestManager_CreateAndGet(t *testing.T) {
	m := NewManager(time.Minute, testFactory())
	defer m.Stop()

	entry := m.Create()
	require.NotEmpty(t, entry.ID)
	require.NotNil(t, entry.Wizard)

	got, ok := m.Get(entry.ID)
	assert.True(t, ok)
	assert.Same(t, entry, got)

	_, ok = m.Get("unknown")
	assert.False(t, ok)
}

func TestManager_Delete(t *testing.T) {
	m := NewManager(time.Minute, testFactory())
	defer m.Stop()

	entry := m.Create()
	m.Delete(entry.ID)

	_, ok := m.Get(entry.ID)
	assert.False(t, ok)
}

func TestManager_ReapsIdleSessions(t *testing.T) {
	m := NewManager(20*time.Millisecond, testFactory())
	defer m.Stop()

	entry := m.Create()

	// Polling through Get would refresh the idle timer and keep the
	// session alive, so peek at the table directly.
	assert.Eventually(t, func() bool {
		return !m.has(entry.ID)
	}, time.Second, 5*time.Millisecond)
}

func TestManager_StopClosesEverySession(t *testing.T) {
	m := NewManager(time.Minute, testFactory())
	a := m.Create()
	b := m.Create()

	m.Stop()

	assert.False(t, m.has(a.ID))
	assert.False(t, m.has(b.ID))
}
