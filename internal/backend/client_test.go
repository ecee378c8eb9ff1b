package backend

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"remesa/internal/models"
)

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return New(Config{BaseURL: srv.URL, AuthToken: "secret"})
}

func TestClient_SendsBearerToken(t *testing.T) {
	var gotAuth string
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"nonce":"n-1"}`))
	}))

	nonce, err := c.Nonce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "n-1", nonce)
	assert.Equal(t, "Bearer secret", gotAuth)
}

func TestClient_NonceRejectsEmptyValue(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))

	_, err := c.Nonce(context.Background())
	assert.Error(t, err)
}

func TestVerifyLoginResponse_Aliases(t *testing.T) {
	addr := "0xA1B2C3D4E5F60718293A4B5C6D7E8F9012345678"
	lower := "0xa1b2c3d4e5f60718293a4b5c6d7e8f9012345678"

	tests := []struct {
		name     string
		resp     VerifyLoginResponse
		wantID   string
		wantAddr string
	}{
		{
			name:     "camel case aliases win",
			resp:     VerifyLoginResponse{UserIDCamel: "a", UserIDSnake: "b", ID: "c", WalletAddrCamel: addr},
			wantID:   "a",
			wantAddr: lower,
		},
		{
			name:     "snake case next",
			resp:     VerifyLoginResponse{UserIDSnake: "b", ID: "c", Wallet: addr},
			wantID:   "b",
			wantAddr: lower,
		},
		{
			name:     "bare id and wallet_address",
			resp:     VerifyLoginResponse{ID: "c", WalletAddress: lower},
			wantID:   "c",
			wantAddr: lower,
		},
		{
			name: "empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantID, tt.resp.UserID())
			assert.Equal(t, tt.wantAddr, tt.resp.Address())
		})
	}
}

func TestClient_UserByWalletAddress(t *testing.T) {
	addr := "0xa1b2c3d4e5f60718293a4b5c6d7e8f9012345678"

	t.Run("case-insensitive client-side match", func(t *testing.T) {
		c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// The backend echoes users regardless of case.
			w.Write([]byte(`[{"id":"u-1","wallet_address":"0xA1B2C3D4E5F60718293A4B5C6D7E8F9012345678"}]`))
		}))

		user, err := c.UserByWalletAddress(context.Background(), addr)
		require.NoError(t, err)
		require.NotNil(t, user)
		assert.Equal(t, "u-1", user.ID)
	})

	t.Run("unrelated rows are not a match", func(t *testing.T) {
		c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[{"id":"u-2","wallet_address":"0x0000000000000000000000000000000000000000"}]`))
		}))

		user, err := c.UserByWalletAddress(context.Background(), addr)
		require.NoError(t, err)
		assert.Nil(t, user)
	})

	t.Run("empty result is not an error", func(t *testing.T) {
		c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`[]`))
		}))

		user, err := c.UserByWalletAddress(context.Background(), addr)
		require.NoError(t, err)
		assert.Nil(t, user)
	})
}

func TestClient_CreateTransactionStatusCodes(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantID  string
		wantErr bool
	}{
		{name: "200 ok", status: http.StatusOK, body: `{"id":"tx-1"}`, wantID: "tx-1"},
		{name: "201 created", status: http.StatusCreated, body: `{"transaction_id":"tx-2"}`, wantID: "tx-2"},
		{name: "202 is a failure", status: http.StatusAccepted, body: `{"id":"tx-3"}`, wantErr: true},
		{name: "500 is a failure", status: http.StatusInternalServerError, body: `{}`, wantErr: true},
		{name: "nested data id", status: http.StatusOK, body: `{"data":{"id":"tx-4"}}`, wantID: "tx-4"},
		{name: "empty body on 201", status: http.StatusCreated, body: "", wantID: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))

			resp, err := c.CreateTransaction(context.Background(), models.TransactionPayload{})
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, resp.CreatedID())
		})
	}
}

func TestClient_TransactionNotFound(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := c.Transaction(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClient_Available(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"nonce":"n"}`))
	}))
	assert.True(t, c.Available(context.Background()))

	down := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	assert.False(t, down.Available(context.Background()))
}

func TestClient_DeleteUser(t *testing.T) {
	var gotMethod, gotPath string
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	}))

	require.NoError(t, c.DeleteUser(context.Background(), "u-9"))
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/users/u-9", gotPath)

	gone := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	assert.True(t, IsStatus(gone.DeleteUser(context.Background(), "u-9"), http.StatusNotFound))
}
