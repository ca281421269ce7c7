package rvapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(Config{APIURL: srv.URL, TerminalSecret: "unsecure"})
}

func TestLogin(t *testing.T) {
	t.Run("success returns token", func(t *testing.T) {
		c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/v1/authenticate", r.URL.Path)
			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "test", body["username"])
			assert.Equal(t, "unsecure", body["rvTerminalSecret"])
			json.NewEncoder(w).Encode(map[string]string{"accessToken": "tok123"})
		})

		creds, err := c.Login("test", "test")
		require.NoError(t, err)
		assert.Equal(t, "tok123", creds.AccessToken)
	})

	t.Run("401 is a recoverable failure", func(t *testing.T) {
		c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		})

		_, err := c.Login("test", "wrong")
		apiErr, ok := IsAPIError(err)
		require.True(t, ok)
		assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	})

	t.Run("5xx is a protocol violation", func(t *testing.T) {
		c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		})

		_, err := c.Login("test", "test")
		assert.True(t, errors.Is(err, ErrProtocol))
		_, ok := IsAPIError(err)
		assert.False(t, ok)
	})
}

func TestLoginScanNoMatch(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/authenticate/rfid", r.URL.Path)
		w.WriteHeader(http.StatusNotFound)
	})

	_, err := c.LoginScan("a1b2c3")
	assert.True(t, errors.Is(err, ErrNoMatch))
}

func TestProductInfoAbsent(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	p, err := c.ProductInfo(&Credentials{AccessToken: "tok"}, "555")
	require.NoError(t, err)
	assert.Nil(t, p)
}

func TestPurchaseFailureMessage(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/products/555/purchase", r.URL.Path)
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]string{"message": "insufficient funds"})
	})

	err := c.Purchase(&Credentials{AccessToken: "tok"}, "555", 2)
	apiErr, ok := IsAPIError(err)
	require.True(t, ok)
	assert.Equal(t, "insufficient funds", apiErr.Message)
}

func TestUserInfoUnwrapsEnvelope(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"user": map[string]interface{}{
				"userId":       7,
				"username":     "test",
				"email":        "test@example.com",
				"moneyBalance": 1250,
				"role":         "ADMIN",
			},
		})
	})

	info, err := c.UserInfo(&Credentials{AccessToken: "tok"})
	require.NoError(t, err)
	assert.Equal(t, "test", info.Username)
	assert.Equal(t, 1250, info.MoneyBalance)
	assert.True(t, info.IsAdmin())
}
